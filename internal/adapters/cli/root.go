// Package cli is the river command-line interface.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"svw.info/rivercrossing/internal/config"
)

var (
	version = "dev"
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "river",
	Short: "Solve and replay missionaries-and-cannibals river crossings",
	Long: `river searches the state space of missionaries-and-cannibals puzzles
with breadth-first or depth-first search, prints the crossings, and replays
them in the terminal or in a browser.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "TOML config file")
}

// Execute runs the root command.
func Execute() error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.Execute()
}

// loadConfig layers the config file and environment, then any flags the
// user set explicitly on cmd.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}
	str := func(name string, dst *string) {
		if changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	str("addr", &cfg.Addr)
	str("log-level", &cfg.LogLevel)
	str("log-format", &cfg.LogFormat)
	str("variant", &cfg.Variant)
	str("strategy", &cfg.Strategy)
	str("variant-dir", &cfg.VariantDir)
	str("trace", &cfg.TraceExporter)
	if changed("metrics") {
		cfg.Metrics, _ = flags.GetBool("metrics")
	}
	if changed("rate-limit") {
		cfg.RateLimit, _ = flags.GetFloat64("rate-limit")
	}
	if changed("speed") {
		cfg.PlaybackSpeed, _ = flags.GetFloat64("speed")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// addSearchFlags registers the variant and strategy selectors shared by several commands.
func addSearchFlags(fs *pflag.FlagSet) {
	fs.String("variant", "classic", "variant id (see `river variants`)")
	fs.String("strategy", "bfs", "search strategy: bfs|dfs")
	fs.String("variant-dir", "", "directory of variant YAML files to use instead of the built-in catalog")
}
