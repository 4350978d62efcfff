package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"svw.info/rivercrossing/internal/adapters/tui"
	"svw.info/rivercrossing/internal/domain"
	"svw.info/rivercrossing/internal/playback"
)

var (
	playPlain bool
	playDelay time.Duration
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Replay a solution crossing by crossing",
	Long: `Solves the variant and replays the crossings. On a terminal the replay is
animated; otherwise each step is printed on its own line.

Controls:
  space - Pause / resume
  →/n   - Next step
  s     - Play from the start
  r     - Reset
  +/-   - Speed up / slow down
  q     - Quit`,
	RunE: runPlay,
}

func init() {
	addSearchFlags(playCmd.Flags())
	playCmd.Flags().Float64("speed", 1, "playback speed, 0.5 to 3")
	playCmd.Flags().BoolVar(&playPlain, "plain", false, "print steps instead of animating")
	playCmd.Flags().DurationVar(&playDelay, "delay", 0, "pause between printed steps in plain mode")
	rootCmd.AddCommand(playCmd)
}

func interactive(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	strategy, err := domain.ParseStrategy(cfg.Strategy)
	if err != nil {
		return err
	}
	uc := newService(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	id := domain.VariantID(cfg.Variant)
	res, _, err := uc.FindPath(cmd.Context(), id, strategy)
	if err != nil {
		return fmt.Errorf("solve failed: %w", err)
	}
	if !res.Found {
		return errors.New("no solution to play")
	}

	player := playback.NewPlayer()
	player.SetSpeed(cfg.PlaybackSpeed)
	if !playPlain && interactive(cmd.OutOrStdout()) {
		title := fmt.Sprintf("%s (%s)", id, strategy)
		return tui.Run(tui.NewModel(title, res.Path, player, cfg.PlaybackInterval()))
	}
	return playSteps(cmd, player, res.Path)
}

// playSteps walks the player one step at a time and prints each frame.
func playSteps(cmd *cobra.Command, p *playback.Player, path domain.Path) error {
	p.Load(path)
	printFrame(cmd, p.Frame())
	for p.Step() {
		if playDelay > 0 {
			select {
			case <-cmd.Context().Done():
				return cmd.Context().Err()
			case <-time.After(playDelay):
			}
		}
		printFrame(cmd, p.Frame())
	}
	cmd.Println("everyone crossed safely")
	return nil
}

func printFrame(cmd *cobra.Command, f playback.Frame) {
	cmd.Printf("%2d/%d  %-8s %s %-8s  %s\n",
		f.Index, f.Total-1,
		bankString(f.Left), boatGlyph(f.BoatSide), bankString(f.Right),
		f.Label)
}

func boatGlyph(s domain.Side) string {
	if s == domain.Right {
		return "~~~~~~[b]"
	}
	return "[b]~~~~~~"
}
