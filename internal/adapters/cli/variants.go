package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"svw.info/rivercrossing/internal/adapters/tui"
	"svw.info/rivercrossing/internal/domain"
)

var variantsJSON bool

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List the catalogued puzzle variants",
	RunE:  runVariants,
}

func init() {
	variantsCmd.Flags().BoolVar(&variantsJSON, "json", false, "output as JSON")
	variantsCmd.Flags().String("variant-dir", "", "directory of variant YAML files to use instead of the built-in catalog")
	rootCmd.AddCommand(variantsCmd)
}

func runVariants(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	uc := newService(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	metas, err := uc.Variants(cmd.Context())
	if err != nil {
		return fmt.Errorf("list variants: %w", err)
	}
	if variantsJSON {
		data, err := json.MarshalIndent(metas, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal variants: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	st := tui.NewStyles(tui.DefaultTheme())
	cmd.Println(row(st.Header, []int{14, 56, 4, 4, 5}, "ID", "NAME", "M", "C", "BOAT") + st.Header.Render("MOVES"))
	for _, m := range metas {
		cmd.Println(row(st.Cell, []int{14, 56, 4, 4, 5},
			string(m.ID), m.Name, fmt.Sprint(m.Missionaries), fmt.Sprint(m.Cannibals), fmt.Sprint(m.Capacity)) + formatMoves(m.Moves))
	}
	return nil
}

func formatMoves(moves []domain.Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}
