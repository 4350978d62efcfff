package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"svw.info/rivercrossing/internal/adapters/tui"
	"svw.info/rivercrossing/internal/domain"
	"svw.info/rivercrossing/internal/ports"
)

var (
	solveJSON bool
	solveFrom string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Search for a crossing sequence and print it",
	Long: `Searches the variant's state space and prints every crossing.
Breadth-first search returns a shortest sequence; depth-first search returns
the first sequence it finds in move order.`,
	RunE: runSolve,
}

func init() {
	addSearchFlags(solveCmd.Flags())
	solveCmd.Flags().BoolVar(&solveJSON, "json", false, "output as JSON")
	solveCmd.Flags().StringVar(&solveFrom, "from", "", "start state as m,c,side (e.g. 3,1,right); defaults to everyone on the left")
	rootCmd.AddCommand(solveCmd)
}

type solveOutput struct {
	Variant    domain.VariantID `json:"variant"`
	Strategy   string           `json:"strategy"`
	Found      bool             `json:"found"`
	Moves      int              `json:"moves"`
	Nodes      int              `json:"nodes"`
	DurationMs int64            `json:"durationMs"`
	Path       domain.Path      `json:"path"`
}

func runSolve(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	strategy, err := domain.ParseStrategy(cfg.Strategy)
	if err != nil {
		return err
	}
	var start *domain.State
	if solveFrom != "" {
		s, err := parseState(solveFrom)
		if err != nil {
			return err
		}
		start = &s
	}

	uc := newService(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	id := domain.VariantID(cfg.Variant)
	res, st, err := uc.SolveFrom(cmd.Context(), id, strategy, start)
	if err != nil {
		return fmt.Errorf("solve failed: %w", err)
	}
	rs, err := uc.RuleSet(cmd.Context(), id)
	if err != nil {
		return err
	}

	if solveJSON {
		return outputSolveJSON(cmd, solveOutput{
			Variant:    id,
			Strategy:   strategy.String(),
			Found:      res.Found,
			Moves:      res.Path.Moves(),
			Nodes:      st.Nodes,
			DurationMs: st.Duration.Milliseconds(),
			Path:       res.Path,
		})
	}
	return outputSolveTable(cmd, rs, strategy, res, st)
}

func outputSolveJSON(cmd *cobra.Command, out solveOutput) error {
	if out.Path == nil {
		out.Path = domain.Path{}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSolveTable(cmd *cobra.Command, rs *domain.RuleSet, strategy domain.Strategy, res domain.Result, st ports.Stats) error {
	styles := tui.NewStyles(tui.DefaultTheme())
	cmd.Println(styles.Title.Render(fmt.Sprintf("%s (%s)", rs.Name(), strategy)))
	if !res.Found {
		cmd.Println("No solution found.")
		cmd.Println(styles.Muted.Render(fmt.Sprintf("%d states expanded in %s", st.Nodes, st.Duration)))
		return nil
	}

	widths := []int{5, 14, 10, 10, 30}
	cmd.Println(row(styles.Header, widths, "STEP", "STATE", "LEFT", "RIGHT", "CROSSING"))
	for i, step := range res.Path {
		cmd.Println(row(styles.Cell, widths,
			strconv.Itoa(i),
			step.State.String(),
			bankString(step.State.On(domain.Left)),
			bankString(step.State.On(domain.Right)),
			step.Label,
		))
	}
	cmd.Println()
	cmd.Println(styles.Success.Render(fmt.Sprintf("%d crossings", res.Path.Moves())) +
		styles.Muted.Render(fmt.Sprintf("  %d states expanded in %s", st.Nodes, st.Duration)))
	return nil
}

func bankString(p domain.Population) string {
	if p.Missionaries == 0 && p.Cannibals == 0 {
		return "-"
	}
	return strings.Repeat("M", p.Missionaries) + strings.Repeat("C", p.Cannibals)
}

// parseState reads "m,c,side", where side is left or right.
func parseState(s string) (domain.State, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return domain.State{}, fmt.Errorf("%w: want m,c,side, got %q", domain.ErrInvalidState, s)
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return domain.State{}, fmt.Errorf("%w: missionaries %q", domain.ErrInvalidState, parts[0])
	}
	c, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return domain.State{}, fmt.Errorf("%w: cannibals %q", domain.ErrInvalidState, parts[1])
	}
	side, err := domain.ParseSide(parts[2])
	if err != nil {
		return domain.State{}, err
	}
	return domain.State{LeftMissionaries: m, LeftCannibals: c, Boat: side}, nil
}
