package hint

import (
	"context"
	"fmt"

	"svw.info/rivercrossing/internal/domain"
	"svw.info/rivercrossing/internal/ports"
)

// NextMove suggests the first crossing of a shortest path from the player's
// current state.
type NextMove struct {
	Solver ports.Solver
}

// New wires a hinter over the given solver. A breadth-first solver gives
// optimal hints; any other solver gives hints along whatever path it finds.
func New(s ports.Solver) *NextMove { return &NextMove{Solver: s} }

// Hint returns false when s is already the goal or no goal is reachable.
func (h *NextMove) Hint(ctx context.Context, rs *domain.RuleSet, s domain.State) (domain.Hint, bool, error) {
	if s.IsGoal() {
		return domain.Hint{}, false, nil
	}
	res, _, err := h.Solver.Solve(ctx, rs, s)
	if err != nil {
		return domain.Hint{}, false, fmt.Errorf("hint from %s: %w", s, err)
	}
	if !res.Found || len(res.Path) < 2 {
		return domain.Hint{}, false, nil
	}
	next := res.Path[1]
	return domain.Hint{
		Move:      next.Move,
		Label:     next.Label,
		Next:      next.State,
		Remaining: res.Path.Moves(),
	}, true, nil
}
