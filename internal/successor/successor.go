// Package successor enumerates the crossings available from a state.
package successor

import (
	"fmt"

	"svw.info/rivercrossing/internal/domain"
)

// Generate returns every legal state reachable from s by one crossing, in
// the order of the rule set's moves. A dead end yields an empty slice.
func Generate(rs *domain.RuleSet, s domain.State) []domain.Transition {
	from := s.On(s.Boat)
	to := s.Boat.Opposite()
	var out []domain.Transition
	for _, m := range rs.Moves() {
		if m.Missionaries > from.Missionaries || m.Cannibals > from.Cannibals {
			continue
		}
		next, ok := cross(rs, s, m)
		if !ok {
			continue
		}
		out = append(out, domain.Transition{Move: m, State: next, Label: m.Label(to)})
	}
	return out
}

// Apply makes one player-chosen crossing. Errors wrap domain.ErrIllegalMove.
func Apply(rs *domain.RuleSet, s domain.State, m domain.Move) (domain.Transition, error) {
	if !rs.IsLegal(s) {
		return domain.Transition{}, fmt.Errorf("%w: current state %s is not legal", domain.ErrIllegalMove, s)
	}
	if !rs.Allows(m) {
		return domain.Transition{}, fmt.Errorf("%w: load %s is not allowed in %s", domain.ErrIllegalMove, m, rs.ID())
	}
	from := s.On(s.Boat)
	if m.Missionaries > from.Missionaries || m.Cannibals > from.Cannibals {
		return domain.Transition{}, fmt.Errorf("%w: only %d missionaries and %d cannibals on the %s bank",
			domain.ErrIllegalMove, from.Missionaries, from.Cannibals, s.Boat)
	}
	next, err := rs.NewState(shift(s, m))
	if err != nil {
		return domain.Transition{}, fmt.Errorf("%w: %v", domain.ErrIllegalMove, err)
	}
	if err := rs.Check(next); err != nil {
		return domain.Transition{}, fmt.Errorf("%w: %v", domain.ErrIllegalMove, err)
	}
	return domain.Transition{Move: m, State: next, Label: m.Label(next.Boat)}, nil
}

func cross(rs *domain.RuleSet, s domain.State, m domain.Move) (domain.State, bool) {
	next, err := rs.NewState(shift(s, m))
	if err != nil {
		return domain.State{}, false
	}
	return next, rs.IsLegal(next)
}

// shift moves the load away from the boat's bank and flips the boat.
func shift(s domain.State, m domain.Move) (int, int, domain.Side) {
	if s.Boat == domain.Left {
		return s.LeftMissionaries - m.Missionaries, s.LeftCannibals - m.Cannibals, domain.Right
	}
	return s.LeftMissionaries + m.Missionaries, s.LeftCannibals + m.Cannibals, domain.Left
}
