package domain

import (
	"fmt"
)

// MaxPopulation bounds each kind so that State.Key stays injective.
const MaxPopulation = 255

// RuleSet describes one puzzle variant: how many travellers of each kind
// exist, how many fit in the boat and which boat loads are allowed, in the
// order successors are generated. A RuleSet is immutable once built and is
// shared read-only by every state and search.
type RuleSet struct {
	id       VariantID
	name     string
	total    Population
	capacity int
	moves    []Move
}

// NewRuleSet validates the configuration and returns an immutable rule set.
// Failures wrap ErrInvalidConfiguration.
func NewRuleSet(id VariantID, name string, total Population, capacity int, moves []Move) (*RuleSet, error) {
	if total.Missionaries < 0 || total.Cannibals < 0 {
		return nil, fmt.Errorf("%w: negative population %d/%d", ErrInvalidConfiguration, total.Missionaries, total.Cannibals)
	}
	if total.Missionaries > MaxPopulation || total.Cannibals > MaxPopulation {
		return nil, fmt.Errorf("%w: population above %d", ErrInvalidConfiguration, MaxPopulation)
	}
	if capacity < 1 {
		return nil, fmt.Errorf("%w: boat capacity %d", ErrInvalidConfiguration, capacity)
	}
	if len(moves) == 0 {
		return nil, fmt.Errorf("%w: no allowed moves", ErrInvalidConfiguration)
	}
	seen := make(map[Move]struct{}, len(moves))
	for _, m := range moves {
		if m.Missionaries < 0 || m.Cannibals < 0 {
			return nil, fmt.Errorf("%w: negative move %s", ErrInvalidConfiguration, m)
		}
		if m.Size() < 1 || m.Size() > capacity {
			return nil, fmt.Errorf("%w: move %s outside boat capacity %d", ErrInvalidConfiguration, m, capacity)
		}
		if _, dup := seen[m]; dup {
			return nil, fmt.Errorf("%w: duplicate move %s", ErrInvalidConfiguration, m)
		}
		seen[m] = struct{}{}
	}
	out := make([]Move, len(moves))
	copy(out, moves)
	return &RuleSet{id: id, name: name, total: total, capacity: capacity, moves: out}, nil
}

// StandardMoves lists every load of one or two kinds fitting the boat:
// missionaries-only loads first, then cannibals-only, then mixed.
func StandardMoves(capacity int) []Move {
	var out []Move
	for m := 1; m <= capacity; m++ {
		out = append(out, Move{Missionaries: m})
	}
	for c := 1; c <= capacity; c++ {
		out = append(out, Move{Cannibals: c})
	}
	for m := 1; m < capacity; m++ {
		for c := 1; m+c <= capacity; c++ {
			out = append(out, Move{Missionaries: m, Cannibals: c})
		}
	}
	return out
}

func (r *RuleSet) ID() VariantID      { return r.id }
func (r *RuleSet) Name() string       { return r.name }
func (r *RuleSet) Totals() Population { return r.total }
func (r *RuleSet) Capacity() int      { return r.capacity }

// Moves returns the allowed loads in generation order.
func (r *RuleSet) Moves() []Move {
	out := make([]Move, len(r.moves))
	copy(out, r.moves)
	return out
}

// Allows reports whether m is one of the rule set's loads.
func (r *RuleSet) Allows(m Move) bool {
	for _, mv := range r.moves {
		if mv == m {
			return true
		}
	}
	return false
}

// NewState builds a state bound to this rule set's totals. It checks bounds
// only; use IsLegal for the safety rule.
func (r *RuleSet) NewState(leftMissionaries, leftCannibals int, boat Side) (State, error) {
	s := State{LeftMissionaries: leftMissionaries, LeftCannibals: leftCannibals, Boat: boat, total: r.total}
	if err := r.checkBounds(s); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	return s, nil
}

// Bind attaches this rule set's totals to a state decoded from outside
// (JSON, flags) and checks its bounds.
func (r *RuleSet) Bind(s State) (State, error) {
	return r.NewState(s.LeftMissionaries, s.LeftCannibals, s.Boat)
}

// Start is everyone on the left bank with the boat.
func (r *RuleSet) Start() State {
	return State{LeftMissionaries: r.total.Missionaries, LeftCannibals: r.total.Cannibals, Boat: Left, total: r.total}
}

// Goal is everyone on the right bank with the boat.
func (r *RuleSet) Goal() State {
	return State{Boat: Right, total: r.total}
}

// IsLegal reports whether s is within bounds and no bank holding missionaries
// has more cannibals than missionaries.
func (r *RuleSet) IsLegal(s State) bool {
	return r.Check(s) == nil
}

// Check is IsLegal with the reason for rejection.
func (r *RuleSet) Check(s State) error {
	if err := r.checkBounds(s); err != nil {
		return err
	}
	if s.LeftMissionaries > 0 && s.LeftCannibals > s.LeftMissionaries {
		return fmt.Errorf("cannibals outnumber missionaries on the left bank (%d > %d)", s.LeftCannibals, s.LeftMissionaries)
	}
	rm := r.total.Missionaries - s.LeftMissionaries
	rc := r.total.Cannibals - s.LeftCannibals
	if rm > 0 && rc > rm {
		return fmt.Errorf("cannibals outnumber missionaries on the right bank (%d > %d)", rc, rm)
	}
	return nil
}

func (r *RuleSet) checkBounds(s State) error {
	if s.LeftMissionaries < 0 || s.LeftMissionaries > r.total.Missionaries {
		return fmt.Errorf("left missionaries %d outside [0,%d]", s.LeftMissionaries, r.total.Missionaries)
	}
	if s.LeftCannibals < 0 || s.LeftCannibals > r.total.Cannibals {
		return fmt.Errorf("left cannibals %d outside [0,%d]", s.LeftCannibals, r.total.Cannibals)
	}
	if s.Boat != Left && s.Boat != Right {
		return fmt.Errorf("boat side %d", int(s.Boat))
	}
	return nil
}

// Meta summarises the rule set for listings.
func (r *RuleSet) Meta() VariantMeta {
	return VariantMeta{
		ID:           r.id,
		Name:         r.name,
		Missionaries: r.total.Missionaries,
		Cannibals:    r.total.Cannibals,
		Capacity:     r.capacity,
		Moves:        r.Moves(),
	}
}
