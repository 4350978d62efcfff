package domain

import (
	"fmt"
	"strings"
)

// Population counts the travellers of each kind.
type Population struct {
	Missionaries int `json:"missionaries"`
	Cannibals    int `json:"cannibals"`
}

// Of returns the count for one kind.
func (p Population) Of(k Kind) int {
	if k == Cannibal {
		return p.Cannibals
	}
	return p.Missionaries
}

// Key is the packed canonical encoding of a State: bits 0-7 hold the left
// missionaries, bits 8-15 the left cannibals and bit 16 the boat side.
type Key uint32

// State is one configuration of the world. Only the left bank is stored;
// the right bank is derived from the totals of the rule set that built it.
// States are values and are never mutated after construction.
type State struct {
	LeftMissionaries int  `json:"leftMissionaries"`
	LeftCannibals    int  `json:"leftCannibals"`
	Boat             Side `json:"boat"`

	total Population
}

// LeftCount returns the number of travellers of kind k on the left bank.
func (s State) LeftCount(k Kind) int {
	if k == Cannibal {
		return s.LeftCannibals
	}
	return s.LeftMissionaries
}

// RightCount returns the number of travellers of kind k on the right bank.
func (s State) RightCount(k Kind) int {
	return s.total.Of(k) - s.LeftCount(k)
}

// On returns the population of one bank.
func (s State) On(side Side) Population {
	if side == Right {
		return Population{Missionaries: s.RightCount(Missionary), Cannibals: s.RightCount(Cannibal)}
	}
	return Population{Missionaries: s.LeftMissionaries, Cannibals: s.LeftCannibals}
}

// Totals returns the population the state was built against.
func (s State) Totals() Population { return s.total }

// IsGoal reports whether everyone has crossed and the boat is on the right.
func (s State) IsGoal() bool {
	return s.LeftMissionaries == 0 && s.LeftCannibals == 0 && s.Boat == Right
}

// Key returns the canonical key used for visited sets.
func (s State) Key() Key {
	return Key(uint32(s.LeftMissionaries)&0xff |
		(uint32(s.LeftCannibals)&0xff)<<8 |
		uint32(s.Boat&1)<<16)
}

func (s State) String() string {
	return fmt.Sprintf("(%d,%d,%s)", s.LeftMissionaries, s.LeftCannibals, s.Boat)
}

// Move is a boat load: how many of each kind cross together.
type Move struct {
	Missionaries int `json:"missionaries"`
	Cannibals    int `json:"cannibals"`
}

// Size is the number of people in the boat.
func (m Move) Size() int { return m.Missionaries + m.Cannibals }

func (m Move) IsZero() bool { return m.Missionaries == 0 && m.Cannibals == 0 }

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Missionaries, m.Cannibals)
}

// Label describes the crossing for display, e.g. "1 missionary + 1 cannibal →".
// to is the bank the boat arrives at.
func (m Move) Label(to Side) string {
	var parts []string
	if m.Missionaries > 0 {
		parts = append(parts, plural(m.Missionaries, "missionary", "missionaries"))
	}
	if m.Cannibals > 0 {
		parts = append(parts, plural(m.Cannibals, "cannibal", "cannibals"))
	}
	arrow := "→"
	if to == Left {
		arrow = "←"
	}
	return strings.Join(parts, " + ") + " " + arrow
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}

// Transition is one successor of a state together with the move producing it.
type Transition struct {
	Move  Move   `json:"move"`
	State State  `json:"state"`
	Label string `json:"label"`
}

// Step is one entry of a Path. The first step holds the start state and a zero move.
type Step struct {
	State State  `json:"state"`
	Move  Move   `json:"move"`
	Label string `json:"label"`
}

// Path lists the states from the start (inclusive) to a goal.
type Path []Step

// Moves returns the number of crossings.
func (p Path) Moves() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Final returns the last state of the path.
func (p Path) Final() (State, bool) {
	if len(p) == 0 {
		return State{}, false
	}
	return p[len(p)-1].State, true
}

// States returns the states in order.
func (p Path) States() []State {
	out := make([]State, len(p))
	for i, st := range p {
		out[i] = st.State
	}
	return out
}

// Result is the tagged outcome of a search. Found is false when the
// reachable state space holds no goal; that is not an error.
type Result struct {
	Found bool `json:"found"`
	Path  Path `json:"path,omitempty"`
}

// Hint suggests the next crossing from a given state.
type Hint struct {
	Move      Move   `json:"move"`
	Label     string `json:"label"`
	Next      State  `json:"next"`
	Remaining int    `json:"remaining"`
}

// Conflict marks a path step that failed validation.
type Conflict struct {
	Step   int    `json:"step"`
	Reason string `json:"reason"`
}

// Puzzle is a practice start state within a variant.
type Puzzle struct {
	ID         string     `json:"id"`
	Variant    VariantID  `json:"variant"`
	Seed       int64      `json:"seed,omitempty"`
	Difficulty Difficulty `json:"difficulty"`
	Start      State      `json:"start"`
	Optimal    int        `json:"optimal"`
	CreatedAt  int64      `json:"createdAt,omitempty"`
}

// VariantMeta is a lightweight listing entry.
type VariantMeta struct {
	ID           VariantID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Missionaries int       `json:"missionaries"`
	Cannibals    int       `json:"cannibals"`
	Capacity     int       `json:"capacity"`
	Moves        []Move    `json:"moves"`
}
