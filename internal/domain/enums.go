package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Side is a river bank. The boat is always on one of them.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// Opposite returns the other bank.
func (s Side) Opposite() Side {
	if s == Left {
		return Right
	}
	return Left
}

func (s Side) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Side) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		// accept the 0/1 encoding used by older clients
		var n int
		if nerr := json.Unmarshal(b, &n); nerr != nil {
			return err
		}
		if n != 0 && n != 1 {
			return fmt.Errorf("invalid side %d", n)
		}
		*s = Side(n)
		return nil
	}
	side, err := ParseSide(str)
	if err != nil {
		return err
	}
	*s = side
	return nil
}

// ParseSide accepts "left" or "right" in any case.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	default:
		return Left, fmt.Errorf("invalid side %q", s)
	}
}

// Kind distinguishes the two groups of travellers.
type Kind int

const (
	Missionary Kind = iota
	Cannibal
)

func (k Kind) String() string {
	if k == Cannibal {
		return "cannibal"
	}
	return "missionary"
}

// Strategy selects the uninformed search used to find a path.
type Strategy int

const (
	StrategyBFS Strategy = iota // shortest path in crossings
	StrategyDFS                 // first path found, per-branch visited set
)

func (s Strategy) String() string {
	if s == StrategyDFS {
		return "dfs"
	}
	return "bfs"
}

// ParseStrategy maps "bfs"/"dfs" (and their long names) to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bfs", "breadth", "breadth-first":
		return StrategyBFS, nil
	case "dfs", "depth", "depth-first":
		return StrategyDFS, nil
	default:
		return StrategyBFS, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// Difficulty labels practice puzzles by optimal distance to the goal.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Expert
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Hard:
		return "hard"
	case Expert:
		return "expert"
	default:
		return "medium"
	}
}

// ParseDifficulty defaults to Medium for unknown input, like the HTTP layer always has.
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy
	case "hard":
		return Hard
	case "expert":
		return Expert
	default:
		return Medium
	}
}

// VariantID names a catalogued rule set.
type VariantID string

const (
	VariantMissionaries VariantID = "missionaries" // 3 missionaries, 1 cannibal
	VariantClassic      VariantID = "classic"      // 3 missionaries, 3 cannibals
	VariantGeneralized  VariantID = "generalized"  // 3/3 with the alternate move order
)

func (s Strategy) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Strategy) UnmarshalText(b []byte) error {
	v, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (d Difficulty) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Difficulty) UnmarshalText(b []byte) error {
	*d = ParseDifficulty(string(b))
	return nil
}
