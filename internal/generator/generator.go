package generator

import "svw.info/rivercrossing/internal/ports"

// PracticeGenerator picks practice start states inside a variant and uses the
// provided Solver to confirm each one's optimal length.
type PracticeGenerator struct {
	Solver ports.Solver
}

// NewPracticeGenerator wires a generator that confirms puzzles with the given solver.
func NewPracticeGenerator(s ports.Solver) *PracticeGenerator {
	return &PracticeGenerator{Solver: s}
}
