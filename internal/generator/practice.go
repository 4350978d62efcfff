package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"svw.info/rivercrossing/internal/domain"
	"svw.info/rivercrossing/internal/ports"
	"svw.info/rivercrossing/internal/statespace"
)

var errNoPractice = errors.New("no practice states reachable")

// band returns the inclusive range of optimal crossings for a difficulty.
func band(d domain.Difficulty) (lo, hi int) {
	switch d {
	case domain.Easy:
		return 1, 3
	case domain.Medium:
		return 4, 6
	case domain.Hard:
		return 7, 9
	default:
		return 10, 1 << 30 // Expert
	}
}

// Generate picks a reachable state whose optimal distance to the goal falls
// in the difficulty band. Variants too small for the band fall back to the
// states nearest to it. The same seed always yields the same start state.
func (g *PracticeGenerator) Generate(ctx context.Context, rs *domain.RuleSet, seed int64, diff domain.Difficulty) (*domain.Puzzle, ports.Stats, error) {
	start := time.Now()
	rng := rand.New(rand.NewSource(seed))

	// moves are reversible, so depth from the goal is distance to the goal
	space, err := statespace.Explore(ctx, rs, rs.Goal())
	if err != nil {
		return nil, ports.Stats{}, err
	}
	candidates := pick(space, diff)
	if len(candidates) == 0 {
		return nil, ports.Stats{Duration: time.Since(start)}, fmt.Errorf("%w in %s", errNoPractice, rs.ID())
	}
	chosen := candidates[rng.Intn(len(candidates))]

	res, st, err := g.Solver.Solve(ctx, rs, chosen)
	if err != nil {
		return nil, ports.Stats{Nodes: st.Nodes, Duration: time.Since(start)}, err
	}
	if !res.Found {
		return nil, ports.Stats{Nodes: st.Nodes, Duration: time.Since(start)}, fmt.Errorf("%w: %s has no path to the goal", errNoPractice, chosen)
	}

	p := &domain.Puzzle{
		ID:         uuid.NewString(),
		Variant:    rs.ID(),
		Seed:       seed,
		Difficulty: diff,
		Start:      chosen,
		Optimal:    res.Path.Moves(),
		CreatedAt:  time.Now().UnixNano(),
	}
	return p, ports.Stats{Nodes: len(space.States) + st.Nodes, Duration: time.Since(start)}, nil
}

// pick returns the states in the difficulty band, or those closest to it.
func pick(space *statespace.Graph, diff domain.Difficulty) []domain.State {
	lo, hi := band(diff)
	var in []domain.State
	for _, s := range space.States {
		if d := space.DepthOf(s); d >= lo && d <= hi {
			in = append(in, s)
		}
	}
	if len(in) > 0 {
		return in
	}

	bestGap := -1
	var near []domain.State
	for _, s := range space.States {
		d := space.DepthOf(s)
		if d == 0 {
			continue
		}
		gap := lo - d
		if d > hi {
			gap = d - hi
		}
		switch {
		case bestGap < 0 || gap < bestGap:
			bestGap = gap
			near = []domain.State{s}
		case gap == bestGap:
			near = append(near, s)
		}
	}
	return near
}
