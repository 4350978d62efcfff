// Package statespace enumerates the reachable legal states of a rule set.
package statespace

import (
	"context"
	"fmt"

	"svw.info/rivercrossing/internal/domain"
	"svw.info/rivercrossing/internal/successor"
)

// Edge is one crossing between two reachable states.
type Edge struct {
	From domain.Key  `json:"from"`
	To   domain.Key  `json:"to"`
	Move domain.Move `json:"move"`
}

// Graph is the reachable part of the state graph seen from an origin.
type Graph struct {
	Origin domain.State       `json:"origin"`
	States []domain.State     `json:"states"` // breadth-first discovery order
	Depth  map[domain.Key]int `json:"-"`
	Edges  []Edge             `json:"edges"`
	byKey  map[domain.Key]int
}

// Explore walks every legal state reachable from origin.
func Explore(ctx context.Context, rs *domain.RuleSet, origin domain.State) (*Graph, error) {
	origin, err := rs.Bind(origin)
	if err != nil {
		return nil, err
	}
	if err := rs.Check(origin); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidState, err)
	}

	g := &Graph{
		Origin: origin,
		Depth:  map[domain.Key]int{origin.Key(): 0},
		byKey:  map[domain.Key]int{origin.Key(): 0},
		States: []domain.State{origin},
	}
	for i := 0; i < len(g.States); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cur := g.States[i]
		for _, tr := range successor.Generate(rs, cur) {
			k := tr.State.Key()
			g.Edges = append(g.Edges, Edge{From: cur.Key(), To: k, Move: tr.Move})
			if _, seen := g.byKey[k]; seen {
				continue
			}
			g.byKey[k] = len(g.States)
			g.Depth[k] = g.Depth[cur.Key()] + 1
			g.States = append(g.States, tr.State)
		}
	}
	return g, nil
}

// Contains reports whether s is reachable from the origin.
func (g *Graph) Contains(s domain.State) bool {
	_, ok := g.byKey[s.Key()]
	return ok
}

// DepthOf returns the crossings from the origin to s, or -1 if unreachable.
func (g *Graph) DepthOf(s domain.State) int {
	if d, ok := g.Depth[s.Key()]; ok {
		return d
	}
	return -1
}

// Eccentricity is the greatest depth in the graph.
func (g *Graph) Eccentricity() int {
	max := 0
	for _, d := range g.Depth {
		if d > max {
			max = d
		}
	}
	return max
}
