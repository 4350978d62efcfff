package solver

import (
	"context"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"svw.info/rivercrossing/internal/domain"
	"svw.info/rivercrossing/internal/ports"
	"svw.info/rivercrossing/internal/successor"
)

// BFSSolver finds a path with the fewest crossings.
type BFSSolver struct{}

func NewBFSSolver() *BFSSolver { return &BFSSolver{} }

type bfsNode struct {
	step   domain.Step
	parent *bfsNode
}

func (n *bfsNode) path() domain.Path {
	var p domain.Path
	for ; n != nil; n = n.parent {
		p = append(p, n.step)
	}
	slices.Reverse(p)
	return p
}

// Solve runs a breadth-first search from start. States are marked visited
// when enqueued, so each is queued at most once; the first goal dequeued is
// at minimum depth.
func (s *BFSSolver) Solve(ctx context.Context, rs *domain.RuleSet, start domain.State) (domain.Result, ports.Stats, error) {
	begin := time.Now()
	ctx, span := tracer.Start(ctx, "solver.BFS", trace.WithAttributes(
		attribute.String("variant", string(rs.ID())),
		attribute.String("start", start.String()),
	))
	defer span.End()

	start, err := bindStart(rs, start)
	if err != nil {
		span.RecordError(err)
		return domain.Result{}, ports.Stats{}, err
	}

	visited := map[domain.Key]struct{}{start.Key(): {}}
	queue := []*bfsNode{{step: startStep(start)}}
	nodes := 0

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			st := ports.Stats{Nodes: nodes, Duration: time.Since(begin)}
			recordAbort(ctx, span, "bfs", string(rs.ID()), st, err)
			return domain.Result{}, st, err
		}
		cur := queue[0]
		queue = queue[1:]
		nodes++

		if cur.step.State.IsGoal() {
			p := cur.path()
			st := ports.Stats{Nodes: nodes, Duration: time.Since(begin)}
			span.SetAttributes(attribute.Int("nodes", nodes), attribute.Int("crossings", p.Moves()))
			recordSearch(ctx, "bfs", string(rs.ID()), st.Duration, nodes, p.Moves(), outcomeFound)
			return domain.Result{Found: true, Path: p}, st, nil
		}

		for _, tr := range successor.Generate(rs, cur.step.State) {
			mustBeLegal(rs, tr)
			k := tr.State.Key()
			if _, seen := visited[k]; seen {
				continue
			}
			visited[k] = struct{}{}
			queue = append(queue, &bfsNode{step: stepOf(tr), parent: cur})
		}
	}

	st := ports.Stats{Nodes: nodes, Duration: time.Since(begin)}
	span.SetAttributes(attribute.Int("nodes", nodes), attribute.Bool("found", false))
	recordSearch(ctx, "bfs", string(rs.ID()), st.Duration, nodes, 0, outcomeNotFound)
	return domain.Result{}, st, nil
}
