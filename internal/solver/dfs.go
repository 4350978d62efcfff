package solver

import (
	"context"
	"maps"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"svw.info/rivercrossing/internal/domain"
	"svw.info/rivercrossing/internal/ports"
	"svw.info/rivercrossing/internal/successor"
)

// DFSSolver returns the first path found depth-first, trying successors in
// generator order. The visited set is per branch: each call works on its own
// copy extended with the current state, so sibling branches re-explore
// shared sub-states. That keeps a single path loop-free but is exponential
// in the worst case.
type DFSSolver struct{}

func NewDFSSolver() *DFSSolver { return &DFSSolver{} }

type dfsWalker struct {
	ctx   context.Context
	rs    *domain.RuleSet
	nodes int
}

func (s *DFSSolver) Solve(ctx context.Context, rs *domain.RuleSet, start domain.State) (domain.Result, ports.Stats, error) {
	begin := time.Now()
	ctx, span := tracer.Start(ctx, "solver.DFS", trace.WithAttributes(
		attribute.String("variant", string(rs.ID())),
		attribute.String("start", start.String()),
	))
	defer span.End()

	start, err := bindStart(rs, start)
	if err != nil {
		span.RecordError(err)
		return domain.Result{}, ports.Stats{}, err
	}

	w := &dfsWalker{ctx: ctx, rs: rs}
	p, err := w.visit(startStep(start), map[domain.Key]struct{}{}, nil)
	st := ports.Stats{Nodes: w.nodes, Duration: time.Since(begin)}
	if err != nil {
		recordAbort(ctx, span, "dfs", string(rs.ID()), st, err)
		return domain.Result{}, st, err
	}
	span.SetAttributes(attribute.Int("nodes", w.nodes), attribute.Bool("found", p != nil))
	if p == nil {
		recordSearch(ctx, "dfs", string(rs.ID()), st.Duration, w.nodes, 0, outcomeNotFound)
		return domain.Result{}, st, nil
	}
	recordSearch(ctx, "dfs", string(rs.ID()), st.Duration, w.nodes, p.Moves(), outcomeFound)
	return domain.Result{Found: true, Path: p}, st, nil
}

// visit returns the path to a goal through step, or nil when this branch fails.
func (w *dfsWalker) visit(step domain.Step, visited map[domain.Key]struct{}, path domain.Path) (domain.Path, error) {
	if err := w.ctx.Err(); err != nil {
		return nil, err
	}
	k := step.State.Key()
	if _, seen := visited[k]; seen {
		return nil, nil
	}
	w.nodes++

	branch := make(map[domain.Key]struct{}, len(visited)+1)
	maps.Copy(branch, visited)
	branch[k] = struct{}{}
	// full slice expression so siblings never share a backing array
	path = append(path[:len(path):len(path)], step)

	if step.State.IsGoal() {
		return path, nil
	}
	for _, tr := range successor.Generate(w.rs, step.State) {
		mustBeLegal(w.rs, tr)
		found, err := w.visit(stepOf(tr), branch, path)
		if err != nil || found != nil {
			return found, err
		}
	}
	return nil, nil
}
