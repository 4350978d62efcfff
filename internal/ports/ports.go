package ports

import (
	"context"
	"time"

	"svw.info/rivercrossing/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int // states expanded
	Duration time.Duration
}

// Solver searches the state graph of a rule set from start to any goal.
// A search that exhausts the graph returns Result{Found: false} and a nil error.
type Solver interface {
	Solve(ctx context.Context, rs *domain.RuleSet, start domain.State) (domain.Result, Stats, error)
}

// Validator re-checks every step of a path against a rule set.
type Validator interface {
	Validate(ctx context.Context, rs *domain.RuleSet, p domain.Path) (ok bool, conflicts []domain.Conflict, err error)
}

// Hinter returns the next optimal crossing from a state.
type Hinter interface {
	Hint(ctx context.Context, rs *domain.RuleSet, s domain.State) (domain.Hint, bool, error)
}

// Generator creates practice start states within a variant.
type Generator interface {
	Generate(ctx context.Context, rs *domain.RuleSet, seed int64, difficulty domain.Difficulty) (*domain.Puzzle, Stats, error)
}

// Catalog resolves variant IDs to rule sets.
type Catalog interface {
	Load(ctx context.Context, id domain.VariantID) (*domain.RuleSet, error)
	List(ctx context.Context) ([]domain.VariantMeta, error)
}
