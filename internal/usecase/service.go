package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"svw.info/rivercrossing/internal/domain"
	"svw.info/rivercrossing/internal/ports"
	"svw.info/rivercrossing/internal/statespace"
	"svw.info/rivercrossing/internal/successor"
)

type Service struct {
	Catalog   ports.Catalog
	Solvers   map[domain.Strategy]ports.Solver
	Validator ports.Validator
	Hinter    ports.Hinter
	Generator ports.Generator
	Logger    *slog.Logger
}

func NewService(c ports.Catalog, solvers map[domain.Strategy]ports.Solver, v ports.Validator, h ports.Hinter, g ports.Generator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{Catalog: c, Solvers: solvers, Validator: v, Hinter: h, Generator: g, Logger: logger}
}

var errNotConfigured = errors.New("usecase dependency not configured")

func (u *Service) log() *slog.Logger {
	if u.Logger == nil {
		return slog.Default()
	}
	return u.Logger
}

func (u *Service) Variants(ctx context.Context) ([]domain.VariantMeta, error) {
	if u.Catalog == nil {
		return nil, errNotConfigured
	}
	return u.Catalog.List(ctx)
}

func (u *Service) RuleSet(ctx context.Context, id domain.VariantID) (*domain.RuleSet, error) {
	if u.Catalog == nil {
		return nil, errNotConfigured
	}
	return u.Catalog.Load(ctx, id)
}

func (u *Service) solver(s domain.Strategy) (ports.Solver, error) {
	if u.Solvers == nil {
		return nil, errNotConfigured
	}
	engine, ok := u.Solvers[s]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownStrategy, s)
	}
	return engine, nil
}

// FindPath solves a catalogued variant from its standard start.
func (u *Service) FindPath(ctx context.Context, variant domain.VariantID, strategy domain.Strategy) (domain.Result, ports.Stats, error) {
	return u.SolveFrom(ctx, variant, strategy, nil)
}

// SolveFrom solves from start, or from the variant's standard start when start is nil.
func (u *Service) SolveFrom(ctx context.Context, variant domain.VariantID, strategy domain.Strategy, start *domain.State) (domain.Result, ports.Stats, error) {
	rs, err := u.RuleSet(ctx, variant)
	if err != nil {
		return domain.Result{}, ports.Stats{}, err
	}
	engine, err := u.solver(strategy)
	if err != nil {
		return domain.Result{}, ports.Stats{}, err
	}
	from := rs.Start()
	if start != nil {
		from = *start
	}
	res, st, err := engine.Solve(ctx, rs, from)
	if err != nil {
		return domain.Result{}, st, err
	}
	u.log().Debug("search",
		"variant", variant,
		"strategy", strategy,
		"found", res.Found,
		"moves", res.Path.Moves(),
		"nodes", st.Nodes,
		"dur", st.Duration,
	)
	return res, st, nil
}

func (u *Service) Validate(ctx context.Context, variant domain.VariantID, p domain.Path) (bool, []domain.Conflict, error) {
	if u.Validator == nil {
		return false, nil, errNotConfigured
	}
	rs, err := u.RuleSet(ctx, variant)
	if err != nil {
		return false, nil, err
	}
	return u.Validator.Validate(ctx, rs, p)
}

func (u *Service) Hint(ctx context.Context, variant domain.VariantID, s domain.State) (domain.Hint, bool, error) {
	if u.Hinter == nil {
		return domain.Hint{}, false, errNotConfigured
	}
	rs, err := u.RuleSet(ctx, variant)
	if err != nil {
		return domain.Hint{}, false, err
	}
	return u.Hinter.Hint(ctx, rs, s)
}

// Move applies one crossing chosen by a player. Rejections wrap domain.ErrIllegalMove.
func (u *Service) Move(ctx context.Context, variant domain.VariantID, s domain.State, m domain.Move) (domain.Transition, error) {
	rs, err := u.RuleSet(ctx, variant)
	if err != nil {
		return domain.Transition{}, err
	}
	cur, err := rs.Bind(s)
	if err != nil {
		return domain.Transition{}, err
	}
	return successor.Apply(rs, cur, m)
}

func (u *Service) Generate(ctx context.Context, variant domain.VariantID, seed int64, d domain.Difficulty) (*domain.Puzzle, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	rs, err := u.RuleSet(ctx, variant)
	if err != nil {
		return nil, ports.Stats{}, err
	}
	return u.Generator.Generate(ctx, rs, seed, d)
}

// Graph explores every state reachable from the variant's start.
func (u *Service) Graph(ctx context.Context, variant domain.VariantID) (*statespace.Graph, error) {
	rs, err := u.RuleSet(ctx, variant)
	if err != nil {
		return nil, err
	}
	return statespace.Explore(ctx, rs, rs.Start())
}
