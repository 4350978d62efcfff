package cli

import (
	"log/slog"
	"os"

	"svw.info/rivercrossing/internal/config"
	"svw.info/rivercrossing/internal/domain"
	"svw.info/rivercrossing/internal/generator"
	"svw.info/rivercrossing/internal/hint"
	"svw.info/rivercrossing/internal/infrastructure/catalog"
	"svw.info/rivercrossing/internal/ports"
	"svw.info/rivercrossing/internal/solver"
	"svw.info/rivercrossing/internal/usecase"
	"svw.info/rivercrossing/internal/validator"
)

// newService wires providers into the use case facade.
func newService(cfg config.Config, logger *slog.Logger) *usecase.Service {
	var cat ports.Catalog = catalog.Builtin()
	if cfg.VariantDir != "" {
		cat = catalog.New(os.DirFS(cfg.VariantDir), ".")
	}
	bfs := solver.NewBFSSolver()
	solvers := map[domain.Strategy]ports.Solver{
		domain.StrategyBFS: bfs,
		domain.StrategyDFS: solver.NewDFSSolver(),
	}
	// hints and practice puzzles always use the optimal search
	return usecase.NewService(cat, solvers, validator.New(), hint.New(bfs), generator.NewPracticeGenerator(bfs), logger)
}
