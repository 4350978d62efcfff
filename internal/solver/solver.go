// Package solver implements the uninformed searches over a rule set's state graph.
package solver

import (
	"fmt"

	"svw.info/rivercrossing/internal/domain"
	"svw.info/rivercrossing/internal/ports"
)

// New returns the search engine for a strategy.
func New(s domain.Strategy) (ports.Solver, error) {
	switch s {
	case domain.StrategyBFS:
		return NewBFSSolver(), nil
	case domain.StrategyDFS:
		return NewDFSSolver(), nil
	default:
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownStrategy, int(s))
	}
}

// bindStart attaches the rule set totals to start and rejects unsafe starts.
func bindStart(rs *domain.RuleSet, start domain.State) (domain.State, error) {
	s, err := rs.Bind(start)
	if err != nil {
		return domain.State{}, err
	}
	if err := rs.Check(s); err != nil {
		return domain.State{}, fmt.Errorf("%w: %v", domain.ErrInvalidState, err)
	}
	return s, nil
}

// mustBeLegal panics if the successor generator broke its contract.
func mustBeLegal(rs *domain.RuleSet, tr domain.Transition) {
	if !rs.IsLegal(tr.State) {
		panic(domain.IllegalStateError{State: tr.State, Move: tr.Move})
	}
}

func stepOf(tr domain.Transition) domain.Step {
	return domain.Step{State: tr.State, Move: tr.Move, Label: tr.Label}
}

func startStep(s domain.State) domain.Step {
	return domain.Step{State: s, Label: "start"}
}
