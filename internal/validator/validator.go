package validator

import (
	"context"
	"fmt"

	"svw.info/rivercrossing/internal/domain"
)

type PathValidator struct{}

func New() *PathValidator { return &PathValidator{} }

// Validate re-checks a path step by step: every state must be legal, every
// move allowed, each state must follow from the previous one by its move,
// and the last state must be the goal. All conflicts are reported.
func (v *PathValidator) Validate(ctx context.Context, rs *domain.RuleSet, p domain.Path) (bool, []domain.Conflict, error) {
	conf := make([]domain.Conflict, 0, 4)
	if len(p) == 0 {
		return false, append(conf, domain.Conflict{Step: 0, Reason: "empty path"}), nil
	}
	// prev is only set while the previous step was within bounds; a step
	// after an out-of-bounds one gets no transition check.
	var (
		prev    domain.State
		hasPrev bool
	)
	for i, step := range p {
		if err := ctx.Err(); err != nil {
			return false, conf, err
		}
		s, err := rs.Bind(step.State)
		if err != nil {
			conf = append(conf, domain.Conflict{Step: i, Reason: err.Error()})
			hasPrev = false
			continue
		}
		if err := rs.Check(s); err != nil {
			conf = append(conf, domain.Conflict{Step: i, Reason: err.Error()})
		}
		if hasPrev {
			if reason := transitionConflict(rs, prev, s, step.Move); reason != "" {
				conf = append(conf, domain.Conflict{Step: i, Reason: reason})
			}
		}
		prev, hasPrev = s, true
	}
	if last := p[len(p)-1].State; !last.IsGoal() {
		conf = append(conf, domain.Conflict{Step: len(p) - 1, Reason: fmt.Sprintf("path ends at %s, not the goal", last)})
	}
	return len(conf) == 0, conf, nil
}

func transitionConflict(rs *domain.RuleSet, from, to domain.State, m domain.Move) string {
	if !rs.Allows(m) {
		return fmt.Sprintf("load %s is not allowed", m)
	}
	if to.Boat == from.Boat {
		return "boat did not cross"
	}
	dm, dc := from.LeftMissionaries-to.LeftMissionaries, from.LeftCannibals-to.LeftCannibals
	if from.Boat == domain.Right {
		dm, dc = -dm, -dc
	}
	if dm != m.Missionaries || dc != m.Cannibals {
		return fmt.Sprintf("%s does not follow from %s by load %s", to, from, m)
	}
	return ""
}
