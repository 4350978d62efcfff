package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned when a rule set fails construction checks.
	ErrInvalidConfiguration = errors.New("invalid rule set configuration")

	// ErrUnknownVariant is returned by catalog lookups for an unregistered ID.
	ErrUnknownVariant = errors.New("unknown variant")

	// ErrUnknownStrategy is returned for a search strategy other than bfs or dfs.
	ErrUnknownStrategy = errors.New("unknown search strategy")

	// ErrInvalidState is returned when a caller supplies a state outside the
	// rule set bounds or one that violates the safety rule.
	ErrInvalidState = errors.New("invalid state")

	// ErrIllegalMove is returned when a manually chosen crossing cannot be made.
	ErrIllegalMove = errors.New("illegal move")
)

// IllegalStateError is the panic value raised when the successor generator
// emits a state the rule set rejects. It signals a defect, not bad input.
type IllegalStateError struct {
	State State
	Move  Move
}

func (e IllegalStateError) Error() string {
	return fmt.Sprintf("successor generator emitted illegal state %s via move %s", e.State, e.Move)
}
