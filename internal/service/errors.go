package service

import (
	"errors"
	"fmt"
	"strings"
)

// Lifecycle error kinds. Each one is a stable sentinel: match with errors.Is
// and read the context with errors.As into *LifecycleError.
var (
	// ErrNotFound is returned when a project, message, payment request or
	// related record does not exist
	ErrNotFound = errors.New("NOT_FOUND")

	// ErrForbiddenRole is returned when the actor's role may not perform the operation
	ErrForbiddenRole = errors.New("FORBIDDEN_ROLE")

	// ErrForbiddenReversal is returned when a PM tries to move a project back
	ErrForbiddenReversal = errors.New("FORBIDDEN_REVERSAL")

	// ErrAlreadyTerminal is returned for operations on a cancelled or
	// completed project, or when the stage is already at its maximum
	ErrAlreadyTerminal = errors.New("ALREADY_TERMINAL")

	// ErrPendingExists is returned when issuing a payment request while one is pending
	ErrPendingExists = errors.New("PENDING_EXISTS")

	// ErrAmountOutOfRange is returned when a payment amount violates its bounds
	ErrAmountOutOfRange = errors.New("AMOUNT_OUT_OF_RANGE")

	// ErrAmountMismatch is returned when a confirmation amount differs from the ledger
	ErrAmountMismatch = errors.New("AMOUNT_MISMATCH")

	// ErrInvalidStateTransition is returned for any transition outside the defined rules
	ErrInvalidStateTransition = errors.New("INVALID_STATE_TRANSITION")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("INVALID_INPUT")

	// ErrConflict is returned when a concurrent writer changed the record first
	ErrConflict = errors.New("CONFLICT")
)

// LifecycleError carries an error kind plus enough context to render it.
type LifecycleError struct {
	kind   error
	Entity string
	ID     string
	Detail string
	// Current and Requested hold the values involved, e.g. stages or amounts.
	Current   any
	Requested any
}

func (e *LifecycleError) Error() string {
	var b strings.Builder
	b.WriteString(e.kind.Error())
	if e.Entity != "" {
		fmt.Fprintf(&b, ": %s", e.Entity)
		if e.ID != "" {
			fmt.Fprintf(&b, " %s", e.ID)
		}
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", e.Detail)
	}
	if e.Current != nil || e.Requested != nil {
		fmt.Fprintf(&b, " (current=%v, requested=%v)", e.Current, e.Requested)
	}
	return b.String()
}

func (e *LifecycleError) Unwrap() error {
	return e.kind
}

// Kind returns the stable error code, e.g. "PENDING_EXISTS".
func (e *LifecycleError) Kind() string {
	return e.kind.Error()
}

func newError(kind error, entity, id, detail string) *LifecycleError {
	return &LifecycleError{kind: kind, Entity: entity, ID: id, Detail: detail}
}

func (e *LifecycleError) values(current, requested any) *LifecycleError {
	e.Current = current
	e.Requested = requested
	return e
}

// KindOf returns the stable code of err, or "" when err is not a lifecycle error.
func KindOf(err error) string {
	var le *LifecycleError
	if errors.As(err, &le) {
		return le.Kind()
	}
	for _, k := range []error{
		ErrNotFound, ErrForbiddenRole, ErrForbiddenReversal, ErrAlreadyTerminal, ErrPendingExists,
		ErrAmountOutOfRange, ErrAmountMismatch, ErrInvalidStateTransition, ErrInvalidInput, ErrConflict,
	} {
		if errors.Is(err, k) {
			return k.Error()
		}
	}
	return ""
}
