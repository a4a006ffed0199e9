// Package apperr defines the typed error taxonomy shared by the services.
// Handlers map these to HTTP statuses with errors.Is / errors.As instead of
// re-deriving cause from message strings.
package apperr

import (
	"errors"
	"fmt"
)

// ErrTransactionFailure marks an atomic unit that could not complete.
// All partial writes were rolled back; the caller may retry.
var ErrTransactionFailure = errors.New("transaction failed")

// ValidationError reports malformed, missing or out-of-range input.
// Nothing was mutated when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports a missing Loan/Customer/Item/record.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
}

// InvalidStateError reports an operation against an entity in the wrong
// lifecycle state, e.g. repaying an already-settled loan.
type InvalidStateError struct {
	Entity string
	Key    string
	State  string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s %q is in state %q", e.Entity, e.Key, e.State)
}

// PaymentMismatchError reports a settlement whose paid total does not
// exactly equal the computed due amount.
type PaymentMismatchError struct {
	Required int64
	Provided int64
}

// Difference is signed: negative means shortage, positive means excess.
func (e *PaymentMismatchError) Difference() int64 {
	return e.Provided - e.Required
}

func (e *PaymentMismatchError) Error() string {
	if d := e.Difference(); d < 0 {
		return fmt.Sprintf("payment short by %d (required %d, provided %d)", -d, e.Required, e.Provided)
	}
	return fmt.Sprintf("payment exceeds due by %d (required %d, provided %d)", e.Difference(), e.Required, e.Provided)
}

// DuplicateKeyError reports a uniqueness violation (phone, loan code,
// item code). Loan-code collisions are retried before this surfaces.
type DuplicateKeyError struct {
	Field string
	Value string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate %s: %q already exists", e.Field, e.Value)
}
