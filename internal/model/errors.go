package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrInsufficientStock = errors.New("insufficient stock remaining")
	ErrConflict          = errors.New("record modified concurrently")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// ValidationError reports malformed input before anything is persisted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// PartialCommitError is returned when the sale row was persisted but the
// stock decrement failed. The caller must not re-run the whole operation;
// it should reconcile the stock step alone using the embedded sale.
type PartialCommitError struct {
	Sale *Sale
	Err  error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("sale %s persisted but stock update failed: %v", e.Sale.ID, e.Err)
}

func (e *PartialCommitError) Unwrap() error {
	return e.Err
}
