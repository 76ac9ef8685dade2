package commands

import (
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
)

// BatchValidationError carries every violation found while validating a load
// or unload batch. Batch operations accumulate violations instead of failing
// fast so the caller can correct all issues in one round-trip.
type BatchValidationError struct {
	Violations []string
}

// NewBatchValidationError wraps the accumulated violations.
func NewBatchValidationError(violations []string) *BatchValidationError {
	return &BatchValidationError{Violations: violations}
}

func (e *BatchValidationError) Error() string {
	return fmt.Sprintf("batch validation failed: %s", strings.Join(e.Violations, "; "))
}

func (e *BatchValidationError) Unwrap() error {
	return errs.ErrStateConflict
}
