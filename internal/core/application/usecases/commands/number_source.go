package commands

import (
	"context"

	"freight/internal/core/domain/model/kernel"
)

// NumberSource mints reserved document numbers for intake handlers.
// Implemented by numbering.Generator.
type NumberSource interface {
	NextBookingNumber(ctx context.Context, branchID kernel.UUID, isQuotation bool) (string, error)
	NextOGPLNumber(ctx context.Context, branchID kernel.UUID) (string, error)
}
