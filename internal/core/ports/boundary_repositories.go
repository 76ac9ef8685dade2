package ports

import (
	"context"

	"freight/internal/core/domain/model/branch"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/logevent"
	"freight/internal/core/domain/model/vehicle"
)

// VehicleRepository reads vehicles owned by external CRUD.
// The workflow core never mutates vehicles.
type VehicleRepository interface {
	// Get retrieves a vehicle by id.
	Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error)
}

// BranchRepository reads branches owned by external CRUD.
type BranchRepository interface {
	// Get retrieves a branch by id.
	Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error)
}

// EventRepository appends audit records. The event log is append-only: there
// is deliberately no update or delete on this interface.
type EventRepository interface {
	// Add appends one audit record.
	Add(ctx context.Context, event *logevent.Event) error
}

// SequenceRepository anchors number generation. Reserve is the serialization
// point for all reservations sharing a prefix: the insert either claims the
// number or fails with a duplicate error.
type SequenceRepository interface {
	// Reserve atomically claims a rendered number. Returns a duplicate error
	// when the number is already taken.
	Reserve(ctx context.Context, prefix string, sequence int, number string) error

	// HighestSequence returns the highest reserved sequence for a prefix, or
	// zero when none exists. The result is only a hint for the next
	// candidate; Reserve remains the source of truth.
	HighestSequence(ctx context.Context, prefix string) (int, error)
}
