package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"
)

// TripRepository defines the persistence contract for trip aggregates.
type TripRepository interface {
	// Add persists a new trip. A unique-constraint violation on the active
	// vehicle index is translated to a duplicate error, which callers map to
	// the vehicle-already-assigned conflict.
	Add(ctx context.Context, aggregate *trip.Trip) error

	// Update persists changes to an existing trip.
	Update(ctx context.Context, aggregate *trip.Trip) error

	// Get retrieves a trip by id.
	Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error)

	// GetForUpdate retrieves a trip by id holding a row lock for the rest of
	// the surrounding transaction. Load and unload take this lock so the
	// capacity check and the article mutations are serialized per trip.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*trip.Trip, error)

	// GetActiveByVehicle retrieves the trip currently occupying the vehicle
	// (status created, loading, or in_transit), or a not-found error.
	GetActiveByVehicle(ctx context.Context, vehicleID kernel.UUID) (*trip.Trip, error)
}
