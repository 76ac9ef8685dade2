// Package ports defines the typed repository and unit-of-work contracts
// between the workflow core and infrastructure. Only these interfaces may
// touch booking, article, and trip state; ad hoc queries against status or
// trip-link fields are not part of the contract.
package ports

import (
	"context"

	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// BookingRepository defines the persistence contract for booking aggregates.
// Every read returns the complete aggregate with its articles.
type BookingRepository interface {
	// Add persists a new booking aggregate with its articles.
	Add(ctx context.Context, aggregate *booking.Booking) error

	// Update persists changes to an existing booking aggregate, including
	// article status and trip-link fields.
	Update(ctx context.Context, aggregate *booking.Booking) error

	// Get retrieves a booking aggregate by id.
	Get(ctx context.Context, id kernel.UUID) (*booking.Booking, error)

	// GetBatch retrieves the named bookings with their articles in one read.
	// Missing ids are simply absent from the result; the caller decides
	// whether absence is an error.
	GetBatch(ctx context.Context, ids []kernel.UUID) ([]*booking.Booking, error)

	// GetByArticleIDs retrieves the bookings owning the named articles.
	GetByArticleIDs(ctx context.Context, articleIDs []kernel.UUID) ([]*booking.Booking, error)

	// LoadedWeightKgForTrip sums the weight of every article currently
	// loaded on the given trip.
	LoadedWeightKgForTrip(ctx context.Context, tripID kernel.UUID) (decimal.Decimal, error)
}
