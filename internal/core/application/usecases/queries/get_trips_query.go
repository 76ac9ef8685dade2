// Package queries contains read operations over workflow state. Queries read
// the database directly with raw SQL and return flat read models; they never
// load aggregates or hold locks.
package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetTripsQueryIsNotConstructed = errors.New(
	"GetTripsQuery must be created via NewGetTripsQuery constructor",
)

// GetTripsQuery lists an organization's trips with per-trip load statistics.
// Status, vehicle, and transit date range filters are optional.
type GetTripsQuery struct {
	orgID     kernel.UUID
	status    *trip.Status
	vehicleID *kernel.UUID
	dateFrom  *time.Time
	dateTo    *time.Time

	guard guard.ConstructorGuard
}

// NewGetTripsQuery creates a trip listing query scoped to one organization.
// Nil filters match everything.
func NewGetTripsQuery(
	orgID kernel.UUID,
	status *trip.Status,
	vehicleID *kernel.UUID,
	dateFrom *time.Time,
	dateTo *time.Time,
) (GetTripsQuery, error) {
	if err := orgID.Validate(); err != nil {
		return GetTripsQuery{}, err
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetTripsQuery{}, err
		}
	}
	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return GetTripsQuery{}, err
		}
	}

	return GetTripsQuery{
		orgID:     orgID,
		status:    status,
		vehicleID: vehicleID,
		dateFrom:  dateFrom,
		dateTo:    dateTo,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTripsQuery) Validate() error {
	return q.guard.Validate(ErrGetTripsQueryIsNotConstructed)
}

// GetTripsQueryResponse is one trip row in the listing read model.
type GetTripsQueryResponse struct {
	ID             kernel.UUID
	OGPLNumber     string
	VehicleID      kernel.UUID
	Registration   string
	FromStation    string
	ToStation      string
	TransitDate    time.Time
	Status         string
	BookingCount   int
	ArticleCount   int
	LoadedWeightKg decimal.Decimal
}
