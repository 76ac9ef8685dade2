package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetTripSummaryQueryIsNotConstructed = errors.New(
	"GetTripSummaryQuery must be created via NewGetTripSummaryQuery constructor",
)

// GetTripSummaryQuery retrieves the loading summary of one trip: cargo
// counts, weight against vehicle capacity, and the value being carried.
type GetTripSummaryQuery struct {
	orgID  kernel.UUID
	tripID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTripSummaryQuery creates a summary query for one trip.
func NewGetTripSummaryQuery(orgID, tripID kernel.UUID) (GetTripSummaryQuery, error) {
	if err := orgID.Validate(); err != nil {
		return GetTripSummaryQuery{}, err
	}
	if err := tripID.Validate(); err != nil {
		return GetTripSummaryQuery{}, err
	}

	return GetTripSummaryQuery{
		orgID:  orgID,
		tripID: tripID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTripSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetTripSummaryQueryIsNotConstructed)
}

// GetTripSummaryQueryResponse is the loading summary read model.
type GetTripSummaryQueryResponse struct {
	ID           kernel.UUID
	OGPLNumber   string
	Status       string
	Registration string
	FromStation  string
	ToStation    string
	TransitDate  time.Time
	DriverName   string
	DriverMobile string
	SealNumber   string

	BookingCount    int
	LoadedArticles  int
	PendingArticles int
	ProgressPercent float64

	LoadedWeightKg     decimal.Decimal
	CapacityKg         decimal.Decimal
	UtilizationPercent float64
	OverCapacity       bool
	CapacityWarnings   []string
	TotalValue         decimal.Decimal
}
