package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrGetStaleLoadingTripsQueryIsNotConstructed = errors.New(
		"GetStaleLoadingTripsQuery must be created via NewGetStaleLoadingTripsQuery constructor",
	)
	// ErrOlderThanIsInvalid is returned for a non-positive staleness window.
	ErrOlderThanIsInvalid = errs.NewValueIsInvalidError("older-than duration must be positive")
)

// GetStaleLoadingTripsQuery finds trips that entered loading but never
// dispatched within the given window. Used by the watchdog job to surface
// manifests stuck at the dock.
type GetStaleLoadingTripsQuery struct {
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewGetStaleLoadingTripsQuery creates a staleness query.
func NewGetStaleLoadingTripsQuery(olderThan time.Duration) (GetStaleLoadingTripsQuery, error) {
	if olderThan <= 0 {
		return GetStaleLoadingTripsQuery{}, ErrOlderThanIsInvalid
	}
	return GetStaleLoadingTripsQuery{
		olderThan: olderThan,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStaleLoadingTripsQuery) Validate() error {
	return q.guard.Validate(ErrGetStaleLoadingTripsQueryIsNotConstructed)
}

// GetStaleLoadingTripsQueryResponse is one stuck trip.
type GetStaleLoadingTripsQueryResponse struct {
	ID          kernel.UUID
	OGPLNumber  string
	OrgID       kernel.UUID
	TransitDate time.Time
	CreatedAt   time.Time
}
