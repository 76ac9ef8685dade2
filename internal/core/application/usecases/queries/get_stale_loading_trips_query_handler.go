package queries

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStaleLoadingTripsQueryHandler finds trips still in created or loading
// status past the staleness cutoff.
type GetStaleLoadingTripsQueryHandler struct {
	db *gorm.DB
}

// NewGetStaleLoadingTripsQueryHandler creates a handler for staleness queries.
func NewGetStaleLoadingTripsQueryHandler(db *gorm.DB) GetStaleLoadingTripsQueryHandler {
	return GetStaleLoadingTripsQueryHandler{db: db}
}

// Handle executes the staleness query.
func (h GetStaleLoadingTripsQueryHandler) Handle(
	ctx context.Context,
	query GetStaleLoadingTripsQuery,
) ([]GetStaleLoadingTripsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-query.olderThan)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, ogpl_number, org_id, transit_date, created_at
		FROM trips
		WHERE status IN (?, ?) AND created_at < ?
		ORDER BY created_at
	`, int(trip.Created), int(trip.Loading), cutoff).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := make([]GetStaleLoadingTripsQueryResponse, 0)

	for rows.Next() {
		var (
			row   GetStaleLoadingTripsQueryResponse
			id    uuid.UUID
			orgID uuid.UUID
		)

		if err = rows.Scan(&id, &row.OGPLNumber, &orgID, &row.TransitDate, &row.CreatedAt); err != nil {
			return nil, err
		}

		tripID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		org, idErr := kernel.UUIDFromBytes(orgID[:])
		if idErr != nil {
			return nil, idErr
		}

		row.ID = tripID
		row.OrgID = org
		trips = append(trips, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return trips, nil
}
