package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetTripSummaryQueryHandler builds the loading summary for one trip: the
// manifest header, how much cargo sits on the vehicle, loading progress, and
// the capacity analysis against the vehicle's rating. Pending articles count
// the still-unloaded articles of bookings that already have something on this
// trip.
type GetTripSummaryQueryHandler struct {
	db       *gorm.DB
	capacity services.CapacityValidator
}

// NewGetTripSummaryQueryHandler creates a handler for trip summary queries.
func NewGetTripSummaryQueryHandler(db *gorm.DB, capacity services.CapacityValidator) GetTripSummaryQueryHandler {
	return GetTripSummaryQueryHandler{db: db, capacity: capacity}
}

// Handle executes the summary query.
func (h GetTripSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetTripSummaryQuery,
) (GetTripSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTripSummaryQueryResponse{}, err
	}

	response, capacityKg, err := h.header(ctx, query)
	if err != nil {
		return GetTripSummaryQueryResponse{}, err
	}

	if err = h.cargo(ctx, query.tripID, &response); err != nil {
		return GetTripSummaryQueryResponse{}, err
	}

	h.analyze(&response, capacityKg)
	return response, nil
}

// analyze derives the loading-progress percentage and, when the vehicle's
// capacity is known, the capacity analysis.
func (h GetTripSummaryQueryHandler) analyze(response *GetTripSummaryQueryResponse, capacityKg decimal.Decimal) {
	response.CapacityKg = capacityKg

	if total := response.LoadedArticles + response.PendingArticles; total > 0 {
		progress, _ := decimal.NewFromInt(int64(response.LoadedArticles)).
			Div(decimal.NewFromInt(int64(total))).
			Mul(decimal.NewFromInt(100)).
			Round(2).
			Float64()
		response.ProgressPercent = progress
	}

	if capacityKg.IsPositive() {
		check := h.capacity.Analyze(response.Registration, capacityKg, response.LoadedWeightKg)
		response.UtilizationPercent = check.UtilizationPercent
		response.OverCapacity = !check.Valid
		response.CapacityWarnings = check.Warnings
	}
}

func (h GetTripSummaryQueryHandler) header(
	ctx context.Context,
	query GetTripSummaryQuery,
) (GetTripSummaryQueryResponse, decimal.Decimal, error) {
	var (
		response   GetTripSummaryQueryResponse
		id         uuid.UUID
		status     int
		transit    time.Time
		capacityKg decimal.Decimal
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			t.id,
			t.ogpl_number,
			t.status,
			v.registration,
			v.capacity_kg,
			fs.name,
			ts.name,
			t.transit_date,
			t.driver_primary_name,
			t.driver_primary_mobile,
			t.seal_number
		FROM trips t
		JOIN vehicles v ON v.id = t.vehicle_id
		JOIN branches fs ON fs.id = t.from_station_id
		JOIN branches ts ON ts.id = t.to_station_id
		WHERE t.id = ? AND t.org_id = ?
	`, query.tripID.Bytes(), query.orgID.Bytes()).Row()

	err := row.Scan(
		&id,
		&response.OGPLNumber,
		&status,
		&response.Registration,
		&capacityKg,
		&response.FromStation,
		&response.ToStation,
		&transit,
		&response.DriverName,
		&response.DriverMobile,
		&response.SealNumber,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetTripSummaryQueryResponse{}, decimal.Decimal{},
				errs.NewObjectNotFoundError("trip", query.tripID.String())
		}
		return GetTripSummaryQueryResponse{}, decimal.Decimal{}, err
	}

	tripID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetTripSummaryQueryResponse{}, decimal.Decimal{}, err
	}

	response.ID = tripID
	response.Status = trip.Status(status).String()
	response.TransitDate = transit
	return response, capacityKg, nil
}

func (h GetTripSummaryQueryHandler) cargo(
	ctx context.Context,
	tripID kernel.UUID,
	response *GetTripSummaryQueryResponse,
) error {
	row := h.db.WithContext(ctx).Raw(`
		WITH linked AS (
			SELECT DISTINCT booking_id FROM articles WHERE ogpl_id = ?
		)
		SELECT
			(SELECT COUNT(*) FROM linked),
			COUNT(a.id) FILTER (WHERE a.ogpl_id = ?),
			COUNT(a.id) FILTER (WHERE a.ogpl_id IS NULL AND a.status = ?),
			COALESCE(SUM(a.weight_kg) FILTER (WHERE a.ogpl_id = ?), 0),
			COALESCE((SELECT SUM(b.total_amount) FROM bookings b WHERE b.id IN (SELECT booking_id FROM linked)), 0)
		FROM articles a
		WHERE a.booking_id IN (SELECT booking_id FROM linked)
	`, tripID.Bytes(), tripID.Bytes(), int(booking.ArticleBooked), tripID.Bytes()).Row()

	return row.Scan(
		&response.BookingCount,
		&response.LoadedArticles,
		&response.PendingArticles,
		&response.LoadedWeightKg,
		&response.TotalValue,
	)
}
