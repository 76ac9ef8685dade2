package queries

import (
	"context"
	"time"

	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetTripsQueryHandler lists trips with load statistics. Uses direct SQL for
// read performance; loaded counts and weight come from a join against the
// loaded articles, so the listing reflects exactly what the batches committed.
type GetTripsQueryHandler struct {
	db *gorm.DB
}

// NewGetTripsQueryHandler creates a handler for trip listing queries.
func NewGetTripsQueryHandler(db *gorm.DB) GetTripsQueryHandler {
	return GetTripsQueryHandler{db: db}
}

// Handle executes the listing query. Rows are ordered by transit date, newest
// first, then by OGPL number.
func (h GetTripsQueryHandler) Handle(
	ctx context.Context,
	query GetTripsQuery,
) ([]GetTripsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			t.id,
			t.ogpl_number,
			t.vehicle_id,
			v.registration,
			fs.name,
			ts.name,
			t.transit_date,
			t.status,
			COUNT(DISTINCT a.booking_id),
			COUNT(a.id),
			COALESCE(SUM(a.weight_kg), 0)
		FROM trips t
		JOIN vehicles v ON v.id = t.vehicle_id
		JOIN branches fs ON fs.id = t.from_station_id
		JOIN branches ts ON ts.id = t.to_station_id
		LEFT JOIN articles a ON a.ogpl_id = t.id AND a.status = ?
		WHERE t.org_id = ?
	`
	args := []any{int(booking.ArticleLoaded), query.orgID.Bytes()}

	if query.status != nil {
		sql += " AND t.status = ?"
		args = append(args, int(*query.status))
	}
	if query.vehicleID != nil {
		sql += " AND t.vehicle_id = ?"
		args = append(args, query.vehicleID.Bytes())
	}
	if query.dateFrom != nil {
		sql += " AND t.transit_date >= ?"
		args = append(args, *query.dateFrom)
	}
	if query.dateTo != nil {
		sql += " AND t.transit_date <= ?"
		args = append(args, *query.dateTo)
	}

	sql += `
		GROUP BY t.id, t.ogpl_number, t.vehicle_id, v.registration,
			fs.name, ts.name, t.transit_date, t.status
		ORDER BY t.transit_date DESC, t.ogpl_number
	`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := make([]GetTripsQueryResponse, 0)

	for rows.Next() {
		var (
			row       GetTripsQueryResponse
			id        uuid.UUID
			vehicleID uuid.UUID
			status    int
			transit   time.Time
			weight    decimal.Decimal
		)

		err = rows.Scan(
			&id,
			&row.OGPLNumber,
			&vehicleID,
			&row.Registration,
			&row.FromStation,
			&row.ToStation,
			&transit,
			&status,
			&row.BookingCount,
			&row.ArticleCount,
			&weight,
		)
		if err != nil {
			return nil, err
		}

		tripID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		vehID, idErr := kernel.UUIDFromBytes(vehicleID[:])
		if idErr != nil {
			return nil, idErr
		}

		row.ID = tripID
		row.VehicleID = vehID
		row.TransitDate = transit
		row.Status = trip.Status(status).String()
		row.LoadedWeightKg = weight
		trips = append(trips, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return trips, nil
}
