package bookingrepo

import (
	"context"
	"errors"

	"freight/internal/adapters/out/postgres/pgerr"
	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormBookingRepository implements BookingRepository using GORM.
type GormBookingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormBookingRepository creates a new GORM booking repository.
func NewGormBookingRepository(db *gorm.DB, tracker aggregateTracker) *GormBookingRepository {
	return &GormBookingRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new booking with its articles to the database.
func (r *GormBookingRepository) Add(ctx context.Context, aggregate *booking.Booking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing booking to the database, articles included.
func (r *GormBookingRepository) Update(ctx context.Context, aggregate *booking.Booking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	// Use Session with FullSaveAssociations to properly update nested associations
	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return pgerr.Translate(result.Error)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a booking by ID with its articles.
func (r *GormBookingRepository) Get(ctx context.Context, id kernel.UUID) (*booking.Booking, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BookingDTO
	if err := r.db.WithContext(ctx).Preload("Articles").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("booking", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetBatch retrieves the named bookings with their articles in one read.
// Missing ids are absent from the result.
func (r *GormBookingRepository) GetBatch(ctx context.Context, ids []kernel.UUID) ([]*booking.Booking, error) {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []BookingDTO
	if err := r.db.WithContext(ctx).Preload("Articles").Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	return r.toDomainSlice(dtos)
}

// GetByArticleIDs retrieves the bookings owning the named articles.
func (r *GormBookingRepository) GetByArticleIDs(ctx context.Context, articleIDs []kernel.UUID) ([]*booking.Booking, error) {
	raw := make([]uuid.UUID, 0, len(articleIDs))
	for _, id := range articleIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []BookingDTO
	err := r.db.WithContext(ctx).
		Preload("Articles").
		Find(&dtos, "id IN (?)", r.db.Model(&ArticleDTO{}).Select("booking_id").Where("id IN ?", raw)).
		Error
	if err != nil {
		return nil, err
	}

	return r.toDomainSlice(dtos)
}

// LoadedWeightKgForTrip sums the weight of every article currently loaded on
// the given trip.
func (r *GormBookingRepository) LoadedWeightKgForTrip(ctx context.Context, tripID kernel.UUID) (decimal.Decimal, error) {
	if err := tripID.Validate(); err != nil {
		return decimal.Decimal{}, err
	}

	var weight decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&ArticleDTO{}).
		Select("COALESCE(SUM(weight_kg), 0)").
		Where("ogpl_id = ? AND status = ?", tripID.Bytes(), int(booking.ArticleLoaded)).
		Scan(&weight).
		Error
	if err != nil {
		return decimal.Decimal{}, err
	}

	return weight, nil
}

func (r *GormBookingRepository) toDomainSlice(dtos []BookingDTO) ([]*booking.Booking, error) {
	bookings := make([]*booking.Booking, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}
