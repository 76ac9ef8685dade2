// Package eventrepo persists the append-only audit log. Events are inserted
// inside the same transaction as the state change they record, so the log
// never shows an action whose state change rolled back.
package eventrepo

import (
	"context"
	"time"

	"freight/internal/adapters/out/postgres/pgerr"
	"freight/internal/core/domain/model/logevent"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventDTO represents the database structure for audit records.
type EventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrgID      uuid.UUID `gorm:"type:uuid;index"`
	EntityType string    `gorm:"index:idx_events_entity"`
	EntityID   uuid.UUID `gorm:"type:uuid;index:idx_events_entity"`
	EventType  string
	Detail     string
	ActorID    uuid.UUID `gorm:"type:uuid"`
	OccurredAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for audit records.
func (EventDTO) TableName() string {
	return "events"
}

// GormEventRepository implements EventRepository using GORM.
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GORM event repository.
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// Add appends one audit record.
func (r *GormEventRepository) Add(ctx context.Context, event *logevent.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := EventDTO{
		ID:         event.ID().Bytes(),
		OrgID:      event.OrgID().Bytes(),
		EntityType: string(event.EntityType()),
		EntityID:   event.EntityID().Bytes(),
		EventType:  string(event.EventType()),
		Detail:     event.Detail(),
		ActorID:    event.ActorID().Bytes(),
		OccurredAt: event.OccurredAt(),
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err)
	}
	return nil
}
