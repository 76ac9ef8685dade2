// Package sequencerepo anchors consignment number generation. Every rendered
// number is a row keyed by the number itself; inserting the row is the
// serialization point that makes a reservation atomic, so two concurrent
// generators computing the same candidate cannot both win.
package sequencerepo

import (
	"context"
	"time"

	"freight/internal/adapters/out/postgres/pgerr"

	"gorm.io/gorm"
)

// ReservedNumberDTO represents one claimed document number.
type ReservedNumberDTO struct {
	Number    string `gorm:"primaryKey"`
	Prefix    string `gorm:"index"`
	Sequence  int
	CreatedAt time.Time
}

// TableName specifies the database table name for reserved numbers.
func (ReservedNumberDTO) TableName() string {
	return "reserved_numbers"
}

// GormSequenceRepository implements SequenceRepository using GORM.
type GormSequenceRepository struct {
	db *gorm.DB
}

// NewGormSequenceRepository creates a new GORM sequence repository.
func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// Reserve atomically claims a rendered number. A unique violation on the
// primary key comes back as a duplicate error, which the generator treats as
// "taken, try the next candidate".
func (r *GormSequenceRepository) Reserve(ctx context.Context, prefix string, sequence int, number string) error {
	dto := ReservedNumberDTO{
		Number:    number,
		Prefix:    prefix,
		Sequence:  sequence,
		CreatedAt: time.Now(),
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err)
	}
	return nil
}

// HighestSequence returns the highest reserved sequence for a prefix, or zero
// when none exists.
func (r *GormSequenceRepository) HighestSequence(ctx context.Context, prefix string) (int, error) {
	var highest int
	err := r.db.WithContext(ctx).
		Model(&ReservedNumberDTO{}).
		Select("COALESCE(MAX(sequence), 0)").
		Where("prefix = ?", prefix).
		Scan(&highest).
		Error
	if err != nil {
		return 0, err
	}

	return highest, nil
}
