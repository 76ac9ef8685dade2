// Package bookingrepo provides data transfer objects and mapping functions
// for booking persistence. The booking aggregate persists as one bookings row
// plus one articles row per line item; reads always bring the articles along
// so the aggregate is never partially loaded.
package bookingrepo

import (
	"time"

	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingDTO represents the database structure for persisting booking
// aggregates.
type BookingDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	LRNumber        string          `gorm:"column:lr_number;uniqueIndex"`
	OrgID           uuid.UUID       `gorm:"type:uuid;index"`
	FromBranchID    uuid.UUID       `gorm:"type:uuid;index"`
	ToBranchID      uuid.UUID       `gorm:"type:uuid"`
	Status          int             `gorm:"index"`
	SenderRef       string          `gorm:"column:sender_ref"`
	Receiver        string
	TotalAmount     decimal.Decimal `gorm:"type:numeric(14,2)"`
	CreatedAt       time.Time
	StatusUpdatedAt *time.Time
	StatusUpdatedBy *uuid.UUID      `gorm:"type:uuid"`

	Articles []ArticleDTO `gorm:"foreignKey:BookingID"`
}

// TableName specifies the database table name for booking entities.
func (BookingDTO) TableName() string {
	return "bookings"
}

// ArticleDTO represents the database structure for persisting booking line
// items. The ogpl_id column links a loaded article to its trip.
type ArticleDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BookingID   uuid.UUID       `gorm:"type:uuid;index"`
	ArticleType string
	Quantity    int
	WeightKg    decimal.Decimal `gorm:"column:weight_kg;type:numeric(12,3)"`
	Status      int             `gorm:"index"`
	OGPLID      *uuid.UUID      `gorm:"column:ogpl_id;type:uuid;index"`
	LoadedAt    *time.Time
	LoadedBy    *uuid.UUID      `gorm:"type:uuid"`
}

// TableName specifies the database table name for article entities.
func (ArticleDTO) TableName() string {
	return "articles"
}

// fromDomain converts a booking domain aggregate to its database
// representation, articles included.
func fromDomain(aggregate *booking.Booking) BookingDTO {
	var statusUpdatedBy *uuid.UUID
	if id := aggregate.StatusUpdatedBy(); id != nil {
		raw := id.Bytes()
		statusUpdatedBy = &raw
	}

	dto := BookingDTO{
		ID:              aggregate.ID().Bytes(),
		LRNumber:        aggregate.LRNumber(),
		OrgID:           aggregate.OrgID().Bytes(),
		FromBranchID:    aggregate.FromBranch().Bytes(),
		ToBranchID:      aggregate.ToBranch().Bytes(),
		Status:          int(aggregate.Status()),
		SenderRef:       aggregate.SenderRef(),
		Receiver:        aggregate.Receiver(),
		TotalAmount:     aggregate.TotalAmount(),
		CreatedAt:       aggregate.CreatedAt(),
		StatusUpdatedAt: aggregate.StatusUpdatedAt(),
		StatusUpdatedBy: statusUpdatedBy,
	}

	for _, article := range aggregate.Articles() {
		dto.Articles = append(dto.Articles, articleFromDomain(article))
	}

	return dto
}

func articleFromDomain(article *booking.Article) ArticleDTO {
	var ogplID *uuid.UUID
	if id := article.OGPLID(); id != nil {
		raw := id.Bytes()
		ogplID = &raw
	}

	var loadedBy *uuid.UUID
	if id := article.LoadedBy(); id != nil {
		raw := id.Bytes()
		loadedBy = &raw
	}

	return ArticleDTO{
		ID:          article.ID().Bytes(),
		BookingID:   article.BookingID().Bytes(),
		ArticleType: article.ArticleType(),
		Quantity:    article.Quantity(),
		WeightKg:    article.WeightKg(),
		Status:      int(article.Status()),
		OGPLID:      ogplID,
		LoadedAt:    article.LoadedAt(),
		LoadedBy:    loadedBy,
	}
}

// toDomain converts a database DTO to a booking domain aggregate.
// Reconstructs the complete aggregate including articles using RestoreBooking.
func toDomain(dto BookingDTO) (*booking.Booking, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orgID, err := kernel.UUIDFromBytes(dto.OrgID[:])
	if err != nil {
		return nil, err
	}
	fromBranch, err := kernel.UUIDFromBytes(dto.FromBranchID[:])
	if err != nil {
		return nil, err
	}
	toBranch, err := kernel.UUIDFromBytes(dto.ToBranchID[:])
	if err != nil {
		return nil, err
	}

	statusUpdatedBy, err := optionalUUID(dto.StatusUpdatedBy)
	if err != nil {
		return nil, err
	}

	articles := make([]*booking.Article, 0, len(dto.Articles))
	for _, articleDTO := range dto.Articles {
		article, articleErr := articleToDomain(articleDTO)
		if articleErr != nil {
			return nil, articleErr
		}
		articles = append(articles, article)
	}

	return booking.RestoreBooking(
		id,
		dto.LRNumber,
		orgID,
		fromBranch,
		toBranch,
		booking.Status(dto.Status),
		dto.SenderRef,
		dto.Receiver,
		dto.TotalAmount,
		dto.CreatedAt,
		dto.StatusUpdatedAt,
		statusUpdatedBy,
		articles,
	)
}

func articleToDomain(dto ArticleDTO) (*booking.Article, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	bookingID, err := kernel.UUIDFromBytes(dto.BookingID[:])
	if err != nil {
		return nil, err
	}

	ogplID, err := optionalUUID(dto.OGPLID)
	if err != nil {
		return nil, err
	}
	loadedBy, err := optionalUUID(dto.LoadedBy)
	if err != nil {
		return nil, err
	}

	return booking.RestoreArticle(
		id,
		bookingID,
		dto.ArticleType,
		dto.Quantity,
		dto.WeightKg,
		booking.ArticleStatus(dto.Status),
		ogplID,
		dto.LoadedAt,
		loadedBy,
	)
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
