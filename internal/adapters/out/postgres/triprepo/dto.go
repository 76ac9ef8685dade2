// Package triprepo provides data transfer objects and mapping functions for
// trip persistence. A partial unique index on vehicle_id over active statuses
// enforces vehicle exclusivity at the database level, closing the race two
// concurrent trip creations can win past the application-level check.
package triprepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"

	"github.com/google/uuid"
)

// TripDTO represents the database structure for persisting trip aggregates.
type TripDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OGPLNumber string    `gorm:"column:ogpl_number;uniqueIndex"`
	OrgID      uuid.UUID `gorm:"type:uuid;index"`
	// Statuses 1, 2, 3 are created, loading, in_transit.
	VehicleID             uuid.UUID `gorm:"type:uuid;index:idx_trips_active_vehicle,unique,where:status IN (1,2,3)"`
	FromStationID         uuid.UUID `gorm:"type:uuid;index"`
	ToStationID           uuid.UUID `gorm:"type:uuid"`
	TransitDate           time.Time `gorm:"index"`
	Status                int       `gorm:"index"`
	DriverPrimaryName     string
	DriverPrimaryMobile   string
	DriverSecondaryName   string
	DriverSecondaryMobile string
	Remarks               string
	SealNumber            string
	CreatedAt             time.Time
}

// TableName specifies the database table name for trip entities.
func (TripDTO) TableName() string {
	return "trips"
}

// fromDomain converts a trip domain aggregate to its database representation.
func fromDomain(aggregate *trip.Trip) TripDTO {
	driver := aggregate.Driver()
	return TripDTO{
		ID:                    aggregate.ID().Bytes(),
		OGPLNumber:            aggregate.OGPLNumber(),
		OrgID:                 aggregate.OrgID().Bytes(),
		VehicleID:             aggregate.VehicleID().Bytes(),
		FromStationID:         aggregate.FromStation().Bytes(),
		ToStationID:           aggregate.ToStation().Bytes(),
		TransitDate:           aggregate.TransitDate(),
		Status:                int(aggregate.Status()),
		DriverPrimaryName:     driver.PrimaryName,
		DriverPrimaryMobile:   driver.PrimaryMobile,
		DriverSecondaryName:   driver.SecondaryName,
		DriverSecondaryMobile: driver.SecondaryMobile,
		Remarks:               aggregate.Remarks(),
		SealNumber:            aggregate.SealNumber(),
		CreatedAt:             aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a trip domain aggregate using
// RestoreTrip.
func toDomain(dto TripDTO) (*trip.Trip, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orgID, err := kernel.UUIDFromBytes(dto.OrgID[:])
	if err != nil {
		return nil, err
	}
	vehicleID, err := kernel.UUIDFromBytes(dto.VehicleID[:])
	if err != nil {
		return nil, err
	}
	fromStation, err := kernel.UUIDFromBytes(dto.FromStationID[:])
	if err != nil {
		return nil, err
	}
	toStation, err := kernel.UUIDFromBytes(dto.ToStationID[:])
	if err != nil {
		return nil, err
	}

	return trip.RestoreTrip(
		id,
		dto.OGPLNumber,
		orgID,
		vehicleID,
		fromStation,
		toStation,
		dto.TransitDate,
		trip.Status(dto.Status),
		trip.DriverInfo{
			PrimaryName:     dto.DriverPrimaryName,
			PrimaryMobile:   dto.DriverPrimaryMobile,
			SecondaryName:   dto.DriverSecondaryName,
			SecondaryMobile: dto.DriverSecondaryMobile,
		},
		dto.Remarks,
		dto.SealNumber,
		dto.CreatedAt,
	)
}
