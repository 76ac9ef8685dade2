// Package vehiclerepo provides read access to vehicles at the workflow
// boundary. Vehicle CRUD lives outside this service; Add exists for seeding
// and tests only.
package vehiclerepo

import (
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VehicleDTO represents the database structure for vehicle rows.
type VehicleDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrgID        uuid.UUID       `gorm:"type:uuid;index"`
	Registration string          `gorm:"uniqueIndex"`
	CapacityKg   decimal.Decimal `gorm:"column:capacity_kg;type:numeric(12,3)"`
	Active       bool
}

// TableName specifies the database table name for vehicle entities.
func (VehicleDTO) TableName() string {
	return "vehicles"
}

func fromDomain(v *vehicle.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:           v.ID().Bytes(),
		OrgID:        v.OrgID().Bytes(),
		Registration: v.Registration(),
		CapacityKg:   v.CapacityKg(),
		Active:       v.IsActive(),
	}
}

func toDomain(dto VehicleDTO) (*vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orgID, err := kernel.UUIDFromBytes(dto.OrgID[:])
	if err != nil {
		return nil, err
	}

	return vehicle.RestoreVehicle(id, orgID, dto.Registration, dto.CapacityKg, dto.Active)
}
