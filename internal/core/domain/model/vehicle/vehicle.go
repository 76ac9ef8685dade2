// Package vehicle contains the Vehicle entity consumed at the workflow
// boundary. Vehicle CRUD lives outside this service; the workflow core only
// reads vehicles to validate ownership, activity, and carrying capacity.
package vehicle

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Vehicle domain errors.
var (
	// ErrVehicleIsNotConstructed is returned when using an improperly
	// initialized Vehicle.
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")
	// ErrRegistrationIsRequired is returned for an empty registration number.
	ErrRegistrationIsRequired = errs.NewValueIsRequiredError("registration number")
	// ErrCapacityIsInvalid is returned for a non-positive capacity.
	ErrCapacityIsInvalid = errs.NewValueIsInvalidError("capacity must be greater than 0")
)

// Vehicle is a truck available for outward trips.
type Vehicle struct {
	id           kernel.UUID
	orgID        kernel.UUID
	registration string
	capacityKg   decimal.Decimal
	active       bool

	guard guard.ConstructorGuard
}

// NewVehicle creates a vehicle with a positive carrying capacity.
func NewVehicle(
	id kernel.UUID,
	orgID kernel.UUID,
	registration string,
	capacityKg decimal.Decimal,
	active bool,
) (*Vehicle, error) {
	v := &Vehicle{
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setOrgID(orgID),
		v.setRegistration(registration),
		v.setCapacityKg(capacityKg),
	); err != nil {
		return nil, err
	}

	return v, nil
}

// RestoreVehicle reconstructs a vehicle from persistent storage.
func RestoreVehicle(
	id kernel.UUID,
	orgID kernel.UUID,
	registration string,
	capacityKg decimal.Decimal,
	active bool,
) (*Vehicle, error) {
	return NewVehicle(id, orgID, registration, capacityKg, active)
}

// Validate ensures the vehicle was created through a constructor.
func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

// ID returns the vehicle's unique identifier.
func (v *Vehicle) ID() kernel.UUID {
	return v.id
}

// OrgID returns the owning organization.
func (v *Vehicle) OrgID() kernel.UUID {
	return v.orgID
}

// Registration returns the registration plate number.
func (v *Vehicle) Registration() string {
	return v.registration
}

// CapacityKg returns the rated carrying capacity in kilograms.
func (v *Vehicle) CapacityKg() decimal.Decimal {
	return v.capacityKg
}

// IsActive reports whether the vehicle is in service.
func (v *Vehicle) IsActive() bool {
	return v.active
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vehicle) setOrgID(orgID kernel.UUID) error {
	if err := orgID.Validate(); err != nil {
		return err
	}
	v.orgID = orgID
	return nil
}

func (v *Vehicle) setRegistration(registration string) error {
	if registration == "" {
		return ErrRegistrationIsRequired
	}
	v.registration = registration
	return nil
}

func (v *Vehicle) setCapacityKg(capacityKg decimal.Decimal) error {
	if capacityKg.LessThanOrEqual(decimal.Zero) {
		return ErrCapacityIsInvalid
	}
	v.capacityKg = capacityKg
	return nil
}
