package commands

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/auth"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrCreateTripCommandIsNotConstructed = errors.New(
		"CreateTripCommand must be created via NewCreateTripCommand constructor",
	)
	// ErrTransitDateIsRequired is returned for a zero transit date.
	ErrTransitDateIsRequired = errs.NewValueIsRequiredError("transit date")
)

// CreateTripCommand represents a request to open a new trip (OGPL) against a
// vehicle and route. The OGPL number is reserved by the handler.
type CreateTripCommand struct { //nolint:recvcheck //using for validation
	tripID      kernel.UUID
	vehicleID   kernel.UUID
	fromStation kernel.UUID
	toStation   kernel.UUID
	transitDate time.Time
	driver      trip.DriverInfo
	remarks     string
	sealNumber  string
	actor       auth.Actor

	guard guard.ConstructorGuard
}

// NewCreateTripCommand creates a validated trip creation command.
func NewCreateTripCommand(
	tripID kernel.UUID,
	vehicleID kernel.UUID,
	fromStation kernel.UUID,
	toStation kernel.UUID,
	transitDate time.Time,
	driver trip.DriverInfo,
	remarks string,
	sealNumber string,
	actor auth.Actor,
) (CreateTripCommand, error) {
	cmd := CreateTripCommand{
		remarks:    remarks,
		sealNumber: sealNumber,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTripID(tripID),
		cmd.setVehicleID(vehicleID),
		cmd.setStations(fromStation, toStation),
		cmd.setTransitDate(transitDate),
		driver.Validate(),
		actor.Validate(),
	); err != nil {
		return CreateTripCommand{}, err
	}

	cmd.driver = driver
	cmd.actor = actor
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateTripCommand) Validate() error {
	return c.guard.Validate(ErrCreateTripCommandIsNotConstructed)
}

// TripID returns the identifier the new trip will carry.
func (c CreateTripCommand) TripID() kernel.UUID { return c.tripID }

// VehicleID returns the vehicle to assign.
func (c CreateTripCommand) VehicleID() kernel.UUID { return c.vehicleID }

// FromStation returns the origin branch.
func (c CreateTripCommand) FromStation() kernel.UUID { return c.fromStation }

// ToStation returns the destination branch.
func (c CreateTripCommand) ToStation() kernel.UUID { return c.toStation }

// TransitDate returns the planned departure date.
func (c CreateTripCommand) TransitDate() time.Time { return c.transitDate }

// Driver returns the crew details.
func (c CreateTripCommand) Driver() trip.DriverInfo { return c.driver }

// Remarks returns free-form manifest remarks.
func (c CreateTripCommand) Remarks() string { return c.remarks }

// SealNumber returns the container seal number, if any.
func (c CreateTripCommand) SealNumber() string { return c.sealNumber }

// Actor returns the authorization context.
func (c CreateTripCommand) Actor() auth.Actor { return c.actor }

func (c *CreateTripCommand) setTripID(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}
	c.tripID = tripID
	return nil
}

func (c *CreateTripCommand) setVehicleID(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	c.vehicleID = vehicleID
	return nil
}

func (c *CreateTripCommand) setStations(fromStation, toStation kernel.UUID) error {
	if err := fromStation.Validate(); err != nil {
		return err
	}
	if err := toStation.Validate(); err != nil {
		return err
	}
	c.fromStation = fromStation
	c.toStation = toStation
	return nil
}

func (c *CreateTripCommand) setTransitDate(transitDate time.Time) error {
	if transitDate.IsZero() {
		return ErrTransitDateIsRequired
	}
	c.transitDate = transitDate
	return nil
}
