package commands

import (
	"errors"

	"freight/internal/core/domain/model/auth"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrLoadBookingsCommandIsNotConstructed = errors.New(
		"LoadBookingsCommand must be created via NewLoadBookingsCommand constructor",
	)
	// ErrBookingIDsAreRequired is returned for an empty load batch.
	ErrBookingIDsAreRequired = errs.NewValueIsRequiredError("booking ids")
)

// LoadBookingsCommand represents a request to load a batch of bookings onto a
// trip. The batch is all-or-nothing: either every booking loads or none does.
//
// validateCapacity controls the hard over-capacity rejection only; utilization
// is always computed and reported, so a bypassed overload still surfaces as a
// warning.
type LoadBookingsCommand struct { //nolint:recvcheck //using for validation
	tripID           kernel.UUID
	bookingIDs       []kernel.UUID
	notes            string
	validateCapacity bool
	actor            auth.Actor

	guard guard.ConstructorGuard
}

// NewLoadBookingsCommand creates a validated load command.
func NewLoadBookingsCommand(
	tripID kernel.UUID,
	bookingIDs []kernel.UUID,
	notes string,
	validateCapacity bool,
	actor auth.Actor,
) (LoadBookingsCommand, error) {
	cmd := LoadBookingsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTripID(tripID),
		cmd.setBookingIDs(bookingIDs),
		actor.Validate(),
	); err != nil {
		return LoadBookingsCommand{}, err
	}

	cmd.notes = notes
	cmd.validateCapacity = validateCapacity
	cmd.actor = actor
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c LoadBookingsCommand) Validate() error {
	return c.guard.Validate(ErrLoadBookingsCommandIsNotConstructed)
}

// TripID returns the target trip.
func (c LoadBookingsCommand) TripID() kernel.UUID { return c.tripID }

// BookingIDs returns the bookings to load.
func (c LoadBookingsCommand) BookingIDs() []kernel.UUID { return c.bookingIDs }

// Notes returns the free-form remark attached to the load batch.
func (c LoadBookingsCommand) Notes() string { return c.notes }

// ValidateCapacity reports whether an over-capacity batch must be rejected.
func (c LoadBookingsCommand) ValidateCapacity() bool { return c.validateCapacity }

// Actor returns the authorization context.
func (c LoadBookingsCommand) Actor() auth.Actor { return c.actor }

func (c *LoadBookingsCommand) setTripID(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}
	c.tripID = tripID
	return nil
}

func (c *LoadBookingsCommand) setBookingIDs(bookingIDs []kernel.UUID) error {
	if len(bookingIDs) == 0 {
		return ErrBookingIDsAreRequired
	}
	for _, id := range bookingIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	c.bookingIDs = bookingIDs
	return nil
}
