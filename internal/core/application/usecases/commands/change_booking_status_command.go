package commands

import (
	"errors"

	"freight/internal/core/domain/model/auth"
	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrChangeBookingStatusCommandIsNotConstructed = errors.New(
	"ChangeBookingStatusCommand must be created via NewChangeBookingStatusCommand constructor",
)

// ChangeBookingStatusCommand represents a request to move a booking to a new
// status within a declared workflow context. The context is carried verbatim,
// including an unknown one: the state machine itself decides whether it fits
// the requested transition.
type ChangeBookingStatusCommand struct { //nolint:recvcheck //using for validation
	bookingID kernel.UUID
	toStatus  booking.Status
	wctx      booking.WorkflowContext
	actor     auth.Actor

	guard guard.ConstructorGuard
}

// NewChangeBookingStatusCommand creates a validated status change command.
func NewChangeBookingStatusCommand(
	bookingID kernel.UUID,
	toStatus booking.Status,
	wctx booking.WorkflowContext,
	actor auth.Actor,
) (ChangeBookingStatusCommand, error) {
	cmd := ChangeBookingStatusCommand{
		wctx:  wctx,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBookingID(bookingID),
		toStatus.Validate(),
		actor.Validate(),
	); err != nil {
		return ChangeBookingStatusCommand{}, err
	}

	cmd.toStatus = toStatus
	cmd.actor = actor
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeBookingStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeBookingStatusCommandIsNotConstructed)
}

// BookingID returns the booking to move.
func (c ChangeBookingStatusCommand) BookingID() kernel.UUID { return c.bookingID }

// ToStatus returns the requested target status.
func (c ChangeBookingStatusCommand) ToStatus() booking.Status { return c.toStatus }

// WorkflowContext returns the declared workflow context.
func (c ChangeBookingStatusCommand) WorkflowContext() booking.WorkflowContext { return c.wctx }

// Actor returns the authorization context.
func (c ChangeBookingStatusCommand) Actor() auth.Actor { return c.actor }

func (c *ChangeBookingStatusCommand) setBookingID(bookingID kernel.UUID) error {
	if err := bookingID.Validate(); err != nil {
		return err
	}
	c.bookingID = bookingID
	return nil
}
