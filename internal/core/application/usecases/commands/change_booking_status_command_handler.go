package commands

import (
	"context"
	"fmt"
	"time"

	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/logevent"
)

// ChangeBookingStatusCommandHandler drives the booking status state machine
// for the post-loading legs of the workflow: unloading at destination,
// delivery runs, proof of delivery, and cancellation. Loading-leg transitions
// happen through the load and unload batches, never through this handler
// alone, but the state machine rejects a loading-context request here anyway
// because the declared context would not match.
type ChangeBookingStatusCommandHandler struct {
	uowFactory BookingUoWFactory
}

// NewChangeBookingStatusCommandHandler creates a handler for status changes.
func NewChangeBookingStatusCommandHandler(uowFactory BookingUoWFactory) ChangeBookingStatusCommandHandler {
	return ChangeBookingStatusCommandHandler{uowFactory: uowFactory}
}

// Handle processes the status change command.
func (h ChangeBookingStatusCommandHandler) Handle(ctx context.Context, cmd ChangeBookingStatusCommand) (*booking.Booking, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	b, err := uow.BookingRepository().Get(ctx, cmd.BookingID())
	if err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	fromStatus := b.Status()
	now := time.Now()

	if err = b.ChangeStatus(cmd.ToStatus(), cmd.WorkflowContext(), actor, now); err != nil {
		return nil, err
	}

	if err = uow.BookingRepository().Update(ctx, b); err != nil {
		return nil, err
	}

	event, err := logevent.NewEvent(
		b.OrgID(),
		logevent.EntityBooking,
		b.ID(),
		logevent.EventBookingStatusChanged,
		fmt.Sprintf("booking %s moved from %s to %s in %s context",
			b.LRNumber(), fromStatus, b.Status(), cmd.WorkflowContext()),
		actor.UserID(),
		now,
	)
	if err != nil {
		return nil, err
	}
	if err = uow.EventRepository().Add(ctx, event); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return b, nil
}
