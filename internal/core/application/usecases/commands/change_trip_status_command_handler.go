package commands

import (
	"context"
	"fmt"
	"time"

	"freight/internal/core/domain/model/logevent"
	"freight/internal/core/domain/model/trip"
	"freight/internal/pkg/errs"
)

// ChangeTripStatusCommandHandler drives the trip lifecycle: dispatch after
// loading, completion after arrival, and cancellation. Cancellation requires
// the trip to be empty; cargo must be unloaded through the unload batch first
// so every booking reverts cleanly.
type ChangeTripStatusCommandHandler struct {
	uowFactory LoadingUoWFactory
}

// NewChangeTripStatusCommandHandler creates a handler for trip lifecycle steps.
func NewChangeTripStatusCommandHandler(uowFactory LoadingUoWFactory) ChangeTripStatusCommandHandler {
	return ChangeTripStatusCommandHandler{uowFactory: uowFactory}
}

// Handle processes the trip lifecycle command.
func (h ChangeTripStatusCommandHandler) Handle(ctx context.Context, cmd ChangeTripStatusCommand) (*trip.Trip, error) {
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

	t, err := uow.TripRepository().GetForUpdate(ctx, cmd.TripID())
	if err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	if err = actor.CanAccessBranches(t.OrgID(), t.FromStation()); err != nil {
		return nil, err
	}

	fromStatus := t.Status()

	switch cmd.Action() {
	case DispatchTrip:
		err = t.Dispatch()
	case CompleteTrip:
		err = t.Complete()
	case CancelTrip:
		err = h.cancelEmpty(ctx, uow, t)
	default:
		err = cmd.Action().Validate()
	}
	if err != nil {
		return nil, err
	}

	if err = uow.TripRepository().Update(ctx, t); err != nil {
		return nil, err
	}

	now := time.Now()
	event, err := logevent.NewEvent(
		t.OrgID(),
		logevent.EntityTrip,
		t.ID(),
		logevent.EventTripStatusChanged,
		fmt.Sprintf("trip %s moved from %s to %s", t.OGPLNumber(), fromStatus, t.Status()),
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

	return t, nil
}

func (h ChangeTripStatusCommandHandler) cancelEmpty(ctx context.Context, uow LoadingUoW, t *trip.Trip) error {
	loadedKg, err := uow.BookingRepository().LoadedWeightKgForTrip(ctx, t.ID())
	if err != nil {
		return err
	}
	if loadedKg.IsPositive() {
		return errs.NewStateConflictError("trip",
			fmt.Sprintf("trip %s still carries loaded articles", t.OGPLNumber()))
	}
	return t.Cancel()
}
