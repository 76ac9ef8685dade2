package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/branch"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/logevent"
	"freight/internal/core/domain/model/trip"
	"freight/internal/pkg/errs"
)

// CreateTripCommandHandler handles trip creation: it reserves an OGPL number,
// validates the vehicle and route, and enforces vehicle exclusivity — a
// vehicle may be claimed by only one non-terminal trip at a time.
type CreateTripCommandHandler struct {
	uowFactory TripUoWFactory
	numbers    NumberSource
}

// NewCreateTripCommandHandler creates a handler for trip creation.
func NewCreateTripCommandHandler(uowFactory TripUoWFactory, numbers NumberSource) CreateTripCommandHandler {
	return CreateTripCommandHandler{
		uowFactory: uowFactory,
		numbers:    numbers,
	}
}

// Handle processes the trip creation command.
//
// Exclusivity is checked twice: an in-transaction lookup produces the
// readable conflict error, and the partial unique index on active trips
// catches the race two concurrent creations can still win past the lookup.
func (h CreateTripCommandHandler) Handle(ctx context.Context, cmd CreateTripCommand) (*trip.Trip, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	if err := actor.CanAccessBranches(actor.OrgID(), cmd.FromStation()); err != nil {
		return nil, err
	}

	ogplNumber, err := h.numbers.NextOGPLNumber(ctx, cmd.FromStation())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = h.checkStation(ctx, uow, "from_station", cmd.FromStation(), actor.OrgID()); err != nil {
		return nil, err
	}
	if _, err = h.checkStation(ctx, uow, "to_station", cmd.ToStation(), actor.OrgID()); err != nil {
		return nil, err
	}
	if err = h.checkVehicle(ctx, uow, cmd.VehicleID(), actor.OrgID()); err != nil {
		return nil, err
	}

	now := time.Now()
	t, err := trip.NewTrip(
		cmd.TripID(),
		ogplNumber,
		actor.OrgID(),
		cmd.VehicleID(),
		cmd.FromStation(),
		cmd.ToStation(),
		cmd.TransitDate(),
		cmd.Driver(),
		cmd.Remarks(),
		cmd.SealNumber(),
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = uow.TripRepository().Add(ctx, t); err != nil {
		if errors.Is(err, errs.ErrDuplicateValue) {
			return nil, vehicleBusyError(ogplNumber, cmd.VehicleID())
		}
		return nil, err
	}

	event, err := logevent.NewEvent(
		actor.OrgID(),
		logevent.EntityTrip,
		t.ID(),
		logevent.EventTripCreated,
		fmt.Sprintf("trip %s created for vehicle %s", t.OGPLNumber(), cmd.VehicleID()),
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

func (h CreateTripCommandHandler) checkStation(
	ctx context.Context,
	uow TripUoW,
	param string,
	branchID kernel.UUID,
	orgID kernel.UUID,
) (*branch.Branch, error) {
	br, err := uow.BranchRepository().Get(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if !br.OrgID().IsEqual(orgID) {
		return nil, errs.NewObjectNotFoundError(param, branchID.String())
	}
	if !br.IsActive() {
		return nil, errs.NewStateConflictError(param, fmt.Sprintf("branch %s is not active", br.Code()))
	}
	return br, nil
}

func (h CreateTripCommandHandler) checkVehicle(
	ctx context.Context,
	uow TripUoW,
	vehicleID kernel.UUID,
	orgID kernel.UUID,
) error {
	veh, err := uow.VehicleRepository().Get(ctx, vehicleID)
	if err != nil {
		return err
	}
	if !veh.OrgID().IsEqual(orgID) {
		return errs.NewObjectNotFoundError("vehicle_id", vehicleID.String())
	}
	if !veh.IsActive() {
		return errs.NewStateConflictError("vehicle",
			fmt.Sprintf("vehicle %s is not active", veh.Registration()))
	}

	active, err := uow.TripRepository().GetActiveByVehicle(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return err
	}
	return errs.NewStateConflictError("vehicle",
		fmt.Sprintf("vehicle %s is already assigned to active trip %s",
			veh.Registration(), active.OGPLNumber()))
}

func vehicleBusyError(ogplNumber string, vehicleID kernel.UUID) error {
	return errs.NewStateConflictError("vehicle",
		fmt.Sprintf("vehicle %s was claimed by another trip while creating %s", vehicleID, ogplNumber))
}
