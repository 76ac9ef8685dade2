package commands

import (
	"context"
	"fmt"
	"time"

	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/logevent"
	"freight/internal/pkg/errs"
)

// CreateBookingCommandHandler handles booking intake: it reserves an LR
// number, validates the requested route against active branches of the
// actor's organization, and persists the new aggregate with its articles and
// a creation audit event.
type CreateBookingCommandHandler struct {
	uowFactory BookingUoWFactory
	numbers    NumberSource
}

// NewCreateBookingCommandHandler creates a handler for booking intake.
func NewCreateBookingCommandHandler(uowFactory BookingUoWFactory, numbers NumberSource) CreateBookingCommandHandler {
	return CreateBookingCommandHandler{
		uowFactory: uowFactory,
		numbers:    numbers,
	}
}

// Handle processes the booking intake command.
//
// The LR number is reserved before the transaction opens: a reservation that
// outlives a failed intake burns one number, which is harmless, whereas a
// reservation inside the transaction would be rolled back and could be
// re-issued to someone else mid-flight.
func (h CreateBookingCommandHandler) Handle(ctx context.Context, cmd CreateBookingCommand) (*booking.Booking, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	if err := actor.CanAccessBranches(actor.OrgID(), cmd.FromBranch()); err != nil {
		return nil, err
	}

	lrNumber, err := h.numbers.NextBookingNumber(ctx, cmd.FromBranch(), cmd.IsQuotation())
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

	if err = h.checkBranch(ctx, uow, "from_branch", cmd.FromBranch(), actor.OrgID()); err != nil {
		return nil, err
	}
	if err = h.checkBranch(ctx, uow, "to_branch", cmd.ToBranch(), actor.OrgID()); err != nil {
		return nil, err
	}

	now := time.Now()
	b, err := booking.NewBooking(
		cmd.BookingID(),
		lrNumber,
		actor.OrgID(),
		cmd.FromBranch(),
		cmd.ToBranch(),
		cmd.SenderRef(),
		cmd.Receiver(),
		cmd.TotalAmount(),
		now,
	)
	if err != nil {
		return nil, err
	}

	for _, input := range cmd.Articles() {
		if err = b.AddArticle(kernel.NewUUID(), input.ArticleType, input.Quantity, input.WeightKg); err != nil {
			return nil, err
		}
	}

	if err = uow.BookingRepository().Add(ctx, b); err != nil {
		return nil, err
	}

	event, err := logevent.NewEvent(
		actor.OrgID(),
		logevent.EntityBooking,
		b.ID(),
		logevent.EventBookingCreated,
		fmt.Sprintf("booking %s created with %d articles", b.LRNumber(), len(b.Articles())),
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

func (h CreateBookingCommandHandler) checkBranch(
	ctx context.Context,
	uow BookingUoW,
	param string,
	branchID kernel.UUID,
	orgID kernel.UUID,
) error {
	br, err := uow.BranchRepository().Get(ctx, branchID)
	if err != nil {
		return err
	}
	if !br.OrgID().IsEqual(orgID) {
		return errs.NewObjectNotFoundError(param, branchID.String())
	}
	if !br.IsActive() {
		return errs.NewStateConflictError(param, fmt.Sprintf("branch %s is not active", br.Code()))
	}
	return nil
}
