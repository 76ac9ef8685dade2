package commands

import (
	"context"
	"fmt"
	"time"

	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/logevent"
	"freight/internal/core/domain/model/trip"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// LoadResult reports what a successful load batch did.
type LoadResult struct {
	LoadedArticles int
	LoadedBookings int
	TotalWeightKg  decimal.Decimal
	Warnings       []string
}

// LoadBookingsCommandHandler orchestrates loading a batch of bookings onto a
// trip: it validates every booking against the trip, checks the combined
// weight against the vehicle capacity, and applies the whole batch inside one
// transaction. Validation accumulates every violation before reporting, so a
// rejected batch tells the operator about all problems at once.
type LoadBookingsCommandHandler struct {
	uowFactory LoadingUoWFactory
	capacity   services.CapacityValidator
}

// NewLoadBookingsCommandHandler creates a handler for load batches.
func NewLoadBookingsCommandHandler(
	uowFactory LoadingUoWFactory,
	capacity services.CapacityValidator,
) LoadBookingsCommandHandler {
	return LoadBookingsCommandHandler{
		uowFactory: uowFactory,
		capacity:   capacity,
	}
}

// Handle processes the load batch.
//
// The trip row is locked for the duration of the transaction, so concurrent
// batches against the same trip serialize and the capacity check sees the
// weight the previous batch committed.
func (h LoadBookingsCommandHandler) Handle(ctx context.Context, cmd LoadBookingsCommand) (*LoadResult, error) {
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
	if !t.IsEditable() {
		return nil, errs.NewStateConflictError("trip",
			fmt.Sprintf("trip %s in status %s does not accept loading", t.OGPLNumber(), t.Status()))
	}

	bookings, err := uow.BookingRepository().GetBatch(ctx, cmd.BookingIDs())
	if err != nil {
		return nil, err
	}

	batch, violations := h.validateBatch(t, cmd.BookingIDs(), bookings)
	if len(violations) > 0 {
		return nil, NewBatchValidationError(violations)
	}

	pendingKg := decimal.Zero
	for _, b := range batch {
		pendingKg = pendingKg.Add(b.PendingWeightKg(t.ID()))
	}

	loadedKg, err := uow.BookingRepository().LoadedWeightKgForTrip(ctx, t.ID())
	if err != nil {
		return nil, err
	}
	candidateKg := loadedKg.Add(pendingKg)

	veh, err := uow.VehicleRepository().Get(ctx, t.VehicleID())
	if err != nil {
		return nil, err
	}
	check, err := h.capacity.Check(veh, candidateKg)
	if err != nil {
		return nil, err
	}
	if !check.Valid {
		if cmd.ValidateCapacity() {
			capacityKg, _ := check.CapacityKg.Float64()
			requestedKg, _ := check.RequestedKg.Float64()
			return nil, errs.NewCapacityExceededError(check.UtilizationPercent, capacityKg, requestedKg)
		}
		check.Warnings = append(check.Warnings, fmt.Sprintf(
			"capacity check bypassed: vehicle %s utilization %.2f%%",
			veh.Registration(), check.UtilizationPercent))
	}

	now := time.Now()
	result := &LoadResult{
		TotalWeightKg: candidateKg,
		Warnings:      check.Warnings,
	}

	if err = t.StartLoading(); err != nil {
		return nil, err
	}

	for _, b := range batch {
		loaded, loadErr := b.LoadArticlesOnto(t.ID(), actor.UserID(), now)
		if loadErr != nil {
			return nil, loadErr
		}

		if b.Status() == booking.Booked && b.AllArticlesLoadedOn(t.ID()) {
			if err = b.ChangeStatus(booking.InTransit, booking.ContextLoading, actor, now); err != nil {
				return nil, err
			}
		}

		if err = uow.BookingRepository().Update(ctx, b); err != nil {
			return nil, err
		}

		for _, article := range loaded {
			if err = h.logArticleLoaded(ctx, uow, t.OGPLNumber(), cmd.Notes(), b, article, actor.UserID(), now); err != nil {
				return nil, err
			}
		}

		// A booking whose every article was already on this trip contributed
		// nothing to the batch and is not counted.
		if len(loaded) > 0 {
			result.LoadedArticles += len(loaded)
			result.LoadedBookings++
		}
	}

	if err = uow.TripRepository().Update(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return result, nil
}

// validateBatch checks every requested booking against the trip and collects
// all violations. It returns the bookings to load in request order, with
// duplicates collapsed.
func (h LoadBookingsCommandHandler) validateBatch(
	t *trip.Trip,
	requestedIDs []kernel.UUID,
	bookings []*booking.Booking,
) ([]*booking.Booking, []string) {
	byID := make(map[kernel.UUID]*booking.Booking, len(bookings))
	for _, b := range bookings {
		byID[b.ID()] = b
	}

	var (
		batch      []*booking.Booking
		violations []string
		seen       = make(map[kernel.UUID]bool, len(requestedIDs))
	)

	for _, id := range requestedIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		b, ok := byID[id]
		if !ok {
			violations = append(violations, fmt.Sprintf("booking %s not found", id))
			continue
		}
		if !b.OrgID().IsEqual(t.OrgID()) {
			violations = append(violations, fmt.Sprintf("booking %s not found", id))
			continue
		}
		if !b.FromBranch().IsEqual(t.FromStation()) {
			violations = append(violations, fmt.Sprintf(
				"booking %s originates at another branch than trip %s", b.LRNumber(), t.OGPLNumber()))
			continue
		}
		if blocked := b.ArticlesOnOtherTrip(t.ID()); len(blocked) > 0 {
			violations = append(violations, fmt.Sprintf(
				"booking %s has %d article(s) loaded on another trip", b.LRNumber(), len(blocked)))
			continue
		}
		if err := b.IsLoadableOnto(t.ID()); err != nil {
			violations = append(violations, err.Error())
			continue
		}

		batch = append(batch, b)
	}

	return batch, violations
}

func (h LoadBookingsCommandHandler) logArticleLoaded(
	ctx context.Context,
	uow LoadingUoW,
	ogplNumber string,
	notes string,
	b *booking.Booking,
	article *booking.Article,
	actorID kernel.UUID,
	now time.Time,
) error {
	detail := fmt.Sprintf("article %s of booking %s loaded onto trip %s",
		article.ArticleType(), b.LRNumber(), ogplNumber)
	if notes != "" {
		detail += ": " + notes
	}

	event, err := logevent.NewEvent(
		b.OrgID(),
		logevent.EntityArticle,
		article.ID(),
		logevent.EventArticleLoaded,
		detail,
		actorID,
		now,
	)
	if err != nil {
		return err
	}
	return uow.EventRepository().Add(ctx, event)
}
