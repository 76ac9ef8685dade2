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

// UnloadResult reports what a successful unload batch did.
type UnloadResult struct {
	UnloadedArticles int
	UnloadedBookings int
	RevertedBookings int
}

// UnloadBookingsCommandHandler orchestrates detaching cargo from a trip. A
// booking whose last loaded article leaves the trip reverts to Booked, making
// it loadable onto another trip. Like loading, the batch validates fully
// before applying and commits as one transaction.
type UnloadBookingsCommandHandler struct {
	uowFactory LoadingUoWFactory
}

// NewUnloadBookingsCommandHandler creates a handler for unload batches.
func NewUnloadBookingsCommandHandler(uowFactory LoadingUoWFactory) UnloadBookingsCommandHandler {
	return UnloadBookingsCommandHandler{uowFactory: uowFactory}
}

// Handle processes the unload batch.
func (h UnloadBookingsCommandHandler) Handle(ctx context.Context, cmd UnloadBookingsCommand) (*UnloadResult, error) {
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
			fmt.Sprintf("trip %s in status %s does not accept unloading", t.OGPLNumber(), t.Status()))
	}

	var targets []unloadTarget
	if cmd.IsArticleGranular() {
		targets, err = h.resolveArticles(ctx, uow, t.ID(), t.OrgID(), cmd.ArticleIDs())
	} else {
		targets, err = h.resolveBookings(ctx, uow, t.ID(), t.OrgID(), cmd.BookingIDs())
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := &UnloadResult{}

	for _, target := range targets {
		unloaded, unloadErr := target.booking.UnloadArticlesFrom(t.ID(), target.articleIDs)
		if unloadErr != nil {
			return nil, unloadErr
		}

		if target.booking.Status() == booking.InTransit && !target.booking.HasLoadedArticles() {
			if err = target.booking.RevertToBooked(actor, now); err != nil {
				return nil, err
			}
			result.RevertedBookings++
		}

		if err = uow.BookingRepository().Update(ctx, target.booking); err != nil {
			return nil, err
		}

		for _, article := range unloaded {
			if err = h.logArticleUnloaded(ctx, uow, t.OGPLNumber(), target.booking, article, actor.UserID(), now); err != nil {
				return nil, err
			}
		}

		result.UnloadedArticles += len(unloaded)
		result.UnloadedBookings++
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return result, nil
}

// unloadTarget pairs a booking with the article ids to detach from it. An
// empty id list means every article the booking has on the trip.
type unloadTarget struct {
	booking    *booking.Booking
	articleIDs []kernel.UUID
}

func (h UnloadBookingsCommandHandler) resolveBookings(
	ctx context.Context,
	uow LoadingUoW,
	tripID kernel.UUID,
	orgID kernel.UUID,
	bookingIDs []kernel.UUID,
) ([]unloadTarget, error) {
	bookings, err := uow.BookingRepository().GetBatch(ctx, bookingIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[kernel.UUID]*booking.Booking, len(bookings))
	for _, b := range bookings {
		byID[b.ID()] = b
	}

	var (
		targets    []unloadTarget
		violations []string
		seen       = make(map[kernel.UUID]bool, len(bookingIDs))
	)

	for _, id := range bookingIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		b, ok := byID[id]
		if !ok || !b.OrgID().IsEqual(orgID) {
			violations = append(violations, fmt.Sprintf("booking %s not found", id))
			continue
		}

		onTrip := false
		for _, article := range b.Articles() {
			if article.IsLoadedOn(tripID) {
				onTrip = true
				break
			}
		}
		if !onTrip {
			violations = append(violations, fmt.Sprintf(
				"booking %s has no articles loaded on this trip", b.LRNumber()))
			continue
		}

		targets = append(targets, unloadTarget{booking: b})
	}

	if len(violations) > 0 {
		return nil, NewBatchValidationError(violations)
	}
	return targets, nil
}

func (h UnloadBookingsCommandHandler) resolveArticles(
	ctx context.Context,
	uow LoadingUoW,
	tripID kernel.UUID,
	orgID kernel.UUID,
	articleIDs []kernel.UUID,
) ([]unloadTarget, error) {
	bookings, err := uow.BookingRepository().GetByArticleIDs(ctx, articleIDs)
	if err != nil {
		return nil, err
	}

	type owned struct {
		booking *booking.Booking
		article *booking.Article
	}
	byArticle := make(map[kernel.UUID]owned, len(articleIDs))
	for _, b := range bookings {
		if !b.OrgID().IsEqual(orgID) {
			continue
		}
		for _, article := range b.Articles() {
			byArticle[article.ID()] = owned{booking: b, article: article}
		}
	}

	var (
		perBooking = make(map[kernel.UUID]*unloadTarget)
		order      []kernel.UUID
		violations []string
		seen       = make(map[kernel.UUID]bool, len(articleIDs))
	)

	for _, id := range articleIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		o, ok := byArticle[id]
		if !ok {
			violations = append(violations, fmt.Sprintf("article %s not found", id))
			continue
		}
		if !o.article.IsLoadedOn(tripID) {
			violations = append(violations, fmt.Sprintf(
				"article %s of booking %s is not loaded on this trip", id, o.booking.LRNumber()))
			continue
		}

		target, ok := perBooking[o.booking.ID()]
		if !ok {
			target = &unloadTarget{booking: o.booking}
			perBooking[o.booking.ID()] = target
			order = append(order, o.booking.ID())
		}
		target.articleIDs = append(target.articleIDs, id)
	}

	if len(violations) > 0 {
		return nil, NewBatchValidationError(violations)
	}

	targets := make([]unloadTarget, 0, len(order))
	for _, bookingID := range order {
		targets = append(targets, *perBooking[bookingID])
	}
	return targets, nil
}

func (h UnloadBookingsCommandHandler) logArticleUnloaded(
	ctx context.Context,
	uow LoadingUoW,
	ogplNumber string,
	b *booking.Booking,
	article *booking.Article,
	actorID kernel.UUID,
	now time.Time,
) error {
	event, err := logevent.NewEvent(
		b.OrgID(),
		logevent.EntityArticle,
		article.ID(),
		logevent.EventArticleUnloaded,
		fmt.Sprintf("article %s of booking %s unloaded from trip %s",
			article.ArticleType(), b.LRNumber(), ogplNumber),
		actorID,
		now,
	)
	if err != nil {
		return err
	}
	return uow.EventRepository().Add(ctx, event)
}
