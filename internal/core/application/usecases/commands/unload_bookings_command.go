package commands

import (
	"errors"

	"freight/internal/core/domain/model/auth"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrUnloadBookingsCommandIsNotConstructed = errors.New(
		"UnloadBookingsCommand must be created via NewUnloadBookingsCommand constructor",
	)
	// ErrUnloadTargetIsRequired is returned when neither bookings nor
	// articles are named.
	ErrUnloadTargetIsRequired = errs.NewValueIsRequiredError("booking ids or article ids")
	// ErrUnloadTargetIsAmbiguous is returned when both bookings and articles
	// are named in the same batch.
	ErrUnloadTargetIsAmbiguous = errs.NewValueIsInvalidError(
		"booking ids and article ids cannot be combined in one batch")
)

// UnloadBookingsCommand represents a request to detach cargo from a trip,
// either whole bookings or individual articles. Exactly one of the two id
// lists must be given.
type UnloadBookingsCommand struct { //nolint:recvcheck //using for validation
	tripID     kernel.UUID
	bookingIDs []kernel.UUID
	articleIDs []kernel.UUID
	actor      auth.Actor

	guard guard.ConstructorGuard
}

// NewUnloadBookingsCommand creates a validated unload command.
func NewUnloadBookingsCommand(
	tripID kernel.UUID,
	bookingIDs []kernel.UUID,
	articleIDs []kernel.UUID,
	actor auth.Actor,
) (UnloadBookingsCommand, error) {
	cmd := UnloadBookingsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTripID(tripID),
		cmd.setTargets(bookingIDs, articleIDs),
		actor.Validate(),
	); err != nil {
		return UnloadBookingsCommand{}, err
	}

	cmd.actor = actor
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UnloadBookingsCommand) Validate() error {
	return c.guard.Validate(ErrUnloadBookingsCommandIsNotConstructed)
}

// TripID returns the trip to unload from.
func (c UnloadBookingsCommand) TripID() kernel.UUID { return c.tripID }

// BookingIDs returns the bookings to unload whole, when booking-granular.
func (c UnloadBookingsCommand) BookingIDs() []kernel.UUID { return c.bookingIDs }

// ArticleIDs returns the articles to unload, when article-granular.
func (c UnloadBookingsCommand) ArticleIDs() []kernel.UUID { return c.articleIDs }

// IsArticleGranular reports whether the batch names individual articles.
func (c UnloadBookingsCommand) IsArticleGranular() bool { return len(c.articleIDs) > 0 }

// Actor returns the authorization context.
func (c UnloadBookingsCommand) Actor() auth.Actor { return c.actor }

func (c *UnloadBookingsCommand) setTripID(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}
	c.tripID = tripID
	return nil
}

func (c *UnloadBookingsCommand) setTargets(bookingIDs, articleIDs []kernel.UUID) error {
	if len(bookingIDs) == 0 && len(articleIDs) == 0 {
		return ErrUnloadTargetIsRequired
	}
	if len(bookingIDs) > 0 && len(articleIDs) > 0 {
		return ErrUnloadTargetIsAmbiguous
	}
	for _, id := range bookingIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	for _, id := range articleIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	c.bookingIDs = bookingIDs
	c.articleIDs = articleIDs
	return nil
}
