package commands

import (
	"errors"

	"freight/internal/core/domain/model/auth"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateBookingCommandIsNotConstructed = errors.New(
		"CreateBookingCommand must be created via NewCreateBookingCommand constructor",
	)
	// ErrArticlesAreRequired is returned when a booking arrives without line items.
	ErrArticlesAreRequired = errs.NewValueIsRequiredError("at least one article")
)

// ArticleInput is one requested line item of a new booking.
type ArticleInput struct {
	ArticleType string
	Quantity    int
	WeightKg    decimal.Decimal
}

// CreateBookingCommand represents a request to register a new booking.
// The LR number is not part of the command; the handler reserves it through
// the number generator.
type CreateBookingCommand struct { //nolint:recvcheck //using for validation
	bookingID   kernel.UUID
	fromBranch  kernel.UUID
	toBranch    kernel.UUID
	senderRef   string
	receiver    string
	totalAmount decimal.Decimal
	isQuotation bool
	articles    []ArticleInput
	actor       auth.Actor

	guard guard.ConstructorGuard
}

// NewCreateBookingCommand creates a validated booking intake command.
func NewCreateBookingCommand(
	bookingID kernel.UUID,
	fromBranch kernel.UUID,
	toBranch kernel.UUID,
	senderRef string,
	receiver string,
	totalAmount decimal.Decimal,
	isQuotation bool,
	articles []ArticleInput,
	actor auth.Actor,
) (CreateBookingCommand, error) {
	cmd := CreateBookingCommand{
		senderRef:   senderRef,
		receiver:    receiver,
		totalAmount: totalAmount,
		isQuotation: isQuotation,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBookingID(bookingID),
		cmd.setBranches(fromBranch, toBranch),
		cmd.setArticles(articles),
		actor.Validate(),
	); err != nil {
		return CreateBookingCommand{}, err
	}

	cmd.actor = actor
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateBookingCommand) Validate() error {
	return c.guard.Validate(ErrCreateBookingCommandIsNotConstructed)
}

// BookingID returns the identifier the new booking will carry.
func (c CreateBookingCommand) BookingID() kernel.UUID { return c.bookingID }

// FromBranch returns the origin branch.
func (c CreateBookingCommand) FromBranch() kernel.UUID { return c.fromBranch }

// ToBranch returns the destination branch.
func (c CreateBookingCommand) ToBranch() kernel.UUID { return c.toBranch }

// SenderRef returns the sender reference.
func (c CreateBookingCommand) SenderRef() string { return c.senderRef }

// Receiver returns the receiver reference.
func (c CreateBookingCommand) Receiver() string { return c.receiver }

// TotalAmount returns the contracted freight amount.
func (c CreateBookingCommand) TotalAmount() decimal.Decimal { return c.totalAmount }

// IsQuotation reports whether this is a quotation rather than a booking.
func (c CreateBookingCommand) IsQuotation() bool { return c.isQuotation }

// Articles returns the requested line items.
func (c CreateBookingCommand) Articles() []ArticleInput { return c.articles }

// Actor returns the authorization context.
func (c CreateBookingCommand) Actor() auth.Actor { return c.actor }

func (c *CreateBookingCommand) setBookingID(bookingID kernel.UUID) error {
	if err := bookingID.Validate(); err != nil {
		return err
	}
	c.bookingID = bookingID
	return nil
}

func (c *CreateBookingCommand) setBranches(fromBranch, toBranch kernel.UUID) error {
	if err := fromBranch.Validate(); err != nil {
		return err
	}
	if err := toBranch.Validate(); err != nil {
		return err
	}
	c.fromBranch = fromBranch
	c.toBranch = toBranch
	return nil
}

func (c *CreateBookingCommand) setArticles(articles []ArticleInput) error {
	if len(articles) == 0 {
		return ErrArticlesAreRequired
	}
	c.articles = articles
	return nil
}
