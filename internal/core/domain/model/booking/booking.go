package booking

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/auth"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Booking domain errors.
var (
	// ErrBookingIsNotConstructed is returned when using an improperly
	// initialized Booking.
	ErrBookingIsNotConstructed = errors.New("Booking must be created via NewBooking constructor")
	// ErrLRNumberIsRequired is returned for an empty consignment number.
	ErrLRNumberIsRequired = errs.NewValueIsRequiredError("lr number")
	// ErrSenderIsRequired is returned for an empty sender reference.
	ErrSenderIsRequired = errs.NewValueIsRequiredError("sender")
	// ErrReceiverIsRequired is returned for an empty receiver reference.
	ErrReceiverIsRequired = errs.NewValueIsRequiredError("receiver")
	// ErrAmountIsInvalid is returned for a negative total amount.
	ErrAmountIsInvalid = errs.NewValueIsInvalidError("total amount must not be negative")
	// ErrSameBranch is returned when origin and destination branches coincide.
	ErrSameBranch = errs.NewValueIsInvalidError("origin and destination branches must differ")
)

// Booking is the aggregate root for one shipment contract. It owns its
// articles (line items) and is the only place booking or article status may
// change: the loading orchestrator and the status state machine both operate
// through its methods, never through direct field edits.
//
// Key invariants:
//   - status transitions follow the table in Status, gated by workflow context
//   - an article is linked to a trip exactly while it is loaded
//   - the booking is InTransit exactly when every article sits on a trip
//   - a terminal booking (delivered, pod_received, cancelled) never mutates
type Booking struct {
	id         kernel.UUID
	lrNumber   string
	orgID      kernel.UUID
	fromBranch kernel.UUID
	toBranch   kernel.UUID
	status     Status
	senderRef  string
	receiver   string
	totalAmt   decimal.Decimal
	createdAt  time.Time
	articles   []*Article

	statusUpdatedAt *time.Time
	statusUpdatedBy *kernel.UUID

	guard guard.ConstructorGuard
}

// NewBooking creates a booking in Booked status with no articles yet.
// The LR number must already be reserved by the number generator.
func NewBooking(
	id kernel.UUID,
	lrNumber string,
	orgID kernel.UUID,
	fromBranch kernel.UUID,
	toBranch kernel.UUID,
	senderRef string,
	receiver string,
	totalAmount decimal.Decimal,
	createdAt time.Time,
) (*Booking, error) {
	b := &Booking{
		status:    Booked,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setLRNumber(lrNumber),
		b.setOrgID(orgID),
		b.setBranches(fromBranch, toBranch),
		b.setSenderRef(senderRef),
		b.setReceiver(receiver),
		b.setTotalAmount(totalAmount),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// RestoreBooking reconstructs a booking aggregate from persistent storage
// with its persisted status, stamps, and articles.
func RestoreBooking(
	id kernel.UUID,
	lrNumber string,
	orgID kernel.UUID,
	fromBranch kernel.UUID,
	toBranch kernel.UUID,
	status Status,
	senderRef string,
	receiver string,
	totalAmount decimal.Decimal,
	createdAt time.Time,
	statusUpdatedAt *time.Time,
	statusUpdatedBy *kernel.UUID,
	articles []*Article,
) (*Booking, error) {
	b := &Booking{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setLRNumber(lrNumber),
		b.setOrgID(orgID),
		b.setBranches(fromBranch, toBranch),
		b.setSenderRef(senderRef),
		b.setReceiver(receiver),
		b.setTotalAmount(totalAmount),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	for _, article := range articles {
		if err := article.Validate(); err != nil {
			return nil, err
		}
	}

	b.status = status
	b.statusUpdatedAt = statusUpdatedAt
	b.statusUpdatedBy = statusUpdatedBy
	b.articles = articles
	return b, nil
}

// Validate ensures the booking was created through a constructor.
func (b *Booking) Validate() error {
	if b == nil {
		return ErrBookingIsNotConstructed
	}
	return b.guard.Validate(ErrBookingIsNotConstructed)
}

// IsEqual compares two bookings by identifier.
func (b *Booking) IsEqual(other *Booking) bool {
	return other != nil && b.id.IsEqual(other.id)
}

// ID returns the booking's unique identifier.
func (b *Booking) ID() kernel.UUID {
	return b.id
}

// LRNumber returns the consignment (lorry receipt) number.
func (b *Booking) LRNumber() string {
	return b.lrNumber
}

// OrgID returns the owning organization.
func (b *Booking) OrgID() kernel.UUID {
	return b.orgID
}

// FromBranch returns the origin branch.
func (b *Booking) FromBranch() kernel.UUID {
	return b.fromBranch
}

// ToBranch returns the destination branch.
func (b *Booking) ToBranch() kernel.UUID {
	return b.toBranch
}

// Status returns the booking's current status.
func (b *Booking) Status() Status {
	return b.status
}

// SenderRef returns the sender reference.
func (b *Booking) SenderRef() string {
	return b.senderRef
}

// Receiver returns the receiver reference.
func (b *Booking) Receiver() string {
	return b.receiver
}

// TotalAmount returns the contracted freight amount.
func (b *Booking) TotalAmount() decimal.Decimal {
	return b.totalAmt
}

// CreatedAt returns the creation time.
func (b *Booking) CreatedAt() time.Time {
	return b.createdAt
}

// StatusUpdatedAt returns when the status last changed, or nil.
func (b *Booking) StatusUpdatedAt() *time.Time {
	return b.statusUpdatedAt
}

// StatusUpdatedBy returns who last changed the status, or nil.
func (b *Booking) StatusUpdatedBy() *kernel.UUID {
	return b.statusUpdatedBy
}

// Articles returns the booking's line items. The slice is a copy; the
// articles themselves are aggregate-owned and must only be mutated through
// Booking methods.
func (b *Booking) Articles() []*Article {
	out := make([]*Article, len(b.articles))
	copy(out, b.articles)
	return out
}

// AddArticle appends a new line item. Articles may only be added while the
// booking is still in Booked status with nothing loaded; after that the
// manifest paperwork depends on the line items staying fixed.
func (b *Booking) AddArticle(id kernel.UUID, articleType string, quantity int, weightKg decimal.Decimal) error {
	if b.status != Booked || b.HasLoadedArticles() {
		return errs.NewStateConflictError("booking",
			fmt.Sprintf("cannot add articles to booking %s in status %s", b.lrNumber, b.status))
	}

	article, err := NewArticle(id, b.id, articleType, quantity, weightKg)
	if err != nil {
		return err
	}

	b.articles = append(b.articles, article)
	return nil
}

// ChangeStatus applies a status transition on behalf of an actor.
// Actor scoping is enforced before the transition table is consulted:
// operators must belong to the booking's origin or destination branch, admins
// to its organization. On success the new status and actor/time stamps are
// recorded and the booking's articles follow the transition: reaching Unloaded
// takes every loaded article off its trip, reaching Delivered finalizes every
// unloaded one. The caller persists the aggregate and appends the audit event.
func (b *Booking) ChangeStatus(to Status, wctx WorkflowContext, actor auth.Actor, at time.Time) error {
	if err := actor.CanAccessBranches(b.orgID, b.fromBranch, b.toBranch); err != nil {
		return err
	}

	newStatus, err := b.status.TransitionTo(to, wctx)
	if err != nil {
		return err
	}

	if err = b.cascadeToArticles(newStatus); err != nil {
		return err
	}

	b.applyStatus(newStatus, actor.UserID(), at)
	return nil
}

// cascadeToArticles keeps article state consistent with the booking status:
// a booking cannot report its cargo off the vehicle while articles still sit
// on the trip manifest.
func (b *Booking) cascadeToArticles(to Status) error {
	switch to {
	case Unloaded:
		for _, article := range b.articles {
			if article.Status() != ArticleLoaded {
				continue
			}
			if err := article.MarkUnloadedAtDestination(); err != nil {
				return err
			}
		}
	case Delivered:
		for _, article := range b.articles {
			if article.Status() != ArticleUnloaded {
				continue
			}
			if err := article.MarkDelivered(); err != nil {
				return err
			}
		}
	}
	return nil
}

// TotalWeightKg sums the weight of all articles.
func (b *Booking) TotalWeightKg() decimal.Decimal {
	total := decimal.Zero
	for _, article := range b.articles {
		total = total.Add(article.WeightKg())
	}
	return total
}

// PendingWeightKg sums the weight of articles that are not yet loaded on the
// given trip. This is the candidate weight a load operation would add.
func (b *Booking) PendingWeightKg(tripID kernel.UUID) decimal.Decimal {
	total := decimal.Zero
	for _, article := range b.articles {
		if !article.IsLoadedOn(tripID) {
			total = total.Add(article.WeightKg())
		}
	}
	return total
}

// ArticlesOnOtherTrip returns the articles currently loaded on a trip other
// than the given one. Any such article blocks loading the booking.
func (b *Booking) ArticlesOnOtherTrip(tripID kernel.UUID) []*Article {
	var out []*Article
	for _, article := range b.articles {
		if article.Status() == ArticleLoaded && !article.IsLoadedOn(tripID) {
			out = append(out, article)
		}
	}
	return out
}

// IsLoadableOnto reports why the booking as a whole cannot join the given
// trip, or nil when it can. Article-level conflicts are reported separately
// by ArticlesOnOtherTrip so the caller can accumulate every violation.
func (b *Booking) IsLoadableOnto(tripID kernel.UUID) error {
	switch b.status {
	case Booked:
		return nil
	case InTransit:
		// A booking already in transit may only be touched by the trip
		// actually carrying it (complete reloads after corrections).
		if len(b.ArticlesOnOtherTrip(tripID)) == 0 {
			return nil
		}
		return errs.NewStateConflictError("booking",
			fmt.Sprintf("booking %s is in transit on another trip", b.lrNumber))
	default:
		return errs.NewStateConflictError("booking",
			fmt.Sprintf("booking %s in status %s cannot be loaded", b.lrNumber, b.status))
	}
}

// LoadArticlesOnto loads every article not already sitting on the given trip
// and returns the newly loaded ones. When this leaves all articles loaded,
// the caller drives the booking through ChangeStatus(InTransit, loading).
func (b *Booking) LoadArticlesOnto(tripID, userID kernel.UUID, at time.Time) ([]*Article, error) {
	var loaded []*Article
	for _, article := range b.articles {
		if article.IsLoadedOn(tripID) {
			continue
		}
		if err := article.Load(tripID, userID, at); err != nil {
			return nil, err
		}
		loaded = append(loaded, article)
	}
	return loaded, nil
}

// AllArticlesLoadedOn reports whether every article sits on the given trip.
func (b *Booking) AllArticlesLoadedOn(tripID kernel.UUID) bool {
	if len(b.articles) == 0 {
		return false
	}
	for _, article := range b.articles {
		if !article.IsLoadedOn(tripID) {
			return false
		}
	}
	return true
}

// HasLoadedArticles reports whether any article is linked to a trip.
func (b *Booking) HasLoadedArticles() bool {
	for _, article := range b.articles {
		if article.Status() == ArticleLoaded {
			return true
		}
	}
	return false
}

// UnloadArticlesFrom detaches articles from the given trip and returns the
// detached ones. With no ids given, every article on the trip is unloaded;
// otherwise only the named ones. An id naming an article that is not on the
// trip is a state conflict.
func (b *Booking) UnloadArticlesFrom(tripID kernel.UUID, articleIDs []kernel.UUID) ([]*Article, error) {
	var targets []*Article
	if len(articleIDs) == 0 {
		for _, article := range b.articles {
			if article.IsLoadedOn(tripID) {
				targets = append(targets, article)
			}
		}
	} else {
		for _, id := range articleIDs {
			article := b.findArticle(id)
			if article == nil {
				return nil, errs.NewObjectNotFoundError("article", id.String())
			}
			targets = append(targets, article)
		}
	}

	for _, article := range targets {
		if err := article.Unload(tripID); err != nil {
			return nil, err
		}
	}
	return targets, nil
}

// RevertToBooked returns the booking to Booked after all of its articles were
// unlinked from trips. This is the workflow reversal of loading, performed by
// the orchestrator; it is deliberately not part of the forward transition
// table, which only records progress toward delivery.
func (b *Booking) RevertToBooked(actor auth.Actor, at time.Time) error {
	if err := actor.CanAccessBranches(b.orgID, b.fromBranch, b.toBranch); err != nil {
		return err
	}
	if b.status.IsTerminal() {
		return &InvalidTransitionError{From: b.status, To: Booked}
	}
	if b.HasLoadedArticles() {
		return errs.NewStateConflictError("booking",
			fmt.Sprintf("booking %s still has loaded articles", b.lrNumber))
	}

	b.applyStatus(Booked, actor.UserID(), at)
	return nil
}

func (b *Booking) applyStatus(status Status, by kernel.UUID, at time.Time) {
	b.status = status
	b.statusUpdatedAt = &at
	b.statusUpdatedBy = &by
}

func (b *Booking) findArticle(id kernel.UUID) *Article {
	for _, article := range b.articles {
		if article.ID().IsEqual(id) {
			return article
		}
	}
	return nil
}

func (b *Booking) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Booking) setLRNumber(lrNumber string) error {
	if lrNumber == "" {
		return ErrLRNumberIsRequired
	}
	b.lrNumber = lrNumber
	return nil
}

func (b *Booking) setOrgID(orgID kernel.UUID) error {
	if err := orgID.Validate(); err != nil {
		return err
	}
	b.orgID = orgID
	return nil
}

func (b *Booking) setBranches(fromBranch, toBranch kernel.UUID) error {
	if err := fromBranch.Validate(); err != nil {
		return err
	}
	if err := toBranch.Validate(); err != nil {
		return err
	}
	if fromBranch.IsEqual(toBranch) {
		return ErrSameBranch
	}
	b.fromBranch = fromBranch
	b.toBranch = toBranch
	return nil
}

func (b *Booking) setSenderRef(senderRef string) error {
	if senderRef == "" {
		return ErrSenderIsRequired
	}
	b.senderRef = senderRef
	return nil
}

func (b *Booking) setReceiver(receiver string) error {
	if receiver == "" {
		return ErrReceiverIsRequired
	}
	b.receiver = receiver
	return nil
}

func (b *Booking) setTotalAmount(totalAmount decimal.Decimal) error {
	if totalAmount.IsNegative() {
		return ErrAmountIsInvalid
	}
	b.totalAmt = totalAmount
	return nil
}
