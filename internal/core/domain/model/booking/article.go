package booking

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ArticleStatus represents the lifecycle state of one article (package)
// within a booking. Articles move between trips independently of each other;
// the parent booking's status is derived from them.
type ArticleStatus int

const (
	// UnknownArticleStatus catches uninitialized ArticleStatus values.
	UnknownArticleStatus ArticleStatus = iota

	// ArticleBooked means the article is not linked to any trip.
	ArticleBooked

	// ArticleLoaded means the article sits on a vehicle manifest (OGPL).
	ArticleLoaded

	// ArticleUnloaded means the article was taken off at the destination.
	ArticleUnloaded

	// ArticleDelivered means the article reached the receiver. Immutable.
	ArticleDelivered
)

func getArticleStatusStrings() map[ArticleStatus]string {
	return map[ArticleStatus]string{
		UnknownArticleStatus: "unknown",
		ArticleBooked:        "booked",
		ArticleLoaded:        "loaded",
		ArticleUnloaded:      "unloaded",
		ArticleDelivered:     "delivered",
	}
}

// String implements fmt.Stringer.
func (s ArticleStatus) String() string {
	if str, ok := getArticleStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate rejects UnknownArticleStatus and out-of-range values.
func (s ArticleStatus) Validate() error {
	if s < ArticleBooked || s > ArticleDelivered {
		return errs.NewValueIsInvalidErrorWithCause("article status",
			fmt.Errorf("%d is not a valid article status", s))
	}
	return nil
}

// Article domain errors.
var (
	// ErrArticleIsNotConstructed is returned when using an improperly
	// initialized Article.
	ErrArticleIsNotConstructed = errors.New("Article must be created via NewArticle constructor")
	// ErrArticleTypeIsRequired is returned for an empty article type.
	ErrArticleTypeIsRequired = errs.NewValueIsRequiredError("article type")
	// ErrQuantityIsInvalid is returned for a non-positive quantity.
	ErrQuantityIsInvalid = errs.NewValueIsInvalidError("quantity must be greater than 0")
	// ErrWeightIsInvalid is returned for a non-positive weight.
	ErrWeightIsInvalid = errs.NewValueIsInvalidError("weight must be greater than 0")
)

// Article is one line item within a booking: a package or bundle that can be
// loaded onto and unloaded from vehicle trips independently.
//
// Invariant: ogplID is non-nil exactly while the article status is
// ArticleLoaded. Construction, restoration, and every mutation preserve it.
type Article struct {
	id          kernel.UUID
	bookingID   kernel.UUID
	articleType string
	quantity    int
	weightKg    decimal.Decimal
	status      ArticleStatus
	ogplID      *kernel.UUID
	loadedAt    *time.Time
	loadedBy    *kernel.UUID

	guard guard.ConstructorGuard
}

// NewArticle creates an article in ArticleBooked status, not linked to any trip.
func NewArticle(
	id kernel.UUID,
	bookingID kernel.UUID,
	articleType string,
	quantity int,
	weightKg decimal.Decimal,
) (*Article, error) {
	article := &Article{
		status: ArticleBooked,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		article.setID(id),
		article.setBookingID(bookingID),
		article.setArticleType(articleType),
		article.setQuantity(quantity),
		article.setWeightKg(weightKg),
	); err != nil {
		return nil, err
	}

	return article, nil
}

// RestoreArticle reconstructs an article from persistent storage, including
// its loading state. The ogplID-iff-loaded invariant is revalidated so a
// corrupted row cannot produce an inconsistent entity.
func RestoreArticle(
	id kernel.UUID,
	bookingID kernel.UUID,
	articleType string,
	quantity int,
	weightKg decimal.Decimal,
	status ArticleStatus,
	ogplID *kernel.UUID,
	loadedAt *time.Time,
	loadedBy *kernel.UUID,
) (*Article, error) {
	article := &Article{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		article.setID(id),
		article.setBookingID(bookingID),
		article.setArticleType(articleType),
		article.setQuantity(quantity),
		article.setWeightKg(weightKg),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if (status == ArticleLoaded) != (ogplID != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("article",
			fmt.Errorf("status %s is inconsistent with trip link", status))
	}

	article.status = status
	article.ogplID = ogplID
	article.loadedAt = loadedAt
	article.loadedBy = loadedBy
	return article, nil
}

// Validate ensures the article was created through a constructor.
func (a *Article) Validate() error {
	if a == nil {
		return ErrArticleIsNotConstructed
	}
	return a.guard.Validate(ErrArticleIsNotConstructed)
}

// ID returns the article's unique identifier.
func (a *Article) ID() kernel.UUID {
	return a.id
}

// BookingID returns the parent booking's identifier.
func (a *Article) BookingID() kernel.UUID {
	return a.bookingID
}

// ArticleType returns the cargo type description.
func (a *Article) ArticleType() string {
	return a.articleType
}

// Quantity returns the number of packages in the line item.
func (a *Article) Quantity() int {
	return a.quantity
}

// WeightKg returns the article weight in kilograms.
func (a *Article) WeightKg() decimal.Decimal {
	return a.weightKg
}

// Status returns the article's current status.
func (a *Article) Status() ArticleStatus {
	return a.status
}

// OGPLID returns the trip the article is loaded on, or nil when it is not
// loaded anywhere.
func (a *Article) OGPLID() *kernel.UUID {
	return a.ogplID
}

// LoadedAt returns when the article was loaded, or nil.
func (a *Article) LoadedAt() *time.Time {
	return a.loadedAt
}

// LoadedBy returns who loaded the article, or nil.
func (a *Article) LoadedBy() *kernel.UUID {
	return a.loadedBy
}

// IsLoadedOn reports whether the article is currently loaded on the given trip.
func (a *Article) IsLoadedOn(tripID kernel.UUID) bool {
	return a.status == ArticleLoaded && a.ogplID != nil && a.ogplID.IsEqual(tripID)
}

// Load links the article to a trip, marking it loaded and stamping who and
// when. Rejected while the article sits on a different trip or is delivered.
func (a *Article) Load(tripID, userID kernel.UUID, at time.Time) error {
	if err := tripID.Validate(); err != nil {
		return err
	}
	if err := userID.Validate(); err != nil {
		return err
	}

	if a.status == ArticleDelivered {
		return errs.NewStateConflictError("article", "delivered article is immutable")
	}
	if a.status == ArticleLoaded && !a.ogplID.IsEqual(tripID) {
		return errs.NewStateConflictError("article",
			fmt.Sprintf("article %s is already loaded on trip %s", a.id, a.ogplID))
	}

	a.status = ArticleLoaded
	a.ogplID = &tripID
	a.loadedAt = &at
	a.loadedBy = &userID
	return nil
}

// Unload detaches the article from the given trip, clearing the trip link and
// returning the article to ArticleBooked.
func (a *Article) Unload(tripID kernel.UUID) error {
	if !a.IsLoadedOn(tripID) {
		return errs.NewStateConflictError("article",
			fmt.Sprintf("article %s is not loaded on trip %s", a.id, tripID))
	}

	a.status = ArticleBooked
	a.ogplID = nil
	a.loadedAt = nil
	a.loadedBy = nil
	return nil
}

// MarkDelivered finalizes the article. Only unloaded articles can be
// delivered; a delivered article never changes again.
func (a *Article) MarkDelivered() error {
	if a.status != ArticleUnloaded {
		return errs.NewStateConflictError("article",
			fmt.Sprintf("cannot deliver article in status %s", a.status))
	}
	a.status = ArticleDelivered
	return nil
}

// MarkUnloadedAtDestination records arrival at the destination station.
// Unlike Unload, the article remains associated with the completed leg's
// paperwork but is no longer linked to the trip.
func (a *Article) MarkUnloadedAtDestination() error {
	if a.status != ArticleLoaded {
		return errs.NewStateConflictError("article",
			fmt.Sprintf("cannot unload article in status %s", a.status))
	}
	a.status = ArticleUnloaded
	a.ogplID = nil
	a.loadedAt = nil
	a.loadedBy = nil
	return nil
}

func (a *Article) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Article) setBookingID(bookingID kernel.UUID) error {
	if err := bookingID.Validate(); err != nil {
		return err
	}
	a.bookingID = bookingID
	return nil
}

func (a *Article) setArticleType(articleType string) error {
	if articleType == "" {
		return ErrArticleTypeIsRequired
	}
	a.articleType = articleType
	return nil
}

func (a *Article) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}
	a.quantity = quantity
	return nil
}

func (a *Article) setWeightKg(weightKg decimal.Decimal) error {
	if weightKg.LessThanOrEqual(decimal.Zero) {
		return ErrWeightIsInvalid
	}
	a.weightKg = weightKg
	return nil
}
