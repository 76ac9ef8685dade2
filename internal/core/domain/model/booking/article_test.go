package booking_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArticle(t *testing.T) {
	validID := kernel.NewUUID()
	bookingID := kernel.NewUUID()
	weight := decimal.NewFromInt(120)

	t.Run("should create article in booked status", func(t *testing.T) {
		a, err := booking.NewArticle(validID, bookingID, "cartons", 5, weight)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.Equal(t, booking.ArticleBooked, a.Status())
		assert.Equal(t, "cartons", a.ArticleType())
		assert.Equal(t, 5, a.Quantity())
		assert.True(t, weight.Equal(a.WeightKg()))
		assert.Nil(t, a.OGPLID())
		assert.Nil(t, a.LoadedAt())
		assert.Nil(t, a.LoadedBy())
	})

	t.Run("should fail with empty article type", func(t *testing.T) {
		_, err := booking.NewArticle(validID, bookingID, "", 5, weight)

		require.Error(t, err)
		assert.ErrorIs(t, err, booking.ErrArticleTypeIsRequired)
	})

	t.Run("should fail with zero quantity", func(t *testing.T) {
		_, err := booking.NewArticle(validID, bookingID, "cartons", 0, weight)

		require.Error(t, err)
		assert.ErrorIs(t, err, booking.ErrQuantityIsInvalid)
	})

	t.Run("should fail with non-positive weight", func(t *testing.T) {
		_, err := booking.NewArticle(validID, bookingID, "cartons", 5, decimal.Zero)
		require.Error(t, err)
		assert.ErrorIs(t, err, booking.ErrWeightIsInvalid)

		_, err = booking.NewArticle(validID, bookingID, "cartons", 5, decimal.NewFromInt(-3))
		require.Error(t, err)
		assert.ErrorIs(t, err, booking.ErrWeightIsInvalid)
	})

	t.Run("should fail with zero-value ids", func(t *testing.T) {
		_, err := booking.NewArticle(kernel.UUID{}, bookingID, "cartons", 5, weight)
		require.Error(t, err)

		_, err = booking.NewArticle(validID, kernel.UUID{}, "cartons", 5, weight)
		require.Error(t, err)
	})
}

func TestArticle_LoadUnload(t *testing.T) {
	newArticle := func(t *testing.T) *booking.Article {
		t.Helper()
		a, err := booking.NewArticle(kernel.NewUUID(), kernel.NewUUID(), "bags", 10, decimal.NewFromInt(50))
		require.NoError(t, err)
		return a
	}

	tripID := kernel.NewUUID()
	userID := kernel.NewUUID()
	now := time.Now()

	t.Run("should load onto a trip and stamp who and when", func(t *testing.T) {
		a := newArticle(t)

		require.NoError(t, a.Load(tripID, userID, now))

		assert.Equal(t, booking.ArticleLoaded, a.Status())
		require.NotNil(t, a.OGPLID())
		assert.True(t, a.OGPLID().IsEqual(tripID))
		assert.True(t, a.IsLoadedOn(tripID))
		require.NotNil(t, a.LoadedAt())
		assert.True(t, a.LoadedAt().Equal(now))
		require.NotNil(t, a.LoadedBy())
		assert.True(t, a.LoadedBy().IsEqual(userID))
	})

	t.Run("should be idempotent when reloading onto the same trip", func(t *testing.T) {
		a := newArticle(t)
		require.NoError(t, a.Load(tripID, userID, now))

		require.NoError(t, a.Load(tripID, userID, now.Add(time.Minute)))
		assert.True(t, a.IsLoadedOn(tripID))
	})

	t.Run("should reject loading onto a second trip", func(t *testing.T) {
		a := newArticle(t)
		require.NoError(t, a.Load(tripID, userID, now))

		err := a.Load(kernel.NewUUID(), userID, now)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrStateConflict)
		assert.True(t, a.IsLoadedOn(tripID), "original trip link must survive")
	})

	t.Run("should reject loading with an invalid trip or user id", func(t *testing.T) {
		a := newArticle(t)

		require.Error(t, a.Load(kernel.UUID{}, userID, now))
		require.Error(t, a.Load(tripID, kernel.UUID{}, now))
		assert.Equal(t, booking.ArticleBooked, a.Status())
	})

	t.Run("should unload and clear the trip link", func(t *testing.T) {
		a := newArticle(t)
		require.NoError(t, a.Load(tripID, userID, now))

		require.NoError(t, a.Unload(tripID))

		assert.Equal(t, booking.ArticleBooked, a.Status())
		assert.Nil(t, a.OGPLID())
		assert.Nil(t, a.LoadedAt())
		assert.Nil(t, a.LoadedBy())
		assert.False(t, a.IsLoadedOn(tripID))
	})

	t.Run("should reject unloading from the wrong trip", func(t *testing.T) {
		a := newArticle(t)
		require.NoError(t, a.Load(tripID, userID, now))

		err := a.Unload(kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrStateConflict)
	})

	t.Run("should reject unloading an article that is not loaded", func(t *testing.T) {
		a := newArticle(t)

		err := a.Unload(tripID)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrStateConflict)
	})
}

func TestArticle_DeliveryLeg(t *testing.T) {
	tripID := kernel.NewUUID()
	userID := kernel.NewUUID()
	now := time.Now()

	loaded := func(t *testing.T) *booking.Article {
		t.Helper()
		a, err := booking.NewArticle(kernel.NewUUID(), kernel.NewUUID(), "drums", 2, decimal.NewFromInt(200))
		require.NoError(t, err)
		require.NoError(t, a.Load(tripID, userID, now))
		return a
	}

	t.Run("should mark a loaded article unloaded at destination", func(t *testing.T) {
		a := loaded(t)

		require.NoError(t, a.MarkUnloadedAtDestination())

		assert.Equal(t, booking.ArticleUnloaded, a.Status())
		assert.Nil(t, a.OGPLID())
	})

	t.Run("should deliver only from unloaded", func(t *testing.T) {
		a := loaded(t)
		require.Error(t, a.MarkDelivered())

		require.NoError(t, a.MarkUnloadedAtDestination())
		require.NoError(t, a.MarkDelivered())
		assert.Equal(t, booking.ArticleDelivered, a.Status())
	})

	t.Run("delivered article is immutable", func(t *testing.T) {
		a := loaded(t)
		require.NoError(t, a.MarkUnloadedAtDestination())
		require.NoError(t, a.MarkDelivered())

		require.Error(t, a.Load(tripID, userID, now))
		require.Error(t, a.MarkDelivered())
		require.Error(t, a.MarkUnloadedAtDestination())
	})
}

func TestRestoreArticle(t *testing.T) {
	id := kernel.NewUUID()
	bookingID := kernel.NewUUID()
	tripID := kernel.NewUUID()
	userID := kernel.NewUUID()
	now := time.Now()
	weight := decimal.NewFromInt(75)

	t.Run("should restore a loaded article with its trip link", func(t *testing.T) {
		a, err := booking.RestoreArticle(
			id, bookingID, "crates", 3, weight,
			booking.ArticleLoaded, &tripID, &now, &userID,
		)

		require.NoError(t, err)
		assert.True(t, a.IsLoadedOn(tripID))
	})

	t.Run("should reject loaded status without a trip link", func(t *testing.T) {
		_, err := booking.RestoreArticle(
			id, bookingID, "crates", 3, weight,
			booking.ArticleLoaded, nil, &now, &userID,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject a trip link on an unloaded article", func(t *testing.T) {
		_, err := booking.RestoreArticle(
			id, bookingID, "crates", 3, weight,
			booking.ArticleBooked, &tripID, nil, nil,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject an invalid persisted status", func(t *testing.T) {
		_, err := booking.RestoreArticle(
			id, bookingID, "crates", 3, weight,
			booking.UnknownArticleStatus, nil, nil, nil,
		)

		require.Error(t, err)
	})
}

func TestArticleStatus_String(t *testing.T) {
	assert.Equal(t, "booked", booking.ArticleBooked.String())
	assert.Equal(t, "loaded", booking.ArticleLoaded.String())
	assert.Equal(t, "unloaded", booking.ArticleUnloaded.String())
	assert.Equal(t, "delivered", booking.ArticleDelivered.String())
	assert.Equal(t, "unknown", booking.UnknownArticleStatus.String())
}
