package logevent_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/logevent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	orgID := kernel.NewUUID()
	entityID := kernel.NewUUID()
	actorID := kernel.NewUUID()
	now := time.Now()

	t.Run("should create event with valid parameters", func(t *testing.T) {
		event, err := logevent.NewEvent(
			orgID, logevent.EntityBooking, entityID, logevent.EventBookingCreated,
			"booking MUM-DES-2024-00001 created", actorID, now,
		)

		require.NoError(t, err)
		assert.NoError(t, event.Validate())
		assert.False(t, event.ID().IsEqual(kernel.UUID{}))
		assert.Equal(t, orgID, event.OrgID())
		assert.Equal(t, logevent.EntityBooking, event.EntityType())
		assert.Equal(t, entityID, event.EntityID())
		assert.Equal(t, logevent.EventBookingCreated, event.EventType())
		assert.Equal(t, "booking MUM-DES-2024-00001 created", event.Detail())
		assert.Equal(t, actorID, event.ActorID())
		assert.Equal(t, now, event.OccurredAt())
	})

	t.Run("should assign unique ids", func(t *testing.T) {
		first, err := logevent.NewEvent(
			orgID, logevent.EntityTrip, entityID, logevent.EventTripCreated, "", actorID, now,
		)
		require.NoError(t, err)
		second, err := logevent.NewEvent(
			orgID, logevent.EntityTrip, entityID, logevent.EventTripCreated, "", actorID, now,
		)
		require.NoError(t, err)

		assert.False(t, first.ID().IsEqual(second.ID()))
	})

	t.Run("should fail when org id is not constructed", func(t *testing.T) {
		_, err := logevent.NewEvent(
			kernel.UUID{}, logevent.EntityBooking, entityID, logevent.EventBookingCreated, "", actorID, now,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should fail when entity type is empty", func(t *testing.T) {
		_, err := logevent.NewEvent(
			orgID, "", entityID, logevent.EventBookingCreated, "", actorID, now,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, logevent.ErrEntityTypeIsRequired)
	})

	t.Run("should fail when event type is empty", func(t *testing.T) {
		_, err := logevent.NewEvent(
			orgID, logevent.EntityArticle, entityID, "", "", actorID, now,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, logevent.ErrEventTypeIsRequired)
	})

	t.Run("should fail when actor id is not constructed", func(t *testing.T) {
		_, err := logevent.NewEvent(
			orgID, logevent.EntityArticle, entityID, logevent.EventArticleLoaded, "", kernel.UUID{}, now,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestEvent_Validate(t *testing.T) {
	t.Run("should fail for nil event", func(t *testing.T) {
		var event *logevent.Event

		err := event.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, logevent.ErrEventIsNotConstructed)
	})

	t.Run("should fail for zero value event", func(t *testing.T) {
		err := (&logevent.Event{}).Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, logevent.ErrEventIsNotConstructed)
	})
}
