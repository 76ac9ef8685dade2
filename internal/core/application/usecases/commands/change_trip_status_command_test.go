package commands_test

import (
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/auth"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripActionFromString(t *testing.T) {
	t.Run("should parse all actions", func(t *testing.T) {
		for _, name := range []string{"dispatch", "complete", "cancel"} {
			action, err := commands.TripActionFromString(name)

			require.NoError(t, err, name)
			assert.Equal(t, name, action.String())
			assert.NoError(t, action.Validate())
		}
	})

	t.Run("should reject unrecognized action", func(t *testing.T) {
		_, err := commands.TripActionFromString("depart")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject empty string", func(t *testing.T) {
		_, err := commands.TripActionFromString("")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail validation of zero value action", func(t *testing.T) {
		var action commands.TripAction

		require.Error(t, action.Validate())
		assert.Equal(t, "unknown", action.String())
	})
}

func TestNewChangeTripStatusCommand(t *testing.T) {
	f := newWorkflowFixture(t)

	t.Run("should create command with valid parameters", func(t *testing.T) {
		tripID := kernel.NewUUID()

		cmd, err := commands.NewChangeTripStatusCommand(tripID, commands.DispatchTrip, f.actor)

		require.NoError(t, err)
		assert.Equal(t, tripID, cmd.TripID())
		assert.Equal(t, commands.DispatchTrip, cmd.Action())
		assert.Equal(t, f.actor, cmd.Actor())
		assert.NoError(t, cmd.Validate())
	})

	t.Run("should fail when trip id is not constructed", func(t *testing.T) {
		_, err := commands.NewChangeTripStatusCommand(kernel.UUID{}, commands.CancelTrip, f.actor)

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should fail when action is unknown", func(t *testing.T) {
		_, err := commands.NewChangeTripStatusCommand(kernel.NewUUID(), commands.UnknownTripAction, f.actor)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail when actor is not constructed", func(t *testing.T) {
		_, err := commands.NewChangeTripStatusCommand(kernel.NewUUID(), commands.CompleteTrip, auth.Actor{})

		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrActorIsNotConstructed)
	})

	t.Run("should fail validation of zero value command", func(t *testing.T) {
		var cmd commands.ChangeTripStatusCommand

		err := cmd.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrChangeTripStatusCommandIsNotConstructed)
	})
}
