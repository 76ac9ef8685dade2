package commands_test

import (
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateTripCommand_ValidInput(t *testing.T) {
	f := newWorkflowFixture(t)
	tripID := kernel.NewUUID()
	transitDate := time.Now().AddDate(0, 0, 1)
	driver := trip.DriverInfo{PrimaryName: "R. Kumar", PrimaryMobile: "9820098200"}

	cmd, err := commands.NewCreateTripCommand(
		tripID, f.vehicleID, f.fromBranch, f.toBranch, transitDate,
		driver, "night departure", "SEAL-042", f.actor,
	)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.True(t, cmd.TripID().IsEqual(tripID))
	assert.True(t, cmd.VehicleID().IsEqual(f.vehicleID))
	assert.Equal(t, transitDate, cmd.TransitDate())
	assert.Equal(t, "R. Kumar", cmd.Driver().PrimaryName)
	assert.Equal(t, "SEAL-042", cmd.SealNumber())
}

func TestNewCreateTripCommand_InvalidInput(t *testing.T) {
	f := newWorkflowFixture(t)
	driver := trip.DriverInfo{PrimaryName: "R. Kumar", PrimaryMobile: "9820098200"}

	t.Run("should fail without a transit date", func(t *testing.T) {
		_, err := commands.NewCreateTripCommand(
			kernel.NewUUID(), f.vehicleID, f.fromBranch, f.toBranch, time.Time{},
			driver, "", "", f.actor,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrTransitDateIsRequired)
	})

	t.Run("should fail with a zero-value vehicle id", func(t *testing.T) {
		_, err := commands.NewCreateTripCommand(
			kernel.NewUUID(), kernel.UUID{}, f.fromBranch, f.toBranch, time.Now(),
			driver, "", "", f.actor,
		)

		require.Error(t, err)
	})

	t.Run("should fail without primary driver details", func(t *testing.T) {
		_, err := commands.NewCreateTripCommand(
			kernel.NewUUID(), f.vehicleID, f.fromBranch, f.toBranch, time.Now(),
			trip.DriverInfo{}, "", "", f.actor,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, trip.ErrDriverNameIsRequired)
	})
}

func TestCreateTripCommand_ZeroValueFailsValidation(t *testing.T) {
	var cmd commands.CreateTripCommand

	require.Error(t, cmd.Validate())
}
