package commands

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/auth"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// TripAction names a trip lifecycle step requested by an operator.
type TripAction int

const (
	// UnknownTripAction catches uninitialized TripAction values.
	UnknownTripAction TripAction = iota

	// DispatchTrip sends the loaded vehicle out.
	DispatchTrip

	// CompleteTrip closes the leg after arrival.
	CompleteTrip

	// CancelTrip abandons the manifest.
	CancelTrip
)

func getTripActionStrings() map[TripAction]string {
	return map[TripAction]string{
		UnknownTripAction: "unknown",
		DispatchTrip:      "dispatch",
		CompleteTrip:      "complete",
		CancelTrip:        "cancel",
	}
}

// TripActionFromString parses an action received at the request boundary.
func TripActionFromString(s string) (TripAction, error) {
	for action, str := range getTripActionStrings() {
		if action != UnknownTripAction && str == s {
			return action, nil
		}
	}
	return UnknownTripAction, errs.NewValueIsInvalidErrorWithCause("action",
		fmt.Errorf("%q is not a valid trip action", s))
}

// String implements fmt.Stringer.
func (a TripAction) String() string {
	if s, ok := getTripActionStrings()[a]; ok {
		return s
	}
	return "unknown"
}

// Validate rejects UnknownTripAction and out-of-range values.
func (a TripAction) Validate() error {
	if a != DispatchTrip && a != CompleteTrip && a != CancelTrip {
		return errs.NewValueIsInvalidErrorWithCause("action",
			fmt.Errorf("%d is not a valid trip action", a))
	}
	return nil
}

var ErrChangeTripStatusCommandIsNotConstructed = errors.New(
	"ChangeTripStatusCommand must be created via NewChangeTripStatusCommand constructor",
)

// ChangeTripStatusCommand represents a request to advance or abandon a trip.
type ChangeTripStatusCommand struct { //nolint:recvcheck //using for validation
	tripID kernel.UUID
	action TripAction
	actor  auth.Actor

	guard guard.ConstructorGuard
}

// NewChangeTripStatusCommand creates a validated trip lifecycle command.
func NewChangeTripStatusCommand(
	tripID kernel.UUID,
	action TripAction,
	actor auth.Actor,
) (ChangeTripStatusCommand, error) {
	cmd := ChangeTripStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTripID(tripID),
		action.Validate(),
		actor.Validate(),
	); err != nil {
		return ChangeTripStatusCommand{}, err
	}

	cmd.action = action
	cmd.actor = actor
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeTripStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeTripStatusCommandIsNotConstructed)
}

// TripID returns the trip to act on.
func (c ChangeTripStatusCommand) TripID() kernel.UUID { return c.tripID }

// Action returns the requested lifecycle step.
func (c ChangeTripStatusCommand) Action() TripAction { return c.action }

// Actor returns the authorization context.
func (c ChangeTripStatusCommand) Actor() auth.Actor { return c.actor }

func (c *ChangeTripStatusCommand) setTripID(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}
	c.tripID = tripID
	return nil
}
