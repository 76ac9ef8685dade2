package booking

import (
	"errors"
	"fmt"

	"freight/internal/pkg/errs"
)

// Status represents the lifecycle state of a booking.
// It implements a state machine whose transitions are additionally gated by a
// workflow context: a transition can be legal in principle yet still rejected
// because the caller is performing it from the wrong workflow.
//
// State transitions:
//
//	booked ──> in_transit ──> unloaded ──> out_for_delivery ──> delivered ──> pod_received
//	   │            │             │               │
//	   └────────────┴─────────────┴───────────────┴──────> cancelled
//
// delivered, pod_received, and cancelled are terminal, except for the single
// delivered -> pod_received step.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	UnknownStatus Status = iota

	// Booked is the initial status when a booking is created.
	Booked

	// InTransit indicates every article of the booking is loaded on a trip.
	InTransit

	// Unloaded indicates the cargo arrived and was taken off the vehicle
	// at the destination station.
	Unloaded

	// OutForDelivery indicates last-mile delivery is underway.
	OutForDelivery

	// Delivered indicates the consignment reached the receiver.
	Delivered

	// PODReceived indicates the signed proof of delivery is back on file.
	PODReceived

	// CancelledStatus indicates the booking was cancelled before delivery.
	CancelledStatus
)

// WorkflowContext tags which operational workflow is authorizing a requested
// status change. The transition table binds each legal transition to the one
// context allowed to perform it, so a delivery screen cannot drive a loading
// transition even though the transition itself is in the table.
type WorkflowContext int

const (
	// UnknownContext catches uninitialized WorkflowContext values.
	UnknownContext WorkflowContext = iota

	// ContextLoading authorizes transitions performed by vehicle loading.
	ContextLoading

	// ContextUnloading authorizes transitions performed by unloading.
	ContextUnloading

	// ContextDelivery authorizes delivery-leg transitions.
	ContextDelivery

	// ContextCancellation authorizes cancellation from any non-terminal state.
	ContextCancellation
)

// Distinct rejection kinds for status changes. Callers must be able to tell
// "this transition can never happen" from "you used the wrong workflow":
// the former is a protocol violation, the latter a caller-discipline one.
var (
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrWrongWorkflowContext = errors.New("wrong workflow context")
)

// InvalidTransitionError reports a (from, to) pair absent from the
// transition table.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// WrongWorkflowContextError reports a table-legal transition requested under
// the wrong workflow context.
type WrongWorkflowContextError struct {
	From     Status
	To       Status
	Required WorkflowContext
	Given    WorkflowContext
}

func (e *WrongWorkflowContextError) Error() string {
	return fmt.Sprintf("%s: %s -> %s requires context %s, got %s",
		ErrWrongWorkflowContext, e.From, e.To, e.Required, e.Given)
}

func (e *WrongWorkflowContextError) Unwrap() error {
	return ErrWrongWorkflowContext
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus:   "unknown",
		Booked:          "booked",
		InTransit:       "in_transit",
		Unloaded:        "unloaded",
		OutForDelivery:  "out_for_delivery",
		Delivered:       "delivered",
		PODReceived:     "pod_received",
		CancelledStatus: "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // UnknownStatus is intentionally excluded as it's invalid
	return map[Status]string{
		Booked:          "booked",
		InTransit:       "in_transit",
		Unloaded:        "unloaded",
		OutForDelivery:  "out_for_delivery",
		Delivered:       "delivered",
		PODReceived:     "pod_received",
		CancelledStatus: "cancelled",
	}
}

// StatusFromString parses a status received at the request boundary.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// String implements fmt.Stringer. Safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate rejects UnknownStatus and out-of-range values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether the status admits no further transitions,
// except the delivered -> pod_received step.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == PODReceived || s == CancelledStatus
}

func getContextStrings() map[WorkflowContext]string {
	return map[WorkflowContext]string{
		UnknownContext:      "unknown",
		ContextLoading:      "loading",
		ContextUnloading:    "unloading",
		ContextDelivery:     "delivery",
		ContextCancellation: "cancellation",
	}
}

// ContextFromString parses a workflow context received at the request
// boundary. Unrecognized tags parse successfully into UnknownContext so the
// state machine rejects them as a context mismatch rather than a malformed
// request: using a wrong tag is a caller-discipline problem, not a syntax one.
func ContextFromString(s string) WorkflowContext {
	for wctx, str := range getContextStrings() {
		if wctx != UnknownContext && str == s {
			return wctx
		}
	}
	return UnknownContext
}

// String implements fmt.Stringer.
func (c WorkflowContext) String() string {
	if str, ok := getContextStrings()[c]; ok {
		return str
	}
	return "unknown"
}

// transition is a (from, to) key into the transition table.
type transition struct {
	from Status
	to   Status
}

// getTransitionTable returns every legal forward transition and the workflow
// context required to perform it. Cancellation is handled separately because
// it is reachable from every non-terminal state.
func getTransitionTable() map[transition]WorkflowContext {
	return map[transition]WorkflowContext{
		{Booked, InTransit}:         ContextLoading,
		{InTransit, Unloaded}:       ContextUnloading,
		{Unloaded, OutForDelivery}:  ContextDelivery,
		{OutForDelivery, Delivered}: ContextDelivery,
		{Delivered, PODReceived}:    ContextDelivery,
	}
}

// TransitionTo validates the transition s -> to under the given workflow
// context and returns the new status.
//
// Returns:
//   - (to, nil) when the transition is in the table and the context matches
//   - (0, *InvalidTransitionError) when the pair is not in the table
//   - (0, *WrongWorkflowContextError) when the pair is legal but the
//     supplied context is not the one the table requires
func (s Status) TransitionTo(to Status, wctx WorkflowContext) (Status, error) {
	if err := to.Validate(); err != nil {
		return 0, err
	}

	if to == CancelledStatus {
		if s.IsTerminal() {
			return 0, &InvalidTransitionError{From: s, To: to}
		}
		if wctx != ContextCancellation {
			return 0, &WrongWorkflowContextError{From: s, To: to, Required: ContextCancellation, Given: wctx}
		}
		return CancelledStatus, nil
	}

	required, ok := getTransitionTable()[transition{from: s, to: to}]
	if !ok {
		return 0, &InvalidTransitionError{From: s, To: to}
	}
	if wctx != required {
		return 0, &WrongWorkflowContextError{From: s, To: to, Required: required, Given: wctx}
	}

	return to, nil
}
