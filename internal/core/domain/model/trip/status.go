package trip

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Status represents the lifecycle state of a trip (OGPL).
//
// State transitions:
//
//	created ──> loading ──> in_transit ──> completed
//	   │           │             │
//	   └───────────┴─────────────┴──> cancelled
//
// A trip is editable, meaning articles may be loaded or unloaded, only in
// created or loading. completed and cancelled are terminal.
type Status int

const (
	// UnknownStatus catches uninitialized Status values.
	UnknownStatus Status = iota

	// Created is the initial status of a freshly opened manifest.
	Created

	// Loading indicates at least one successful load happened.
	Loading

	// InTransit indicates the vehicle was dispatched.
	InTransit

	// Completed indicates the leg finished. Terminal.
	Completed

	// Cancelled indicates the manifest was abandoned. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "unknown",
		Created:       "created",
		Loading:       "loading",
		InTransit:     "in_transit",
		Completed:     "completed",
		Cancelled:     "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // UnknownStatus is intentionally excluded as it's invalid
	return map[Status]string{
		Created:   "created",
		Loading:   "loading",
		InTransit: "in_transit",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

// StatusFromString parses a status received at the request boundary.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid trip status", s))
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
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid trip status", s))
	}
	return nil
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// IsEditable reports whether loading and unloading are still allowed.
func (s Status) IsEditable() bool {
	return s == Created || s == Loading
}

// NonTerminalStatuses lists the statuses during which a vehicle is considered
// occupied by the trip. The vehicle-exclusivity invariant is keyed on these.
func NonTerminalStatuses() []Status {
	return []Status{Created, Loading, InTransit}
}
