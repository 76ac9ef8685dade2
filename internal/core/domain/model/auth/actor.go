// Package auth provides the authorization context threaded through every
// workflow operation. An Actor captures who is acting — organization, branch,
// role, and user — and owns the scoping rules that gate access to bookings
// and trips. The actor value arrives from the authenticated-request boundary;
// session issuance itself is outside this service.
package auth

import (
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// Role determines how far an actor's reach extends.
type Role int

const (
	// UnknownRole catches uninitialized Role values.
	UnknownRole Role = iota

	// Operator may act only on entities belonging to their own branch.
	Operator

	// Admin may act on any entity within their organization.
	Admin

	// Superadmin is unrestricted across organizations.
	Superadmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "unknown",
		Operator:    "operator",
		Admin:       "admin",
		Superadmin:  "superadmin",
	}
}

// RoleFromString parses a role received at the request boundary.
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != UnknownRole && str == s {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// String implements fmt.Stringer.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// Validate rejects UnknownRole and out-of-range values.
func (r Role) Validate() error {
	if r != Operator && r != Admin && r != Superadmin {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// ErrActorIsNotConstructed is returned when an Actor was not created through
// the NewActor constructor.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("Actor must be created via NewActor constructor")

// Actor is the authorization context for one request. It is a value object:
// immutable and validated at construction, then passed through orchestrator
// and state-machine calls instead of re-deriving scope at every call site.
type Actor struct {
	userID   kernel.UUID
	orgID    kernel.UUID
	branchID kernel.UUID
	role     Role

	guard guard.ConstructorGuard
}

// NewActor creates the authorization context for a request.
// All identifiers must be valid and the role must be a known role.
func NewActor(userID, orgID, branchID kernel.UUID, role Role) (Actor, error) {
	if err := userID.Validate(); err != nil {
		return Actor{}, err
	}
	if err := orgID.Validate(); err != nil {
		return Actor{}, err
	}
	if err := branchID.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{
		userID:   userID,
		orgID:    orgID,
		branchID: branchID,
		role:     role,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the actor was created through NewActor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// UserID returns the acting user's identifier.
func (a Actor) UserID() kernel.UUID {
	return a.userID
}

// OrgID returns the actor's organization.
func (a Actor) OrgID() kernel.UUID {
	return a.orgID
}

// BranchID returns the actor's home branch.
func (a Actor) BranchID() kernel.UUID {
	return a.branchID
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// CanAccessOrg reports whether the actor may touch entities of the given
// organization. Superadmins are unrestricted; everyone else is confined to
// their own organization.
func (a Actor) CanAccessOrg(orgID kernel.UUID) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.role == Superadmin {
		return nil
	}
	if !a.orgID.IsEqual(orgID) {
		return errs.NewNotAuthorizedError("entity belongs to another organization")
	}
	return nil
}

// CanAccessBranches reports whether the actor may touch an entity scoped to
// the given organization and branches. Operators must match at least one of
// the branches; admins need only the organization; superadmins pass always.
func (a Actor) CanAccessBranches(orgID kernel.UUID, branchIDs ...kernel.UUID) error {
	if err := a.CanAccessOrg(orgID); err != nil {
		return err
	}
	if a.role != Operator {
		return nil
	}

	for _, branchID := range branchIDs {
		if a.branchID.IsEqual(branchID) {
			return nil
		}
	}
	return errs.NewNotAuthorizedError("entity belongs to another branch")
}
