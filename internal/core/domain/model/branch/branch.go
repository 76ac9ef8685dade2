// Package branch contains the Branch entity consumed at the workflow
// boundary. Branch CRUD lives outside this service; the workflow core reads
// branches to validate trip routes, scope actors, and derive number prefixes.
package branch

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// Branch domain errors.
var (
	// ErrBranchIsNotConstructed is returned when using an improperly
	// initialized Branch.
	ErrBranchIsNotConstructed = errors.New("Branch must be created via NewBranch constructor")
	// ErrCodeIsRequired is returned for an empty branch code.
	ErrCodeIsRequired = errs.NewValueIsRequiredError("branch code")
	// ErrNameIsRequired is returned for an empty branch name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("branch name")
	// ErrOrgCodeIsRequired is returned for an empty organization code.
	ErrOrgCodeIsRequired = errs.NewValueIsRequiredError("org code")
)

// Branch is a station of the carrier network. The code and orgCode fields
// feed the consignment number prefix.
type Branch struct {
	id      kernel.UUID
	orgID   kernel.UUID
	code    string
	orgCode string
	name    string
	active  bool

	guard guard.ConstructorGuard
}

// NewBranch creates a branch.
func NewBranch(
	id kernel.UUID,
	orgID kernel.UUID,
	code string,
	orgCode string,
	name string,
	active bool,
) (*Branch, error) {
	b := &Branch{
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setOrgID(orgID),
		b.setCode(code),
		b.setOrgCode(orgCode),
		b.setName(name),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// RestoreBranch reconstructs a branch from persistent storage.
func RestoreBranch(
	id kernel.UUID,
	orgID kernel.UUID,
	code string,
	orgCode string,
	name string,
	active bool,
) (*Branch, error) {
	return NewBranch(id, orgID, code, orgCode, name, active)
}

// Validate ensures the branch was created through a constructor.
func (b *Branch) Validate() error {
	if b == nil {
		return ErrBranchIsNotConstructed
	}
	return b.guard.Validate(ErrBranchIsNotConstructed)
}

// ID returns the branch's unique identifier.
func (b *Branch) ID() kernel.UUID {
	return b.id
}

// OrgID returns the owning organization.
func (b *Branch) OrgID() kernel.UUID {
	return b.orgID
}

// Code returns the short branch code used in number prefixes, e.g. "MUM".
func (b *Branch) Code() string {
	return b.code
}

// OrgCode returns the organization code used in number prefixes, e.g. "DES".
func (b *Branch) OrgCode() string {
	return b.orgCode
}

// Name returns the display name.
func (b *Branch) Name() string {
	return b.name
}

// IsActive reports whether the branch is operating.
func (b *Branch) IsActive() bool {
	return b.active
}

func (b *Branch) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Branch) setOrgID(orgID kernel.UUID) error {
	if err := orgID.Validate(); err != nil {
		return err
	}
	b.orgID = orgID
	return nil
}

func (b *Branch) setCode(code string) error {
	if code == "" {
		return ErrCodeIsRequired
	}
	b.code = code
	return nil
}

func (b *Branch) setOrgCode(orgCode string) error {
	if orgCode == "" {
		return ErrOrgCodeIsRequired
	}
	b.orgCode = orgCode
	return nil
}

func (b *Branch) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	b.name = name
	return nil
}
