// Package branchrepo provides read access to branches at the workflow
// boundary. Branch CRUD lives outside this service; Add exists for seeding
// and tests only.
package branchrepo

import (
	"freight/internal/core/domain/model/branch"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BranchDTO represents the database structure for branch rows.
type BranchDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrgID   uuid.UUID `gorm:"type:uuid;index"`
	Code    string
	OrgCode string
	Name    string
	Active  bool
}

// TableName specifies the database table name for branch entities.
func (BranchDTO) TableName() string {
	return "branches"
}

func fromDomain(b *branch.Branch) BranchDTO {
	return BranchDTO{
		ID:      b.ID().Bytes(),
		OrgID:   b.OrgID().Bytes(),
		Code:    b.Code(),
		OrgCode: b.OrgCode(),
		Name:    b.Name(),
		Active:  b.IsActive(),
	}
}

func toDomain(dto BranchDTO) (*branch.Branch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orgID, err := kernel.UUIDFromBytes(dto.OrgID[:])
	if err != nil {
		return nil, err
	}

	return branch.RestoreBranch(id, orgID, dto.Code, dto.OrgCode, dto.Name, dto.Active)
}
