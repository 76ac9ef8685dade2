package auth_test

import (
	"testing"

	"freight/internal/core/domain/model/auth"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActor(t *testing.T) {
	userID := kernel.NewUUID()
	orgID := kernel.NewUUID()
	branchID := kernel.NewUUID()

	t.Run("should create a valid actor", func(t *testing.T) {
		actor, err := auth.NewActor(userID, orgID, branchID, auth.Operator)

		require.NoError(t, err)
		require.NoError(t, actor.Validate())
		assert.True(t, actor.UserID().IsEqual(userID))
		assert.True(t, actor.OrgID().IsEqual(orgID))
		assert.True(t, actor.BranchID().IsEqual(branchID))
		assert.Equal(t, auth.Operator, actor.Role())
	})

	t.Run("should fail with zero-value ids", func(t *testing.T) {
		_, err := auth.NewActor(kernel.UUID{}, orgID, branchID, auth.Operator)
		require.Error(t, err)

		_, err = auth.NewActor(userID, kernel.UUID{}, branchID, auth.Operator)
		require.Error(t, err)

		_, err = auth.NewActor(userID, orgID, kernel.UUID{}, auth.Operator)
		require.Error(t, err)
	})

	t.Run("should fail with an unknown role", func(t *testing.T) {
		_, err := auth.NewActor(userID, orgID, branchID, auth.UnknownRole)
		require.Error(t, err)

		_, err = auth.NewActor(userID, orgID, branchID, auth.Role(42))
		require.Error(t, err)
	})

	t.Run("zero-value actor fails validation", func(t *testing.T) {
		var actor auth.Actor

		require.Error(t, actor.Validate())
	})
}

func TestActor_CanAccessOrg(t *testing.T) {
	orgID := kernel.NewUUID()
	otherOrg := kernel.NewUUID()

	t.Run("operator and admin are confined to their organization", func(t *testing.T) {
		for _, role := range []auth.Role{auth.Operator, auth.Admin} {
			actor, err := auth.NewActor(kernel.NewUUID(), orgID, kernel.NewUUID(), role)
			require.NoError(t, err)

			require.NoError(t, actor.CanAccessOrg(orgID))

			err = actor.CanAccessOrg(otherOrg)
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrNotAuthorized)
		}
	})

	t.Run("superadmin crosses organizations", func(t *testing.T) {
		actor, err := auth.NewActor(kernel.NewUUID(), orgID, kernel.NewUUID(), auth.Superadmin)
		require.NoError(t, err)

		require.NoError(t, actor.CanAccessOrg(otherOrg))
	})
}

func TestActor_CanAccessBranches(t *testing.T) {
	orgID := kernel.NewUUID()
	homeBranch := kernel.NewUUID()
	otherBranch := kernel.NewUUID()

	t.Run("operator needs a matching branch", func(t *testing.T) {
		actor, err := auth.NewActor(kernel.NewUUID(), orgID, homeBranch, auth.Operator)
		require.NoError(t, err)

		require.NoError(t, actor.CanAccessBranches(orgID, homeBranch))
		require.NoError(t, actor.CanAccessBranches(orgID, otherBranch, homeBranch))

		err = actor.CanAccessBranches(orgID, otherBranch)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrNotAuthorized)
	})

	t.Run("admin needs only the organization", func(t *testing.T) {
		actor, err := auth.NewActor(kernel.NewUUID(), orgID, homeBranch, auth.Admin)
		require.NoError(t, err)

		require.NoError(t, actor.CanAccessBranches(orgID, otherBranch))

		err = actor.CanAccessBranches(kernel.NewUUID(), otherBranch)
		require.Error(t, err)
	})

	t.Run("superadmin passes always", func(t *testing.T) {
		actor, err := auth.NewActor(kernel.NewUUID(), orgID, homeBranch, auth.Superadmin)
		require.NoError(t, err)

		require.NoError(t, actor.CanAccessBranches(kernel.NewUUID(), otherBranch))
	})
}

func TestRoleFromString(t *testing.T) {
	for _, role := range []auth.Role{auth.Operator, auth.Admin, auth.Superadmin} {
		parsed, err := auth.RoleFromString(role.String())

		require.NoError(t, err)
		assert.Equal(t, role, parsed)
	}

	_, err := auth.RoleFromString("root")
	require.Error(t, err)

	_, err = auth.RoleFromString("unknown")
	require.Error(t, err)
}
