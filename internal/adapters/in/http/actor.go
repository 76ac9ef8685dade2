package http

import (
	"freight/internal/core/domain/model/auth"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Actor context headers set by the authenticating gateway in front of this
// service. Session issuance and token verification live there, not here.
const (
	HeaderOrgID    = "X-Org-ID"
	HeaderBranchID = "X-Branch-ID"
	HeaderRole     = "X-Role"
	HeaderUserID   = "X-User-ID"
)

// actorFromRequest builds the authorization context from request headers.
func actorFromRequest(ctx echo.Context) (auth.Actor, error) {
	userID, err := headerUUID(ctx, HeaderUserID)
	if err != nil {
		return auth.Actor{}, err
	}
	orgID, err := headerUUID(ctx, HeaderOrgID)
	if err != nil {
		return auth.Actor{}, err
	}
	branchID, err := headerUUID(ctx, HeaderBranchID)
	if err != nil {
		return auth.Actor{}, err
	}

	role, err := auth.RoleFromString(ctx.Request().Header.Get(HeaderRole))
	if err != nil {
		return auth.Actor{}, err
	}

	return auth.NewActor(userID, orgID, branchID, role)
}

func headerUUID(ctx echo.Context, header string) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get(header)
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(header)
	}

	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(header, err)
	}
	return id, nil
}
