package admin

import (
	"context"

	"myshop-be/internal/utils"
)

// Authorizer is the capability every console operation checks first.
type Authorizer interface {
	RequireAdmin(ctx context.Context) error
}

// RoleAuthorizer grants access to accounts carrying the ADMIN role.
type RoleAuthorizer struct{}

func (RoleAuthorizer) RequireAdmin(ctx context.Context) error {
	if _, ok := utils.GetUserIDFromContext(ctx); !ok {
		return ErrUnauthenticated
	}
	if !utils.IsAdmin(ctx) {
		return ErrForbidden
	}
	return nil
}
