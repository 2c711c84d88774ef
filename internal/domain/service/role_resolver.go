package service

import (
	"context"

	"inkwell/internal/domain/entity"

	"github.com/google/uuid"
)

// RoleResolver resolves the current role memberships of an identity.
// It is deliberately narrow so any identity backend (embedded table,
// external provider) can satisfy the authorization checks.
type RoleResolver interface {
	ResolveRoles(ctx context.Context, identityID uuid.UUID) (entity.Roles, error)
}
