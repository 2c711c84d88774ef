package postgres

import (
	"context"

	"inkwell/internal/domain/entity"
	"inkwell/internal/domain/repository"
	"inkwell/internal/domain/service"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// dbRoleResolver resolves the current role memberships of an identity
// straight from storage. Refresh flows use it so role changes take effect
// on the next access token, not only on re-login.
type dbRoleResolver struct {
	identities repository.IdentityRepository
}

// NewRoleResolver is the constructor for dbRoleResolver.
func NewRoleResolver(db *gorm.DB) service.RoleResolver {
	return &dbRoleResolver{identities: NewIdentityRepository(db)}
}

// ResolveRoles returns the identity's role memberships as currently stored.
func (r *dbRoleResolver) ResolveRoles(ctx context.Context, identityID uuid.UUID) (entity.Roles, error) {
	identity, err := r.identities.FindByID(ctx, identityID)
	if err != nil {
		return nil, err
	}

	return identity.Roles, nil
}
