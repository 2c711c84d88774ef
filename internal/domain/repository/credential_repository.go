// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"inkwell/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCredentialNotFound is returned when no password credential exists for an identity.
var ErrCredentialNotFound = errors.New("credential not found")

// CredentialRepository defines the standard operations for password credential persistence.
type CredentialRepository interface {
	// Create persists a new password credential for an identity.
	Create(ctx context.Context, credential *entity.Credential) error

	// FindByIdentityID retrieves the password credential of an identity.
	FindByIdentityID(ctx context.Context, identityID uuid.UUID) (*entity.Credential, error)

	// Update replaces the stored password hash (password change flows).
	Update(ctx context.Context, credential *entity.Credential) error
}
