// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"inkwell/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrIdentityNotFound is a domain-specific error returned when an identity is not found.
var ErrIdentityNotFound = errors.New("identity not found")

// IdentityRepository defines the standard operations for identity persistence.
// The application layer will depend on this interface, not the concrete implementation.
type IdentityRepository interface {
	// FindByID retrieves a single identity, roles included, by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Identity, error)

	// FindByUsername retrieves a single identity by its lowercased username.
	FindByUsername(ctx context.Context, username string) (*entity.Identity, error)

	// FindByEmail retrieves a single identity by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.Identity, error)

	// Create persists a new identity together with its role memberships.
	Create(ctx context.Context, identity *entity.Identity) error

	// Update modifies an existing identity in the storage.
	Update(ctx context.Context, identity *entity.Identity) error

	// GrantRole adds a role membership; granting an already-held role is a no-op.
	GrantRole(ctx context.Context, identityID uuid.UUID, role entity.Role) error
}
