// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Identity is the core principal of the system: a named account that can
// author comments, place orders and, with the admin role, manage content.
type Identity struct {
	ID          uuid.UUID // The unique identifier for this identity.
	Username    string    // Login name; stored lowercased and unique.
	Email       string    // Primary contact email, unique.
	DisplayName string    // Optional human-readable name shown on comments.
	Roles       Roles     // Role memberships; always contains at least RoleUser.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
