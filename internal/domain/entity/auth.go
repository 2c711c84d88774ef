// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Credential stores the password-based login secret for an identity.
type Credential struct {
	ID           uuid.UUID // The unique ID for this credential record.
	IdentityID   uuid.UUID // Links the credential to the Identity it belongs to.
	PasswordHash string    // bcrypt hash of the password.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken represents a long-lived, authorized session. It is exchanged
// for a new access token after the old one expires, without credentials.
// The raw token never touches the database; only its SHA-256 hash is stored.
type RefreshToken struct {
	ID         uuid.UUID  // The unique ID for this refresh token record.
	IdentityID uuid.UUID  // Links this session to the Identity it belongs to.
	TokenHash  string     // SHA-256 hash of the raw opaque token.
	ExpiresAt  time.Time  // Natural end of life for this session.
	CreatedAt  time.Time  // When the session was created (login time).
	RevokedAt  *time.Time // Set once on logout or explicit revocation; nil while live.
}

// IsActive reports whether the token is usable at the given instant:
// not revoked and not yet expired.
func (t *RefreshToken) IsActive(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
