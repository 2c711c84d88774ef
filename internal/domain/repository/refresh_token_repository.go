// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"inkwell/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrRefreshTokenNotFound is returned when no usable refresh token matches a
// lookup. Missing, expired and revoked tokens all produce this same error so
// callers cannot distinguish the three states.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository defines the interface for refresh token and session
// management operations. This supports multi-device login and remote logout.
type RefreshTokenRepository interface {
	// CreateRefreshToken persists a new refresh token, representing a session.
	// It never deduplicates against existing active tokens of the same identity.
	CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error

	// FindActiveByHash retrieves a refresh token record by its stored hash,
	// but only while it is unrevoked and unexpired.
	FindActiveByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// FindRefreshTokenByID retrieves a refresh token record by its unique ID,
	// regardless of its active state.
	FindRefreshTokenByID(ctx context.Context, id uuid.UUID) (*entity.RefreshToken, error)

	// FindRefreshTokensByIdentityID retrieves all active refresh tokens for an
	// identity, newest first. Used for the session listing endpoints.
	FindRefreshTokensByIdentityID(ctx context.Context, identityID uuid.UUID) ([]*entity.RefreshToken, error)

	// RevokeByHash marks the token revoked. Revoking an already-revoked or
	// nonexistent token is a no-op, not an error.
	RevokeByHash(ctx context.Context, tokenHash string) error

	// RevokeByID marks a single session revoked by its record ID.
	RevokeByID(ctx context.Context, id uuid.UUID) error

	// RevokeByIdentityID revokes every live session of an identity
	// ("log out everywhere").
	RevokeByIdentityID(ctx context.Context, identityID uuid.UUID) error

	// DeleteExpiredRefreshTokens removes rows past their expiry. Revocation
	// history for unexpired tokens is kept; only dead rows are garbage-collected.
	DeleteExpiredRefreshTokens(ctx context.Context) (int64, error)

	// CountActiveByIdentityID returns the number of active sessions for an
	// identity. Used to enforce the optional session limit.
	CountActiveByIdentityID(ctx context.Context, identityID uuid.UUID) (int, error)
}
