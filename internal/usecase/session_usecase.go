// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionInfo describes one live session for the session listing endpoints.
// The token hash never leaves the persistence layer.
type SessionInfo struct {
	ID        uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
	Current   bool
}

// SessionUsecase defines the interface for session management operations.
type SessionUsecase interface {
	// GetActiveSessions lists the live sessions of an identity, newest first.
	GetActiveSessions(ctx context.Context, identityID uuid.UUID, currentTokenHash string) ([]*SessionInfo, error)

	// RevokeSession ends one session by ID. The session must belong to the
	// calling identity.
	RevokeSession(ctx context.Context, identityID, sessionID uuid.UUID) error

	// RevokeAllSessions ends every live session of an identity.
	RevokeAllSessions(ctx context.Context, identityID uuid.UUID) error

	// CleanupExpiredSessions garbage-collects expired refresh token rows and
	// returns how many were removed.
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}
