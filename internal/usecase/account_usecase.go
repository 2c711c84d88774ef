// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"inkwell/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Username string
	Password string
}

// RefreshInput carries the raw opaque refresh token presented by a client.
type RefreshInput struct {
	RefreshToken string
}

// LogoutInput carries the raw refresh token of the session to end.
type LogoutInput struct {
	RefreshToken string
}

// UpdateProfileInput defines the mutable profile fields.
type UpdateProfileInput struct {
	Email       string
	DisplayName string
}

// ChangePasswordInput defines the data required to change a password.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created identity.
type RegisterOutput struct {
	Identity *entity.Identity
}

// TokenPairOutput returns a signed access token with its paired refresh token.
type TokenPairOutput struct {
	AccessToken  string
	RefreshToken string
	Identity     *entity.Identity
}

// AccountUsecase defines the interface for account and session lifecycle
// operations. This is the contract the delivery layer depends on.
type AccountUsecase interface {
	// Register creates a new identity with the user role and a password credential.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Login verifies credentials and mints a fresh token pair. Every login
	// creates a new session; concurrent sessions are independent.
	Login(ctx context.Context, input *LoginInput) (*TokenPairOutput, error)

	// Refresh exchanges a live refresh token for a new access token. The
	// refresh token itself is not rotated and stays valid until it expires
	// or is revoked. Roles are re-read from storage, so a role change takes
	// effect here without re-login.
	Refresh(ctx context.Context, input *RefreshInput) (*TokenPairOutput, error)

	// Logout revokes the presented session. Logging out twice is a no-op.
	Logout(ctx context.Context, input *LogoutInput) error

	// GetProfile returns the identity behind an ID.
	GetProfile(ctx context.Context, identityID uuid.UUID) (*entity.Identity, error)

	// UpdateProfile modifies the mutable profile fields.
	UpdateProfile(ctx context.Context, identityID uuid.UUID, input *UpdateProfileInput) (*entity.Identity, error)

	// ChangePassword verifies the current password, stores the new hash and
	// revokes every live session of the identity.
	ChangePassword(ctx context.Context, identityID uuid.UUID, input *ChangePasswordInput) error
}
