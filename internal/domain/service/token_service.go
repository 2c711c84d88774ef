package service

import (
	"time"

	"inkwell/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessClaims defines the claims carried by a signed access token.
// Subject holds the username; IdentityID identifies the account row.
// SessionHash ties the access token to the refresh token row it was minted
// with, so the session list can mark the caller's own session.
type AccessClaims struct {
	IdentityID  uuid.UUID `json:"uid"`
	Role        string    `json:"role"`
	SessionHash string    `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating tokens.
// Access tokens are signed JWTs; refresh tokens are opaque random strings
// that live only as hashes in the refresh token store.
type TokenService interface {
	// GenerateTokens mints a signed access token and a fresh opaque refresh
	// token for the identity carrying the given single role claim.
	GenerateTokens(identity *entity.Identity, role entity.Role) (accessToken string, refreshToken string, err error)

	// GenerateAccessToken mints a signed access token bound to an existing
	// session, identified by the stored refresh token hash. Used on refresh,
	// where the refresh token itself is not rotated.
	GenerateAccessToken(identity *entity.Identity, role entity.Role, sessionHash string) (string, error)

	// ValidateAccessToken checks signature, issuer, audience and expiry of an
	// access token with zero clock-skew tolerance, returning its claims.
	ValidateAccessToken(tokenString string) (*AccessClaims, error)

	// HashToken derives the storage hash of a raw refresh token.
	HashToken(raw string) string

	// AccessTokenTTL returns the configured access token lifetime.
	AccessTokenTTL() time.Duration

	// RefreshTokenTTL returns the configured refresh token lifetime.
	RefreshTokenTTL() time.Duration
}
