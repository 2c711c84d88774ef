package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/config"
	"inkwell/internal/domain/entity"
)

func testJWTConfig() *config.Config {
	return &config.Config{
		JWT: &config.JWTConfig{
			Secret:     "test-secret-key-for-tokens",
			Issuer:     "inkwell",
			Audience:   "inkwell-api",
			AccessTTL:  8 * time.Hour,
			RefreshTTL: 30 * 24 * time.Hour,
		},
	}
}

func testIdentity() *entity.Identity {
	return &entity.Identity{
		ID:       uuid.New(),
		Username: "alice",
	}
}

func TestNewJWTService_MissingSecret(t *testing.T) {
	cfg := testJWTConfig()
	cfg.JWT.Secret = ""

	svc, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, svc)
}

func TestJWTService_GenerateTokens(t *testing.T) {
	svc, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	identity := testIdentity()
	access, refresh, err := svc.GenerateTokens(identity, entity.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	// Opaque refresh token: 32 random bytes, hex encoded.
	assert.Len(t, refresh, 64)
	assert.NotEqual(t, access, refresh)

	claims, err := svc.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, identity.ID, claims.IdentityID)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, string(entity.RoleAdmin), claims.Role)
	assert.Equal(t, "inkwell", claims.Issuer)
	// The access token records which refresh session it was minted with.
	assert.Equal(t, svc.HashToken(refresh), claims.SessionHash)
}

func TestJWTService_GenerateAccessToken_CarriesSessionHash(t *testing.T) {
	svc, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	identity := testIdentity()
	access, err := svc.GenerateAccessToken(identity, entity.RoleUser, "existing-session-hash")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, identity.ID, claims.IdentityID)
	assert.Equal(t, string(entity.RoleUser), claims.Role)
	assert.Equal(t, "existing-session-hash", claims.SessionHash)
}

func TestJWTService_RefreshTokensAreUnique(t *testing.T) {
	svc, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	identity := testIdentity()
	_, first, err := svc.GenerateTokens(identity, entity.RoleUser)
	require.NoError(t, err)
	_, second, err := svc.GenerateTokens(identity, entity.RoleUser)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestJWTService_ValidateAccessToken_Invalid(t *testing.T) {
	svc, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name: "garbage token",
			token: func(t *testing.T) string {
				return "not.a.jwt"
			},
		},
		{
			name: "wrong signing key",
			token: func(t *testing.T) string {
				other := testJWTConfig()
				other.JWT.Secret = "a-completely-different-secret"
				otherSvc, err := NewJWTService(other)
				require.NoError(t, err)
				access, _, err := otherSvc.GenerateTokens(testIdentity(), entity.RoleUser)
				require.NoError(t, err)

				return access
			},
		},
		{
			name: "wrong issuer",
			token: func(t *testing.T) string {
				other := testJWTConfig()
				other.JWT.Issuer = "someone-else"
				otherSvc, err := NewJWTService(other)
				require.NoError(t, err)
				access, _, err := otherSvc.GenerateTokens(testIdentity(), entity.RoleUser)
				require.NoError(t, err)

				return access
			},
		},
		{
			name: "wrong audience",
			token: func(t *testing.T) string {
				other := testJWTConfig()
				other.JWT.Audience = "another-api"
				otherSvc, err := NewJWTService(other)
				require.NoError(t, err)
				access, _, err := otherSvc.GenerateTokens(testIdentity(), entity.RoleUser)
				require.NoError(t, err)

				return access
			},
		},
		{
			name: "refresh token used as access token",
			token: func(t *testing.T) string {
				_, refresh, err := svc.GenerateTokens(testIdentity(), entity.RoleUser)
				require.NoError(t, err)

				return refresh
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateAccessToken(tt.token(t))
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_ExpiredTokenRejected(t *testing.T) {
	tokenSvc, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)
	svc, ok := tokenSvc.(*jwtService)
	require.True(t, ok)

	// Issue a token whose whole lifetime is already in the past. Expiry is
	// checked without leeway, so it must be rejected.
	svc.now = func() time.Time { return time.Now().Add(-9 * time.Hour) }
	access, err := svc.GenerateAccessToken(testIdentity(), entity.RoleUser, "")
	require.NoError(t, err)

	svc.now = time.Now
	claims, err := svc.ValidateAccessToken(access)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_HashToken(t *testing.T) {
	svc, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	hash := svc.HashToken("raw-refresh-token")
	assert.Len(t, hash, 64)
	assert.NotEqual(t, "raw-refresh-token", hash)
	assert.Equal(t, hash, svc.HashToken("raw-refresh-token"))
	assert.NotEqual(t, hash, svc.HashToken("another-token"))
}

func TestJWTService_TTLAccessors(t *testing.T) {
	svc, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	assert.Equal(t, 8*time.Hour, svc.AccessTokenTTL())
	assert.Equal(t, 30*24*time.Hour, svc.RefreshTokenTTL())
}
