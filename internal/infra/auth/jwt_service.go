package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"inkwell/config"
	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/service"
)

// refreshTokenBytes is the entropy of an opaque refresh token before hex encoding.
const refreshTokenBytes = 32

// jwtService is a concrete implementation of the TokenService interface.
// Access tokens are HS256 JWTs; refresh tokens are opaque random strings.
type jwtService struct {
	secret     []byte
	issuer     string
	audience   string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.JWT == nil || cfg.JWT.Secret == "" {
		return nil, errors.New("jwt signing secret must be provided")
	}

	return &jwtService{
		secret:     []byte(cfg.JWT.Secret),
		issuer:     cfg.JWT.Issuer,
		audience:   cfg.JWT.Audience,
		accessTTL:  cfg.JWT.AccessTTL,
		refreshTTL: cfg.JWT.RefreshTTL,
		now:        time.Now,
	}, nil
}

// GenerateTokens creates a new access token and opaque refresh token for an
// identity. The access token carries the refresh token's storage hash as its
// session claim.
func (s *jwtService) GenerateTokens(identity *entity.Identity, role entity.Role) (string, string, error) {
	refreshToken, err := generateOpaqueToken()
	if err != nil {
		return "", "", err
	}

	accessToken, err := s.GenerateAccessToken(identity, role, s.HashToken(refreshToken))
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// GenerateAccessToken mints an access token bound to an existing session.
func (s *jwtService) GenerateAccessToken(identity *entity.Identity, role entity.Role, sessionHash string) (string, error) {
	issuedAt := s.now()
	claims := service.AccessClaims{
		IdentityID:  identity.ID,
		Role:        string(role),
		SessionHash: sessionHash,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Username,
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.secret)
}

// ValidateAccessToken checks the signature, issuer, audience and expiry of an
// access token. Expiry is evaluated with no clock-skew tolerance.
func (s *jwtService) ValidateAccessToken(tokenString string) (*service.AccessClaims, error) {
	claims := &service.AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, domainerrors.ErrUnauthenticated.WrapMessage("invalid access token")
	}

	return claims, nil
}

// HashToken derives the storage hash of a raw refresh token. Only this hash
// ever reaches the database.
func (s *jwtService) HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))

	return hex.EncodeToString(sum[:])
}

// AccessTokenTTL returns the configured duration for access tokens.
func (s *jwtService) AccessTokenTTL() time.Duration {
	return s.accessTTL
}

// RefreshTokenTTL returns the configured duration for refresh tokens.
func (s *jwtService) RefreshTokenTTL() time.Duration {
	return s.refreshTTL
}

// generateOpaqueToken draws 256 bits from crypto/rand and hex encodes them.
func generateOpaqueToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.New("could not generate refresh token")
	}

	return hex.EncodeToString(buf), nil
}
