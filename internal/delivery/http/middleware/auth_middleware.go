// Package middleware contains the echo middleware of the HTTP delivery.
package middleware

import (
	"log/slog"
	"strings"

	"inkwell/internal/delivery/http/response"
	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/service"
	"inkwell/internal/util"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextKeyIdentityID  = "identityID"
	ContextKeyUsername    = "username"
	ContextKeyRole        = "role"
	ContextKeySessionHash = "sessionHash"
)

// AuthMiddleware provides middleware for access token authentication and
// role-based authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// Authenticate validates the bearer access token and stores the caller's
// identity on the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, domainerrors.ErrUnauthenticated.ErrorCode(), "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, domainerrors.ErrUnauthenticated.ErrorCode(), "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, domainerrors.ErrUnauthenticated.ErrorCode(), "Invalid or expired token")
		}

		m.storeClaims(c, claims)

		return next(c)
	}
}

// AuthenticateOptional validates the bearer token when one is presented,
// but lets anonymous requests through without claims on the context.
// Handlers behind it see elevated visibility only for valid admin tokens.
func (m *AuthMiddleware) AuthenticateOptional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return next(c)
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return next(c)
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			// A bad token on a public route is treated as anonymous.
			return next(c)
		}

		m.storeClaims(c, claims)

		return next(c)
	}
}

// storeClaims copies the validated claims onto the request context and
// leaves an audit trail with the subject masked.
func (m *AuthMiddleware) storeClaims(c echo.Context, claims *service.AccessClaims) {
	c.Set(ContextKeyIdentityID, claims.IdentityID)
	c.Set(ContextKeyUsername, claims.Subject)
	c.Set(ContextKeyRole, entity.Role(claims.Role))
	c.Set(ContextKeySessionHash, claims.SessionHash)

	m.logger.Debug("Access token validated",
		"subject", util.MaskIdentifier(claims.Subject),
		"claimCount", claimCount(claims),
	)
}

// claimCount tallies the claims present on a validated token.
func claimCount(claims *service.AccessClaims) int {
	count := 1 // uid is always set
	if claims.Role != "" {
		count++
	}
	if claims.SessionHash != "" {
		count++
	}
	if claims.Subject != "" {
		count++
	}
	if claims.Issuer != "" {
		count++
	}
	if len(claims.Audience) > 0 {
		count++
	}
	if claims.IssuedAt != nil {
		count++
	}
	if claims.ExpiresAt != nil {
		count++
	}

	return count
}

// RequireRole is a middleware factory that checks the caller's role claim.
// Role dominance applies: an admin token satisfies a user requirement.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ContextKeyRole).(entity.Role)
			if !ok {
				return response.Forbidden(c, domainerrors.ErrForbidden.ErrorCode(), "Permission denied: role information missing")
			}

			if !role.Satisfies(requiredRole) {
				return response.Forbidden(c, domainerrors.ErrForbidden.ErrorCode(), "Permission denied: require '"+string(requiredRole)+"' role")
			}

			return next(c)
		}
	}
}

// CallerIdentityID returns the authenticated caller's identity ID.
func CallerIdentityID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(ContextKeyIdentityID).(uuid.UUID)

	return id, ok
}

// CallerIsAdmin reports whether the caller's role claim satisfies admin.
func CallerIsAdmin(c echo.Context) bool {
	role, ok := c.Get(ContextKeyRole).(entity.Role)

	return ok && role.Satisfies(entity.RoleAdmin)
}

// CallerSessionHash returns the stored hash of the refresh token behind the
// caller's session, or "" for tokens minted before the claim existed.
func CallerSessionHash(c echo.Context) string {
	hash, _ := c.Get(ContextKeySessionHash).(string)

	return hash
}
