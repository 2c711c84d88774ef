package middleware_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inkwell/internal/delivery/http/middleware"
	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/service"
	mockSvc "inkwell/internal/mocks/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthMiddleware_Authenticate_ValidToken(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	identityID := uuid.New()

	tokenSvc.EXPECT().ValidateAccessToken("good-token").Return(&service.AccessClaims{
		IdentityID: identityID,
		Role:       string(entity.RoleAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "alice",
		},
	}, nil)

	m := middleware.NewAuthMiddleware(tokenSvc, newTestLogger())
	c, rec := newTestContext(t, "Bearer good-token")

	var seenID uuid.UUID
	var seenRole entity.Role
	err := m.Authenticate(func(c echo.Context) error {
		seenID, _ = middleware.CallerIdentityID(c)
		seenRole, _ = c.Get(middleware.ContextKeyRole).(entity.Role)

		return okHandler(c)
	})(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, identityID, seenID)
	assert.Equal(t, entity.RoleAdmin, seenRole)
	assert.True(t, middleware.CallerIsAdmin(c))
}

func TestAuthMiddleware_Authenticate_LogsMaskedSubject(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	issuedAt := jwt.NewNumericDate(time.Now())
	expiresAt := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tokenSvc.EXPECT().ValidateAccessToken("good-token").Return(&service.AccessClaims{
		IdentityID:  uuid.New(),
		Role:        string(entity.RoleUser),
		SessionHash: "session-hash",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			Issuer:    "inkwell",
			Audience:  jwt.ClaimStrings{"inkwell-api"},
			IssuedAt:  issuedAt,
			ExpiresAt: expiresAt,
		},
	}, nil)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	m := middleware.NewAuthMiddleware(tokenSvc, logger)
	c, rec := newTestContext(t, "Bearer good-token")

	var seenHash string
	err := m.Authenticate(func(c echo.Context) error {
		seenHash = middleware.CallerSessionHash(c)

		return okHandler(c)
	})(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	// The session hash claim is exposed so handlers can mark the caller's
	// own session in listings.
	assert.Equal(t, "session-hash", seenHash)

	logged := buf.String()
	assert.Contains(t, logged, "Access token validated")
	assert.Contains(t, logged, "subject=a***")
	assert.NotContains(t, logged, "alice")
	assert.Contains(t, logged, "claimCount=8")
}

func TestAuthMiddleware_Authenticate_Rejections(t *testing.T) {
	testCases := []struct {
		name       string
		authHeader string
		setupMock  func(tokenSvc *mockSvc.MockTokenService)
	}{
		{
			name:       "missing header",
			authHeader: "",
			setupMock:  func(_ *mockSvc.MockTokenService) {},
		},
		{
			name:       "not a bearer token",
			authHeader: "Basic YWxpY2U6c2VjcmV0",
			setupMock:  func(_ *mockSvc.MockTokenService) {},
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad-token",
			setupMock: func(tokenSvc *mockSvc.MockTokenService) {
				tokenSvc.EXPECT().
					ValidateAccessToken("bad-token").
					Return(nil, jwt.ErrTokenExpired)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tokenSvc := mockSvc.NewMockTokenService(t)
			tc.setupMock(tokenSvc)

			m := middleware.NewAuthMiddleware(tokenSvc, newTestLogger())
			c, rec := newTestContext(t, tc.authHeader)

			nextCalled := false
			err := m.Authenticate(func(c echo.Context) error {
				nextCalled = true

				return okHandler(c)
			})(c)

			require.NoError(t, err)
			assert.False(t, nextCalled)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), domainerrors.ErrUnauthenticated.ErrorCode())
		})
	}
}

func TestAuthMiddleware_AuthenticateOptional(t *testing.T) {
	t.Run("anonymous request passes through", func(t *testing.T) {
		m := middleware.NewAuthMiddleware(mockSvc.NewMockTokenService(t), newTestLogger())
		c, rec := newTestContext(t, "")

		err := m.AuthenticateOptional(okHandler)(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		_, ok := middleware.CallerIdentityID(c)
		assert.False(t, ok)
		assert.False(t, middleware.CallerIsAdmin(c))
	})

	t.Run("bad token is treated as anonymous", func(t *testing.T) {
		tokenSvc := mockSvc.NewMockTokenService(t)
		tokenSvc.EXPECT().
			ValidateAccessToken("bad-token").
			Return(nil, jwt.ErrTokenMalformed)

		m := middleware.NewAuthMiddleware(tokenSvc, newTestLogger())
		c, rec := newTestContext(t, "Bearer bad-token")

		err := m.AuthenticateOptional(okHandler)(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, middleware.CallerIsAdmin(c))
	})

	t.Run("valid admin token elevates visibility", func(t *testing.T) {
		tokenSvc := mockSvc.NewMockTokenService(t)
		tokenSvc.EXPECT().ValidateAccessToken("good-token").Return(&service.AccessClaims{
			IdentityID: uuid.New(),
			Role:       string(entity.RoleAdmin),
		}, nil)

		m := middleware.NewAuthMiddleware(tokenSvc, newTestLogger())
		c, rec := newTestContext(t, "Bearer good-token")

		err := m.AuthenticateOptional(okHandler)(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, middleware.CallerIsAdmin(c))
	})
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	m := middleware.NewAuthMiddleware(mockSvc.NewMockTokenService(t), newTestLogger())

	runWithRole := func(t *testing.T, role any, required entity.Role) (*httptest.ResponseRecorder, bool) {
		c, rec := newTestContext(t, "")
		if role != nil {
			c.Set(middleware.ContextKeyRole, role)
		}

		nextCalled := false
		err := m.RequireRole(required)(func(c echo.Context) error {
			nextCalled = true

			return okHandler(c)
		})(c)
		require.NoError(t, err)

		return rec, nextCalled
	}

	t.Run("admin satisfies user requirement", func(t *testing.T) {
		rec, nextCalled := runWithRole(t, entity.RoleAdmin, entity.RoleUser)
		assert.True(t, nextCalled)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("user does not satisfy admin requirement", func(t *testing.T) {
		rec, nextCalled := runWithRole(t, entity.RoleUser, entity.RoleAdmin)
		assert.False(t, nextCalled)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing role claim is forbidden", func(t *testing.T) {
		rec, nextCalled := runWithRole(t, nil, entity.RoleUser)
		assert.False(t, nextCalled)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
