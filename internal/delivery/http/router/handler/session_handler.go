package handler

import (
	"log/slog"
	"net/http"
	"time"

	"inkwell/internal/delivery/http/middleware"
	"inkwell/internal/delivery/http/response"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SessionHandler holds dependencies for session management handlers.
type SessionHandler struct {
	uc     usecase.SessionUsecase
	logger *slog.Logger
}

// NewSessionHandler is the constructor for SessionHandler, injected by Fx.
func NewSessionHandler(uc usecase.SessionUsecase, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{uc: uc, logger: logger}
}

type sessionView struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	Current   bool      `json:"current"`
}

// ListSessions returns the caller's live sessions, newest first.
func (h *SessionHandler) ListSessions(c echo.Context) error {
	identityID, ok := middleware.CallerIdentityID(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	sessions, err := h.uc.GetActiveSessions(c.Request().Context(), identityID, middleware.CallerSessionHash(c))
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]sessionView, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, sessionView{
			ID:        s.ID.String(),
			CreatedAt: s.CreatedAt,
			ExpiresAt: s.ExpiresAt,
			Current:   s.Current,
		})
	}

	return response.Success(c, http.StatusOK, views, "")
}

// RevokeSession ends one of the caller's sessions by ID.
func (h *SessionHandler) RevokeSession(c echo.Context) error {
	identityID, ok := middleware.CallerIdentityID(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid session ID")
	}

	if err := h.uc.RevokeSession(c.Request().Context(), identityID, sessionID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Session revoked")
}

// RevokeAllSessions ends every live session of the caller.
func (h *SessionHandler) RevokeAllSessions(c echo.Context) error {
	identityID, ok := middleware.CallerIdentityID(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	if err := h.uc.RevokeAllSessions(c.Request().Context(), identityID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "All sessions revoked")
}
