package impl

import (
	"context"
	"log/slog"

	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/repository"
	"inkwell/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.SessionUsecase {
	return &sessionService{
		txManager: txManager,
		logger:    logger,
	}
}

// GetActiveSessions retrieves all live sessions of an identity, newest first.
func (srv *sessionService) GetActiveSessions(ctx context.Context, identityID uuid.UUID, currentTokenHash string) ([]*usecase.SessionInfo, error) {
	srv.logger.Debug("Getting active sessions", "identityID", identityID)

	var sessions []*usecase.SessionInfo

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tokens, err := repoFactory.RefreshTokenRepo().FindRefreshTokensByIdentityID(ctx, identityID)
		if err != nil {
			return errors.Wrap(err, "failed to find refresh tokens")
		}

		for _, token := range tokens {
			sessions = append(sessions, &usecase.SessionInfo{
				ID:        token.ID,
				CreatedAt: token.CreatedAt,
				ExpiresAt: token.ExpiresAt,
				Current:   currentTokenHash != "" && token.TokenHash == currentTokenHash,
			})
		}

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to get active sessions", "error", err, "identityID", identityID)

		return nil, err
	}

	return sessions, nil
}

// RevokeSession ends one session by ID after verifying ownership.
func (srv *sessionService) RevokeSession(ctx context.Context, identityID, sessionID uuid.UUID) error {
	srv.logger.Info("Revoking session", "identityID", identityID, "sessionID", sessionID)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		refreshRepo := repoFactory.RefreshTokenRepo()

		token, err := refreshRepo.FindRefreshTokenByID(ctx, sessionID)
		if err != nil {
			if errors.Is(err, repository.ErrRefreshTokenNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("session not found")
			}

			return errors.Wrap(err, "failed to find session")
		}

		if token.IdentityID != identityID {
			return domainerrors.ErrForbidden.WrapMessage("session does not belong to caller")
		}

		return refreshRepo.RevokeByID(ctx, sessionID)
	})
	if err != nil {
		srv.logger.Error("Failed to revoke session", "error", err, "identityID", identityID, "sessionID", sessionID)

		return err
	}

	return nil
}

// RevokeAllSessions ends every live session of an identity.
func (srv *sessionService) RevokeAllSessions(ctx context.Context, identityID uuid.UUID) error {
	srv.logger.Info("Revoking all sessions", "identityID", identityID)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.RefreshTokenRepo().RevokeByIdentityID(ctx, identityID)
	})
	if err != nil {
		srv.logger.Error("Failed to revoke all sessions", "error", err, "identityID", identityID)

		return err
	}

	return nil
}

// CleanupExpiredSessions garbage-collects expired refresh token rows.
func (srv *sessionService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	var removed int64

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		n, err := repoFactory.RefreshTokenRepo().DeleteExpiredRefreshTokens(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to delete expired sessions")
		}
		removed = n

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to clean up expired sessions", "error", err)

		return 0, err
	}

	if removed > 0 {
		srv.logger.Info("Cleaned up expired sessions", "count", removed)
	}

	return removed, nil
}
