package impl

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/repository"
	mockRepo "inkwell/internal/mocks/repository"
	"inkwell/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService_GetActiveSessions_MarksCurrent(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	refreshRepo := mockRepo.NewMockRefreshTokenRepository(t)

	factory.EXPECT().RefreshTokenRepo().Return(refreshRepo)

	service := NewSessionService(newTxManager(t, factory), newDiscardLogger())

	ctx := context.Background()
	identityID := uuid.New()
	now := time.Now()

	refreshRepo.EXPECT().
		FindRefreshTokensByIdentityID(ctx, identityID).
		Return([]*entity.RefreshToken{
			{ID: uuid.New(), IdentityID: identityID, TokenHash: "other-hash", CreatedAt: now.Add(-time.Hour), ExpiresAt: now.Add(24 * time.Hour)},
			{ID: uuid.New(), IdentityID: identityID, TokenHash: "current-hash", CreatedAt: now, ExpiresAt: now.Add(24 * time.Hour)},
		}, nil)

	sessions, err := service.GetActiveSessions(ctx, identityID, "current-hash")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.False(t, sessions[0].Current)
	assert.True(t, sessions[1].Current)
}

func TestSessionService_GetActiveSessions_NoCurrentHash(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	refreshRepo := mockRepo.NewMockRefreshTokenRepository(t)

	factory.EXPECT().RefreshTokenRepo().Return(refreshRepo)

	service := NewSessionService(newTxManager(t, factory), newDiscardLogger())

	ctx := context.Background()
	identityID := uuid.New()

	refreshRepo.EXPECT().
		FindRefreshTokensByIdentityID(ctx, identityID).
		Return([]*entity.RefreshToken{{ID: uuid.New(), IdentityID: identityID, TokenHash: "some-hash"}}, nil)

	sessions, err := service.GetActiveSessions(ctx, identityID, "")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.False(t, sessions[0].Current)
}

func TestSessionService_RevokeSession_Ownership(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	sessionID := uuid.New()

	newService := func(t *testing.T) (usecase.SessionUsecase, *mockRepo.MockRefreshTokenRepository) {
		factory := mockRepo.NewMockRepositoryFactory(t)
		refreshRepo := mockRepo.NewMockRefreshTokenRepository(t)
		factory.EXPECT().RefreshTokenRepo().Return(refreshRepo)

		return NewSessionService(newTxManager(t, factory), newDiscardLogger()), refreshRepo
	}

	t.Run("owner revokes own session", func(t *testing.T) {
		service, refreshRepo := newService(t)
		refreshRepo.EXPECT().
			FindRefreshTokenByID(ctx, sessionID).
			Return(&entity.RefreshToken{ID: sessionID, IdentityID: ownerID}, nil)
		refreshRepo.EXPECT().RevokeByID(ctx, sessionID).Return(nil)

		require.NoError(t, service.RevokeSession(ctx, ownerID, sessionID))
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		service, refreshRepo := newService(t)
		refreshRepo.EXPECT().
			FindRefreshTokenByID(ctx, sessionID).
			Return(&entity.RefreshToken{ID: sessionID, IdentityID: ownerID}, nil)

		err := service.RevokeSession(ctx, uuid.New(), sessionID)
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	})

	t.Run("unknown session", func(t *testing.T) {
		service, refreshRepo := newService(t)
		refreshRepo.EXPECT().
			FindRefreshTokenByID(ctx, sessionID).
			Return(nil, repository.ErrRefreshTokenNotFound)

		err := service.RevokeSession(ctx, ownerID, sessionID)
		assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	})
}

func TestSessionService_RevokeAllSessions(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	refreshRepo := mockRepo.NewMockRefreshTokenRepository(t)

	factory.EXPECT().RefreshTokenRepo().Return(refreshRepo)

	service := NewSessionService(newTxManager(t, factory), newDiscardLogger())

	ctx := context.Background()
	identityID := uuid.New()

	refreshRepo.EXPECT().RevokeByIdentityID(ctx, identityID).Return(nil)

	require.NoError(t, service.RevokeAllSessions(ctx, identityID))
}

func TestSessionService_CleanupExpiredSessions(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	refreshRepo := mockRepo.NewMockRefreshTokenRepository(t)

	factory.EXPECT().RefreshTokenRepo().Return(refreshRepo)

	service := NewSessionService(newTxManager(t, factory), newDiscardLogger())

	ctx := context.Background()

	refreshRepo.EXPECT().DeleteExpiredRefreshTokens(ctx).Return(int64(3), nil)

	removed, err := service.CleanupExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
}
