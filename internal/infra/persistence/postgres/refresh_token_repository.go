package postgres

import (
	"context"
	"time"

	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/repository"
	"inkwell/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// refreshTokenRepository implements the domain.RefreshTokenRepository interface.
type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository is the constructor for refreshTokenRepository.
func NewRefreshTokenRepository(db *gorm.DB) repository.RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

// CreateRefreshToken persists a new refresh token, representing a session.
// Concurrent logins each get their own row; nothing is deduplicated.
func (repo *refreshTokenRepository) CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error {
	m := &model.RefreshTokenModel{
		ID:         token.ID,
		IdentityID: token.IdentityID,
		TokenHash:  token.TokenHash,
		ExpiresAt:  token.ExpiresAt,
		RevokedAt:  token.RevokedAt,
	}
	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrRefreshTokenInvalid.WrapMessage("refresh token already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrIdentityNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create refresh token")
	}

	token.ID = m.ID
	token.CreatedAt = m.CreatedAt

	return nil
}

// FindActiveByHash retrieves a refresh token by its stored hash, but only
// while it is unrevoked and unexpired. The three failure states are
// indistinguishable to the caller.
func (repo *refreshTokenRepository) FindActiveByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	var m model.RefreshTokenModel
	err := repo.db.WithContext(ctx).
		Where("token_hash = ? AND revoked_at IS NULL AND expires_at > ?", tokenHash, time.Now()).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRefreshTokenNotFound
		}

		return nil, errors.WithStack(err)
	}

	return m.ToEntity(), nil
}

// FindRefreshTokenByID retrieves a refresh token record by its unique ID,
// regardless of its active state.
func (repo *refreshTokenRepository) FindRefreshTokenByID(ctx context.Context, id uuid.UUID) (*entity.RefreshToken, error) {
	var m model.RefreshTokenModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRefreshTokenNotFound
		}

		return nil, errors.WithStack(err)
	}

	return m.ToEntity(), nil
}

// FindRefreshTokensByIdentityID retrieves all active refresh tokens for an
// identity, newest first.
func (repo *refreshTokenRepository) FindRefreshTokensByIdentityID(ctx context.Context, identityID uuid.UUID) ([]*entity.RefreshToken, error) {
	var models []model.RefreshTokenModel
	err := repo.db.WithContext(ctx).
		Where("identity_id = ? AND revoked_at IS NULL AND expires_at > ?", identityID, time.Now()).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	tokens := make([]*entity.RefreshToken, 0, len(models))
	for i := range models {
		tokens = append(tokens, models[i].ToEntity())
	}

	return tokens, nil
}

// RevokeByHash marks the token revoked. Already-revoked and nonexistent
// tokens are a no-op, which makes logout idempotent.
func (repo *refreshTokenRepository) RevokeByHash(ctx context.Context, tokenHash string) error {
	err := repo.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("token_hash = ? AND revoked_at IS NULL", tokenHash).
		Update("revoked_at", time.Now()).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to revoke refresh token")
	}

	return nil
}

// RevokeByID marks a single session revoked by its record ID.
func (repo *refreshTokenRepository) RevokeByID(ctx context.Context, id uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", time.Now()).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to revoke refresh token")
	}

	return nil
}

// RevokeByIdentityID revokes every live session of an identity.
func (repo *refreshTokenRepository) RevokeByIdentityID(ctx context.Context, identityID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("identity_id = ? AND revoked_at IS NULL", identityID).
		Update("revoked_at", time.Now()).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to revoke sessions")
	}

	return nil
}

// DeleteExpiredRefreshTokens removes rows past their expiry.
func (repo *refreshTokenRepository) DeleteExpiredRefreshTokens(ctx context.Context) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&model.RefreshTokenModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete expired refresh tokens")
	}

	return result.RowsAffected, nil
}

// CountActiveByIdentityID returns the number of active sessions for an identity.
func (repo *refreshTokenRepository) CountActiveByIdentityID(ctx context.Context, identityID uuid.UUID) (int, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("identity_id = ? AND revoked_at IS NULL AND expires_at > ?", identityID, time.Now()).
		Count(&count).Error
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return int(count), nil
}
