package postgres

import (
	"context"

	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/repository"
	"inkwell/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// credentialRepository implements the domain.CredentialRepository interface.
type credentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository is the constructor for credentialRepository.
func NewCredentialRepository(db *gorm.DB) repository.CredentialRepository {
	return &credentialRepository{db: db}
}

// Create persists a new password credential for an identity.
func (repo *credentialRepository) Create(ctx context.Context, credential *entity.Credential) error {
	m := &model.CredentialModel{
		ID:           credential.ID,
		IdentityID:   credential.IdentityID,
		PasswordHash: credential.PasswordHash,
	}
	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("credential already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrIdentityNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create credential")
	}

	credential.ID = m.ID
	credential.CreatedAt = m.CreatedAt
	credential.UpdatedAt = m.UpdatedAt

	return nil
}

// FindByIdentityID retrieves the password credential of an identity.
func (repo *credentialRepository) FindByIdentityID(ctx context.Context, identityID uuid.UUID) (*entity.Credential, error) {
	var m model.CredentialModel
	err := repo.db.WithContext(ctx).
		Where("identity_id = ?", identityID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCredentialNotFound
		}

		return nil, errors.WithStack(err)
	}

	return m.ToEntity(), nil
}

// Update replaces the stored password hash.
func (repo *credentialRepository) Update(ctx context.Context, credential *entity.Credential) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CredentialModel{}).
		Where("identity_id = ?", credential.IdentityID).
		Update("password_hash", credential.PasswordHash)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update credential")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCredentialNotFound
	}

	return nil
}
