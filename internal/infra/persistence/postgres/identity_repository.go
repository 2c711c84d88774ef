package postgres

import (
	"context"
	"strings"

	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/repository"
	"inkwell/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// identityRepository implements the domain.IdentityRepository interface.
type identityRepository struct {
	db *gorm.DB
}

// NewIdentityRepository is the constructor for identityRepository.
func NewIdentityRepository(db *gorm.DB) repository.IdentityRepository {
	return &identityRepository{db: db}
}

// FindByID retrieves a single identity, roles included, by its unique ID.
func (repo *identityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Identity, error) {
	var m model.IdentityModel
	err := repo.db.WithContext(ctx).
		Preload("Roles").
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrIdentityNotFound
		}

		return nil, errors.WithStack(err)
	}

	return m.ToEntity(), nil
}

// FindByUsername retrieves a single identity by its lowercased username.
func (repo *identityRepository) FindByUsername(ctx context.Context, username string) (*entity.Identity, error) {
	var m model.IdentityModel
	err := repo.db.WithContext(ctx).
		Preload("Roles").
		Where("username = ?", strings.ToLower(username)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrIdentityNotFound
		}

		return nil, errors.WithStack(err)
	}

	return m.ToEntity(), nil
}

// FindByEmail retrieves a single identity by its email address.
func (repo *identityRepository) FindByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	var m model.IdentityModel
	err := repo.db.WithContext(ctx).
		Preload("Roles").
		Where("email = ?", strings.ToLower(email)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrIdentityNotFound
		}

		return nil, errors.WithStack(err)
	}

	return m.ToEntity(), nil
}

// Create persists a new identity together with its role memberships.
func (repo *identityRepository) Create(ctx context.Context, identity *entity.Identity) error {
	identity.Username = strings.ToLower(identity.Username)
	identity.Email = strings.ToLower(identity.Email)

	m := model.IdentityModelFromEntity(identity)
	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateIdentity
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create identity")
	}

	identity.ID = m.ID
	identity.CreatedAt = m.CreatedAt
	identity.UpdatedAt = m.UpdatedAt

	for _, role := range identity.Roles {
		if err := repo.GrantRole(ctx, identity.ID, role); err != nil {
			return err
		}
	}

	return nil
}

// Update modifies an existing identity in the storage.
func (repo *identityRepository) Update(ctx context.Context, identity *entity.Identity) error {
	m := model.IdentityModelFromEntity(identity)
	result := repo.db.WithContext(ctx).
		Model(&model.IdentityModel{}).
		Where("id = ?", identity.ID).
		Updates(map[string]any{
			"email":        strings.ToLower(m.Email),
			"display_name": m.DisplayName,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrDuplicateIdentity
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update identity")
	}
	if result.RowsAffected == 0 {
		return repository.ErrIdentityNotFound
	}

	return nil
}

// GrantRole adds a role membership; granting an already-held role is a no-op.
func (repo *identityRepository) GrantRole(ctx context.Context, identityID uuid.UUID, role entity.Role) error {
	row := model.RoleModel{IdentityID: identityID, Role: string(role)}
	err := repo.db.WithContext(ctx).
		Where("identity_id = ? AND role = ?", identityID, string(role)).
		FirstOrCreate(&row).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrIdentityNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to grant role")
	}

	return nil
}
