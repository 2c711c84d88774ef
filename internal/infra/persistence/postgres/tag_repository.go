package postgres

import (
	"context"
	"strings"

	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/repository"
	"inkwell/internal/infra/persistence/model"
	"inkwell/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// tagRepository implements the domain.TagRepository interface.
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository is the constructor for tagRepository.
func NewTagRepository(db *gorm.DB) repository.TagRepository {
	return &tagRepository{db: db}
}

// Create persists a new tag.
func (repo *tagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	m := &model.TagModel{ID: tag.ID, Name: tag.Name, Slug: tag.Slug}
	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateSlug
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create tag")
	}

	tag.ID = m.ID

	return nil
}

// Delete removes a tag and its post/product links.
func (repo *tagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.TagModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete tag")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTagNotFound
	}

	return nil
}

// FindBySlug retrieves a single tag by its URL slug.
func (repo *tagRepository) FindBySlug(ctx context.Context, slug string) (*entity.Tag, error) {
	var m model.TagModel
	err := repo.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTagNotFound
		}

		return nil, errors.WithStack(err)
	}

	return m.ToEntity(), nil
}

// List retrieves all tags ordered by name.
func (repo *tagRepository) List(ctx context.Context) ([]*entity.Tag, error) {
	var models []model.TagModel
	err := repo.db.WithContext(ctx).
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	tags := make([]*entity.Tag, 0, len(models))
	for i := range models {
		tags = append(tags, models[i].ToEntity())
	}

	return tags, nil
}

// FindOrCreateByNames resolves tag names to entities, creating missing ones.
// Names are deduplicated case-insensitively.
func (repo *tagRepository) FindOrCreateByNames(ctx context.Context, names []string) ([]*entity.Tag, error) {
	seen := make(map[string]struct{}, len(names))
	tags := make([]*entity.Tag, 0, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		slug := util.Slugify(name)
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}

		m := model.TagModel{Name: name, Slug: slug}
		err := repo.db.WithContext(ctx).
			Where("slug = ?", slug).
			FirstOrCreate(&m).Error
		if err != nil {
			return nil, domainerrors.NewDatabaseExecuteError(err, "failed to resolve tag")
		}

		tags = append(tags, m.ToEntity())
	}

	return tags, nil
}
