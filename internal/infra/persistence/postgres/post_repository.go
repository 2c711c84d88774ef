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

// postRepository implements the domain.PostRepository interface.
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository is the constructor for postRepository.
func NewPostRepository(db *gorm.DB) repository.PostRepository {
	return &postRepository{db: db}
}

// Create persists a new post together with its tag associations.
func (repo *postRepository) Create(ctx context.Context, post *entity.Post) error {
	m := model.PostModelFromEntity(post)
	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateSlug
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create post")
	}

	post.ID = m.ID
	post.CreatedAt = m.CreatedAt
	post.UpdatedAt = m.UpdatedAt

	return repo.replaceTags(ctx, m, post.Tags)
}

// Update modifies an existing post and rewrites its tag associations.
func (repo *postRepository) Update(ctx context.Context, post *entity.Post) error {
	m := model.PostModelFromEntity(post)
	result := repo.db.WithContext(ctx).
		Model(&model.PostModel{}).
		Where("id = ?", post.ID).
		Updates(map[string]any{
			"title":     m.Title,
			"slug":      m.Slug,
			"summary":   m.Summary,
			"content":   m.Content,
			"published": m.Published,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateSlug
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update post")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}

	return repo.replaceTags(ctx, m, post.Tags)
}

// Delete removes a post. Comments and tag links go with it via FK cascade.
func (repo *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.PostModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete post")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}

	return nil
}

// FindByID retrieves a single post with its tags.
func (repo *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	var m model.PostModel
	err := repo.db.WithContext(ctx).
		Preload("Tags").
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}

		return nil, errors.WithStack(err)
	}

	return m.ToEntity(), nil
}

// FindBySlug retrieves a single post by its URL slug.
func (repo *postRepository) FindBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	var m model.PostModel
	err := repo.db.WithContext(ctx).
		Preload("Tags").
		Where("slug = ?", slug).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}

		return nil, errors.WithStack(err)
	}

	return m.ToEntity(), nil
}

// List returns a page of posts plus the total count for the filter.
func (repo *postRepository) List(ctx context.Context, filter repository.PostFilter) ([]*entity.Post, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.PostModel{})
	if filter.PublishedOnly {
		query = query.Where("published = ?", true)
	}
	if filter.TagSlug != "" {
		query = query.
			Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.slug = ?", filter.TagSlug)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.WithStack(err)
	}

	var models []model.PostModel
	err := query.
		Preload("Tags").
		Order("posts.created_at DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	posts := make([]*entity.Post, 0, len(models))
	for i := range models {
		posts = append(posts, models[i].ToEntity())
	}

	return posts, total, nil
}

// replaceTags rewrites the post's tag associations to exactly the given set.
func (repo *postRepository) replaceTags(ctx context.Context, m *model.PostModel, tags []*entity.Tag) error {
	tagModels := make([]model.TagModel, 0, len(tags))
	for _, t := range tags {
		tagModels = append(tagModels, model.TagModel{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}

	err := repo.db.WithContext(ctx).Model(m).Association("Tags").Replace(tagModels)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update post tags")
	}

	return nil
}
