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

// productRepository implements the domain.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// Create persists a new product together with its tag associations.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	m := model.ProductModelFromEntity(product)
	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateSlug
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = m.ID
	product.CreatedAt = m.CreatedAt
	product.UpdatedAt = m.UpdatedAt

	return repo.replaceTags(ctx, m, product.Tags)
}

// Update modifies an existing product and rewrites its tag associations.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	m := model.ProductModelFromEntity(product)
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":        m.Name,
			"slug":        m.Slug,
			"description": m.Description,
			"price_cents": m.PriceCents,
			"image_url":   m.ImageURL,
			"stock":       m.Stock,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateSlug
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return repo.replaceTags(ctx, m, product.Tags)
}

// Delete removes a product.
func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ProductModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// FindByID retrieves a single product with its tags.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var m model.ProductModel
	err := repo.db.WithContext(ctx).
		Preload("Tags").
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.WithStack(err)
	}

	return m.ToEntity(), nil
}

// FindBySlug retrieves a single product by its URL slug.
func (repo *productRepository) FindBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	var m model.ProductModel
	err := repo.db.WithContext(ctx).
		Preload("Tags").
		Where("slug = ?", slug).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.WithStack(err)
	}

	return m.ToEntity(), nil
}

// List returns a page of products plus the total count for the filter.
func (repo *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.ProductModel{})
	if filter.TagSlug != "" {
		query = query.
			Joins("JOIN product_tags ON product_tags.product_id = products.id").
			Joins("JOIN tags ON tags.id = product_tags.tag_id").
			Where("tags.slug = ?", filter.TagSlug)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.WithStack(err)
	}

	var models []model.ProductModel
	err := query.
		Preload("Tags").
		Order("products.created_at DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	products := make([]*entity.Product, 0, len(models))
	for i := range models {
		products = append(products, models[i].ToEntity())
	}

	return products, total, nil
}

// DecrementStock atomically subtracts quantity from the product's stock.
// The guard in the WHERE clause makes concurrent oversells impossible.
func (repo *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to decrement stock")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStockConflict
	}

	return nil
}

func (repo *productRepository) replaceTags(ctx context.Context, m *model.ProductModel, tags []*entity.Tag) error {
	tagModels := make([]model.TagModel, 0, len(tags))
	for _, t := range tags {
		tagModels = append(tagModels, model.TagModel{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}

	err := repo.db.WithContext(ctx).Model(m).Association("Tags").Replace(tagModels)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update product tags")
	}

	return nil
}
