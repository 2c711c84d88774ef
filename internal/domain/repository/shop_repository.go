// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"inkwell/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for shop persistence.
var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrStockConflict is returned when a stock decrement would go negative.
	ErrStockConflict = errors.New("insufficient stock")
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	TagSlug  string
	Page     int // 1-based
	PageSize int
}

// ProductRepository defines the standard operations for product persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int64, error)
	// DecrementStock atomically subtracts quantity from the product's stock,
	// failing with ErrStockConflict if the remaining stock is insufficient.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}

// OrderFilter narrows order listings for the admin view.
type OrderFilter struct {
	Status   entity.OrderStatus // empty means all statuses
	Page     int
	PageSize int
}

// OrderRepository defines the standard operations for order persistence.
type OrderRepository interface {
	// Create persists an order with its items in one shot.
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	ListByIdentityID(ctx context.Context, identityID uuid.UUID) ([]*entity.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error
}

// SettingsRepository manages the single shop settings document.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.SiteSettings, error)
	Upsert(ctx context.Context, settings *entity.SiteSettings) error
}
