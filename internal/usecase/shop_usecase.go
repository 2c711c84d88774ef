// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"inkwell/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// ProductInput defines the data for creating or updating a product.
type ProductInput struct {
	Name        string
	Description string
	PriceCents  int64
	ImageURL    string
	Stock       int
	TagNames    []string
}

// ListProductsInput narrows and pages product listings.
type ListProductsInput struct {
	TagSlug  string
	Page     int
	PageSize int
}

// OrderLineInput is one requested product line in a new order.
type OrderLineInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// PlaceOrderInput defines the data for placing an order.
type PlaceOrderInput struct {
	Lines []OrderLineInput
}

// ListOrdersInput narrows and pages the admin order listing.
type ListOrdersInput struct {
	Status   entity.OrderStatus
	Page     int
	PageSize int
}

// SettingsInput defines the editable shop settings.
type SettingsInput struct {
	ShopName     string
	Currency     string
	ContactEmail string
	Banner       string
}

// --- Output DTOs ---

// ProductPage is one page of products with the total count for the filter.
type ProductPage struct {
	Products []*entity.Product
	Total    int64
	Page     int
	PageSize int
}

// OrderPage is one page of orders with the total count for the filter.
type OrderPage struct {
	Orders   []*entity.Order
	Total    int64
	Page     int
	PageSize int
}

// ShopUsecase defines the interface for shop operations.
type ShopUsecase interface {
	// CreateProduct adds a product to the catalog. The slug is derived from
	// the name; tag names are resolved or created.
	CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error)

	// UpdateProduct rewrites a product and its tag set.
	UpdateProduct(ctx context.Context, productID uuid.UUID, input *ProductInput) (*entity.Product, error)

	// DeleteProduct removes a product from the catalog.
	DeleteProduct(ctx context.Context, productID uuid.UUID) error

	// GetProductBySlug returns one product.
	GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error)

	// ListProducts returns a page of products.
	ListProducts(ctx context.Context, input *ListProductsInput) (*ProductPage, error)

	// ProductQRCode renders a PNG QR code pointing at the product permalink.
	ProductQRCode(ctx context.Context, slug string) ([]byte, error)

	// PlaceOrder creates a pending order for the identity, decrementing
	// stock atomically. Prices and names are frozen at purchase time.
	PlaceOrder(ctx context.Context, identityID uuid.UUID, input *PlaceOrderInput) (*entity.Order, error)

	// GetOrder returns one order. Customers see their own; admins see all.
	GetOrder(ctx context.Context, orderID, callerID uuid.UUID, callerIsAdmin bool) (*entity.Order, error)

	// ListMyOrders returns the calling identity's orders, newest first.
	ListMyOrders(ctx context.Context, identityID uuid.UUID) ([]*entity.Order, error)

	// ListOrders returns a page of all orders for the admin view.
	ListOrders(ctx context.Context, input *ListOrdersInput) (*OrderPage, error)

	// UpdateOrderStatus moves an order along its lifecycle. Illegal
	// transitions are rejected.
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error)

	// GetSettings returns the shop settings.
	GetSettings(ctx context.Context) (*entity.SiteSettings, error)

	// UpdateSettings rewrites the shop settings.
	UpdateSettings(ctx context.Context, input *SettingsInput) (*entity.SiteSettings, error)
}
