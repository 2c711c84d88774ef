// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a purchasable item in the shop.
type Product struct {
	ID          uuid.UUID
	Name        string
	Slug        string // URL-safe identifier, unique.
	Description string
	PriceCents  int64 // Unit price in the smallest currency unit.
	ImageURL    string
	Stock       int // Remaining units; orders decrement it.
	Tags        []*Tag
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the OrderStatus is a known value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the status may move to next.
// pending -> paid | cancelled; paid -> shipped | cancelled; shipped and
// cancelled are terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusPaid || next == OrderStatusCancelled
	case OrderStatusPaid:
		return next == OrderStatusShipped || next == OrderStatusCancelled
	default:
		return false
	}
}

// Order is a customer purchase with its line items.
type Order struct {
	ID         uuid.UUID
	Number     string // Human-facing order number, unique.
	IdentityID uuid.UUID
	Status     OrderStatus
	Items      []*OrderItem
	TotalCents int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderItem is one product line within an order. Name and unit price are
// captured at purchase time so later product edits do not rewrite history.
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitCents   int64
}

// SiteSettings is the single editable shop configuration document.
type SiteSettings struct {
	ShopName     string
	Currency     string
	ContactEmail string
	Banner       string
	UpdatedAt    time.Time
}
