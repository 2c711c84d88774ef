package model

import (
	"time"

	"github.com/google/uuid"

	"inkwell/internal/domain/entity"
)

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Slug        string    `gorm:"type:varchar(255);unique;not null"`
	Description string    `gorm:"type:text"`
	PriceCents  int64     `gorm:"not null"`
	ImageURL    string    `gorm:"type:varchar(512)"`
	Stock       int       `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Tags []TagModel `gorm:"many2many:product_tags;joinForeignKey:ProductID;joinReferences:TagID"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// ToEntity converts the model and its loaded tags to a domain Product.
func (m *ProductModel) ToEntity() *entity.Product {
	return &entity.Product{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		PriceCents:  m.PriceCents,
		ImageURL:    m.ImageURL,
		Stock:       m.Stock,
		Tags:        tagsToEntities(m.Tags),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ProductModelFromEntity converts a domain Product to its table mapping.
func ProductModelFromEntity(e *entity.Product) *ProductModel {
	return &ProductModel{
		ID:          e.ID,
		Name:        e.Name,
		Slug:        e.Slug,
		Description: e.Description,
		PriceCents:  e.PriceCents,
		ImageURL:    e.ImageURL,
		Stock:       e.Stock,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Number     string    `gorm:"type:varchar(32);unique;not null"`
	IdentityID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status     string    `gorm:"type:varchar(16);not null;index"`
	TotalCents int64     `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// ToEntity converts the model and its loaded items to a domain Order.
func (m *OrderModel) ToEntity() *entity.Order {
	items := make([]*entity.OrderItem, 0, len(m.Items))
	for i := range m.Items {
		items = append(items, m.Items[i].ToEntity())
	}

	return &entity.Order{
		ID:         m.ID,
		Number:     m.Number,
		IdentityID: m.IdentityID,
		Status:     entity.OrderStatus(m.Status),
		Items:      items,
		TotalCents: m.TotalCents,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// OrderItemModel mirrors the 'order_items' table. Product name and unit price
// are frozen at purchase time.
type OrderItemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"`
	ProductName string    `gorm:"type:varchar(255);not null"`
	Quantity    int       `gorm:"not null"`
	UnitCents   int64     `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToEntity converts the model to a domain OrderItem.
func (m *OrderItemModel) ToEntity() *entity.OrderItem {
	return &entity.OrderItem{
		ID:          m.ID,
		OrderID:     m.OrderID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		UnitCents:   m.UnitCents,
	}
}

// SiteSettingsModel mirrors the single-row 'site_settings' table.
type SiteSettingsModel struct {
	ID           int    `gorm:"primaryKey"`
	ShopName     string `gorm:"type:varchar(255);not null"`
	Currency     string `gorm:"type:varchar(8);not null"`
	ContactEmail string `gorm:"type:varchar(255)"`
	Banner       string `gorm:"type:text"`
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (SiteSettingsModel) TableName() string {
	return "site_settings"
}

// ToEntity converts the model to a domain SiteSettings.
func (m *SiteSettingsModel) ToEntity() *entity.SiteSettings {
	return &entity.SiteSettings{
		ShopName:     m.ShopName,
		Currency:     m.Currency,
		ContactEmail: m.ContactEmail,
		Banner:       m.Banner,
		UpdatedAt:    m.UpdatedAt,
	}
}
