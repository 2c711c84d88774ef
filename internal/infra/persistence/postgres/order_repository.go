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

// orderRepository implements the domain.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Create persists an order with its items in one shot.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	m := &model.OrderModel{
		ID:         order.ID,
		Number:     order.Number,
		IdentityID: order.IdentityID,
		Status:     string(order.Status),
		TotalCents: order.TotalCents,
	}
	for _, item := range order.Items {
		m.Items = append(m.Items, model.OrderItemModel{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitCents:   item.UnitCents,
		})
	}

	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = m.ID
	order.CreatedAt = m.CreatedAt
	order.UpdatedAt = m.UpdatedAt
	for i := range m.Items {
		order.Items[i].ID = m.Items[i].ID
		order.Items[i].OrderID = m.Items[i].OrderID
	}

	return nil
}

// FindByID retrieves a single order with its items.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var m model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.WithStack(err)
	}

	return m.ToEntity(), nil
}

// ListByIdentityID retrieves all orders of one customer, newest first.
func (repo *orderRepository) ListByIdentityID(ctx context.Context, identityID uuid.UUID) ([]*entity.Order, error) {
	var models []model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("identity_id = ?", identityID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return ordersToEntities(models), nil
}

// List returns a page of orders plus the total count for the filter.
func (repo *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.OrderModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.WithStack(err)
	}

	var models []model.OrderModel
	err := query.
		Preload("Items").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return ordersToEntities(models), total, nil
}

// UpdateStatus moves an order to a new status. Transition legality is
// checked by the use case layer before calling this.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

func ordersToEntities(models []model.OrderModel) []*entity.Order {
	orders := make([]*entity.Order, 0, len(models))
	for i := range models {
		orders = append(orders, models[i].ToEntity())
	}

	return orders
}
