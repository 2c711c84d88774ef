package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"inkwell/config"
	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/repository"
	"inkwell/internal/domain/service"
	"inkwell/internal/usecase"
	"inkwell/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// shopService implements the ShopUsecase interface.
type shopService struct {
	txManager  repository.TransactionManager
	qrService  service.QRCodeService
	pagination *config.PaginationConfig
	logger     *slog.Logger
}

// NewShopService is the constructor for shopService.
func NewShopService(
	txManager repository.TransactionManager,
	qrService service.QRCodeService,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.ShopUsecase {
	return &shopService{
		txManager:  txManager,
		qrService:  qrService,
		pagination: cfg.Pagination,
		logger:     logger,
	}
}

// CreateProduct adds a product to the catalog.
func (srv *shopService) CreateProduct(ctx context.Context, input *usecase.ProductInput) (*entity.Product, error) {
	srv.logger.Info("Creating product", "name", input.Name)

	var created *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tags, err := repoFactory.TagRepo().FindOrCreateByNames(ctx, input.TagNames)
		if err != nil {
			return errors.Wrap(err, "failed to resolve tags")
		}

		product := &entity.Product{
			Name:        input.Name,
			Slug:        util.Slugify(input.Name),
			Description: input.Description,
			PriceCents:  input.PriceCents,
			ImageURL:    input.ImageURL,
			Stock:       input.Stock,
			Tags:        tags,
		}
		if err := repoFactory.ProductRepo().Create(ctx, product); err != nil {
			if errors.Is(err, repository.ErrDuplicateSlug) {
				return domainerrors.ErrConflict.WrapMessage("a product with this name already exists")
			}

			return errors.WithStack(err)
		}
		created = product

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to create product", "error", err)

		return nil, err
	}

	return created, nil
}

// UpdateProduct rewrites a product and its tag set.
func (srv *shopService) UpdateProduct(ctx context.Context, productID uuid.UUID, input *usecase.ProductInput) (*entity.Product, error) {
	var updated *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		product, err := productRepo.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("product not found")
			}

			return errors.Wrap(err, "failed to find product")
		}

		tags, err := repoFactory.TagRepo().FindOrCreateByNames(ctx, input.TagNames)
		if err != nil {
			return errors.Wrap(err, "failed to resolve tags")
		}

		product.Name = input.Name
		product.Slug = util.Slugify(input.Name)
		product.Description = input.Description
		product.PriceCents = input.PriceCents
		product.ImageURL = input.ImageURL
		product.Stock = input.Stock
		product.Tags = tags

		if err := productRepo.Update(ctx, product); err != nil {
			if errors.Is(err, repository.ErrDuplicateSlug) {
				return domainerrors.ErrConflict.WrapMessage("a product with this name already exists")
			}

			return errors.WithStack(err)
		}
		updated = product

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to update product", "error", err, "productID", productID)

		return nil, err
	}

	return updated, nil
}

// DeleteProduct removes a product from the catalog.
func (srv *shopService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	srv.logger.Info("Deleting product", "productID", productID)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.ProductRepo().Delete(ctx, productID); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("product not found")
			}

			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to delete product", "error", err, "productID", productID)

		return err
	}

	return nil
}

// GetProductBySlug returns one product.
func (srv *shopService) GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	var product *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ProductRepo().FindBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("product not found")
			}

			return errors.Wrap(err, "failed to find product")
		}
		product = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// ListProducts returns a page of products.
func (srv *shopService) ListProducts(ctx context.Context, input *usecase.ListProductsInput) (*usecase.ProductPage, error) {
	page, pageSize := srv.pagination.Normalize(input.Page, input.PageSize)

	var result *usecase.ProductPage

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		products, total, err := repoFactory.ProductRepo().List(ctx, repository.ProductFilter{
			TagSlug:  input.TagSlug,
			Page:     page,
			PageSize: pageSize,
		})
		if err != nil {
			return errors.Wrap(err, "failed to list products")
		}
		result = &usecase.ProductPage{Products: products, Total: total, Page: page, PageSize: pageSize}

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to list products", "error", err)

		return nil, err
	}

	return result, nil
}

// ProductQRCode renders a PNG QR code pointing at the product permalink.
func (srv *shopService) ProductQRCode(ctx context.Context, slug string) ([]byte, error) {
	// Verify the product exists before rendering anything.
	if _, err := srv.GetProductBySlug(ctx, slug); err != nil {
		return nil, err
	}

	png, err := srv.qrService.GeneratePermalinkQR(srv.qrService.ProductPermalink(slug))
	if err != nil {
		srv.logger.Error("Failed to generate product QR code", "error", err, "slug", slug)

		return nil, errors.Wrap(err, "failed to generate QR code")
	}

	return png, nil
}

// PlaceOrder creates a pending order, decrementing stock atomically. The
// stock guard and the order insert share one transaction, so two buyers
// cannot both take the last unit.
func (srv *shopService) PlaceOrder(ctx context.Context, identityID uuid.UUID, input *usecase.PlaceOrderInput) (*entity.Order, error) {
	srv.logger.Info("Placing order", "identityID", identityID, "lines", len(input.Lines))

	if len(input.Lines) == 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("order has no lines")
	}

	var placed *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		order := &entity.Order{
			Number:     newOrderNumber(),
			IdentityID: identityID,
			Status:     entity.OrderStatusPending,
		}

		for _, line := range input.Lines {
			if line.Quantity <= 0 {
				return domainerrors.ErrValidationFailed.WrapMessage("quantity must be positive")
			}

			product, err := productRepo.FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return domainerrors.ErrNotFound.WrapMessage("product not found")
				}

				return errors.Wrap(err, "failed to find product")
			}

			if err := productRepo.DecrementStock(ctx, product.ID, line.Quantity); err != nil {
				if errors.Is(err, repository.ErrStockConflict) {
					return domainerrors.ErrInsufficientStock.WithDetails(product.Name)
				}

				return errors.WithStack(err)
			}

			order.Items = append(order.Items, &entity.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				UnitCents:   product.PriceCents,
			})
			order.TotalCents += product.PriceCents * int64(line.Quantity)
		}

		if err := repoFactory.OrderRepo().Create(ctx, order); err != nil {
			return errors.WithStack(err)
		}
		placed = order

		return nil
	})
	if err != nil {
		srv.logger.Warn("Failed to place order", "error", err.Error(), "identityID", identityID)

		return nil, err
	}
	srv.logger.Info("Order placed", "orderID", placed.ID, "number", placed.Number)

	return placed, nil
}

// GetOrder returns one order, enforcing ownership for non-admins.
func (srv *shopService) GetOrder(ctx context.Context, orderID, callerID uuid.UUID, callerIsAdmin bool) (*entity.Order, error) {
	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("order not found")
			}

			return errors.Wrap(err, "failed to find order")
		}
		if !callerIsAdmin && found.IdentityID != callerID {
			// Hide the order's existence from other customers.
			return domainerrors.ErrNotFound.WrapMessage("order not found")
		}
		order = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// ListMyOrders returns the calling identity's orders, newest first.
func (srv *shopService) ListMyOrders(ctx context.Context, identityID uuid.UUID) ([]*entity.Order, error) {
	var orders []*entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OrderRepo().ListByIdentityID(ctx, identityID)
		if err != nil {
			return errors.Wrap(err, "failed to list orders")
		}
		orders = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// ListOrders returns a page of all orders for the admin view.
func (srv *shopService) ListOrders(ctx context.Context, input *usecase.ListOrdersInput) (*usecase.OrderPage, error) {
	if input.Status != "" && !input.Status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown order status")
	}

	page, pageSize := srv.pagination.Normalize(input.Page, input.PageSize)

	var result *usecase.OrderPage

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orders, total, err := repoFactory.OrderRepo().List(ctx, repository.OrderFilter{
			Status:   input.Status,
			Page:     page,
			PageSize: pageSize,
		})
		if err != nil {
			return errors.Wrap(err, "failed to list orders")
		}
		result = &usecase.OrderPage{Orders: orders, Total: total, Page: page, PageSize: pageSize}

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to list orders", "error", err)

		return nil, err
	}

	return result, nil
}

// UpdateOrderStatus moves an order along its lifecycle.
func (srv *shopService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	if !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown order status")
	}

	var updated *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order, err := orderRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("order not found")
			}

			return errors.Wrap(err, "failed to find order")
		}

		if !order.Status.CanTransitionTo(status) {
			return domainerrors.ErrInvalidOrderTransition.WithDetails(
				fmt.Sprintf("%s -> %s", order.Status, status))
		}

		if err := orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
			return errors.WithStack(err)
		}
		order.Status = status
		updated = order

		return nil
	})
	if err != nil {
		srv.logger.Warn("Failed to update order status", "error", err.Error(), "orderID", orderID)

		return nil, err
	}
	srv.logger.Info("Order status updated", "orderID", orderID, "status", status)

	return updated, nil
}

// GetSettings returns the shop settings.
func (srv *shopService) GetSettings(ctx context.Context) (*entity.SiteSettings, error) {
	var settings *entity.SiteSettings

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.SettingsRepo().Get(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to get settings")
		}
		settings = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return settings, nil
}

// UpdateSettings rewrites the shop settings.
func (srv *shopService) UpdateSettings(ctx context.Context, input *usecase.SettingsInput) (*entity.SiteSettings, error) {
	settings := &entity.SiteSettings{
		ShopName:     input.ShopName,
		Currency:     input.Currency,
		ContactEmail: input.ContactEmail,
		Banner:       input.Banner,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.SettingsRepo().Upsert(ctx, settings)
	})
	if err != nil {
		srv.logger.Error("Failed to update settings", "error", err)

		return nil, err
	}

	return settings, nil
}

// newOrderNumber builds a human-facing order number from the current time
// and a random suffix. Uniqueness is enforced by the database.
func newOrderNumber() string {
	suffix := uuid.NewString()[:8]

	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}
