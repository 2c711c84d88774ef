package impl

import (
	"context"
	"strings"
	"testing"

	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/repository"
	mockRepo "inkwell/internal/mocks/repository"
	mockSvc "inkwell/internal/mocks/service"
	"inkwell/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestShopService_PlaceOrder_FreezesPriceAndName(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)

	factory.EXPECT().ProductRepo().Return(productRepo)
	factory.EXPECT().OrderRepo().Return(orderRepo)

	service := NewShopService(newTxManager(t, factory), mockSvc.NewMockQRCodeService(t), newTestConfig(0), newDiscardLogger())

	ctx := context.Background()
	identityID := uuid.New()
	productID := uuid.New()

	productRepo.EXPECT().
		FindByID(ctx, productID).
		Return(&entity.Product{ID: productID, Name: "Mug", PriceCents: 1250, Stock: 5}, nil)
	productRepo.EXPECT().DecrementStock(ctx, productID, 3).Return(nil)
	orderRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Order")).
		Run(func(_ context.Context, order *entity.Order) {
			assert.Equal(t, entity.OrderStatusPending, order.Status)
			assert.True(t, strings.HasPrefix(order.Number, "ORD-"))
			require.Len(t, order.Items, 1)
			assert.Equal(t, "Mug", order.Items[0].ProductName)
			assert.Equal(t, int64(1250), order.Items[0].UnitCents)
			assert.Equal(t, int64(3750), order.TotalCents)
		}).
		Return(nil)

	order, err := service.PlaceOrder(ctx, identityID, &usecase.PlaceOrderInput{
		Lines: []usecase.OrderLineInput{{ProductID: productID, Quantity: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, identityID, order.IdentityID)
	assert.Equal(t, int64(3750), order.TotalCents)
}

func TestShopService_PlaceOrder_InsufficientStock(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	productRepo := mockRepo.NewMockProductRepository(t)

	factory.EXPECT().ProductRepo().Return(productRepo)

	service := NewShopService(newTxManager(t, factory), mockSvc.NewMockQRCodeService(t), newTestConfig(0), newDiscardLogger())

	ctx := context.Background()
	productID := uuid.New()

	productRepo.EXPECT().
		FindByID(ctx, productID).
		Return(&entity.Product{ID: productID, Name: "Mug", PriceCents: 1250, Stock: 1}, nil)
	productRepo.EXPECT().
		DecrementStock(ctx, productID, 2).
		Return(repository.ErrStockConflict)

	_, err := service.PlaceOrder(ctx, uuid.New(), &usecase.PlaceOrderInput{
		Lines: []usecase.OrderLineInput{{ProductID: productID, Quantity: 2}},
	})
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
}

func TestShopService_PlaceOrder_EmptyAndInvalidLines(t *testing.T) {
	service := NewShopService(mockRepo.NewMockTransactionManager(t), mockSvc.NewMockQRCodeService(t), newTestConfig(0), newDiscardLogger())

	_, err := service.PlaceOrder(context.Background(), uuid.New(), &usecase.PlaceOrderInput{})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestShopService_GetOrder_HidesOthersOrders(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	orderID := uuid.New()
	order := &entity.Order{ID: orderID, IdentityID: ownerID, Status: entity.OrderStatusPending}

	newService := func(t *testing.T) (usecase.ShopUsecase, *mockRepo.MockOrderRepository) {
		factory := mockRepo.NewMockRepositoryFactory(t)
		orderRepo := mockRepo.NewMockOrderRepository(t)
		factory.EXPECT().OrderRepo().Return(orderRepo)

		return NewShopService(newTxManager(t, factory), mockSvc.NewMockQRCodeService(t), newTestConfig(0), newDiscardLogger()), orderRepo
	}

	t.Run("owner sees own order", func(t *testing.T) {
		service, orderRepo := newService(t)
		orderRepo.EXPECT().FindByID(ctx, orderID).Return(order, nil)

		got, err := service.GetOrder(ctx, orderID, ownerID, false)
		require.NoError(t, err)
		assert.Equal(t, order, got)
	})

	t.Run("stranger gets not found", func(t *testing.T) {
		service, orderRepo := newService(t)
		orderRepo.EXPECT().FindByID(ctx, orderID).Return(order, nil)

		_, err := service.GetOrder(ctx, orderID, uuid.New(), false)
		assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	})

	t.Run("admin sees any order", func(t *testing.T) {
		service, orderRepo := newService(t)
		orderRepo.EXPECT().FindByID(ctx, orderID).Return(order, nil)

		got, err := service.GetOrder(ctx, orderID, uuid.New(), true)
		require.NoError(t, err)
		assert.Equal(t, order, got)
	})
}

func TestShopService_UpdateOrderStatus_Transitions(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	newService := func(t *testing.T, current entity.OrderStatus) (usecase.ShopUsecase, *mockRepo.MockOrderRepository) {
		factory := mockRepo.NewMockRepositoryFactory(t)
		orderRepo := mockRepo.NewMockOrderRepository(t)
		factory.EXPECT().OrderRepo().Return(orderRepo)
		orderRepo.EXPECT().
			FindByID(ctx, orderID).
			Return(&entity.Order{ID: orderID, Status: current}, nil)

		return NewShopService(newTxManager(t, factory), mockSvc.NewMockQRCodeService(t), newTestConfig(0), newDiscardLogger()), orderRepo
	}

	t.Run("pending to paid", func(t *testing.T) {
		service, orderRepo := newService(t, entity.OrderStatusPending)
		orderRepo.EXPECT().UpdateStatus(ctx, orderID, entity.OrderStatusPaid).Return(nil)

		order, err := service.UpdateOrderStatus(ctx, orderID, entity.OrderStatusPaid)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusPaid, order.Status)
	})

	t.Run("pending to shipped rejected", func(t *testing.T) {
		service, _ := newService(t, entity.OrderStatusPending)

		_, err := service.UpdateOrderStatus(ctx, orderID, entity.OrderStatusShipped)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidOrderTransition)
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		service, _ := newService(t, entity.OrderStatusCancelled)

		_, err := service.UpdateOrderStatus(ctx, orderID, entity.OrderStatusPaid)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidOrderTransition)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		service := NewShopService(mockRepo.NewMockTransactionManager(t), mockSvc.NewMockQRCodeService(t), newTestConfig(0), newDiscardLogger())

		_, err := service.UpdateOrderStatus(ctx, orderID, entity.OrderStatus("teleported"))
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})
}

func TestShopService_ProductQRCode(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	qrService := mockSvc.NewMockQRCodeService(t)

	factory.EXPECT().ProductRepo().Return(productRepo)

	service := NewShopService(newTxManager(t, factory), qrService, newTestConfig(0), newDiscardLogger())

	ctx := context.Background()

	productRepo.EXPECT().
		FindBySlug(ctx, "mug").
		Return(&entity.Product{ID: uuid.New(), Slug: "mug"}, nil)
	qrService.EXPECT().ProductPermalink("mug").Return("https://shop.example.com/products/mug")
	qrService.EXPECT().
		GeneratePermalinkQR("https://shop.example.com/products/mug").
		Return([]byte{0x89, 'P', 'N', 'G'}, nil)

	png, err := service.ProductQRCode(ctx, "mug")
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestShopService_ProductQRCode_UnknownProduct(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	productRepo := mockRepo.NewMockProductRepository(t)

	factory.EXPECT().ProductRepo().Return(productRepo)

	service := NewShopService(newTxManager(t, factory), mockSvc.NewMockQRCodeService(t), newTestConfig(0), newDiscardLogger())

	ctx := context.Background()

	productRepo.EXPECT().
		FindBySlug(ctx, "ghost").
		Return(nil, repository.ErrProductNotFound)

	_, err := service.ProductQRCode(ctx, "ghost")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestShopService_CreateProduct_DuplicateName(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	tagRepo := mockRepo.NewMockTagRepository(t)

	factory.EXPECT().TagRepo().Return(tagRepo)
	factory.EXPECT().ProductRepo().Return(productRepo)

	service := NewShopService(newTxManager(t, factory), mockSvc.NewMockQRCodeService(t), newTestConfig(0), newDiscardLogger())

	ctx := context.Background()

	tagRepo.EXPECT().FindOrCreateByNames(ctx, mock.Anything).Return(nil, nil)
	productRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Product")).
		Return(repository.ErrDuplicateSlug)

	_, err := service.CreateProduct(ctx, &usecase.ProductInput{Name: "Mug"})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}
