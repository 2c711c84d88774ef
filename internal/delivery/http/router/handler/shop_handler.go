package handler

import (
	"log/slog"
	"net/http"
	"time"

	"inkwell/internal/delivery/http/middleware"
	"inkwell/internal/delivery/http/response"
	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ShopHandler holds dependencies for catalog and order handlers.
type ShopHandler struct {
	uc     usecase.ShopUsecase
	logger *slog.Logger
}

// NewShopHandler is the constructor for ShopHandler, injected by Fx.
func NewShopHandler(uc usecase.ShopUsecase, logger *slog.Logger) *ShopHandler {
	return &ShopHandler{uc: uc, logger: logger}
}

type productRequest struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Description string   `json:"description"`
	PriceCents  int64    `json:"priceCents" validate:"min=0"`
	ImageURL    string   `json:"imageUrl" validate:"omitempty,url"`
	Stock       int      `json:"stock" validate:"min=0"`
	Tags        []string `json:"tags"`
}

type orderLineRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type placeOrderRequest struct {
	Lines []orderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type settingsRequest struct {
	ShopName     string `json:"shopName" validate:"required,max=255"`
	Currency     string `json:"currency" validate:"required,len=3"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
	Banner       string `json:"banner"`
}

type productView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"priceCents"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Stock       int       `json:"stock"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type orderItemView struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitCents   int64  `json:"unitCents"`
}

type orderView struct {
	ID         string          `json:"id"`
	Number     string          `json:"number"`
	Status     string          `json:"status"`
	Items      []orderItemView `json:"items"`
	TotalCents int64           `json:"totalCents"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func newProductView(product *entity.Product) productView {
	tags := make([]string, 0, len(product.Tags))
	for _, t := range product.Tags {
		tags = append(tags, t.Name)
	}

	return productView{
		ID:          product.ID.String(),
		Name:        product.Name,
		Slug:        product.Slug,
		Description: product.Description,
		PriceCents:  product.PriceCents,
		ImageURL:    product.ImageURL,
		Stock:       product.Stock,
		Tags:        tags,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func newOrderView(order *entity.Order) orderView {
	items := make([]orderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemView{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitCents:   item.UnitCents,
		})
	}

	return orderView{
		ID:         order.ID.String(),
		Number:     order.Number,
		Status:     string(order.Status),
		Items:      items,
		TotalCents: order.TotalCents,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}

// ListProducts returns a page of the catalog.
func (h *ShopHandler) ListProducts(c echo.Context) error {
	page, pageSize := pagingParams(c)

	result, err := h.uc.ListProducts(c.Request().Context(), &usecase.ListProductsInput{
		TagSlug:  c.QueryParam("tag"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]productView, 0, len(result.Products))
	for _, p := range result.Products {
		views = append(views, newProductView(p))
	}

	return response.Success(c, http.StatusOK, pageView{
		Items:    views,
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	}, "")
}

// GetProduct returns one product by slug.
func (h *ShopHandler) GetProduct(c echo.Context) error {
	product, err := h.uc.GetProductBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newProductView(product), "")
}

// GetProductQRCode streams a PNG QR code pointing at the product page.
func (h *ShopHandler) GetProductQRCode(c echo.Context) error {
	png, err := h.uc.ProductQRCode(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// CreateProduct adds a product to the catalog. Admin only.
func (h *ShopHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.uc.CreateProduct(c.Request().Context(), &usecase.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
		TagNames:    req.Tags,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newProductView(product), "Product created")
}

// UpdateProduct rewrites a product. Admin only.
func (h *ShopHandler) UpdateProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product ID")
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), productID, &usecase.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
		TagNames:    req.Tags,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newProductView(product), "Product updated")
}

// DeleteProduct removes a product. Admin only.
func (h *ShopHandler) DeleteProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product ID")
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), productID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted")
}

// PlaceOrder creates a pending order for the caller.
func (h *ShopHandler) PlaceOrder(c echo.Context) error {
	identityID, ok := middleware.CallerIdentityID(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	lines := make([]usecase.OrderLineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Invalid product ID in order line")
		}
		lines = append(lines, usecase.OrderLineInput{ProductID: productID, Quantity: line.Quantity})
	}

	order, err := h.uc.PlaceOrder(c.Request().Context(), identityID, &usecase.PlaceOrderInput{Lines: lines})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newOrderView(order), "Order placed")
}

// GetOrder returns one order. Customers see their own; admins see all.
func (h *ShopHandler) GetOrder(c echo.Context) error {
	identityID, ok := middleware.CallerIdentityID(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order ID")
	}

	order, err := h.uc.GetOrder(c.Request().Context(), orderID, identityID, middleware.CallerIsAdmin(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newOrderView(order), "")
}

// ListMyOrders returns the caller's orders, newest first.
func (h *ShopHandler) ListMyOrders(c echo.Context) error {
	identityID, ok := middleware.CallerIdentityID(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	orders, err := h.uc.ListMyOrders(c.Request().Context(), identityID)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]orderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, newOrderView(order))
	}

	return response.Success(c, http.StatusOK, views, "")
}

// ListOrders returns a page of all orders. Admin only.
func (h *ShopHandler) ListOrders(c echo.Context) error {
	page, pageSize := pagingParams(c)

	result, err := h.uc.ListOrders(c.Request().Context(), &usecase.ListOrdersInput{
		Status:   entity.OrderStatus(c.QueryParam("status")),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]orderView, 0, len(result.Orders))
	for _, order := range result.Orders {
		views = append(views, newOrderView(order))
	}

	return response.Success(c, http.StatusOK, pageView{
		Items:    views,
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	}, "")
}

// UpdateOrderStatus moves an order along its lifecycle. Admin only.
func (h *ShopHandler) UpdateOrderStatus(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order ID")
	}

	var req orderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.uc.UpdateOrderStatus(c.Request().Context(), orderID, entity.OrderStatus(req.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newOrderView(order), "Order status updated")
}

// GetSettings returns the shop settings.
func (h *ShopHandler) GetSettings(c echo.Context) error {
	settings, err := h.uc.GetSettings(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, settings, "")
}

// UpdateSettings rewrites the shop settings. Admin only.
func (h *ShopHandler) UpdateSettings(c echo.Context) error {
	var req settingsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid settings input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	settings, err := h.uc.UpdateSettings(c.Request().Context(), &usecase.SettingsInput{
		ShopName:     req.ShopName,
		Currency:     req.Currency,
		ContactEmail: req.ContactEmail,
		Banner:       req.Banner,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, settings, "Settings updated")
}
