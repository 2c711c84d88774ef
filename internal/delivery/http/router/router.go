// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"inkwell/internal/delivery/http/middleware"
	"inkwell/internal/delivery/http/router/handler"
	"inkwell/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	SessionHandler *handler.SessionHandler
	BlogHandler    *handler.BlogHandler
	ShopHandler    *handler.ShopHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	sessionHandler *handler.SessionHandler
	blogHandler    *handler.BlogHandler
	shopHandler    *handler.ShopHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		sessionHandler: params.SessionHandler,
		blogHandler:    params.BlogHandler,
		shopHandler:    params.ShopHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.accountHandler.Register)
		authGroup.POST("/login", r.accountHandler.Login)
		authGroup.POST("/refresh", r.accountHandler.Refresh)
		authGroup.POST("/logout", r.accountHandler.Logout)
	}

	// Account routes that require authentication
	accountGroup := e.Group("/account")
	accountGroup.Use(r.authMiddleware.Authenticate)
	{
		accountGroup.GET("/profile", r.accountHandler.GetProfile)
		accountGroup.PUT("/profile", r.accountHandler.UpdateProfile)
		accountGroup.PUT("/password", r.accountHandler.ChangePassword)
	}

	// Session management for the authenticated identity
	sessionGroup := e.Group("/sessions")
	sessionGroup.Use(r.authMiddleware.Authenticate)
	{
		sessionGroup.GET("", r.sessionHandler.ListSessions)
		sessionGroup.DELETE("/:id", r.sessionHandler.RevokeSession)
		sessionGroup.DELETE("", r.sessionHandler.RevokeAllSessions)
	}

	// Public blog routes. ListPosts and GetPost consult the caller's role
	// for draft visibility, so the optional auth pass runs first.
	e.GET("/posts", r.blogHandler.ListPosts, r.authMiddleware.AuthenticateOptional)
	e.GET("/posts/:slug", r.blogHandler.GetPost, r.authMiddleware.AuthenticateOptional)
	e.GET("/posts/:id/comments", r.blogHandler.ListComments)
	e.GET("/tags", r.blogHandler.ListTags)
	e.GET("/about", r.blogHandler.GetAbout)

	// Comment routes that require authentication
	e.POST("/posts/:id/comments", r.blogHandler.AddComment, r.authMiddleware.Authenticate)
	e.DELETE("/comments/:id", r.blogHandler.DeleteComment, r.authMiddleware.Authenticate)

	// Public shop routes
	e.GET("/products", r.shopHandler.ListProducts)
	e.GET("/products/:slug", r.shopHandler.GetProduct)
	e.GET("/products/:slug/qr", r.shopHandler.GetProductQRCode)
	e.GET("/settings", r.shopHandler.GetSettings)

	// Order routes that require authentication
	orderGroup := e.Group("/orders")
	orderGroup.Use(r.authMiddleware.Authenticate)
	{
		orderGroup.POST("", r.shopHandler.PlaceOrder)
		orderGroup.GET("", r.shopHandler.ListMyOrders)
		orderGroup.GET("/:id", r.shopHandler.GetOrder)
	}

	// Admin routes that require authentication and the "admin" role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.POST("/posts", r.blogHandler.CreatePost)
		adminGroup.PUT("/posts/:id", r.blogHandler.UpdatePost)
		adminGroup.DELETE("/posts/:id", r.blogHandler.DeletePost)
		adminGroup.PUT("/about", r.blogHandler.UpdateAbout)

		adminGroup.POST("/products", r.shopHandler.CreateProduct)
		adminGroup.PUT("/products/:id", r.shopHandler.UpdateProduct)
		adminGroup.DELETE("/products/:id", r.shopHandler.DeleteProduct)

		adminGroup.GET("/orders", r.shopHandler.ListOrders)
		adminGroup.PUT("/orders/:id/status", r.shopHandler.UpdateOrderStatus)

		adminGroup.PUT("/settings", r.shopHandler.UpdateSettings)
	}
}
