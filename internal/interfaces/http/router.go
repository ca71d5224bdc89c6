package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/karigarverse/karigarverse-api/internal/application/artisan"
	"github.com/karigarverse/karigarverse-api/internal/application/auth"
	"github.com/karigarverse/karigarverse-api/internal/application/checkout"
	"github.com/karigarverse/karigarverse-api/internal/application/usecase"
	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ProfileUC      *usecase.ProfileUseCase
	ArtisanUC      *artisan.ReconcileUseCase
	CategoryUC     *usecase.CategoryUseCase
	ProductUC      *usecase.ProductUseCase
	ReviewUC       *usecase.ReviewUseCase
	CartUC         *usecase.CartUseCase
	CheckoutUC     *checkout.UseCase
	NotificationUC *usecase.NotificationUseCase
	JWTSecret      string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Catalog reads (public)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	api.Get("/categories", categoryHandler.List)

	productHandler := NewProductHandler(deps.ProductUC)
	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.GetByID)

	reviewHandler := NewReviewHandler(deps.ReviewUC)
	api.Get("/products/:id/reviews", reviewHandler.List)

	artisanHandler := NewArtisanHandler(deps.ArtisanUC)

	// Protected routes (Bearer token required)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	profileHandler := NewProfileHandler(deps.ProfileUC)
	protected.Get("/profile", profileHandler.Get)
	protected.Put("/profile", profileHandler.Update)

	protected.Post("/products/:id/reviews", reviewHandler.Create)

	cartHandler := NewCartHandler(deps.CartUC)
	cart := protected.Group("/cart")
	cart.Get("/", cartHandler.Get)
	cart.Delete("/", cartHandler.Clear)
	cart.Post("/items", cartHandler.AddItem)
	cart.Put("/items/:productID", cartHandler.UpdateItem)
	cart.Delete("/items/:productID", cartHandler.RemoveItem)

	orderHandler := NewOrderHandler(deps.CheckoutUC)
	orders := protected.Group("/orders")
	orders.Post("/", orderHandler.Place)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/cancel", orderHandler.Cancel)
	orders.Get("/:id/receipt", orderHandler.Receipt)

	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications := protected.Group("/notifications")
	notifications.Get("/", notificationHandler.List)
	notifications.Put("/read", notificationHandler.MarkAllRead)
	notifications.Put("/:id/read", notificationHandler.MarkRead)

	// Artisan-only routes
	artisanOnly := protected.Group("/", RequireRole(entity.RoleArtisan, entity.RoleAdmin))
	artisanOnly.Get("/artisans/profile", artisanHandler.GetOwnProfile)
	artisanOnly.Put("/artisans/profile", artisanHandler.UpdateProfile)
	artisanOnly.Post("/products", productHandler.Create)
	artisanOnly.Put("/products/:id", productHandler.Update)
	artisanOnly.Put("/orders/:id/items/:itemID/status", orderHandler.UpdateItemStatus)

	// Registered after /artisans/profile so the param route cannot shadow it.
	api.Get("/artisans/:id", artisanHandler.GetByID)
}
