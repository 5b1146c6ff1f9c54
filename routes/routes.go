package routes

import (
	"time"

	"storefront-backend/events"
	"storefront-backend/handlers"
	"storefront-backend/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, bus *events.Bus) {
	// Initialize handlers
	authHandler := &handlers.AuthHandler{DB: db}
	productHandler := &handlers.ProductHandler{DB: db}
	collectionHandler := &handlers.CollectionHandler{DB: db}
	reviewHandler := &handlers.ReviewHandler{DB: db}
	cartHandler := &handlers.CartHandler{DB: db}
	customerHandler := &handlers.CustomerHandler{DB: db}
	orderHandler := &handlers.OrderHandler{DB: db, Bus: bus}
	tagHandler := &handlers.TagHandler{DB: db}

	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Public routes
	api := r.Group("/api")
	{
		// Auth routes
		api.POST("/auth/register", authLimiter.Middleware(), authHandler.Register)
		api.POST("/auth/login", authLimiter.Middleware(), authHandler.Login)

		// Catalog
		api.GET("/products", productHandler.GetProducts)
		api.GET("/products/:id", productHandler.GetProduct)
		api.GET("/products/:id/reviews", reviewHandler.GetReviews)
		api.POST("/products/:id/reviews", reviewHandler.CreateReview)

		api.GET("/collections", collectionHandler.GetCollections)
		api.GET("/collections/:id", collectionHandler.GetCollection)

		// Anonymous carts
		api.POST("/carts", cartHandler.CreateCart)
		api.GET("/carts/:id", cartHandler.GetCart)
		api.DELETE("/carts/:id", cartHandler.DeleteCart)
		api.GET("/carts/:id/items", cartHandler.GetCartItems)
		api.POST("/carts/:id/items", cartHandler.AddCartItem)
		api.PUT("/carts/:id/items/:itemID", cartHandler.UpdateCartItem)
		api.DELETE("/carts/:id/items/:itemID", cartHandler.RemoveCartItem)

		// Tags
		api.GET("/tags", tagHandler.GetTags)
		api.GET("/taggeditems", tagHandler.GetTaggedItems)
	}

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/auth/profile", authHandler.GetProfile)

		protected.GET("/customers/me", customerHandler.GetMe)
		protected.PUT("/customers/me", customerHandler.UpdateMe)

		protected.POST("/orders", orderHandler.CreateOrder)
		protected.GET("/orders", orderHandler.GetOrders)
		protected.GET("/orders/:id", orderHandler.GetOrder)

		protected.POST("/tags", tagHandler.CreateTag)
		protected.POST("/taggeditems", tagHandler.CreateTaggedItem)
	}

	// Admin routes (require admin role)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		// Catalog management
		admin.POST("/products", productHandler.CreateProduct)
		admin.PUT("/products/:id", productHandler.UpdateProduct)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)

		admin.POST("/collections", collectionHandler.CreateCollection)
		admin.PUT("/collections/:id", collectionHandler.UpdateCollection)
		admin.DELETE("/collections/:id", collectionHandler.DeleteCollection)

		// Customer management
		admin.GET("/customers", customerHandler.ListCustomers)

		// Order management
		admin.PATCH("/orders/:id", orderHandler.UpdatePaymentStatus)
		admin.DELETE("/orders/:id", orderHandler.DeleteOrder)

		// Tag management
		admin.DELETE("/tags/:id", tagHandler.DeleteTag)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
