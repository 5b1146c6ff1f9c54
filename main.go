package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-backend/config"
	"storefront-backend/database"
	"storefront-backend/events"
	"storefront-backend/models"
	"storefront-backend/routes"
	"storefront-backend/tagging"
	"storefront-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func main() {
	// Load environment variables
	if err := config.LoadEnv(); err != nil {
		logger.Fatal().Err(err).Msg("Error loading .env file")
	}

	// Validate critical environment variables
	if err := config.ValidateEnv(); err != nil {
		logger.Fatal().Err(err).Msg("Environment validation failed")
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Create default admin user if not exists
	if err := database.CreateDefaultAdmin(db); err != nil {
		logger.Warn().Err(err).Msg("Could not create default admin")
	}

	// The tagging registry must know every taggable kind before the
	// tag endpoints are served.
	tagging.RegisterDefaults()

	// Order notifications: a log line plus a confirmation email, both
	// delivered synchronously before the placing request returns.
	bus := events.NewBus()
	bus.SubscribeOrderCreated(func(order *models.Order) {
		logger.Info().Uint("order_id", order.ID).Float64("total", order.Total()).Msg("Order created")
	})
	bus.SubscribeOrderCreated(func(order *models.Order) {
		user := order.Customer.User
		if user.Email != "" {
			utils.SendOrderConfirmation(user.Email, user.FirstName, order.ID, order.Total())
		}
	})

	// Setup Gin router
	r := gin.Default()

	// CORS configuration - filter out empty strings from AllowOrigins
	origins := []string{os.Getenv("FRONTEND_URL"), os.Getenv("ADMIN_URL")}
	var filteredOrigins []string
	for _, o := range origins {
		if o != "" {
			filteredOrigins = append(filteredOrigins, o)
		}
	}
	if len(filteredOrigins) == 0 {
		filteredOrigins = []string{"http://localhost:3000"}
		logger.Warn().Msg("No CORS origins configured, defaulting to http://localhost:3000")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     filteredOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Setup routes
	routes.SetupRoutes(r, db, bus)

	// Start server with graceful shutdown
	port := config.GetEnv("PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// Run server in a goroutine
	go func() {
		logger.Info().Str("port", port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing database connection")
		} else {
			logger.Info().Msg("Database connection closed")
		}
	}

	logger.Info().Msg("Server exited gracefully")
}
