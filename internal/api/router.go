package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lassenware/storefront-api/internal/api/handlers"
	"github.com/lassenware/storefront-api/internal/config"
	"github.com/lassenware/storefront-api/internal/repository"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		v1.GET("/products", handlers.HandleListProducts(cfg, logger))
		v1.GET("/products/:id", handlers.HandleGetProduct(cfg, logger))

		carts := v1.Group("/carts")
		{
			carts.POST("", handlers.HandleCreateCart(repos, logger))
			carts.GET("/:id", handlers.HandleGetCart(repos, logger))
			carts.POST("/:id/items", handlers.HandleAddItem(repos, logger))
			carts.PUT("/:id/items/:variantID", handlers.HandleUpdateItem(repos, logger))
			carts.DELETE("/:id/items/:variantID", handlers.HandleRemoveItem(repos, logger))
			carts.DELETE("/:id", handlers.HandleClearCart(repos, logger))
			carts.POST("/:id/checkout", handlers.HandleCheckout(cfg, repos, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
