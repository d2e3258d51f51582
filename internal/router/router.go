// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/datashop/ingest-backend/internal/config"
	"github.com/datashop/ingest-backend/internal/handlers"
	"github.com/datashop/ingest-backend/internal/middleware"
	"github.com/datashop/ingest-backend/internal/services"
)

func Initialize(cfg *config.Config, logger *logrus.Logger) (*gin.Engine, error) {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	ingestionService := services.NewIngestionService(storageService, logger)
	catalogService := services.NewCatalogService(cfg.Catalog, logger)

	// Initialize handlers
	ingestionHandler := handlers.NewIngestionHandler(
		ingestionService,
		catalogService,
		storageService,
		cfg.Upload.MaxArchiveSize,
	)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		products := v1.Group("/data-products")
		{
			products.GET("", ingestionHandler.ListProducts)
			products.POST("", middleware.UploadRateLimit(), ingestionHandler.UploadProduct)
		}
	}

	return r, nil
}
