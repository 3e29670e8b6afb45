package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/productcatalog/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	metrics := NewMetrics()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger.Named("http")))
	router.Use(metrics.Middleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", metrics.Handler())

	// Product resource
	title := router.Group("/api/title")
	{
		title.GET("", handler.ListProducts)
		title.POST("/add", handler.CreateProduct)
		title.PUT("/update/:id", handler.UpdateProduct)
		title.DELETE("/delete/:id", handler.DeleteProduct)
	}

	return router
}
