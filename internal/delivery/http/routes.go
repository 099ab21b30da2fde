package http

import (
	"fmt"

	"github.com/elevatedliving/storefront/config"
	"github.com/elevatedliving/storefront/internal/domain"
	"github.com/elevatedliving/storefront/internal/infrastructure/metrics"
	"github.com/gin-gonic/gin"
)

// Dependencies are the shared components the router wires into middleware
type Dependencies struct {
	Metrics *metrics.Registry
	Limiter *ClientRateLimiter // nil disables per-client limiting
}

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, deps Dependencies) (*gin.Engine, error) {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	// Client identity keys the in-flight guard and the rate limiter, so
	// X-Forwarded-For is only believed from configured proxies
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	// Global middleware
	router.Use(RequestLogger(deps.Metrics))
	router.Use(RecoveryMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	limit := RateLimitMiddleware(deps.Limiter)

	// Health check and metrics endpoints
	router.GET("/health", handler.HealthCheck)
	if deps.Metrics != nil {
		router.GET("/metrics", deps.Metrics.HandlerText)
		router.GET("/metrics.json", deps.Metrics.HandlerJSON)
	}

	// Screens
	for _, view := range domain.Views() {
		router.GET(view.Path(), handler.ShowView(view))
	}
	router.GET("/view/:name", handler.ShowNamedView)
	router.POST("/concierge", limit, handler.SubmitConciergeForm)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		catalog := v1.Group("/catalog")
		{
			catalog.GET("/products", handler.ListProducts)
			catalog.GET("/categories", handler.ListCategories)
			catalog.GET("/collections", handler.ListCollections)
			catalog.GET("/occasions", handler.ListOccasions)
		}

		concierge := v1.Group("/concierge")
		{
			concierge.POST("/recommendations", limit, handler.RequestRecommendation)
		}
	}

	return router, nil
}
