package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/elevatedliving/storefront/internal/domain"
	"github.com/gin-gonic/gin"
)

// CartCount is the fixed value of the navbar cart badge; there is no cart
const CartCount = 2

// CatalogProvider is the read side of the catalog used by the handlers
type CatalogProvider interface {
	Products(category string) []domain.CatalogItem
	Collections() []domain.CollectionEntry
	Occasions() []domain.OccasionEntry
	Categories() []string
}

// Recommender produces gift advice; it never fails
type Recommender interface {
	RequestRecommendation(ctx context.Context, preferences string) string
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog   CatalogProvider
	concierge Recommender
	guard     *InFlightGuard
}

// NewHandler creates a new HTTP handler
func NewHandler(catalog CatalogProvider, concierge Recommender) *Handler {
	return &Handler{
		catalog:   catalog,
		concierge: concierge,
		guard:     NewInFlightGuard(),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "elevated-living-storefront",
		"version": "1.0.0",
	})
}

// ListProducts returns the catalog, filtered by the optional category query
func (h *Handler) ListProducts(c *gin.Context) {
	category := c.DefaultQuery("category", domain.CategoryAll)

	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"products": h.catalog.Products(category),
	})
}

// ListCategories returns the shop filter values
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.catalog.Categories()})
}

// ListCollections returns the curated collection panels
func (h *Handler) ListCollections(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"collections": h.catalog.Collections()})
}

// ListOccasions returns the gifting occasion tiles
func (h *Handler) ListOccasions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"occasions": h.catalog.Occasions()})
}

// RequestRecommendation handles concierge requests from API clients.
// Empty preferences never reach the requester.
func (h *Handler) RequestRecommendation(c *gin.Context) {
	var req domain.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	advice, err := h.ask(c, req.Preferences)
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "preferences must not be empty"})
		return
	case errors.Is(err, domain.ErrRequestInFlight):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Consulting Experts... please wait for the current request"})
		return
	}

	c.JSON(http.StatusOK, domain.RecommendationResponse{Recommendation: advice})
}

// ask applies caller-side gating and then invokes the requester
func (h *Handler) ask(c *gin.Context, preferences string) (string, error) {
	if strings.TrimSpace(preferences) == "" {
		return "", domain.ErrInvalidRequest
	}

	release, err := h.guard.Acquire(c.ClientIP())
	if err != nil {
		return "", err
	}
	defer release()

	return h.concierge.RequestRecommendation(c.Request.Context(), preferences), nil
}
