package http

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/elevatedliving/storefront/internal/domain"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

// pageData is what every screen template renders from
type pageData struct {
	View      domain.View
	Views     []domain.View
	CartCount int

	Products       []domain.CatalogItem
	Collections    []domain.CollectionEntry
	Occasions      []domain.OccasionEntry
	Categories     []string
	ActiveCategory string

	// Concierge widget state
	Query          string
	Recommendation string
	Busy           bool
	Notice         string
}

// LoadTemplates parses the embedded screen templates
func LoadTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"price": formatPrice,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

func formatPrice(p float64) string {
	return fmt.Sprintf("$%.2f", p)
}

func (h *Handler) newPage(view domain.View) pageData {
	return pageData{
		View:      view,
		Views:     domain.Views(),
		CartCount: CartCount,
	}
}

// render fills in the data a screen needs and writes it
func (h *Handler) render(c *gin.Context, status int, page pageData) {
	switch page.View {
	case domain.ViewHome:
		page.Collections = h.catalog.Collections()
		page.Occasions = h.catalog.Occasions()
	case domain.ViewCollections:
		page.Collections = h.catalog.Collections()
	case domain.ViewShop:
		if page.ActiveCategory == "" {
			page.ActiveCategory = domain.CategoryAll
		}
		page.Categories = h.catalog.Categories()
		page.Products = h.catalog.Products(page.ActiveCategory)
	}

	c.HTML(status, string(page.View)+".html", page)
}

// ShowView returns a handler that renders one screen
func (h *Handler) ShowView(view domain.View) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := h.newPage(view)
		if view == domain.ViewShop {
			page.ActiveCategory = c.Query("category")
		}
		h.render(c, http.StatusOK, page)
	}
}

// ShowNamedView resolves /view/:name to one of the five screens
func (h *Handler) ShowNamedView(c *gin.Context) {
	view, err := domain.ParseView(c.Param("name"))
	if errors.Is(err, domain.ErrUnknownView) {
		c.String(http.StatusNotFound, "page not found")
		return
	}
	h.ShowView(view)(c)
}

// SubmitConciergeForm handles the home page concierge form
func (h *Handler) SubmitConciergeForm(c *gin.Context) {
	preferences := c.PostForm("preferences")
	page := h.newPage(domain.ViewHome)
	page.Query = preferences

	advice, err := h.ask(c, preferences)
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		page.Notice = "Tell our concierge about the occasion and recipient first."
		h.render(c, http.StatusBadRequest, page)
		return
	case errors.Is(err, domain.ErrRequestInFlight):
		page.Busy = true
		h.render(c, http.StatusTooManyRequests, page)
		return
	}

	page.Recommendation = advice
	h.render(c, http.StatusOK, page)
}
