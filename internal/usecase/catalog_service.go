package usecase

import "github.com/elevatedliving/storefront/internal/domain"

// shopCategories drives the shop filter bar, in display order
var shopCategories = []string{domain.CategoryAll, "Dining", "Serving", "Home Decor", "Barware"}

// FilterByCategory returns the items whose category equals the given value,
// in their original order. An empty category or "All" selects everything.
// Unknown categories yield an empty, non-nil slice.
func FilterByCategory(items []domain.CatalogItem, category string) []domain.CatalogItem {
	if category == "" || category == domain.CategoryAll {
		return append([]domain.CatalogItem{}, items...)
	}

	filtered := make([]domain.CatalogItem, 0, len(items))
	for _, item := range items {
		if item.Category == category {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// CatalogService serves the static catalog to the delivery layer
type CatalogService struct {
	repo domain.CatalogRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo domain.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// Products returns the catalog filtered by category
func (s *CatalogService) Products(category string) []domain.CatalogItem {
	return FilterByCategory(s.repo.Products(), category)
}

// Collections returns every collection panel
func (s *CatalogService) Collections() []domain.CollectionEntry {
	return s.repo.Collections()
}

// Occasions returns every occasion tile
func (s *CatalogService) Occasions() []domain.OccasionEntry {
	return s.repo.Occasions()
}

// Categories returns the shop filter values, "All" first
func (s *CatalogService) Categories() []string {
	return append([]string(nil), shopCategories...)
}
