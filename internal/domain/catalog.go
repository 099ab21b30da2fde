package domain

// CategoryAll is the shop filter value that selects every catalog item
const CategoryAll = "All"

// CollectionSize is the layout variant of a collection panel
type CollectionSize string

const (
	CollectionSizeLarge CollectionSize = "large"
	CollectionSizeSmall CollectionSize = "small"
)

// Valid reports whether s is one of the two layout variants
func (s CollectionSize) Valid() bool {
	return s == CollectionSizeLarge || s == CollectionSizeSmall
}

// CatalogItem represents a sellable product in the static catalog
type CatalogItem struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Price    float64 `json:"price" yaml:"price"`
	Image    string  `json:"image" yaml:"image"`
	Category string  `json:"category" yaml:"category"`
}

// CollectionEntry represents a curated thematic grouping shown as an image/text panel
type CollectionEntry struct {
	ID       string         `json:"id" yaml:"id"`
	Title    string         `json:"title" yaml:"title"`
	Subtitle string         `json:"subtitle" yaml:"subtitle"`
	Image    string         `json:"image" yaml:"image"`
	LinkText string         `json:"linkText" yaml:"link_text"`
	Size     CollectionSize `json:"size" yaml:"size"`
}

// OccasionEntry represents a gifting occasion tile
type OccasionEntry struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Image string `json:"image" yaml:"image"`
	Icon  string `json:"icon" yaml:"icon"`
}
