package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"

	"github.com/elevatedliving/storefront/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// seedDocument mirrors the layout of seed.yaml
type seedDocument struct {
	Products    []domain.CatalogItem     `yaml:"products"`
	Collections []domain.CollectionEntry `yaml:"collections"`
	Occasions   []domain.OccasionEntry   `yaml:"occasions"`
}

// StaticRepository serves catalog data decoded once at start-up. It is never
// mutated afterwards, so it is safe for concurrent readers without locking.
type StaticRepository struct {
	products    []domain.CatalogItem
	collections []domain.CollectionEntry
	occasions   []domain.OccasionEntry
}

var _ domain.CatalogRepository = (*StaticRepository)(nil)

// NewStaticRepository decodes the embedded seed document
func NewStaticRepository() (*StaticRepository, error) {
	return Load(seedYAML)
}

// Load decodes and validates a seed document
func Load(data []byte) (*StaticRepository, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc seedDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog seed: %w", err)
	}

	if err := validate(&doc); err != nil {
		return nil, fmt.Errorf("invalid catalog seed: %w", err)
	}

	return &StaticRepository{
		products:    doc.Products,
		collections: doc.Collections,
		occasions:   doc.Occasions,
	}, nil
}

// validate checks field presence; the records carry no other invariants
func validate(doc *seedDocument) error {
	var errs []error

	seen := make(map[string]bool)
	for i, p := range doc.Products {
		switch {
		case p.ID == "" || p.Name == "" || p.Image == "" || p.Category == "":
			errs = append(errs, fmt.Errorf("product %d: id, name, image and category are required", i))
		case p.Price < 0:
			errs = append(errs, fmt.Errorf("product %s: negative price %.2f", p.ID, p.Price))
		case seen[p.ID]:
			errs = append(errs, fmt.Errorf("product %s: duplicate id", p.ID))
		}
		seen[p.ID] = true
	}

	for i, c := range doc.Collections {
		if c.ID == "" || c.Title == "" || c.Image == "" {
			errs = append(errs, fmt.Errorf("collection %d: id, title and image are required", i))
		}
		if !c.Size.Valid() {
			errs = append(errs, fmt.Errorf("collection %s: size must be 'large' or 'small', got %q", c.ID, c.Size))
		}
	}

	for i, o := range doc.Occasions {
		if o.ID == "" || o.Name == "" {
			errs = append(errs, fmt.Errorf("occasion %d: id and name are required", i))
		}
	}

	return errors.Join(errs...)
}

// Products returns the catalog items in seed order
func (r *StaticRepository) Products() []domain.CatalogItem {
	return append([]domain.CatalogItem(nil), r.products...)
}

// Collections returns the collection panels in seed order
func (r *StaticRepository) Collections() []domain.CollectionEntry {
	return append([]domain.CollectionEntry(nil), r.collections...)
}

// Occasions returns the occasion tiles in seed order
func (r *StaticRepository) Occasions() []domain.OccasionEntry {
	return append([]domain.OccasionEntry(nil), r.occasions...)
}
