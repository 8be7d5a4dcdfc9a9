package query

import (
	"context"
	"fmt"

	"github.com/avelora/storefront/internal/catalog/domain"
)

// GetTaxonomyQuery represents the query for the storefront navigation
// data: all brands and categories
type GetTaxonomyQuery struct{}

// Taxonomy bundles the browsing dimensions of the catalog
type Taxonomy struct {
	Brands     []domain.Brand    `json:"brands"`
	Categories []domain.Category `json:"categories"`
}

// GetTaxonomyHandler handles the taxonomy query
type GetTaxonomyHandler struct {
	brands     domain.BrandRepository
	categories domain.CategoryRepository
}

// NewGetTaxonomyHandler creates a new taxonomy handler
func NewGetTaxonomyHandler(brands domain.BrandRepository, categories domain.CategoryRepository) *GetTaxonomyHandler {
	return &GetTaxonomyHandler{brands: brands, categories: categories}
}

// Handle executes the taxonomy query
func (h *GetTaxonomyHandler) Handle(ctx context.Context, _ GetTaxonomyQuery) (*Taxonomy, error) {
	brands, err := h.brands.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	categories, err := h.categories.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return &Taxonomy{Brands: brands, Categories: categories}, nil
}
