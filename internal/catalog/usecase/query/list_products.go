package query

import (
	"context"
	"fmt"

	"github.com/avelora/storefront/internal/catalog/domain"
)

// ListProductsQuery represents the query to list products, optionally
// narrowed by category or brand slug
type ListProductsQuery struct {
	Limit        int
	Offset       int
	CategorySlug string
	BrandSlug    string
	ActiveOnly   bool
}

// ListProductsResult carries one page of products plus the total count
type ListProductsResult struct {
	Products []domain.Product `json:"products"`
	Total    int64            `json:"total"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo       domain.ProductRepository
	brands     domain.BrandRepository
	categories domain.CategoryRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(
	repo domain.ProductRepository,
	brands domain.BrandRepository,
	categories domain.CategoryRepository,
) *ListProductsHandler {
	return &ListProductsHandler{repo: repo, brands: brands, categories: categories}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(ctx context.Context, q ListProductsQuery) (*ListProductsResult, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	filter := domain.ProductFilter{ActiveOnly: q.ActiveOnly}
	if q.CategorySlug != "" {
		category, err := h.categories.FindBySlug(ctx, q.CategorySlug)
		if err != nil {
			return nil, err
		}
		filter.CategoryID = &category.ID
	}
	if q.BrandSlug != "" {
		brand, err := h.brands.FindBySlug(ctx, q.BrandSlug)
		if err != nil {
			return nil, err
		}
		filter.BrandID = &brand.ID
	}

	products, err := h.repo.FindAll(ctx, filter, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	total, err := h.repo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	return &ListProductsResult{
		Products: products,
		Total:    total,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}, nil
}
