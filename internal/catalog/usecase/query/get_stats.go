package query

import (
	"context"
	"fmt"

	"github.com/avelora/storefront/internal/catalog/domain"
)

// GetStatsQuery represents the query to get catalog statistics
type GetStatsQuery struct{}

// CatalogStats represents catalog statistics
type CatalogStats struct {
	TotalProducts   int64   `json:"total_products"`
	ActiveProducts  int64   `json:"active_products"`
	TotalStock      int64   `json:"total_stock"`
	AveragePrice    float64 `json:"average_price"`
	TotalBrands     int64   `json:"total_brands"`
	TotalCategories int64   `json:"total_categories"`
}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	repo       domain.ProductRepository
	brands     domain.BrandRepository
	categories domain.CategoryRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(
	repo domain.ProductRepository,
	brands domain.BrandRepository,
	categories domain.CategoryRepository,
) *GetStatsHandler {
	return &GetStatsHandler{repo: repo, brands: brands, categories: categories}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(ctx context.Context, _ GetStatsQuery) (*CatalogStats, error) {
	totalProducts, err := h.repo.Count(ctx, domain.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to get product count: %w", err)
	}
	activeProducts, err := h.repo.Count(ctx, domain.ProductFilter{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get active product count: %w", err)
	}

	// Walk the whole catalog for stock and price aggregates. Fine at
	// back-office scale; revisit if the catalog outgrows a single page.
	products, err := h.repo.FindAll(ctx, domain.ProductFilter{}, 10000, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	var totalStock int64
	var totalPrice float64
	for _, product := range products {
		totalStock += int64(product.Stock)
		totalPrice += product.Price
	}

	averagePrice := 0.0
	if totalProducts > 0 {
		averagePrice = totalPrice / float64(totalProducts)
	}

	brands, err := h.brands.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	categories, err := h.categories.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return &CatalogStats{
		TotalProducts:   totalProducts,
		ActiveProducts:  activeProducts,
		TotalStock:      totalStock,
		AveragePrice:    averagePrice,
		TotalBrands:     int64(len(brands)),
		TotalCategories: int64(len(categories)),
	}, nil
}
