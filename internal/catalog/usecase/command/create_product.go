package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelora/storefront/internal/catalog/domain"
	"github.com/avelora/storefront/pkg/logger"
)

// CreateProductCommand represents the command to create a new product
type CreateProductCommand struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	SKU         string
	IsActive    bool
	BrandID     *uint
	CategoryID  *uint
}

// CreateProductHandler handles product creation command
type CreateProductHandler struct {
	repo       domain.ProductRepository
	brands     domain.BrandRepository
	categories domain.CategoryRepository
	events     domain.EventPublisher
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(
	repo domain.ProductRepository,
	brands domain.BrandRepository,
	categories domain.CategoryRepository,
	events domain.EventPublisher,
) *CreateProductHandler {
	return &CreateProductHandler{repo: repo, brands: brands, categories: categories, events: events}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if cmd.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}
	if cmd.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}
	if cmd.SKU == "" {
		return nil, fmt.Errorf("SKU is required")
	}

	if cmd.BrandID != nil {
		if _, err := h.brands.FindByID(ctx, *cmd.BrandID); err != nil {
			return nil, err
		}
	}
	if cmd.CategoryID != nil {
		if _, err := h.categories.FindByID(ctx, *cmd.CategoryID); err != nil {
			return nil, err
		}
	}

	product := &domain.Product{
		Name:        cmd.Name,
		Description: cmd.Description,
		Price:       cmd.Price,
		Stock:       cmd.Stock,
		SKU:         cmd.SKU,
		IsActive:    cmd.IsActive,
		BrandID:     cmd.BrandID,
		CategoryID:  cmd.CategoryID,
	}

	if err := h.repo.Create(ctx, product); err != nil {
		if errors.Is(err, domain.ErrSKUExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	// Best-effort: the write is committed, a broker outage only delays
	// cache invalidation downstream.
	if err := h.events.ProductCreated(ctx, product); err != nil {
		logger.Warn(ctx).Err(err).Uint("product_id", product.ID).Msg("Failed to publish product created event")
	}

	return product, nil
}
