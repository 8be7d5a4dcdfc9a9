package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelora/storefront/internal/catalog/domain"
	"github.com/avelora/storefront/pkg/logger"
)

// UpdateProductCommand represents the command to update a product
type UpdateProductCommand struct {
	ID          uint
	Name        string
	Description string
	Price       float64
	Stock       int
	SKU         string
	IsActive    bool
	BrandID     *uint
	CategoryID  *uint
}

// UpdateProductHandler handles product update command
type UpdateProductHandler struct {
	repo   domain.ProductRepository
	events domain.EventPublisher
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository, events domain.EventPublisher) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo, events: events}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if cmd.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}
	if cmd.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}

	product, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	product.Name = cmd.Name
	product.Description = cmd.Description
	product.Price = cmd.Price
	product.Stock = cmd.Stock
	product.IsActive = cmd.IsActive
	product.BrandID = cmd.BrandID
	product.CategoryID = cmd.CategoryID
	if cmd.SKU != "" {
		product.SKU = cmd.SKU
	}

	if err := h.repo.Update(ctx, product); err != nil {
		if errors.Is(err, domain.ErrSKUExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if err := h.events.ProductUpdated(ctx, product); err != nil {
		logger.Warn(ctx).Err(err).Uint("product_id", product.ID).Msg("Failed to publish product updated event")
	}

	return product, nil
}
