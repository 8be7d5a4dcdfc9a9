package command

import (
	"context"

	"github.com/avelora/storefront/internal/catalog/domain"
	"github.com/avelora/storefront/pkg/logger"
)

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	ID uint
}

// DeleteProductHandler handles product deletion command
type DeleteProductHandler struct {
	repo   domain.ProductRepository
	events domain.EventPublisher
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(repo domain.ProductRepository, events domain.EventPublisher) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo, events: events}
}

// Handle executes the delete product command. Deletion is soft; existing
// favorites referencing the product are left in place and filtered out
// when the storefront hydrates them.
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
	if err := h.repo.Delete(ctx, cmd.ID); err != nil {
		return err
	}

	if err := h.events.ProductDeleted(ctx, cmd.ID); err != nil {
		logger.Warn(ctx).Err(err).Uint("product_id", cmd.ID).Msg("Failed to publish product deleted event")
	}

	return nil
}
