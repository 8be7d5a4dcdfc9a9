package command

import (
	"context"
	"fmt"

	"github.com/avelora/storefront/internal/favorites/domain"
	"github.com/avelora/storefront/internal/identity"
)

// RemoveFavoriteCommand represents the command to unfavorite a product
type RemoveFavoriteCommand struct {
	Identity  identity.Identity
	ProductID uint
}

// RemoveFavoriteHandler handles the remove favorite command
type RemoveFavoriteHandler struct {
	repo domain.FavoriteRepository
}

// NewRemoveFavoriteHandler creates a new remove favorite handler
func NewRemoveFavoriteHandler(repo domain.FavoriteRepository) *RemoveFavoriteHandler {
	return &RemoveFavoriteHandler{repo: repo}
}

// Handle executes the remove favorite command. Removing a product that
// was never favorited is a no-op success.
func (h *RemoveFavoriteHandler) Handle(ctx context.Context, cmd RemoveFavoriteCommand) error {
	if cmd.Identity.IsAnonymous() {
		return domain.ErrInvalidIdentity
	}

	if _, err := h.repo.Delete(ctx, cmd.Identity, cmd.ProductID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}
