package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelora/storefront/internal/favorites/domain"
	"github.com/avelora/storefront/internal/identity"
)

// AddFavoriteCommand represents the command to favorite a product
type AddFavoriteCommand struct {
	Identity  identity.Identity
	ProductID uint
}

// AddFavoriteHandler handles the add favorite command
type AddFavoriteHandler struct {
	repo     domain.FavoriteRepository
	products domain.ProductChecker
}

// NewAddFavoriteHandler creates a new add favorite handler
func NewAddFavoriteHandler(repo domain.FavoriteRepository, products domain.ProductChecker) *AddFavoriteHandler {
	return &AddFavoriteHandler{repo: repo, products: products}
}

// Handle executes the add favorite command. Adding an already-favorited
// product is a success: the store's duplicate signal is absorbed here and
// never reaches callers, so concurrent adds converge to one row without
// surfacing an error.
func (h *AddFavoriteHandler) Handle(ctx context.Context, cmd AddFavoriteCommand) error {
	if cmd.Identity.IsAnonymous() {
		return domain.ErrInvalidIdentity
	}
	if cmd.ProductID == 0 {
		return domain.ErrProductNotFound
	}

	exists, err := h.products.Exists(ctx, cmd.ProductID)
	if err != nil {
		return fmt.Errorf("failed to check product: %w", err)
	}
	if !exists {
		return domain.ErrProductNotFound
	}

	if _, err := h.repo.Insert(ctx, cmd.Identity, cmd.ProductID); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}
