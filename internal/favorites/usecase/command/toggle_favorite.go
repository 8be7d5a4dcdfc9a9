package command

import (
	"context"
	"fmt"

	"github.com/avelora/storefront/internal/favorites/domain"
	"github.com/avelora/storefront/internal/identity"
)

// ToggleFavoriteCommand represents the command to flip a product's
// favorited state
type ToggleFavoriteCommand struct {
	Identity  identity.Identity
	ProductID uint
}

// ToggleFavoriteHandler handles the toggle favorite command
type ToggleFavoriteHandler struct {
	repo   domain.FavoriteRepository
	add    *AddFavoriteHandler
	remove *RemoveFavoriteHandler
}

// NewToggleFavoriteHandler creates a new toggle favorite handler
func NewToggleFavoriteHandler(repo domain.FavoriteRepository, add *AddFavoriteHandler, remove *RemoveFavoriteHandler) *ToggleFavoriteHandler {
	return &ToggleFavoriteHandler{repo: repo, add: add, remove: remove}
}

// Handle flips the favorited state and returns the new state. The
// read-then-write is deliberately not atomic: the store's uniqueness
// constraint makes a double insert safe and delete is naturally
// idempotent, so two racing toggles can only toggle twice, never
// corrupt state.
func (h *ToggleFavoriteHandler) Handle(ctx context.Context, cmd ToggleFavoriteCommand) (bool, error) {
	if cmd.Identity.IsAnonymous() {
		return false, domain.ErrInvalidIdentity
	}

	favorited, err := h.repo.Exists(ctx, cmd.Identity, cmd.ProductID)
	if err != nil {
		return false, fmt.Errorf("failed to read favorite state: %w", err)
	}

	if favorited {
		if err := h.remove.Handle(ctx, RemoveFavoriteCommand(cmd)); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := h.add.Handle(ctx, AddFavoriteCommand(cmd)); err != nil {
		return false, err
	}
	return true, nil
}
