package query

import (
	"context"
	"fmt"

	"github.com/avelora/storefront/internal/favorites/domain"
	"github.com/avelora/storefront/internal/identity"
)

// CheckFavoriteQuery asks whether a product is favorited by an identity
type CheckFavoriteQuery struct {
	Identity  identity.Identity
	ProductID uint
}

// CheckFavoriteHandler handles the check favorite query
type CheckFavoriteHandler struct {
	repo domain.FavoriteRepository
}

// NewCheckFavoriteHandler creates a new check favorite handler
func NewCheckFavoriteHandler(repo domain.FavoriteRepository) *CheckFavoriteHandler {
	return &CheckFavoriteHandler{repo: repo}
}

// Handle reports the favorited state. Anonymous identities cannot have
// favorites, so the answer is always false.
func (h *CheckFavoriteHandler) Handle(ctx context.Context, q CheckFavoriteQuery) (bool, error) {
	if q.Identity.IsAnonymous() {
		return false, nil
	}
	exists, err := h.repo.Exists(ctx, q.Identity, q.ProductID)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}
