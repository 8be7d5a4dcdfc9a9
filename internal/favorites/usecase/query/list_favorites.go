package query

import (
	"context"
	"fmt"

	"github.com/avelora/storefront/internal/favorites/domain"
	"github.com/avelora/storefront/internal/identity"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// ListFavoritesQuery represents the query to list an identity's favorites
type ListFavoritesQuery struct {
	Identity identity.Identity
	Limit    int
	Offset   int
}

// ListFavoritesResult carries one page of favorites plus the total count
type ListFavoritesResult struct {
	Favorites []domain.Favorite `json:"favorites"`
	Total     int64             `json:"total"`
	Limit     int               `json:"limit"`
	Offset    int               `json:"offset"`
}

// ListFavoritesHandler handles the list favorites query
type ListFavoritesHandler struct {
	repo domain.FavoriteRepository
}

// NewListFavoritesHandler creates a new list favorites handler
func NewListFavoritesHandler(repo domain.FavoriteRepository) *ListFavoritesHandler {
	return &ListFavoritesHandler{repo: repo}
}

// Handle returns favorites newest first. Anonymous identities have no
// favorites and get an empty page rather than an error. Product data is
// not re-validated here; rows referencing deleted products are dropped
// at hydration time by the UI layer.
func (h *ListFavoritesHandler) Handle(ctx context.Context, q ListFavoritesQuery) (*ListFavoritesResult, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	result := &ListFavoritesResult{
		Favorites: []domain.Favorite{},
		Limit:     limit,
		Offset:    offset,
	}

	if q.Identity.IsAnonymous() {
		return result, nil
	}

	favorites, err := h.repo.ListByIdentity(ctx, q.Identity, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	total, err := h.repo.CountByIdentity(ctx, q.Identity)
	if err != nil {
		return nil, fmt.Errorf("failed to count favorites: %w", err)
	}

	result.Favorites = favorites
	result.Total = total
	return result, nil
}
