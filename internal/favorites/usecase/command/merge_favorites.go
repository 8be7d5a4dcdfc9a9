package command

import (
	"context"
	"fmt"

	"github.com/avelora/storefront/internal/favorites/domain"
	"github.com/avelora/storefront/internal/identity"
	"github.com/avelora/storefront/pkg/logger"
)

// MergeFavoritesCommand folds a guest's favorites into the customer
// record after authentication
type MergeFavoritesCommand struct {
	GuestID    string
	CustomerID uint
}

// MergeFavoritesHandler handles the merge favorites command. The whole
// operation is one atomic store-level reassign, so it is safe to retry
// wholesale: a second invocation finds no remaining guest rows (or a
// strict subset) and completes as a no-op.
type MergeFavoritesHandler struct {
	repo domain.FavoriteRepository
}

// NewMergeFavoritesHandler creates a new merge favorites handler
func NewMergeFavoritesHandler(repo domain.FavoriteRepository) *MergeFavoritesHandler {
	return &MergeFavoritesHandler{repo: repo}
}

// Handle executes the merge. An empty or malformed guest id is a
// zero-effect success because the login flow calls this unconditionally
// and "merge called twice" must never error or duplicate. The returned
// counts are observability only.
func (h *MergeFavoritesHandler) Handle(ctx context.Context, cmd MergeFavoritesCommand) (domain.ReassignResult, error) {
	if cmd.CustomerID == 0 {
		return domain.ReassignResult{}, domain.ErrInvalidIdentity
	}

	guest := identity.Guest(cmd.GuestID)
	if guest.IsAnonymous() {
		// Nothing to merge: the client never browsed as a guest, or the
		// guest trail was already consumed by an earlier login.
		return domain.ReassignResult{}, nil
	}

	result, err := h.repo.Reassign(ctx, guest, identity.Customer(cmd.CustomerID))
	if err != nil {
		return domain.ReassignResult{}, fmt.Errorf("failed to merge favorites: %w", err)
	}

	logger.Info(ctx).
		Uint("customer_id", cmd.CustomerID).
		Int64("migrated", result.Migrated).
		Int64("discarded", result.Discarded).
		Msg("Guest favorites merged")

	return result, nil
}
