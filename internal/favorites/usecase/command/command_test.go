package command

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelora/storefront/internal/favorites/domain"
	"github.com/avelora/storefront/internal/identity"
)

// fakeFavoriteRepository is an in-memory FavoriteRepository guarded by a
// mutex so tests can hammer it concurrently. Uniqueness is enforced the
// same way the store does it, via ErrDuplicate on a taken pair.
type fakeFavoriteRepository struct {
	mu   sync.Mutex
	rows map[identity.Identity]map[uint]string

	insertErr   error
	reassignErr error
}

func newFakeFavoriteRepository() *fakeFavoriteRepository {
	return &fakeFavoriteRepository{rows: map[identity.Identity]map[uint]string{}}
}

func (f *fakeFavoriteRepository) Insert(_ context.Context, id identity.Identity, productID uint) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.insertErr != nil {
		return "", f.insertErr
	}
	if id.IsAnonymous() {
		return "", domain.ErrInvalidIdentity
	}
	if _, taken := f.rows[id][productID]; taken {
		return "", domain.ErrDuplicate
	}
	if f.rows[id] == nil {
		f.rows[id] = map[uint]string{}
	}
	rowID := uuid.NewString()
	f.rows[id][productID] = rowID
	return rowID, nil
}

func (f *fakeFavoriteRepository) Delete(_ context.Context, id identity.Identity, productID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.rows[id][productID]; !ok {
		return false, nil
	}
	delete(f.rows[id], productID)
	return true, nil
}

func (f *fakeFavoriteRepository) Exists(_ context.Context, id identity.Identity, productID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.rows[id][productID]
	return ok, nil
}

func (f *fakeFavoriteRepository) ListByIdentity(_ context.Context, id identity.Identity, limit, offset int) ([]domain.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var favorites []domain.Favorite
	for productID := range f.rows[id] {
		favorites = append(favorites, domain.Favorite{ProductID: productID})
	}
	return favorites, nil
}

func (f *fakeFavoriteRepository) CountByIdentity(_ context.Context, id identity.Identity) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return int64(len(f.rows[id])), nil
}

func (f *fakeFavoriteRepository) Reassign(_ context.Context, from, to identity.Identity) (domain.ReassignResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.reassignErr != nil {
		return domain.ReassignResult{}, f.reassignErr
	}
	if from.IsAnonymous() || to.IsAnonymous() {
		return domain.ReassignResult{}, domain.ErrInvalidIdentity
	}

	var result domain.ReassignResult
	if f.rows[to] == nil {
		f.rows[to] = map[uint]string{}
	}
	for productID, rowID := range f.rows[from] {
		if _, taken := f.rows[to][productID]; taken {
			result.Discarded++
		} else {
			f.rows[to][productID] = rowID
			result.Migrated++
		}
	}
	delete(f.rows, from)
	return result, nil
}

// fakeProductChecker answers existence from a fixed set
type fakeProductChecker struct {
	known map[uint]bool
	err   error
}

func (f *fakeProductChecker) Exists(_ context.Context, productID uint) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.known[productID], nil
}

func allProducts() *fakeProductChecker {
	return &fakeProductChecker{known: map[uint]bool{1: true, 2: true, 3: true, 10: true, 20: true}}
}

func TestAddFavorite(t *testing.T) {
	repo := newFakeFavoriteRepository()
	handler := NewAddFavoriteHandler(repo, allProducts())
	ctx := context.Background()

	err := handler.Handle(ctx, AddFavoriteCommand{Identity: identity.Customer(1), ProductID: 10})
	require.NoError(t, err)

	exists, _ := repo.Exists(ctx, identity.Customer(1), 10)
	assert.True(t, exists)
}

func TestAddFavoriteIsIdempotent(t *testing.T) {
	repo := newFakeFavoriteRepository()
	handler := NewAddFavoriteHandler(repo, allProducts())
	ctx := context.Background()
	cmd := AddFavoriteCommand{Identity: identity.Guest("g-1"), ProductID: 10}

	require.NoError(t, handler.Handle(ctx, cmd))
	require.NoError(t, handler.Handle(ctx, cmd))

	count, _ := repo.CountByIdentity(ctx, identity.Guest("g-1"))
	assert.Equal(t, int64(1), count)
}

func TestAddFavoriteRejectsAnonymous(t *testing.T) {
	handler := NewAddFavoriteHandler(newFakeFavoriteRepository(), allProducts())

	err := handler.Handle(context.Background(), AddFavoriteCommand{Identity: identity.Anonymous(), ProductID: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidIdentity)
}

func TestAddFavoriteUnknownProduct(t *testing.T) {
	handler := NewAddFavoriteHandler(newFakeFavoriteRepository(), allProducts())

	err := handler.Handle(context.Background(), AddFavoriteCommand{Identity: identity.Customer(1), ProductID: 999})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	err = handler.Handle(context.Background(), AddFavoriteCommand{Identity: identity.Customer(1), ProductID: 0})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestAddFavoriteCatalogFailurePropagates(t *testing.T) {
	checker := &fakeProductChecker{err: errors.New("catalog down")}
	handler := NewAddFavoriteHandler(newFakeFavoriteRepository(), checker)

	err := handler.Handle(context.Background(), AddFavoriteCommand{Identity: identity.Customer(1), ProductID: 10})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrProductNotFound)
}

func TestAddFavoriteConcurrentCallsConvergeToOneRow(t *testing.T) {
	repo := newFakeFavoriteRepository()
	handler := NewAddFavoriteHandler(repo, allProducts())
	ctx := context.Background()
	cmd := AddFavoriteCommand{Identity: identity.Customer(1), ProductID: 10}

	const n = 50
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- handler.Handle(ctx, cmd)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	count, _ := repo.CountByIdentity(ctx, identity.Customer(1))
	assert.Equal(t, int64(1), count)
}

func TestRemoveFavoriteIsIdempotent(t *testing.T) {
	repo := newFakeFavoriteRepository()
	handler := NewRemoveFavoriteHandler(repo)
	ctx := context.Background()

	_, err := repo.Insert(ctx, identity.Customer(1), 10)
	require.NoError(t, err)

	cmd := RemoveFavoriteCommand{Identity: identity.Customer(1), ProductID: 10}
	require.NoError(t, handler.Handle(ctx, cmd))
	require.NoError(t, handler.Handle(ctx, cmd))

	exists, _ := repo.Exists(ctx, identity.Customer(1), 10)
	assert.False(t, exists)
}

func TestRemoveFavoriteRejectsAnonymous(t *testing.T) {
	handler := NewRemoveFavoriteHandler(newFakeFavoriteRepository())

	err := handler.Handle(context.Background(), RemoveFavoriteCommand{Identity: identity.Anonymous(), ProductID: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidIdentity)
}

func newToggleHandler(repo *fakeFavoriteRepository) *ToggleFavoriteHandler {
	add := NewAddFavoriteHandler(repo, allProducts())
	remove := NewRemoveFavoriteHandler(repo)
	return NewToggleFavoriteHandler(repo, add, remove)
}

func TestToggleFavoriteFlipsState(t *testing.T) {
	repo := newFakeFavoriteRepository()
	handler := newToggleHandler(repo)
	ctx := context.Background()
	cmd := ToggleFavoriteCommand{Identity: identity.Customer(1), ProductID: 10}

	favorited, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, favorited)

	favorited, err = handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, favorited)

	count, _ := repo.CountByIdentity(ctx, identity.Customer(1))
	assert.Zero(t, count)
}

func TestToggleFavoriteRejectsAnonymous(t *testing.T) {
	handler := newToggleHandler(newFakeFavoriteRepository())

	_, err := handler.Handle(context.Background(), ToggleFavoriteCommand{Identity: identity.Anonymous(), ProductID: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidIdentity)
}

func TestToggleFavoriteUnknownProduct(t *testing.T) {
	handler := newToggleHandler(newFakeFavoriteRepository())

	_, err := handler.Handle(context.Background(), ToggleFavoriteCommand{Identity: identity.Customer(1), ProductID: 999})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestMergeFavorites(t *testing.T) {
	repo := newFakeFavoriteRepository()
	handler := NewMergeFavoritesHandler(repo)
	ctx := context.Background()
	guest := identity.Guest("g-123")

	for _, productID := range []uint{1, 2, 3} {
		_, err := repo.Insert(ctx, guest, productID)
		require.NoError(t, err)
	}
	for _, productID := range []uint{2, 4} {
		_, err := repo.Insert(ctx, identity.Customer(9), productID)
		require.NoError(t, err)
	}

	result, err := handler.Handle(ctx, MergeFavoritesCommand{GuestID: "g-123", CustomerID: 9})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Migrated)
	assert.Equal(t, int64(1), result.Discarded)

	count, _ := repo.CountByIdentity(ctx, identity.Customer(9))
	assert.Equal(t, int64(4), count)
	count, _ = repo.CountByIdentity(ctx, guest)
	assert.Zero(t, count)
}

func TestMergeFavoritesCalledTwice(t *testing.T) {
	repo := newFakeFavoriteRepository()
	handler := NewMergeFavoritesHandler(repo)
	ctx := context.Background()

	_, err := repo.Insert(ctx, identity.Guest("g-123"), 1)
	require.NoError(t, err)

	cmd := MergeFavoritesCommand{GuestID: "g-123", CustomerID: 9}
	_, err = handler.Handle(ctx, cmd)
	require.NoError(t, err)

	result, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Zero(t, result.Migrated)
	assert.Zero(t, result.Discarded)

	count, _ := repo.CountByIdentity(ctx, identity.Customer(9))
	assert.Equal(t, int64(1), count)
}

func TestMergeFavoritesEmptyGuestIDIsZeroEffectSuccess(t *testing.T) {
	repo := newFakeFavoriteRepository()
	handler := NewMergeFavoritesHandler(repo)

	for _, guestID := range []string{"", "   ", "not a\tvalid id"} {
		result, err := handler.Handle(context.Background(), MergeFavoritesCommand{GuestID: guestID, CustomerID: 9})
		require.NoError(t, err)
		assert.Zero(t, result.Migrated)
		assert.Zero(t, result.Discarded)
	}
}

func TestMergeFavoritesRejectsZeroCustomer(t *testing.T) {
	handler := NewMergeFavoritesHandler(newFakeFavoriteRepository())

	_, err := handler.Handle(context.Background(), MergeFavoritesCommand{GuestID: "g-123", CustomerID: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidIdentity)
}

func TestMergeFavoritesStoreFailurePropagates(t *testing.T) {
	repo := newFakeFavoriteRepository()
	repo.reassignErr = errors.New("connection reset")
	handler := NewMergeFavoritesHandler(repo)

	_, err := handler.Handle(context.Background(), MergeFavoritesCommand{GuestID: "g-123", CustomerID: 9})
	assert.Error(t, err)
}
