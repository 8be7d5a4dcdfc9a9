package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelora/storefront/internal/favorites/domain"
	"github.com/avelora/storefront/internal/identity"
)

type stubFavoriteRepository struct {
	domain.FavoriteRepository

	favorites []domain.Favorite
	total     int64
	exists    bool
	err       error

	gotLimit  int
	gotOffset int
}

func (s *stubFavoriteRepository) ListByIdentity(_ context.Context, _ identity.Identity, limit, offset int) ([]domain.Favorite, error) {
	s.gotLimit = limit
	s.gotOffset = offset
	return s.favorites, s.err
}

func (s *stubFavoriteRepository) CountByIdentity(_ context.Context, _ identity.Identity) (int64, error) {
	return s.total, s.err
}

func (s *stubFavoriteRepository) Exists(_ context.Context, _ identity.Identity, _ uint) (bool, error) {
	return s.exists, s.err
}

func TestListFavorites(t *testing.T) {
	repo := &stubFavoriteRepository{
		favorites: []domain.Favorite{{ProductID: 2}, {ProductID: 1}},
		total:     5,
	}
	handler := NewListFavoritesHandler(repo)

	result, err := handler.Handle(context.Background(), ListFavoritesQuery{
		Identity: identity.Customer(1),
		Limit:    2,
		Offset:   2,
	})
	require.NoError(t, err)

	assert.Len(t, result.Favorites, 2)
	assert.Equal(t, int64(5), result.Total)
	assert.Equal(t, 2, result.Limit)
	assert.Equal(t, 2, result.Offset)
	assert.Equal(t, 2, repo.gotLimit)
	assert.Equal(t, 2, repo.gotOffset)
}

func TestListFavoritesClampsPaging(t *testing.T) {
	repo := &stubFavoriteRepository{}
	handler := NewListFavoritesHandler(repo)

	result, err := handler.Handle(context.Background(), ListFavoritesQuery{
		Identity: identity.Customer(1),
		Limit:    1000,
		Offset:   -5,
	})
	require.NoError(t, err)
	assert.Equal(t, maxLimit, result.Limit)
	assert.Zero(t, result.Offset)

	result, err = handler.Handle(context.Background(), ListFavoritesQuery{Identity: identity.Customer(1)})
	require.NoError(t, err)
	assert.Equal(t, defaultLimit, result.Limit)
}

func TestListFavoritesAnonymousGetsEmptyPage(t *testing.T) {
	repo := &stubFavoriteRepository{total: 99, favorites: []domain.Favorite{{ProductID: 1}}}
	handler := NewListFavoritesHandler(repo)

	result, err := handler.Handle(context.Background(), ListFavoritesQuery{Identity: identity.Anonymous()})
	require.NoError(t, err)
	assert.Empty(t, result.Favorites)
	assert.Zero(t, result.Total)
}

func TestListFavoritesRepoError(t *testing.T) {
	repo := &stubFavoriteRepository{err: errors.New("connection lost")}
	handler := NewListFavoritesHandler(repo)

	_, err := handler.Handle(context.Background(), ListFavoritesQuery{Identity: identity.Customer(1)})
	assert.Error(t, err)
}

func TestCheckFavorite(t *testing.T) {
	repo := &stubFavoriteRepository{exists: true}
	handler := NewCheckFavoriteHandler(repo)

	favorited, err := handler.Handle(context.Background(), CheckFavoriteQuery{
		Identity:  identity.Guest("g-1"),
		ProductID: 10,
	})
	require.NoError(t, err)
	assert.True(t, favorited)
}

func TestCheckFavoriteAnonymousIsFalse(t *testing.T) {
	repo := &stubFavoriteRepository{exists: true}
	handler := NewCheckFavoriteHandler(repo)

	favorited, err := handler.Handle(context.Background(), CheckFavoriteQuery{
		Identity:  identity.Anonymous(),
		ProductID: 10,
	})
	require.NoError(t, err)
	assert.False(t, favorited)
}
