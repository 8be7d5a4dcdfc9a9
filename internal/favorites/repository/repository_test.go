package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/avelora/storefront/internal/favorites/domain"
	"github.com/avelora/storefront/internal/identity"
)

func setupTestRepo(t *testing.T) *GormFavoriteRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	repo := NewGormFavoriteRepository(db)
	require.NoError(t, repo.AutoMigrate())
	return repo
}

func mustInsert(t *testing.T, repo *GormFavoriteRepository, id identity.Identity, productID uint) {
	t.Helper()
	_, err := repo.Insert(context.Background(), id, productID)
	require.NoError(t, err)
}

func productIDs(favorites []domain.Favorite) []uint {
	ids := make([]uint, 0, len(favorites))
	for _, f := range favorites {
		ids = append(ids, f.ProductID)
	}
	return ids
}

func TestInsertAndExists(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	rowID, err := repo.Insert(ctx, identity.Customer(1), 10)
	require.NoError(t, err)
	assert.NotEmpty(t, rowID)

	exists, err := repo.Exists(ctx, identity.Customer(1), 10)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, identity.Customer(2), 10)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestInsertDuplicateReturnsErrDuplicate(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	mustInsert(t, repo, identity.Customer(1), 10)

	_, err := repo.Insert(ctx, identity.Customer(1), 10)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	count, err := repo.CountByIdentity(ctx, identity.Customer(1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestInsertSameProductDifferentOwners(t *testing.T) {
	repo := setupTestRepo(t)

	mustInsert(t, repo, identity.Customer(1), 10)
	mustInsert(t, repo, identity.Customer(2), 10)
	mustInsert(t, repo, identity.Guest("g-1"), 10)
	mustInsert(t, repo, identity.Guest("g-2"), 10)
}

func TestInsertDuplicateGuestPairReturnsErrDuplicate(t *testing.T) {
	repo := setupTestRepo(t)

	mustInsert(t, repo, identity.Guest("g-1"), 10)

	_, err := repo.Insert(context.Background(), identity.Guest("g-1"), 10)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestInsertAnonymousReturnsErrInvalidIdentity(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.Insert(context.Background(), identity.Anonymous(), 10)
	assert.ErrorIs(t, err, domain.ErrInvalidIdentity)
}

func TestDelete(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	mustInsert(t, repo, identity.Customer(1), 10)

	removed, err := repo.Delete(ctx, identity.Customer(1), 10)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, identity.Customer(1), 10)
	require.NoError(t, err)
	assert.False(t, removed)

	exists, err := repo.Exists(ctx, identity.Customer(1), 10)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDeleteDoesNotCrossOwners(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	mustInsert(t, repo, identity.Customer(1), 10)
	mustInsert(t, repo, identity.Guest("g-1"), 10)

	removed, err := repo.Delete(ctx, identity.Guest("g-1"), 10)
	require.NoError(t, err)
	assert.True(t, removed)

	exists, err := repo.Exists(ctx, identity.Customer(1), 10)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestListByIdentityNewestFirst(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	for _, productID := range []uint{10, 20, 30} {
		mustInsert(t, repo, identity.Customer(1), productID)
	}

	favorites, err := repo.ListByIdentity(ctx, identity.Customer(1), 10, 0)
	require.NoError(t, err)
	require.Len(t, favorites, 3)
	assert.ElementsMatch(t, []uint{10, 20, 30}, productIDs(favorites))
	for i := 1; i < len(favorites); i++ {
		assert.False(t, favorites[i].CreatedAt.After(favorites[i-1].CreatedAt))
	}
}

func TestListByIdentityPagination(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	for productID := uint(1); productID <= 5; productID++ {
		mustInsert(t, repo, identity.Customer(1), productID)
	}

	page1, err := repo.ListByIdentity(ctx, identity.Customer(1), 2, 0)
	require.NoError(t, err)
	page2, err := repo.ListByIdentity(ctx, identity.Customer(1), 2, 2)
	require.NoError(t, err)
	page3, err := repo.ListByIdentity(ctx, identity.Customer(1), 2, 4)
	require.NoError(t, err)

	assert.Len(t, page1, 2)
	assert.Len(t, page2, 2)
	assert.Len(t, page3, 1)

	seen := append(productIDs(page1), productIDs(page2)...)
	seen = append(seen, productIDs(page3)...)
	assert.ElementsMatch(t, []uint{1, 2, 3, 4, 5}, seen)
}

func TestListByIdentityAnonymousIsEmpty(t *testing.T) {
	repo := setupTestRepo(t)

	mustInsert(t, repo, identity.Customer(1), 10)

	favorites, err := repo.ListByIdentity(context.Background(), identity.Anonymous(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestReassignMigratesAndDedups(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	guest := identity.Guest("g-123")
	customer := identity.Customer(9)

	// Guest favorited A, B, C; the customer already has B and D.
	for _, productID := range []uint{1, 2, 3} {
		mustInsert(t, repo, guest, productID)
	}
	for _, productID := range []uint{2, 4} {
		mustInsert(t, repo, customer, productID)
	}

	result, err := repo.Reassign(ctx, guest, customer)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Migrated)
	assert.Equal(t, int64(1), result.Discarded)

	favorites, err := repo.ListByIdentity(ctx, customer, 10, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{1, 2, 3, 4}, productIDs(favorites))

	remaining, err := repo.CountByIdentity(ctx, guest)
	require.NoError(t, err)
	assert.Zero(t, remaining)
}

func TestReassignIsIdempotent(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	guest := identity.Guest("g-123")
	customer := identity.Customer(9)

	mustInsert(t, repo, guest, 1)
	mustInsert(t, repo, customer, 2)

	first, err := repo.Reassign(ctx, guest, customer)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Migrated)

	second, err := repo.Reassign(ctx, guest, customer)
	require.NoError(t, err)
	assert.Zero(t, second.Migrated)
	assert.Zero(t, second.Discarded)

	count, err := repo.CountByIdentity(ctx, customer)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestReassignEmptySourceIsNoOp(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	mustInsert(t, repo, identity.Customer(9), 1)

	result, err := repo.Reassign(ctx, identity.Guest("never-seen"), identity.Customer(9))
	require.NoError(t, err)
	assert.Zero(t, result.Migrated)
	assert.Zero(t, result.Discarded)
}

func TestReassignDoesNotTouchOtherOwners(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	mustInsert(t, repo, identity.Guest("g-1"), 1)
	mustInsert(t, repo, identity.Guest("g-2"), 1)
	mustInsert(t, repo, identity.Customer(5), 1)

	_, err := repo.Reassign(ctx, identity.Guest("g-1"), identity.Customer(9))
	require.NoError(t, err)

	count, err := repo.CountByIdentity(ctx, identity.Guest("g-2"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.CountByIdentity(ctx, identity.Customer(5))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestReassignBetweenCustomers(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	mustInsert(t, repo, identity.Customer(1), 10)
	mustInsert(t, repo, identity.Customer(1), 20)
	mustInsert(t, repo, identity.Customer(2), 20)

	result, err := repo.Reassign(ctx, identity.Customer(1), identity.Customer(2))
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Migrated)
	assert.Equal(t, int64(1), result.Discarded)

	favorites, err := repo.ListByIdentity(ctx, identity.Customer(2), 10, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{10, 20}, productIDs(favorites))
}

func TestReassignAnonymousEndpoints(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	_, err := repo.Reassign(ctx, identity.Anonymous(), identity.Customer(1))
	assert.ErrorIs(t, err, domain.ErrInvalidIdentity)

	_, err = repo.Reassign(ctx, identity.Guest("g-1"), identity.Anonymous())
	assert.ErrorIs(t, err, domain.ErrInvalidIdentity)
}

func TestReassignSameIdentityIsNoOp(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	mustInsert(t, repo, identity.Customer(1), 10)

	result, err := repo.Reassign(ctx, identity.Customer(1), identity.Customer(1))
	require.NoError(t, err)
	assert.Zero(t, result.Migrated)

	count, err := repo.CountByIdentity(ctx, identity.Customer(1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
