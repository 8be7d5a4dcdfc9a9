package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/avelora/storefront/internal/catalog/domain"
)

func setupCatalog(t *testing.T) (*GormProductRepository, *GormBrandRepository, *GormCategoryRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	products := NewGormProductRepository(db)
	require.NoError(t, products.AutoMigrate())
	return products, NewGormBrandRepository(db), NewGormCategoryRepository(db)
}

func TestProductCreateAndFind(t *testing.T) {
	products, _, _ := setupCatalog(t)
	ctx := context.Background()

	product := &domain.Product{Name: "Trail Shoe", Price: 129.90, Stock: 5, SKU: "SHOE-1", IsActive: true}
	require.NoError(t, products.Create(ctx, product))
	require.NotZero(t, product.ID)

	found, err := products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Trail Shoe", found.Name)
	assert.True(t, found.IsAvailable())

	bySKU, err := products.FindBySKU(ctx, "SHOE-1")
	require.NoError(t, err)
	assert.Equal(t, product.ID, bySKU.ID)
}

func TestProductDuplicateSKU(t *testing.T) {
	products, _, _ := setupCatalog(t)
	ctx := context.Background()

	require.NoError(t, products.Create(ctx, &domain.Product{Name: "A", SKU: "DUP-1", Price: 1}))

	err := products.Create(ctx, &domain.Product{Name: "B", SKU: "DUP-1", Price: 2})
	assert.ErrorIs(t, err, domain.ErrSKUExists)
}

func TestProductNotFound(t *testing.T) {
	products, _, _ := setupCatalog(t)

	_, err := products.FindByID(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	assert.ErrorIs(t, products.Delete(context.Background(), 999), domain.ErrProductNotFound)
	assert.ErrorIs(t, products.UpdateStock(context.Background(), 999, 3), domain.ErrProductNotFound)
}

func TestProductSoftDeleteHidesFromQueries(t *testing.T) {
	products, _, _ := setupCatalog(t)
	ctx := context.Background()

	product := &domain.Product{Name: "Gone", SKU: "GONE-1", Price: 1, IsActive: true}
	require.NoError(t, products.Create(ctx, product))
	require.NoError(t, products.Delete(ctx, product.ID))

	_, err := products.FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	count, err := products.Count(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestProductFilters(t *testing.T) {
	products, brands, categories := setupCatalog(t)
	ctx := context.Background()

	brand := &domain.Brand{Name: "Acme", Slug: "acme"}
	require.NoError(t, brands.Create(ctx, brand))
	category := &domain.Category{Name: "Shoes", Slug: "shoes"}
	require.NoError(t, categories.Create(ctx, category))

	require.NoError(t, products.Create(ctx, &domain.Product{
		Name: "In both", SKU: "P-1", Price: 1, IsActive: true,
		BrandID: &brand.ID, CategoryID: &category.ID,
	}))
	require.NoError(t, products.Create(ctx, &domain.Product{
		Name: "Brand only", SKU: "P-2", Price: 1, IsActive: true, BrandID: &brand.ID,
	}))
	require.NoError(t, products.Create(ctx, &domain.Product{
		Name: "Inactive", SKU: "P-3", Price: 1, IsActive: false, BrandID: &brand.ID,
	}))

	byBrand, err := products.FindAll(ctx, domain.ProductFilter{BrandID: &brand.ID}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, byBrand, 3)

	byCategory, err := products.FindAll(ctx, domain.ProductFilter{CategoryID: &category.ID}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, byCategory, 1)

	active, err := products.Count(ctx, domain.ProductFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), active)
}

func TestBrandAndCategoryLookups(t *testing.T) {
	_, brands, categories := setupCatalog(t)
	ctx := context.Background()

	require.NoError(t, brands.Create(ctx, &domain.Brand{Name: "Acme", Slug: "acme"}))

	brand, err := brands.FindBySlug(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme", brand.Name)

	_, err = brands.FindBySlug(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrBrandNotFound)

	parent := &domain.Category{Name: "Apparel", Slug: "apparel"}
	require.NoError(t, categories.Create(ctx, parent))
	require.NoError(t, categories.Create(ctx, &domain.Category{Name: "Jackets", Slug: "jackets", ParentID: &parent.ID}))

	all, err := categories.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
