package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelora/storefront/internal/catalog/domain"
)

type fakeProductRepository struct {
	domain.ProductRepository

	products  map[uint]*domain.Product
	nextID    uint
	createErr error
}

func newFakeProductRepository() *fakeProductRepository {
	return &fakeProductRepository{products: map[uint]*domain.Product{}, nextID: 1}
}

func (f *fakeProductRepository) Create(_ context.Context, product *domain.Product) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.products {
		if existing.SKU == product.SKU {
			return domain.ErrSKUExists
		}
	}
	product.ID = f.nextID
	f.nextID++
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepository) FindByID(_ context.Context, id uint) (*domain.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	copied := *product
	return &copied, nil
}

func (f *fakeProductRepository) Update(_ context.Context, product *domain.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepository) Delete(_ context.Context, id uint) error {
	if _, ok := f.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

type fakeBrandRepository struct {
	domain.BrandRepository
	brands map[uint]*domain.Brand
}

func (f *fakeBrandRepository) FindByID(_ context.Context, id uint) (*domain.Brand, error) {
	brand, ok := f.brands[id]
	if !ok {
		return nil, domain.ErrBrandNotFound
	}
	return brand, nil
}

func (f *fakeBrandRepository) Create(_ context.Context, brand *domain.Brand) error {
	if f.brands == nil {
		f.brands = map[uint]*domain.Brand{}
	}
	brand.ID = uint(len(f.brands) + 1)
	f.brands[brand.ID] = brand
	return nil
}

type fakeCategoryRepository struct {
	domain.CategoryRepository
	categories map[uint]*domain.Category
}

func (f *fakeCategoryRepository) FindByID(_ context.Context, id uint) (*domain.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return category, nil
}

func (f *fakeCategoryRepository) Create(_ context.Context, category *domain.Category) error {
	if f.categories == nil {
		f.categories = map[uint]*domain.Category{}
	}
	category.ID = uint(len(f.categories) + 1)
	f.categories[category.ID] = category
	return nil
}

// recordingPublisher records which events fired and optionally fails
type recordingPublisher struct {
	created []uint
	updated []uint
	deleted []uint
	err     error
}

func (p *recordingPublisher) ProductCreated(_ context.Context, product *domain.Product) error {
	p.created = append(p.created, product.ID)
	return p.err
}

func (p *recordingPublisher) ProductUpdated(_ context.Context, product *domain.Product) error {
	p.updated = append(p.updated, product.ID)
	return p.err
}

func (p *recordingPublisher) ProductDeleted(_ context.Context, productID uint) error {
	p.deleted = append(p.deleted, productID)
	return p.err
}

func TestCreateProduct(t *testing.T) {
	repo := newFakeProductRepository()
	events := &recordingPublisher{}
	handler := NewCreateProductHandler(repo, &fakeBrandRepository{}, &fakeCategoryRepository{}, events)

	product, err := handler.Handle(context.Background(), CreateProductCommand{
		Name: "Trail Shoe", Price: 129.90, Stock: 5, SKU: "SHOE-1", IsActive: true,
	})
	require.NoError(t, err)
	assert.NotZero(t, product.ID)
	assert.Equal(t, []uint{product.ID}, events.created)
}

func TestCreateProductValidation(t *testing.T) {
	handler := NewCreateProductHandler(newFakeProductRepository(), &fakeBrandRepository{}, &fakeCategoryRepository{}, &recordingPublisher{})
	ctx := context.Background()

	cases := []CreateProductCommand{
		{Price: 1, SKU: "X"},                          // missing name
		{Name: "A", Price: -1, SKU: "X"},              // negative price
		{Name: "A", Price: 1, Stock: -1, SKU: "X"},    // negative stock
		{Name: "A", Price: 1},                         // missing SKU
	}
	for _, cmd := range cases {
		_, err := handler.Handle(ctx, cmd)
		assert.Error(t, err)
	}
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	repo := newFakeProductRepository()
	handler := NewCreateProductHandler(repo, &fakeBrandRepository{}, &fakeCategoryRepository{}, &recordingPublisher{})
	ctx := context.Background()

	_, err := handler.Handle(ctx, CreateProductCommand{Name: "A", Price: 1, SKU: "DUP"})
	require.NoError(t, err)

	_, err = handler.Handle(ctx, CreateProductCommand{Name: "B", Price: 2, SKU: "DUP"})
	assert.ErrorIs(t, err, domain.ErrSKUExists)
}

func TestCreateProductUnknownBrand(t *testing.T) {
	handler := NewCreateProductHandler(newFakeProductRepository(), &fakeBrandRepository{}, &fakeCategoryRepository{}, &recordingPublisher{})

	brandID := uint(7)
	_, err := handler.Handle(context.Background(), CreateProductCommand{
		Name: "A", Price: 1, SKU: "X", BrandID: &brandID,
	})
	assert.ErrorIs(t, err, domain.ErrBrandNotFound)
}

func TestCreateProductSurvivesPublisherFailure(t *testing.T) {
	repo := newFakeProductRepository()
	events := &recordingPublisher{err: errors.New("broker down")}
	handler := NewCreateProductHandler(repo, &fakeBrandRepository{}, &fakeCategoryRepository{}, events)

	product, err := handler.Handle(context.Background(), CreateProductCommand{Name: "A", Price: 1, SKU: "X"})
	require.NoError(t, err)
	assert.Contains(t, repo.products, product.ID)
}

func TestUpdateProduct(t *testing.T) {
	repo := newFakeProductRepository()
	events := &recordingPublisher{}
	require.NoError(t, repo.Create(context.Background(), &domain.Product{Name: "Old", Price: 1, SKU: "U-1"}))

	handler := NewUpdateProductHandler(repo, events)
	product, err := handler.Handle(context.Background(), UpdateProductCommand{
		ID: 1, Name: "New", Price: 2, Stock: 3, IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "New", product.Name)
	assert.Equal(t, "U-1", product.SKU)
	assert.Equal(t, []uint{1}, events.updated)
}

func TestUpdateProductNotFound(t *testing.T) {
	handler := NewUpdateProductHandler(newFakeProductRepository(), &recordingPublisher{})

	_, err := handler.Handle(context.Background(), UpdateProductCommand{ID: 99, Name: "X", Price: 1})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestDeleteProduct(t *testing.T) {
	repo := newFakeProductRepository()
	events := &recordingPublisher{}
	require.NoError(t, repo.Create(context.Background(), &domain.Product{Name: "A", Price: 1, SKU: "D-1"}))

	handler := NewDeleteProductHandler(repo, events)
	require.NoError(t, handler.Handle(context.Background(), DeleteProductCommand{ID: 1}))
	assert.Equal(t, []uint{1}, events.deleted)

	assert.ErrorIs(t, handler.Handle(context.Background(), DeleteProductCommand{ID: 1}), domain.ErrProductNotFound)
}

func TestCreateBrandSlugifies(t *testing.T) {
	brands := &fakeBrandRepository{}
	handler := NewCreateBrandHandler(brands)

	brand, err := handler.Handle(context.Background(), CreateBrandCommand{Name: "Röhr & Sons"})
	require.NoError(t, err)
	assert.Equal(t, "r-hr-sons", brand.Slug)

	_, err = handler.Handle(context.Background(), CreateBrandCommand{})
	assert.Error(t, err)
}

func TestCreateCategoryUnknownParent(t *testing.T) {
	handler := NewCreateCategoryHandler(&fakeCategoryRepository{})

	parentID := uint(4)
	_, err := handler.Handle(context.Background(), CreateCategoryCommand{Name: "Jackets", ParentID: &parentID})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "trail-running", Slugify("  Trail Running "))
	assert.Equal(t, "a-b-c", Slugify("A/B/C"))
	assert.Equal(t, "", Slugify("!!!"))
}
