package catalog

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/avelora/storefront/internal/catalog/domain"
	"github.com/avelora/storefront/internal/catalog/repository"
	"github.com/avelora/storefront/internal/catalog/usecase/command"
	"github.com/avelora/storefront/internal/catalog/usecase/query"
)

// ProvideProductRepository provides the traced product repository
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormProductRepositoryWithTracing(db)
}

func ProvideBrandRepository(db *gorm.DB) domain.BrandRepository {
	return repository.NewGormBrandRepository(db)
}

func ProvideCategoryRepository(db *gorm.DB) domain.CategoryRepository {
	return repository.NewGormCategoryRepository(db)
}

// Command handler providers
func ProvideCreateProductHandler(
	repo domain.ProductRepository,
	brands domain.BrandRepository,
	categories domain.CategoryRepository,
	events domain.EventPublisher,
) *command.CreateProductHandler {
	return command.NewCreateProductHandler(repo, brands, categories, events)
}

func ProvideUpdateProductHandler(repo domain.ProductRepository, events domain.EventPublisher) *command.UpdateProductHandler {
	return command.NewUpdateProductHandler(repo, events)
}

func ProvideDeleteProductHandler(repo domain.ProductRepository, events domain.EventPublisher) *command.DeleteProductHandler {
	return command.NewDeleteProductHandler(repo, events)
}

func ProvideUpdateStockHandler(repo domain.ProductRepository) *command.UpdateStockHandler {
	return command.NewUpdateStockHandler(repo)
}

func ProvideCreateBrandHandler(repo domain.BrandRepository) *command.CreateBrandHandler {
	return command.NewCreateBrandHandler(repo)
}

func ProvideCreateCategoryHandler(repo domain.CategoryRepository) *command.CreateCategoryHandler {
	return command.NewCreateCategoryHandler(repo)
}

// Query handler providers
func ProvideGetProductHandler(repo domain.ProductRepository) *query.GetProductHandler {
	return query.NewGetProductHandler(repo)
}

func ProvideListProductsHandler(
	repo domain.ProductRepository,
	brands domain.BrandRepository,
	categories domain.CategoryRepository,
) *query.ListProductsHandler {
	return query.NewListProductsHandler(repo, brands, categories)
}

func ProvideGetTaxonomyHandler(brands domain.BrandRepository, categories domain.CategoryRepository) *query.GetTaxonomyHandler {
	return query.NewGetTaxonomyHandler(brands, categories)
}

func ProvideGetStatsHandler(
	repo domain.ProductRepository,
	brands domain.BrandRepository,
	categories domain.CategoryRepository,
) *query.GetStatsHandler {
	return query.NewGetStatsHandler(repo, brands, categories)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
	ProvideBrandRepository,
	ProvideCategoryRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideCreateProductHandler,
	ProvideUpdateProductHandler,
	ProvideDeleteProductHandler,
	ProvideUpdateStockHandler,
	ProvideCreateBrandHandler,
	ProvideCreateCategoryHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetProductHandler,
	ProvideListProductsHandler,
	ProvideGetTaxonomyHandler,
	ProvideGetStatsHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)
