package favorites

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/avelora/storefront/internal/favorites/domain"
	"github.com/avelora/storefront/internal/favorites/repository"
	"github.com/avelora/storefront/internal/favorites/usecase/command"
	"github.com/avelora/storefront/internal/favorites/usecase/query"
)

// ProvideFavoriteRepository provides the traced favorite repository
func ProvideFavoriteRepository(db *gorm.DB) domain.FavoriteRepository {
	return repository.NewGormFavoriteRepositoryWithTracing(db)
}

// Command handler providers
func ProvideAddFavoriteHandler(repo domain.FavoriteRepository, products domain.ProductChecker) *command.AddFavoriteHandler {
	return command.NewAddFavoriteHandler(repo, products)
}

func ProvideRemoveFavoriteHandler(repo domain.FavoriteRepository) *command.RemoveFavoriteHandler {
	return command.NewRemoveFavoriteHandler(repo)
}

func ProvideToggleFavoriteHandler(repo domain.FavoriteRepository, add *command.AddFavoriteHandler, remove *command.RemoveFavoriteHandler) *command.ToggleFavoriteHandler {
	return command.NewToggleFavoriteHandler(repo, add, remove)
}

func ProvideMergeFavoritesHandler(repo domain.FavoriteRepository) *command.MergeFavoritesHandler {
	return command.NewMergeFavoritesHandler(repo)
}

// Query handler providers
func ProvideListFavoritesHandler(repo domain.FavoriteRepository) *query.ListFavoritesHandler {
	return query.NewListFavoritesHandler(repo)
}

func ProvideCheckFavoriteHandler(repo domain.FavoriteRepository) *query.CheckFavoriteHandler {
	return query.NewCheckFavoriteHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideFavoriteRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideAddFavoriteHandler,
	ProvideRemoveFavoriteHandler,
	ProvideToggleFavoriteHandler,
	ProvideMergeFavoritesHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideListFavoritesHandler,
	ProvideCheckFavoriteHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)
