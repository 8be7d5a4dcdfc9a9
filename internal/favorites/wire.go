//go:build wireinject
// +build wireinject

package favorites

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/avelora/storefront/internal/favorites/delivery/http"
	"github.com/avelora/storefront/internal/favorites/domain"
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, products domain.ProductChecker) (*http.FavoriteHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewFavoriteHandlerWithDI,
	)
	return nil, nil
}
