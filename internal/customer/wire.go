//go:build wireinject
// +build wireinject

package customer

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/avelora/storefront/internal/customer/delivery/http"
	"github.com/avelora/storefront/internal/customer/domain"
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, merger domain.FavoritesMerger) (*http.CustomerHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewCustomerHandlerWithDI,
	)
	return nil, nil
}
