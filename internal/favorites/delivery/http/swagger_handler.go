package http

import (
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// RegisterSwaggerDocs registers Swagger documentation routes
func RegisterSwaggerDocs(router *mux.Router) {
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
}

// ListFavorites godoc
// @Summary List favorites
// @Description List the current identity's favorited products, newest first
// @Tags Favorites
// @Produce json
// @Param limit query int false "Limit (default 20, max 100)"
// @Param offset query int false "Offset"
// @Param X-Guest-ID header string false "Opaque guest identifier for anonymous browsing"
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/favorites [get]
func (h *FavoriteHandler) ListFavoritesDoc() {}

// AddFavorite godoc
// @Summary Favorite a product
// @Description Idempotent: favoriting an already-favorited product succeeds without effect
// @Tags Favorites
// @Produce json
// @Param productId path int true "Product ID"
// @Param X-Guest-ID header string false "Opaque guest identifier for anonymous browsing"
// @Success 200 {object} object{success=bool,data=object{product_id=int,favorited=bool}}
// @Failure 401 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/favorites/{productId} [post]
func (h *FavoriteHandler) AddFavoriteDoc() {}

// RemoveFavorite godoc
// @Summary Unfavorite a product
// @Description Idempotent: removing a non-favorited product succeeds without effect
// @Tags Favorites
// @Produce json
// @Param productId path int true "Product ID"
// @Param X-Guest-ID header string false "Opaque guest identifier for anonymous browsing"
// @Success 200 {object} object{success=bool,data=object{product_id=int,favorited=bool}}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/favorites/{productId} [delete]
func (h *FavoriteHandler) RemoveFavoriteDoc() {}

// ToggleFavorite godoc
// @Summary Toggle a product's favorited state
// @Tags Favorites
// @Produce json
// @Param productId path int true "Product ID"
// @Param X-Guest-ID header string false "Opaque guest identifier for anonymous browsing"
// @Success 200 {object} object{success=bool,data=object{product_id=int,favorited=bool}}
// @Failure 401 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/favorites/{productId}/toggle [post]
func (h *FavoriteHandler) ToggleFavoriteDoc() {}

// MergeFavorites godoc
// @Summary Merge guest favorites into a customer (internal)
// @Description Called by the customer service after login, before the guest id is discarded client-side
// @Tags Favorites
// @Accept json
// @Produce json
// @Param request body object{guest_id=string,customer_id=int} true "Merge input"
// @Success 200 {object} object{success=bool,data=object{migrated=int,discarded=int}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /internal/favorites/merge [post]
func (h *FavoriteHandler) MergeFavoritesDoc() {}
