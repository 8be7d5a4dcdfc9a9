package http

import (
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// RegisterSwaggerDocs registers Swagger documentation routes
func RegisterSwaggerDocs(router *mux.Router) {
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
}

// ListProducts godoc
// @Summary List products
// @Description List products with optional category/brand slug filters
// @Tags Catalog
// @Produce json
// @Param limit query int false "Limit (default 50)"
// @Param offset query int false "Offset"
// @Param category query string false "Category slug"
// @Param brand query string false "Brand slug"
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/products [get]
func (h *CatalogHandler) ListProductsDoc() {}

// GetProduct godoc
// @Summary Get a product by ID
// @Tags Catalog
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [get]
func (h *CatalogHandler) GetProductDoc() {}

// CreateProduct godoc
// @Summary Create a product (admin)
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} object{success=bool,data=object}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/products [post]
func (h *CatalogHandler) CreateProductDoc() {}

// GetTaxonomy godoc
// @Summary Get brands and categories for storefront navigation
// @Tags Catalog
// @Produce json
// @Success 200 {object} object{success=bool,data=object{brands=array,categories=array}}
// @Router /api/taxonomy [get]
func (h *CatalogHandler) GetTaxonomyDoc() {}
