package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/avelora/storefront/internal/catalog/domain"
	"github.com/avelora/storefront/internal/catalog/usecase/command"
	"github.com/avelora/storefront/internal/catalog/usecase/query"
	"github.com/avelora/storefront/pkg/logger"
)

// CatalogHandler handles HTTP requests for the catalog using CQRS pattern
type CatalogHandler struct {
	// Command handlers
	createHandler         *command.CreateProductHandler
	updateHandler         *command.UpdateProductHandler
	deleteHandler         *command.DeleteProductHandler
	updateStockHandler    *command.UpdateStockHandler
	createBrandHandler    *command.CreateBrandHandler
	createCategoryHandler *command.CreateCategoryHandler

	// Query handlers
	getProductHandler *query.GetProductHandler
	listHandler       *query.ListProductsHandler
	taxonomyHandler   *query.GetTaxonomyHandler
	statsHandler      *query.GetStatsHandler

	repo           domain.ProductRepository
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	totalProducts  prometheus.Gauge
}

// NewCatalogHandler creates a new catalog handler (manual DI)
func NewCatalogHandler(
	repo domain.ProductRepository,
	brands domain.BrandRepository,
	categories domain.CategoryRepository,
	events domain.EventPublisher,
) *CatalogHandler {
	createHandler := command.NewCreateProductHandler(repo, brands, categories, events)
	updateHandler := command.NewUpdateProductHandler(repo, events)
	deleteHandler := command.NewDeleteProductHandler(repo, events)
	updateStockHandler := command.NewUpdateStockHandler(repo)
	createBrandHandler := command.NewCreateBrandHandler(brands)
	createCategoryHandler := command.NewCreateCategoryHandler(categories)

	getProductHandler := query.NewGetProductHandler(repo)
	listHandler := query.NewListProductsHandler(repo, brands, categories)
	taxonomyHandler := query.NewGetTaxonomyHandler(brands, categories)
	statsHandler := query.NewGetStatsHandler(repo, brands, categories)

	return newCatalogHandler(
		createHandler, updateHandler, deleteHandler, updateStockHandler,
		createBrandHandler, createCategoryHandler,
		getProductHandler, listHandler, taxonomyHandler, statsHandler,
		repo,
	)
}

// NewCatalogHandlerWithDI creates a new catalog handler using dependency injection.
// This is used by Wire for automatic dependency injection.
func NewCatalogHandlerWithDI(
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	updateStockHandler *command.UpdateStockHandler,
	createBrandHandler *command.CreateBrandHandler,
	createCategoryHandler *command.CreateCategoryHandler,
	getProductHandler *query.GetProductHandler,
	listHandler *query.ListProductsHandler,
	taxonomyHandler *query.GetTaxonomyHandler,
	statsHandler *query.GetStatsHandler,
	repo domain.ProductRepository,
) *CatalogHandler {
	return newCatalogHandler(
		createHandler, updateHandler, deleteHandler, updateStockHandler,
		createBrandHandler, createCategoryHandler,
		getProductHandler, listHandler, taxonomyHandler, statsHandler,
		repo,
	)
}

func newCatalogHandler(
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	updateStockHandler *command.UpdateStockHandler,
	createBrandHandler *command.CreateBrandHandler,
	createCategoryHandler *command.CreateCategoryHandler,
	getProductHandler *query.GetProductHandler,
	listHandler *query.ListProductsHandler,
	taxonomyHandler *query.GetTaxonomyHandler,
	statsHandler *query.GetStatsHandler,
	repo domain.ProductRepository,
) *CatalogHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_service_requests_total",
			Help: "Total number of requests to catalog service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_service_request_duration_seconds",
			Help:    "Duration of catalog service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	totalProducts := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_service_total_products",
			Help: "Total number of products in the catalog",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(totalProducts)

	return &CatalogHandler{
		createHandler:         createHandler,
		updateHandler:         updateHandler,
		deleteHandler:         deleteHandler,
		updateStockHandler:    updateStockHandler,
		createBrandHandler:    createBrandHandler,
		createCategoryHandler: createCategoryHandler,
		getProductHandler:     getProductHandler,
		listHandler:           listHandler,
		taxonomyHandler:       taxonomyHandler,
		statsHandler:          statsHandler,
		repo:                  repo,
		requestCounter:        requestCounter,
		requestLatency:        requestLatency,
		totalProducts:         totalProducts,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *CatalogHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	// Public routes (no auth required)
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/api/products/stats", h.metricsMiddleware("/api/products/stats", h.GetStats)).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", h.GetProduct)).Methods("GET")
	router.HandleFunc("/api/taxonomy", h.metricsMiddleware("/api/taxonomy", h.GetTaxonomy)).Methods("GET")

	// Admin routes (admin role required)
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", AdminMiddleware(h.CreateProduct))).Methods("POST")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", AdminMiddleware(h.UpdateProduct))).Methods("PUT")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", AdminMiddleware(h.DeleteProduct))).Methods("DELETE")
	router.HandleFunc("/api/products/{id}/stock", h.metricsMiddleware("/api/products/{id}/stock", AdminMiddleware(h.UpdateStock))).Methods("PATCH")
	router.HandleFunc("/api/brands", h.metricsMiddleware("/api/brands", AdminMiddleware(h.CreateBrand))).Methods("POST")
	router.HandleFunc("/api/categories", h.metricsMiddleware("/api/categories", AdminMiddleware(h.CreateCategory))).Methods("POST")
}

// CreateProduct handles POST /api/products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Stock       int     `json:"stock"`
		SKU         string  `json:"sku"`
		IsActive    bool    `json:"is_active"`
		BrandID     *uint   `json:"brand_id"`
		CategoryID  *uint   `json:"category_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.CreateProductCommand{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		SKU:         req.SKU,
		IsActive:    req.IsActive,
		BrandID:     req.BrandID,
		CategoryID:  req.CategoryID,
	}

	product, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create product")
		respondJSON(w, statusForCatalogError(err, http.StatusBadRequest), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.updateProductsMetric(r)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// ListProducts handles GET /api/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	q := query.ListProductsQuery{
		Limit:        limit,
		Offset:       offset,
		CategorySlug: r.URL.Query().Get("category"),
		BrandSlug:    r.URL.Query().Get("brand"),
		ActiveOnly:   r.URL.Query().Get("include_inactive") != "true",
	}

	result, err := h.listHandler.Handle(r.Context(), q)
	if err != nil {
		if errors.Is(err, domain.ErrBrandNotFound) || errors.Is(err, domain.ErrCategoryNotFound) {
			respondJSON(w, http.StatusNotFound, Response{
				Success: false,
				Error:   err.Error(),
			})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list products",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// GetProduct handles GET /api/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	product, err := h.getProductHandler.Handle(r.Context(), query.GetProductQuery{ID: id})
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			respondJSON(w, http.StatusNotFound, Response{
				Success: false,
				Error:   "Product not found",
			})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to get product")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to get product",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    product,
	})
}

// UpdateProduct handles PUT /api/products/{id}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Stock       int     `json:"stock"`
		SKU         string  `json:"sku"`
		IsActive    bool    `json:"is_active"`
		BrandID     *uint   `json:"brand_id"`
		CategoryID  *uint   `json:"category_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.UpdateProductCommand{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		SKU:         req.SKU,
		IsActive:    req.IsActive,
		BrandID:     req.BrandID,
		CategoryID:  req.CategoryID,
	}

	product, err := h.updateHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to update product")
		respondJSON(w, statusForCatalogError(err, http.StatusBadRequest), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteProductCommand{ID: id}); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to delete product")
		respondJSON(w, statusForCatalogError(err, http.StatusBadRequest), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.updateProductsMetric(r)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product deleted successfully",
	})
}

// UpdateStock handles PATCH /api/products/{id}/stock
func (h *CatalogHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req struct {
		Stock int `json:"stock"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.UpdateStockCommand{ProductID: id, Stock: req.Stock}
	if err := h.updateStockHandler.Handle(r.Context(), cmd); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to update stock")
		respondJSON(w, statusForCatalogError(err, http.StatusBadRequest), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stock updated successfully",
	})
}

// CreateBrand handles POST /api/brands
func (h *CatalogHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	brand, err := h.createBrandHandler.Handle(r.Context(), command.CreateBrandCommand{
		Name: req.Name,
		Slug: req.Slug,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create brand")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Brand created successfully",
		Data:    brand,
	})
}

// CreateCategory handles POST /api/categories
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Slug     string `json:"slug"`
		ParentID *uint  `json:"parent_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	category, err := h.createCategoryHandler.Handle(r.Context(), command.CreateCategoryCommand{
		Name:     req.Name,
		Slug:     req.Slug,
		ParentID: req.ParentID,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create category")
		respondJSON(w, statusForCatalogError(err, http.StatusBadRequest), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Category created successfully",
		Data:    category,
	})
}

// GetTaxonomy handles GET /api/taxonomy
func (h *CatalogHandler) GetTaxonomy(w http.ResponseWriter, r *http.Request) {
	taxonomy, err := h.taxonomyHandler.Handle(r.Context(), query.GetTaxonomyQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to get taxonomy")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to get taxonomy",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    taxonomy,
	})
}

// GetStats handles GET /api/products/stats
func (h *CatalogHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(r.Context(), query.GetStatsQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to get stats")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to get statistics",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    stats,
	})
}

func (h *CatalogHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Catalog service is healthy",
		})
	}).Methods("GET")
}

// updateProductsMetric updates the total products gauge
func (h *CatalogHandler) updateProductsMetric(r *http.Request) {
	count, err := h.repo.Count(r.Context(), domain.ProductFilter{})
	if err == nil {
		h.totalProducts.Set(float64(count))
	}
}

// parseID extracts the numeric id path variable
func parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid product ID",
		})
		return 0, false
	}
	return uint(id), true
}

// statusForCatalogError maps domain errors to HTTP status codes
func statusForCatalogError(err error, fallback int) int {
	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrBrandNotFound),
		errors.Is(err, domain.ErrCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSKUExists):
		return http.StatusConflict
	default:
		return fallback
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
