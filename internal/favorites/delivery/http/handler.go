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

	"github.com/avelora/storefront/internal/favorites/domain"
	"github.com/avelora/storefront/internal/favorites/usecase/command"
	"github.com/avelora/storefront/internal/favorites/usecase/query"
	"github.com/avelora/storefront/internal/identity"
	"github.com/avelora/storefront/pkg/logger"
)

// FavoriteHandler handles HTTP requests for favorites using CQRS pattern
type FavoriteHandler struct {
	// Command handlers
	addHandler    *command.AddFavoriteHandler
	removeHandler *command.RemoveFavoriteHandler
	toggleHandler *command.ToggleFavoriteHandler
	mergeHandler  *command.MergeFavoritesHandler

	// Query handlers
	listHandler  *query.ListFavoritesHandler
	checkHandler *query.CheckFavoriteHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	mergeOutcomes  *prometheus.CounterVec
}

// NewFavoriteHandler creates a new favorite handler (manual DI)
func NewFavoriteHandler(repo domain.FavoriteRepository, products domain.ProductChecker) *FavoriteHandler {
	addHandler := command.NewAddFavoriteHandler(repo, products)
	removeHandler := command.NewRemoveFavoriteHandler(repo)
	toggleHandler := command.NewToggleFavoriteHandler(repo, addHandler, removeHandler)
	mergeHandler := command.NewMergeFavoritesHandler(repo)

	listHandler := query.NewListFavoritesHandler(repo)
	checkHandler := query.NewCheckFavoriteHandler(repo)

	return NewFavoriteHandlerWithDI(
		addHandler, removeHandler, toggleHandler, mergeHandler,
		listHandler, checkHandler,
	)
}

// NewFavoriteHandlerWithDI creates a new favorite handler using
// dependency injection; used by Wire
func NewFavoriteHandlerWithDI(
	addHandler *command.AddFavoriteHandler,
	removeHandler *command.RemoveFavoriteHandler,
	toggleHandler *command.ToggleFavoriteHandler,
	mergeHandler *command.MergeFavoritesHandler,
	listHandler *query.ListFavoritesHandler,
	checkHandler *query.CheckFavoriteHandler,
) *FavoriteHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "favorites_service_requests_total",
			Help: "Total number of requests to favorites service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "favorites_service_request_duration_seconds",
			Help:    "Duration of favorites service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	mergeOutcomes := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "favorites_service_merged_rows_total",
			Help: "Guest favorite rows processed by login merges, by outcome",
		},
		[]string{"outcome"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(mergeOutcomes)

	return &FavoriteHandler{
		addHandler:     addHandler,
		removeHandler:  removeHandler,
		toggleHandler:  toggleHandler,
		mergeHandler:   mergeHandler,
		listHandler:    listHandler,
		checkHandler:   checkHandler,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		mergeOutcomes:  mergeOutcomes,
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
func (h *FavoriteHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *FavoriteHandler) RegisterRoutes(router *mux.Router) {
	// Public routes: guests favorite products too, so auth is optional
	// and the identity is resolved per request.
	router.HandleFunc("/api/favorites", h.metricsMiddleware("/api/favorites", IdentityMiddleware(h.ListFavorites))).Methods("GET")
	router.HandleFunc("/api/favorites/{productId}", h.metricsMiddleware("/api/favorites/{productId}", IdentityMiddleware(h.CheckFavorite))).Methods("GET")
	router.HandleFunc("/api/favorites/{productId}", h.metricsMiddleware("/api/favorites/{productId}", IdentityMiddleware(h.AddFavorite))).Methods("POST")
	router.HandleFunc("/api/favorites/{productId}", h.metricsMiddleware("/api/favorites/{productId}", IdentityMiddleware(h.RemoveFavorite))).Methods("DELETE")
	router.HandleFunc("/api/favorites/{productId}/toggle", h.metricsMiddleware("/api/favorites/{productId}/toggle", IdentityMiddleware(h.ToggleFavorite))).Methods("POST")

	// Service-to-service route invoked by the customer service right
	// after session establishment. The gateway does not expose /internal.
	router.HandleFunc("/internal/favorites/merge", h.metricsMiddleware("/internal/favorites/merge", h.MergeFavorites)).Methods("POST")
}

func (h *FavoriteHandler) productID(r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["productId"], 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// AddFavorite handles POST /api/favorites/{productId}
func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productID(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	cmd := command.AddFavoriteCommand{
		Identity:  identity.FromRequest(r),
		ProductID: productID,
	}

	if err := h.addHandler.Handle(r.Context(), cmd); err != nil {
		h.respondCommandError(w, r, err, "Failed to add favorite")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product favorited",
		Data:    map[string]interface{}{"product_id": productID, "favorited": true},
	})
}

// RemoveFavorite handles DELETE /api/favorites/{productId}
func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productID(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	cmd := command.RemoveFavoriteCommand{
		Identity:  identity.FromRequest(r),
		ProductID: productID,
	}

	if err := h.removeHandler.Handle(r.Context(), cmd); err != nil {
		h.respondCommandError(w, r, err, "Failed to remove favorite")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product unfavorited",
		Data:    map[string]interface{}{"product_id": productID, "favorited": false},
	})
}

// ToggleFavorite handles POST /api/favorites/{productId}/toggle
func (h *FavoriteHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productID(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	cmd := command.ToggleFavoriteCommand{
		Identity:  identity.FromRequest(r),
		ProductID: productID,
	}

	favorited, err := h.toggleHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondCommandError(w, r, err, "Failed to toggle favorite")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"product_id": productID, "favorited": favorited},
	})
}

// CheckFavorite handles GET /api/favorites/{productId}
func (h *FavoriteHandler) CheckFavorite(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productID(r)
	if !ok {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	q := query.CheckFavoriteQuery{
		Identity:  identity.FromRequest(r),
		ProductID: productID,
	}

	favorited, err := h.checkHandler.Handle(r.Context(), q)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to check favorite")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to check favorite"})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"product_id": productID, "favorited": favorited},
	})
}

// ListFavorites handles GET /api/favorites
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	q := query.ListFavoritesQuery{
		Identity: identity.FromRequest(r),
		Limit:    limit,
		Offset:   offset,
	}

	result, err := h.listHandler.Handle(r.Context(), q)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list favorites")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list favorites"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

// MergeFavorites handles POST /internal/favorites/merge
func (h *FavoriteHandler) MergeFavorites(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GuestID    string `json:"guest_id"`
		CustomerID uint   `json:"customer_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	cmd := command.MergeFavoritesCommand{
		GuestID:    req.GuestID,
		CustomerID: req.CustomerID,
	}

	result, err := h.mergeHandler.Handle(r.Context(), cmd)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidIdentity) {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid merge identities"})
			return
		}
		// Store-level failures are retryable: the merge is idempotent
		logger.Error(r.Context()).Err(err).Msg("Failed to merge favorites")
		respondJSON(w, http.StatusServiceUnavailable, Response{Success: false, Error: "Merge failed, retry on next login"})
		return
	}

	h.mergeOutcomes.WithLabelValues("migrated").Add(float64(result.Migrated))
	h.mergeOutcomes.WithLabelValues("discarded").Add(float64(result.Discarded))

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Favorites merged",
		Data:    result,
	})
}

// respondCommandError maps domain errors to HTTP responses
func (h *FavoriteHandler) respondCommandError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrInvalidIdentity):
		respondJSON(w, http.StatusUnauthorized, Response{
			Success: false,
			Error:   "Sign in or supply a guest id to manage favorites",
		})
	case errors.Is(err, domain.ErrProductNotFound):
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Product not found"})
	default:
		logger.Error(r.Context()).Err(err).Msg(fallback)
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: fallback})
	}
}

func (h *FavoriteHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
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
			Message: "Favorites service is healthy",
		})
	}).Methods("GET")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
