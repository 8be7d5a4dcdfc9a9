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

	"github.com/avelora/storefront/internal/customer/domain"
	"github.com/avelora/storefront/internal/customer/usecase/command"
	"github.com/avelora/storefront/internal/customer/usecase/query"
	"github.com/avelora/storefront/internal/identity"
	"github.com/avelora/storefront/pkg/logger"
)

// CustomerHandler handles HTTP requests for customers using CQRS pattern
type CustomerHandler struct {
	// Command handlers
	registerHandler   *command.RegisterCustomerHandler
	loginHandler      *command.LoginCustomerHandler
	updateHandler     *command.UpdateProfileHandler
	deactivateHandler *command.DeactivateCustomerHandler

	// Query handlers
	getHandler  *query.GetCustomerHandler
	listHandler *query.ListCustomersHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	loginOutcomes  *prometheus.CounterVec
}

// NewCustomerHandler creates a new customer handler (manual DI)
func NewCustomerHandler(repo domain.CustomerRepository, merger domain.FavoritesMerger) *CustomerHandler {
	registerHandler := command.NewRegisterCustomerHandler(repo)
	loginHandler := command.NewLoginCustomerHandler(repo, merger)
	updateHandler := command.NewUpdateProfileHandler(repo)
	deactivateHandler := command.NewDeactivateCustomerHandler(repo)

	getHandler := query.NewGetCustomerHandler(repo)
	listHandler := query.NewListCustomersHandler(repo)

	return newCustomerHandler(
		registerHandler, loginHandler, updateHandler, deactivateHandler,
		getHandler, listHandler,
	)
}

// NewCustomerHandlerWithDI creates a new customer handler using dependency injection.
// This is used by Wire for automatic dependency injection.
func NewCustomerHandlerWithDI(
	registerHandler *command.RegisterCustomerHandler,
	loginHandler *command.LoginCustomerHandler,
	updateHandler *command.UpdateProfileHandler,
	deactivateHandler *command.DeactivateCustomerHandler,
	getHandler *query.GetCustomerHandler,
	listHandler *query.ListCustomersHandler,
) *CustomerHandler {
	return newCustomerHandler(
		registerHandler, loginHandler, updateHandler, deactivateHandler,
		getHandler, listHandler,
	)
}

func newCustomerHandler(
	registerHandler *command.RegisterCustomerHandler,
	loginHandler *command.LoginCustomerHandler,
	updateHandler *command.UpdateProfileHandler,
	deactivateHandler *command.DeactivateCustomerHandler,
	getHandler *query.GetCustomerHandler,
	listHandler *query.ListCustomersHandler,
) *CustomerHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "customer_service_requests_total",
			Help: "Total number of requests to customer service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "customer_service_request_duration_seconds",
			Help:    "Duration of customer service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	loginOutcomes := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "customer_service_logins_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(loginOutcomes)

	return &CustomerHandler{
		registerHandler:   registerHandler,
		loginHandler:      loginHandler,
		updateHandler:     updateHandler,
		deactivateHandler: deactivateHandler,
		getHandler:        getHandler,
		listHandler:       listHandler,
		requestCounter:    requestCounter,
		requestLatency:    requestLatency,
		loginOutcomes:     loginOutcomes,
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
func (h *CustomerHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *CustomerHandler) RegisterRoutes(router *mux.Router) {
	// Public routes
	router.HandleFunc("/api/customers/register", h.metricsMiddleware("/api/customers/register", h.Register)).Methods("POST")
	router.HandleFunc("/api/customers/login", h.metricsMiddleware("/api/customers/login", h.Login)).Methods("POST")

	// Authenticated routes
	router.HandleFunc("/api/customers/me", h.metricsMiddleware("/api/customers/me", AuthMiddleware(h.GetProfile))).Methods("GET")
	router.HandleFunc("/api/customers/me", h.metricsMiddleware("/api/customers/me", AuthMiddleware(h.UpdateProfile))).Methods("PUT")

	// Admin routes
	router.HandleFunc("/api/customers", h.metricsMiddleware("/api/customers", AdminMiddleware(h.ListCustomers))).Methods("GET")
	router.HandleFunc("/api/customers/{id}/deactivate", h.metricsMiddleware("/api/customers/{id}/deactivate", AdminMiddleware(h.DeactivateCustomer))).Methods("POST")
}

// Register handles POST /api/customers/register
func (h *CustomerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	customer, err := h.registerHandler.Handle(r.Context(), command.RegisterCustomerCommand{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrEmailExists) {
			status = http.StatusConflict
		}
		respondJSON(w, status, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Customer registered successfully",
		Data:    customer,
	})
}

// Login handles POST /api/customers/login. The guest id may come in the
// body or the header the storefront uses while browsing anonymously.
func (h *CustomerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		GuestID  string `json:"guest_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	guestID := req.GuestID
	if guestID == "" {
		guestID = r.Header.Get(identity.GuestIDHeader)
	}

	result, err := h.loginHandler.Handle(r.Context(), command.LoginCustomerCommand{
		Email:    req.Email,
		Password: req.Password,
		GuestID:  guestID,
	})
	if err != nil {
		h.loginOutcomes.WithLabelValues("failure").Inc()
		status := http.StatusUnauthorized
		if errors.Is(err, domain.ErrAccountDisabled) {
			status = http.StatusForbidden
		}
		respondJSON(w, status, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.loginOutcomes.WithLabelValues("success").Inc()
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Login successful",
		Data:    result,
	})
}

// GetProfile handles GET /api/customers/me
func (h *CustomerHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	customerID, ok := r.Context().Value(CustomerIDKey).(uint)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	customer, err := h.getHandler.Handle(r.Context(), query.GetCustomerQuery{ID: customerID})
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			respondError(w, http.StatusNotFound, "Customer not found")
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to get profile")
		respondError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    customer,
	})
}

// UpdateProfile handles PUT /api/customers/me
func (h *CustomerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	customerID, ok := r.Context().Value(CustomerIDKey).(uint)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	customer, err := h.updateHandler.Handle(r.Context(), command.UpdateProfileCommand{
		CustomerID: customerID,
		FullName:   req.FullName,
		Email:      req.Email,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrEmailExists) {
			status = http.StatusConflict
		}
		respondJSON(w, status, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Profile updated successfully",
		Data:    customer,
	})
}

// ListCustomers handles GET /api/customers
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	result, err := h.listHandler.Handle(r.Context(), query.ListCustomersQuery{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list customers")
		respondError(w, http.StatusInternalServerError, "Failed to list customers")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// DeactivateCustomer handles POST /api/customers/{id}/deactivate
func (h *CustomerHandler) DeactivateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		respondError(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	if err := h.deactivateHandler.Handle(r.Context(), command.DeactivateCustomerCommand{CustomerID: uint(id)}); err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			respondError(w, http.StatusNotFound, "Customer not found")
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to deactivate customer")
		respondError(w, http.StatusInternalServerError, "Failed to deactivate customer")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Customer deactivated successfully",
	})
}

func (h *CustomerHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
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
			Message: "Customer service is healthy",
		})
	}).Methods("GET")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
