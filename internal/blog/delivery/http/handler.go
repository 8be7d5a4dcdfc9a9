package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/avelora/storefront/internal/blog/domain"
	"github.com/avelora/storefront/internal/blog/usecase/command"
	"github.com/avelora/storefront/internal/blog/usecase/query"
	"github.com/avelora/storefront/pkg/auth"
	"github.com/avelora/storefront/pkg/logger"
)

type contextKey string

const (
	customerIDKey contextKey = "customer_id"
	roleKey       contextKey = "role"
)

// BlogHandler handles HTTP requests for blog posts using CQRS pattern
type BlogHandler struct {
	createHandler  *command.CreatePostHandler
	updateHandler  *command.UpdatePostHandler
	publishHandler *command.PublishPostHandler
	deleteHandler  *command.DeletePostHandler

	getHandler  *query.GetPostHandler
	listHandler *query.ListPostsHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(repo domain.PostRepository) *BlogHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_service_requests_total",
			Help: "Total number of requests to blog service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blog_service_request_duration_seconds",
			Help:    "Duration of blog service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &BlogHandler{
		createHandler:  command.NewCreatePostHandler(repo),
		updateHandler:  command.NewUpdatePostHandler(repo),
		publishHandler: command.NewPublishPostHandler(repo),
		deleteHandler:  command.NewDeletePostHandler(repo),
		getHandler:     query.NewGetPostHandler(repo),
		listHandler:    query.NewListPostsHandler(repo),
		requestCounter: requestCounter,
		requestLatency: requestLatency,
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

func (h *BlogHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// adminMiddleware validates the JWT bearer token and requires the admin role
func adminMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		if claims.Role != "admin" {
			respondError(w, http.StatusForbidden, "Admin access required")
			return
		}

		ctx := context.WithValue(r.Context(), customerIDKey, claims.CustomerID)
		ctx = context.WithValue(ctx, roleKey, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func (h *BlogHandler) RegisterRoutes(router *mux.Router) {
	// Public routes
	router.HandleFunc("/api/posts", h.metricsMiddleware("/api/posts", h.ListPosts)).Methods("GET")
	router.HandleFunc("/api/posts/{slug}", h.metricsMiddleware("/api/posts/{slug}", h.GetPost)).Methods("GET")

	// Admin routes
	router.HandleFunc("/api/posts", h.metricsMiddleware("/api/posts", adminMiddleware(h.CreatePost))).Methods("POST")
	router.HandleFunc("/api/posts/{id:[0-9]+}", h.metricsMiddleware("/api/posts/{id}", adminMiddleware(h.UpdatePost))).Methods("PUT")
	router.HandleFunc("/api/posts/{id:[0-9]+}/publish", h.metricsMiddleware("/api/posts/{id}/publish", adminMiddleware(h.PublishPost))).Methods("POST")
	router.HandleFunc("/api/posts/{id:[0-9]+}", h.metricsMiddleware("/api/posts/{id}", adminMiddleware(h.DeletePost))).Methods("DELETE")
}

// ListPosts handles GET /api/posts
func (h *BlogHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	result, err := h.listHandler.Handle(r.Context(), query.ListPostsQuery{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list posts")
		respondError(w, http.StatusInternalServerError, "Failed to list posts")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// GetPost handles GET /api/posts/{slug}
func (h *BlogHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	post, err := h.getHandler.Handle(r.Context(), query.GetPostQuery{Slug: slug})
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			respondError(w, http.StatusNotFound, "Post not found")
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to get post")
		respondError(w, http.StatusInternalServerError, "Failed to get post")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    post,
	})
}

// CreatePost handles POST /api/posts
func (h *BlogHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
		Slug  string `json:"slug"`
		Body  string `json:"body"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	authorID, _ := r.Context().Value(customerIDKey).(uint)
	post, err := h.createHandler.Handle(r.Context(), command.CreatePostCommand{
		Title:    req.Title,
		Slug:     req.Slug,
		Body:     req.Body,
		AuthorID: authorID,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrSlugExists) {
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
		Message: "Post created successfully",
		Data:    post,
	})
}

// UpdatePost handles PUT /api/posts/{id}
func (h *BlogHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePostID(w, r)
	if !ok {
		return
	}

	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := h.updateHandler.Handle(r.Context(), command.UpdatePostCommand{
		ID:    id,
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			respondError(w, http.StatusNotFound, "Post not found")
			return
		}
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Post updated successfully",
		Data:    post,
	})
}

// PublishPost handles POST /api/posts/{id}/publish
func (h *BlogHandler) PublishPost(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePostID(w, r)
	if !ok {
		return
	}

	post, err := h.publishHandler.Handle(r.Context(), command.PublishPostCommand{ID: id})
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			respondError(w, http.StatusNotFound, "Post not found")
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to publish post")
		respondError(w, http.StatusInternalServerError, "Failed to publish post")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Post published successfully",
		Data:    post,
	})
}

// DeletePost handles DELETE /api/posts/{id}
func (h *BlogHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePostID(w, r)
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeletePostCommand{ID: id}); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			respondError(w, http.StatusNotFound, "Post not found")
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to delete post")
		respondError(w, http.StatusInternalServerError, "Failed to delete post")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Post deleted successfully",
	})
}

func (h *BlogHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
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
			Message: "Blog service is healthy",
		})
	}).Methods("GET")
}

func parsePostID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		respondError(w, http.StatusBadRequest, "Invalid post ID")
		return 0, false
	}
	return uint(id), true
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Response{
		Success: false,
		Error:   message,
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
