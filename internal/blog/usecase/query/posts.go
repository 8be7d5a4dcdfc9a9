package query

import (
	"context"
	"fmt"

	"github.com/avelora/storefront/internal/blog/domain"
)

// GetPostQuery represents the query to fetch a post by slug. Drafts are
// only returned when IncludeDrafts is set (back office).
type GetPostQuery struct {
	Slug          string
	IncludeDrafts bool
}

// GetPostHandler handles get post query
type GetPostHandler struct {
	repo domain.PostRepository
}

// NewGetPostHandler creates a new get post handler
func NewGetPostHandler(repo domain.PostRepository) *GetPostHandler {
	return &GetPostHandler{repo: repo}
}

// Handle executes the get post query
func (h *GetPostHandler) Handle(ctx context.Context, q GetPostQuery) (*domain.Post, error) {
	post, err := h.repo.FindBySlug(ctx, q.Slug)
	if err != nil {
		return nil, err
	}
	if !post.IsPublished() && !q.IncludeDrafts {
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

// ListPostsQuery represents the query to list posts
type ListPostsQuery struct {
	Limit         int
	Offset        int
	IncludeDrafts bool
}

// ListPostsResult carries one page of posts plus the total count
type ListPostsResult struct {
	Posts  []domain.Post `json:"posts"`
	Total  int64         `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// ListPostsHandler handles list posts query
type ListPostsHandler struct {
	repo domain.PostRepository
}

// NewListPostsHandler creates a new list posts handler
func NewListPostsHandler(repo domain.PostRepository) *ListPostsHandler {
	return &ListPostsHandler{repo: repo}
}

// Handle executes the list posts query
func (h *ListPostsHandler) Handle(ctx context.Context, q ListPostsQuery) (*ListPostsResult, error) {
	if q.Limit <= 0 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	publishedOnly := !q.IncludeDrafts
	posts, err := h.repo.FindAll(ctx, publishedOnly, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	total, err := h.repo.Count(ctx, publishedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	return &ListPostsResult{
		Posts:  posts,
		Total:  total,
		Limit:  q.Limit,
		Offset: q.Offset,
	}, nil
}
