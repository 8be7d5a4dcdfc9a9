package command

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/avelora/storefront/internal/blog/domain"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// CreatePostCommand represents the command to create a draft post
type CreatePostCommand struct {
	Title    string
	Slug     string
	Body     string
	AuthorID uint
}

// CreatePostHandler handles post creation command
type CreatePostHandler struct {
	repo domain.PostRepository
}

// NewCreatePostHandler creates a new create post handler
func NewCreatePostHandler(repo domain.PostRepository) *CreatePostHandler {
	return &CreatePostHandler{repo: repo}
}

// Handle executes the create post command. New posts always start as
// drafts; publication is a separate step.
func (h *CreatePostHandler) Handle(ctx context.Context, cmd CreatePostCommand) (*domain.Post, error) {
	if cmd.Title == "" {
		return nil, fmt.Errorf("post title is required")
	}

	slug := cmd.Slug
	if slug == "" {
		slug = slugify(cmd.Title)
	}
	if slug == "" {
		return nil, fmt.Errorf("post slug is required")
	}

	post := &domain.Post{
		Title:    cmd.Title,
		Slug:     slug,
		Body:     cmd.Body,
		Status:   domain.StatusDraft,
		AuthorID: cmd.AuthorID,
	}

	if err := h.repo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePostCommand represents the command to update a post
type UpdatePostCommand struct {
	ID    uint
	Title string
	Body  string
}

// UpdatePostHandler handles post update command
type UpdatePostHandler struct {
	repo domain.PostRepository
}

// NewUpdatePostHandler creates a new update post handler
func NewUpdatePostHandler(repo domain.PostRepository) *UpdatePostHandler {
	return &UpdatePostHandler{repo: repo}
}

// Handle executes the update post command. The slug is immutable once
// created so published URLs never break.
func (h *UpdatePostHandler) Handle(ctx context.Context, cmd UpdatePostCommand) (*domain.Post, error) {
	if cmd.Title == "" {
		return nil, fmt.Errorf("post title is required")
	}

	post, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	post.Title = cmd.Title
	post.Body = cmd.Body

	if err := h.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// PublishPostCommand represents the command to publish a draft
type PublishPostCommand struct {
	ID uint
}

// PublishPostHandler handles post publication command
type PublishPostHandler struct {
	repo domain.PostRepository
}

// NewPublishPostHandler creates a new publish post handler
func NewPublishPostHandler(repo domain.PostRepository) *PublishPostHandler {
	return &PublishPostHandler{repo: repo}
}

// Handle executes the publish post command. Publishing an already
// published post is a no-op success.
func (h *PublishPostHandler) Handle(ctx context.Context, cmd PublishPostCommand) (*domain.Post, error) {
	post, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	if post.IsPublished() {
		return post, nil
	}

	now := time.Now()
	post.Status = domain.StatusPublished
	post.PublishedAt = &now

	if err := h.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePostCommand represents the command to delete a post
type DeletePostCommand struct {
	ID uint
}

// DeletePostHandler handles post deletion command
type DeletePostHandler struct {
	repo domain.PostRepository
}

// NewDeletePostHandler creates a new delete post handler
func NewDeletePostHandler(repo domain.PostRepository) *DeletePostHandler {
	return &DeletePostHandler{repo: repo}
}

// Handle executes the delete post command
func (h *DeletePostHandler) Handle(ctx context.Context, cmd DeletePostCommand) error {
	return h.repo.Delete(ctx, cmd.ID)
}
