package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Post statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Post represents a storefront blog article
type Post struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Title       string         `json:"title" gorm:"not null"`
	Slug        string         `json:"slug" gorm:"not null;uniqueIndex"`
	Body        string         `json:"body"`
	Status      string         `json:"status" gorm:"not null;default:'draft'"`
	AuthorID    uint           `json:"author_id" gorm:"index"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Post) TableName() string {
	return "posts"
}

// IsPublished reports whether the post is visible on the storefront
func (p *Post) IsPublished() bool {
	return p.Status == StatusPublished
}

var (
	ErrPostNotFound = errors.New("post not found")
	ErrSlugExists   = errors.New("slug already exists")
)

// PostRepository defines the contract for post data access
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	FindByID(ctx context.Context, id uint) (*Post, error)
	FindBySlug(ctx context.Context, slug string) (*Post, error)
	FindAll(ctx context.Context, publishedOnly bool, limit, offset int) ([]Post, error)
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context, publishedOnly bool) (int64, error)
}
