package command

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/avelora/storefront/internal/catalog/domain"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a display name
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// CreateBrandCommand represents the command to create a brand
type CreateBrandCommand struct {
	Name string
	Slug string
}

// CreateBrandHandler handles brand creation command
type CreateBrandHandler struct {
	repo domain.BrandRepository
}

// NewCreateBrandHandler creates a new create brand handler
func NewCreateBrandHandler(repo domain.BrandRepository) *CreateBrandHandler {
	return &CreateBrandHandler{repo: repo}
}

// Handle executes the create brand command
func (h *CreateBrandHandler) Handle(ctx context.Context, cmd CreateBrandCommand) (*domain.Brand, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("brand name is required")
	}

	slug := cmd.Slug
	if slug == "" {
		slug = Slugify(cmd.Name)
	}
	if slug == "" {
		return nil, fmt.Errorf("brand slug is required")
	}

	brand := &domain.Brand{Name: cmd.Name, Slug: slug}
	if err := h.repo.Create(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}
