package command

import (
	"context"
	"fmt"

	"github.com/avelora/storefront/internal/catalog/domain"
)

// CreateCategoryCommand represents the command to create a category
type CreateCategoryCommand struct {
	Name     string
	Slug     string
	ParentID *uint
}

// CreateCategoryHandler handles category creation command
type CreateCategoryHandler struct {
	repo domain.CategoryRepository
}

// NewCreateCategoryHandler creates a new create category handler
func NewCreateCategoryHandler(repo domain.CategoryRepository) *CreateCategoryHandler {
	return &CreateCategoryHandler{repo: repo}
}

// Handle executes the create category command
func (h *CreateCategoryHandler) Handle(ctx context.Context, cmd CreateCategoryCommand) (*domain.Category, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("category name is required")
	}

	slug := cmd.Slug
	if slug == "" {
		slug = Slugify(cmd.Name)
	}
	if slug == "" {
		return nil, fmt.Errorf("category slug is required")
	}

	if cmd.ParentID != nil {
		if _, err := h.repo.FindByID(ctx, *cmd.ParentID); err != nil {
			return nil, err
		}
	}

	category := &domain.Category{Name: cmd.Name, Slug: slug, ParentID: cmd.ParentID}
	if err := h.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}
