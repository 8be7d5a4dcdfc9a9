package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/avelora/storefront/internal/customer/domain"
)

// UpdateProfileCommand represents the command to update a customer profile
type UpdateProfileCommand struct {
	CustomerID uint
	FullName   string
	Email      string
}

// UpdateProfileHandler handles profile update command
type UpdateProfileHandler struct {
	repo domain.CustomerRepository
}

// NewUpdateProfileHandler creates a new update profile handler
func NewUpdateProfileHandler(repo domain.CustomerRepository) *UpdateProfileHandler {
	return &UpdateProfileHandler{repo: repo}
}

// Handle executes the update profile command
func (h *UpdateProfileHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) (*domain.Customer, error) {
	customer, err := h.repo.FindByID(ctx, cmd.CustomerID)
	if err != nil {
		return nil, err
	}

	if cmd.FullName != "" {
		customer.FullName = cmd.FullName
	}
	if cmd.Email != "" {
		email := strings.ToLower(strings.TrimSpace(cmd.Email))
		if !strings.Contains(email, "@") {
			return nil, fmt.Errorf("valid email is required")
		}
		customer.Email = email
	}

	if err := h.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}
