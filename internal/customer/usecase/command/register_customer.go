package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/avelora/storefront/internal/customer/domain"
	"github.com/avelora/storefront/pkg/auth"
)

// RegisterCustomerCommand represents the command to register a customer
type RegisterCustomerCommand struct {
	Email    string
	Password string
	FullName string
}

// RegisterCustomerHandler handles customer registration command
type RegisterCustomerHandler struct {
	repo domain.CustomerRepository
}

// NewRegisterCustomerHandler creates a new register customer handler
func NewRegisterCustomerHandler(repo domain.CustomerRepository) *RegisterCustomerHandler {
	return &RegisterCustomerHandler{repo: repo}
}

// Handle executes the register customer command
func (h *RegisterCustomerHandler) Handle(ctx context.Context, cmd RegisterCustomerCommand) (*domain.Customer, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("valid email is required")
	}
	if len(cmd.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	if cmd.FullName == "" {
		return nil, fmt.Errorf("full name is required")
	}

	hash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	customer := &domain.Customer{
		Email:    email,
		Password: hash,
		FullName: cmd.FullName,
		Role:     domain.RoleCustomer,
		IsActive: true,
	}

	if err := h.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}
