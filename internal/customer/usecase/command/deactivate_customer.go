package command

import (
	"context"

	"github.com/avelora/storefront/internal/customer/domain"
)

// DeactivateCustomerCommand represents the admin command to disable an
// account. The row survives; the customer just cannot log in anymore.
type DeactivateCustomerCommand struct {
	CustomerID uint
}

// DeactivateCustomerHandler handles account deactivation
type DeactivateCustomerHandler struct {
	repo domain.CustomerRepository
}

// NewDeactivateCustomerHandler creates a new deactivate customer handler
func NewDeactivateCustomerHandler(repo domain.CustomerRepository) *DeactivateCustomerHandler {
	return &DeactivateCustomerHandler{repo: repo}
}

// Handle executes the deactivate customer command
func (h *DeactivateCustomerHandler) Handle(ctx context.Context, cmd DeactivateCustomerCommand) error {
	customer, err := h.repo.FindByID(ctx, cmd.CustomerID)
	if err != nil {
		return err
	}

	customer.IsActive = false
	return h.repo.Update(ctx, customer)
}
