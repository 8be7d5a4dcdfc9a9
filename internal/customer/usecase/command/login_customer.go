package command

import (
	"context"
	"strings"

	"github.com/avelora/storefront/internal/customer/domain"
	"github.com/avelora/storefront/pkg/auth"
	"github.com/avelora/storefront/pkg/logger"
)

// LoginCustomerCommand represents the command to log a customer in.
// GuestID carries the anonymous browsing identifier the client has been
// using; it may be empty.
type LoginCustomerCommand struct {
	Email    string
	Password string
	GuestID  string
}

// LoginResponse represents the response after successful login
type LoginResponse struct {
	Token    string           `json:"token"`
	Customer *domain.Customer `json:"customer"`
}

// LoginCustomerHandler handles customer login command
type LoginCustomerHandler struct {
	repo   domain.CustomerRepository
	merger domain.FavoritesMerger
}

// NewLoginCustomerHandler creates a new login customer handler
func NewLoginCustomerHandler(repo domain.CustomerRepository, merger domain.FavoritesMerger) *LoginCustomerHandler {
	return &LoginCustomerHandler{repo: repo, merger: merger}
}

// Handle executes the login. After authenticating, the customer's guest
// favorites are merged into the account. The merge is best-effort: a
// failure is logged and the login still succeeds, because the guest id
// survives client-side until a merge goes through and the next login
// retries it.
func (h *LoginCustomerHandler) Handle(ctx context.Context, cmd LoginCustomerCommand) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" || cmd.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	customer, err := h.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !customer.IsActive {
		return nil, domain.ErrAccountDisabled
	}

	if !auth.CheckPassword(customer.Password, cmd.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(customer.ID, customer.Email, customer.Role)
	if err != nil {
		return nil, err
	}

	if h.merger != nil && cmd.GuestID != "" {
		if err := h.merger.Merge(ctx, cmd.GuestID, customer.ID); err != nil {
			logger.Warn(ctx).
				Err(err).
				Uint("customer_id", customer.ID).
				Msg("Guest favorites merge failed, will retry on next login")
		}
	}

	return &LoginResponse{
		Token:    token,
		Customer: customer,
	}, nil
}
