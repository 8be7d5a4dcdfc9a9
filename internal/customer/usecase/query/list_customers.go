package query

import (
	"context"
	"fmt"

	"github.com/avelora/storefront/internal/customer/domain"
)

// ListCustomersQuery represents the admin query to list customers
type ListCustomersQuery struct {
	Limit  int
	Offset int
}

// ListCustomersResult carries one page of customers plus the total count
type ListCustomersResult struct {
	Customers []domain.Customer `json:"customers"`
	Total     int64             `json:"total"`
	Limit     int               `json:"limit"`
	Offset    int               `json:"offset"`
}

// ListCustomersHandler handles list customers query
type ListCustomersHandler struct {
	repo domain.CustomerRepository
}

// NewListCustomersHandler creates a new list customers handler
func NewListCustomersHandler(repo domain.CustomerRepository) *ListCustomersHandler {
	return &ListCustomersHandler{repo: repo}
}

// Handle executes the list customers query
func (h *ListCustomersHandler) Handle(ctx context.Context, q ListCustomersQuery) (*ListCustomersResult, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	customers, err := h.repo.FindAll(ctx, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	total, err := h.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	return &ListCustomersResult{
		Customers: customers,
		Total:     total,
		Limit:     q.Limit,
		Offset:    q.Offset,
	}, nil
}
