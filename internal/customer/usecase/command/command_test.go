package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelora/storefront/internal/customer/domain"
	"github.com/avelora/storefront/pkg/auth"
)

type fakeCustomerRepository struct {
	domain.CustomerRepository

	customers map[uint]*domain.Customer
	nextID    uint
}

func newFakeCustomerRepository() *fakeCustomerRepository {
	return &fakeCustomerRepository{customers: map[uint]*domain.Customer{}, nextID: 1}
}

func (f *fakeCustomerRepository) Create(_ context.Context, customer *domain.Customer) error {
	for _, existing := range f.customers {
		if existing.Email == customer.Email {
			return domain.ErrEmailExists
		}
	}
	customer.ID = f.nextID
	f.nextID++
	f.customers[customer.ID] = customer
	return nil
}

func (f *fakeCustomerRepository) FindByID(_ context.Context, id uint) (*domain.Customer, error) {
	customer, ok := f.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return customer, nil
}

func (f *fakeCustomerRepository) FindByEmail(_ context.Context, email string) (*domain.Customer, error) {
	for _, customer := range f.customers {
		if customer.Email == email {
			return customer, nil
		}
	}
	return nil, domain.ErrCustomerNotFound
}

func (f *fakeCustomerRepository) Update(_ context.Context, customer *domain.Customer) error {
	if _, ok := f.customers[customer.ID]; !ok {
		return domain.ErrCustomerNotFound
	}
	f.customers[customer.ID] = customer
	return nil
}

// recordingMerger records merge calls and optionally fails
type recordingMerger struct {
	calls []mergeCall
	err   error
}

type mergeCall struct {
	guestID    string
	customerID uint
}

func (m *recordingMerger) Merge(_ context.Context, guestID string, customerID uint) error {
	m.calls = append(m.calls, mergeCall{guestID: guestID, customerID: customerID})
	return m.err
}

func registerTestCustomer(t *testing.T, repo *fakeCustomerRepository) *domain.Customer {
	t.Helper()
	handler := NewRegisterCustomerHandler(repo)
	customer, err := handler.Handle(context.Background(), RegisterCustomerCommand{
		Email:    "ada@example.com",
		Password: "s3cret-pw",
		FullName: "Ada Lovelace",
	})
	require.NoError(t, err)
	return customer
}

func TestRegisterCustomer(t *testing.T) {
	repo := newFakeCustomerRepository()
	customer := registerTestCustomer(t, repo)

	assert.NotZero(t, customer.ID)
	assert.Equal(t, domain.RoleCustomer, customer.Role)
	assert.True(t, customer.IsActive)
	assert.True(t, auth.CheckPassword(customer.Password, "s3cret-pw"))
}

func TestRegisterCustomerNormalizesEmail(t *testing.T) {
	repo := newFakeCustomerRepository()
	handler := NewRegisterCustomerHandler(repo)

	customer, err := handler.Handle(context.Background(), RegisterCustomerCommand{
		Email:    "  Ada@Example.COM ",
		Password: "s3cret-pw",
		FullName: "Ada",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", customer.Email)
}

func TestRegisterCustomerValidation(t *testing.T) {
	handler := NewRegisterCustomerHandler(newFakeCustomerRepository())
	ctx := context.Background()

	cases := []RegisterCustomerCommand{
		{Email: "not-an-email", Password: "s3cret-pw", FullName: "A"},
		{Email: "a@b.com", Password: "short", FullName: "A"},
		{Email: "a@b.com", Password: "s3cret-pw"},
	}
	for _, cmd := range cases {
		_, err := handler.Handle(ctx, cmd)
		assert.Error(t, err)
	}
}

func TestRegisterCustomerDuplicateEmail(t *testing.T) {
	repo := newFakeCustomerRepository()
	registerTestCustomer(t, repo)

	handler := NewRegisterCustomerHandler(repo)
	_, err := handler.Handle(context.Background(), RegisterCustomerCommand{
		Email:    "ada@example.com",
		Password: "other-password",
		FullName: "Imposter",
	})
	assert.ErrorIs(t, err, domain.ErrEmailExists)
}

func TestLoginTriggersFavoritesMerge(t *testing.T) {
	repo := newFakeCustomerRepository()
	customer := registerTestCustomer(t, repo)
	merger := &recordingMerger{}
	handler := NewLoginCustomerHandler(repo, merger)

	result, err := handler.Handle(context.Background(), LoginCustomerCommand{
		Email:    "ada@example.com",
		Password: "s3cret-pw",
		GuestID:  "g-123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	require.Len(t, merger.calls, 1)
	assert.Equal(t, mergeCall{guestID: "g-123", customerID: customer.ID}, merger.calls[0])
}

func TestLoginSucceedsWhenMergeFails(t *testing.T) {
	repo := newFakeCustomerRepository()
	registerTestCustomer(t, repo)
	merger := &recordingMerger{err: errors.New("favorites service down")}
	handler := NewLoginCustomerHandler(repo, merger)

	result, err := handler.Handle(context.Background(), LoginCustomerCommand{
		Email:    "ada@example.com",
		Password: "s3cret-pw",
		GuestID:  "g-123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Len(t, merger.calls, 1)
}

func TestLoginWithoutGuestIDSkipsMerge(t *testing.T) {
	repo := newFakeCustomerRepository()
	registerTestCustomer(t, repo)
	merger := &recordingMerger{}
	handler := NewLoginCustomerHandler(repo, merger)

	_, err := handler.Handle(context.Background(), LoginCustomerCommand{
		Email:    "ada@example.com",
		Password: "s3cret-pw",
	})
	require.NoError(t, err)
	assert.Empty(t, merger.calls)
}

func TestLoginInvalidCredentials(t *testing.T) {
	repo := newFakeCustomerRepository()
	registerTestCustomer(t, repo)
	handler := NewLoginCustomerHandler(repo, &recordingMerger{})
	ctx := context.Background()

	_, err := handler.Handle(ctx, LoginCustomerCommand{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = handler.Handle(ctx, LoginCustomerCommand{Email: "nobody@example.com", Password: "s3cret-pw"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	repo := newFakeCustomerRepository()
	customer := registerTestCustomer(t, repo)
	merger := &recordingMerger{}

	deactivate := NewDeactivateCustomerHandler(repo)
	require.NoError(t, deactivate.Handle(context.Background(), DeactivateCustomerCommand{CustomerID: customer.ID}))

	handler := NewLoginCustomerHandler(repo, merger)
	_, err := handler.Handle(context.Background(), LoginCustomerCommand{
		Email:    "ada@example.com",
		Password: "s3cret-pw",
		GuestID:  "g-123",
	})
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)
	assert.Empty(t, merger.calls)
}

func TestUpdateProfile(t *testing.T) {
	repo := newFakeCustomerRepository()
	customer := registerTestCustomer(t, repo)
	handler := NewUpdateProfileHandler(repo)

	updated, err := handler.Handle(context.Background(), UpdateProfileCommand{
		CustomerID: customer.ID,
		FullName:   "Ada King",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada King", updated.FullName)
	assert.Equal(t, "ada@example.com", updated.Email)
}
