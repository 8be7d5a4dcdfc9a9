package customer

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/avelora/storefront/internal/customer/domain"
	"github.com/avelora/storefront/internal/customer/repository"
	"github.com/avelora/storefront/internal/customer/usecase/command"
	"github.com/avelora/storefront/internal/customer/usecase/query"
)

// ProvideCustomerRepository provides the customer repository
func ProvideCustomerRepository(db *gorm.DB) domain.CustomerRepository {
	return repository.NewGormCustomerRepository(db)
}

// Command handler providers
func ProvideRegisterCustomerHandler(repo domain.CustomerRepository) *command.RegisterCustomerHandler {
	return command.NewRegisterCustomerHandler(repo)
}

func ProvideLoginCustomerHandler(repo domain.CustomerRepository, merger domain.FavoritesMerger) *command.LoginCustomerHandler {
	return command.NewLoginCustomerHandler(repo, merger)
}

func ProvideUpdateProfileHandler(repo domain.CustomerRepository) *command.UpdateProfileHandler {
	return command.NewUpdateProfileHandler(repo)
}

func ProvideDeactivateCustomerHandler(repo domain.CustomerRepository) *command.DeactivateCustomerHandler {
	return command.NewDeactivateCustomerHandler(repo)
}

// Query handler providers
func ProvideGetCustomerHandler(repo domain.CustomerRepository) *query.GetCustomerHandler {
	return query.NewGetCustomerHandler(repo)
}

func ProvideListCustomersHandler(repo domain.CustomerRepository) *query.ListCustomersHandler {
	return query.NewListCustomersHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideCustomerRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideRegisterCustomerHandler,
	ProvideLoginCustomerHandler,
	ProvideUpdateProfileHandler,
	ProvideDeactivateCustomerHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetCustomerHandler,
	ProvideListCustomersHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)
