package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/tokosakti/pos-api/internal/domain/entity"
	"github.com/tokosakti/pos-api/internal/domain/identifier"
	"github.com/tokosakti/pos-api/internal/domain/repository"
	"github.com/tokosakti/pos-api/pkg/apperror"
	"github.com/tokosakti/pos-api/pkg/pagination"
	"gorm.io/gorm"
)

// CustomerService handles customer operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name    string
	Email   *string
	Phone   *string
	City    *string
	Address *string
}

// CreateCustomer creates a new customer with an assigned P-code
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	customer := &entity.Customer{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		City:    input.City,
		Address: input.Address,
	}

	for attempt := 0; attempt < sequenceAttempts; attempt++ {
		seq, err := s.customerRepo.NextSequence(ctx)
		if err != nil {
			return nil, err
		}
		code, err := identifier.CustomerCode(seq)
		if err != nil {
			var overflow *identifier.ErrSequenceOverflow
			if errors.As(err, &overflow) {
				return nil, apperror.NewAppError(http.StatusConflict, "Customer code space exhausted")
			}
			return nil, err
		}

		customer.Code = code
		err = s.customerRepo.Create(ctx, customer)
		if err == nil {
			return customer, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	return nil, apperror.NewConflictError("Could not allocate a customer code, try again")
}

// GetCustomer retrieves a customer by code
func (s *CustomerService) GetCustomer(ctx context.Context, code string) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers with optional search
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	Name    *string
	Email   *string
	Phone   *string
	City    *string
	Address *string
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, code string, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.City != nil {
		customer.City = input.City
	}
	if input.Address != nil {
		customer.Address = input.Address
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer deletes a customer. The customer's transactions are removed
// with it (cascade).
func (s *CustomerService) DeleteCustomer(ctx context.Context, code string) error {
	customer, err := s.customerRepo.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Delete(ctx, code)
}
