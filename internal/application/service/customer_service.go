package service

import (
	"context"
	"strings"

	"github.com/barberoil/fuelpos/internal/domain/entity"
	"github.com/barberoil/fuelpos/internal/domain/repository"
	"github.com/barberoil/fuelpos/pkg/apperror"
	"github.com/barberoil/fuelpos/pkg/pagination"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CustomerInput represents the editable customer fields
type CustomerInput struct {
	AccountNumber string
	Name          string
	Address       string
	City          string
	State         string
	Zip           string
	Phone         string
	Email         string
	TaxExempt     bool
	Notes         string
}

func (in *CustomerInput) apply(c *entity.Customer) {
	c.Name = strings.TrimSpace(in.Name)
	c.Address = strings.TrimSpace(in.Address)
	c.City = strings.TrimSpace(in.City)
	c.State = strings.TrimSpace(in.State)
	c.Zip = strings.TrimSpace(in.Zip)
	c.Phone = strings.TrimSpace(in.Phone)
	c.Email = strings.TrimSpace(in.Email)
	c.TaxExempt = in.TaxExempt
	c.Notes = in.Notes
}

// CreateCustomer creates a new customer. The account number is required and
// cannot be reused.
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CustomerInput) (*entity.Customer, error) {
	accountNumber := strings.TrimSpace(input.AccountNumber)

	var fieldErrors []apperror.FieldError
	if accountNumber == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "accountNumber", Message: "Account number is required"})
	}
	if strings.TrimSpace(input.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	existing, err := s.customerRepo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Account number already exists")
	}

	customer := &entity.Customer{AccountNumber: accountNumber}
	input.apply(customer)

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by account number
func (s *CustomerService) GetCustomer(ctx context.Context, accountNumber string) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers by name, optionally filtered by a search
// term matched against the name or account number.
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if term := strings.ToLower(strings.TrimSpace(search)); term != "" {
		filtered := customers[:0]
		for _, c := range customers {
			if strings.Contains(strings.ToLower(c.Name), term) ||
				strings.Contains(strings.ToLower(c.AccountNumber), term) {
				filtered = append(filtered, c)
			}
		}
		customers = filtered
	}

	return pagination.Paginate(customers, params), nil
}

// UpdateCustomer replaces the editable fields of a customer. The account
// number itself never changes.
func (s *CustomerService) UpdateCustomer(ctx context.Context, accountNumber string, input *CustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	if input.AccountNumber != "" && strings.TrimSpace(input.AccountNumber) != customer.AccountNumber {
		return nil, apperror.NewFieldValidationError("accountNumber", "Account number cannot be changed")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperror.NewFieldValidationError("name", "Name is required")
	}

	input.apply(customer)
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer deletes a customer. Invoices keep their snapshot of it.
func (s *CustomerService) DeleteCustomer(ctx context.Context, accountNumber string) error {
	if _, err := s.GetCustomer(ctx, accountNumber); err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, accountNumber)
}
