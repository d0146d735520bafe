package repository

import (
	"context"

	"github.com/barberoil/fuelpos/internal/domain/entity"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Save(ctx context.Context, customer *entity.Customer) error
	// SaveAll writes every customer or none of them.
	SaveAll(ctx context.Context, customers []entity.Customer) error
	GetByAccountNumber(ctx context.Context, accountNumber string) (*entity.Customer, error)
	FindByName(ctx context.Context, name string) ([]entity.Customer, error)
	// List returns all customers sorted by name.
	List(ctx context.Context) ([]entity.Customer, error)
	Delete(ctx context.Context, accountNumber string) error
}
