package repository

import (
	"context"
	"sort"
	"strings"

	"github.com/barberoil/fuelpos/internal/domain/entity"
	domainRepo "github.com/barberoil/fuelpos/internal/domain/repository"
	"github.com/barberoil/fuelpos/internal/domain/schema"
	"github.com/barberoil/fuelpos/internal/infrastructure/store"
)

type customerRepository struct {
	store *store.Store
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(st *store.Store) domainRepo.CustomerRepository {
	return &customerRepository{store: st}
}

func (r *customerRepository) Save(ctx context.Context, customer *entity.Customer) error {
	return r.store.Put(ctx, schema.Customers, customer)
}

func (r *customerRepository) SaveAll(ctx context.Context, customers []entity.Customer) error {
	records := make([]any, len(customers))
	for i := range customers {
		records[i] = &customers[i]
	}
	return r.store.PutAll(ctx, schema.Customers, records)
}

func (r *customerRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (*entity.Customer, error) {
	var customer entity.Customer
	found, err := r.store.Get(ctx, schema.Customers, accountNumber, &customer)
	if err != nil || !found {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) FindByName(ctx context.Context, name string) ([]entity.Customer, error) {
	var customers []entity.Customer
	if err := r.store.Find(ctx, schema.Customers, "name", name, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *customerRepository) List(ctx context.Context) ([]entity.Customer, error) {
	var customers []entity.Customer
	if err := r.store.GetAll(ctx, schema.Customers, &customers); err != nil {
		return nil, err
	}
	sort.SliceStable(customers, func(i, j int) bool {
		return strings.ToLower(customers[i].Name) < strings.ToLower(customers[j].Name)
	})
	return customers, nil
}

func (r *customerRepository) Delete(ctx context.Context, accountNumber string) error {
	return r.store.Delete(ctx, schema.Customers, accountNumber)
}
