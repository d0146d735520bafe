package repository

import (
	"context"

	"github.com/barberoil/fuelpos/internal/domain/entity"
	domainRepo "github.com/barberoil/fuelpos/internal/domain/repository"
	"github.com/barberoil/fuelpos/internal/domain/schema"
	"github.com/barberoil/fuelpos/internal/infrastructure/store"
)

type productRepository struct {
	store *store.Store
}

// NewProductRepository creates a new product repository
func NewProductRepository(st *store.Store) domainRepo.ProductRepository {
	return &productRepository{store: st}
}

func (r *productRepository) Save(ctx context.Context, product *entity.Product) error {
	return r.store.Put(ctx, schema.Products, product)
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var product entity.Product
	found, err := r.store.Get(ctx, schema.Products, id, &product)
	if err != nil || !found {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	if err := r.store.GetAll(ctx, schema.Products, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, schema.Products, id)
}
