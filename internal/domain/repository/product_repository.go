package repository

import (
	"context"

	"github.com/barberoil/fuelpos/internal/domain/entity"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Save(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]entity.Product, error)
	Delete(ctx context.Context, id string) error
}
