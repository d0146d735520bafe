package repository

import (
	"context"

	"github.com/barberoil/fuelpos/internal/domain/entity"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Save(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	Delete(ctx context.Context, id string) error
}
