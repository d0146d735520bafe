package repository

import (
	"context"

	"github.com/barberoil/fuelpos/internal/domain/entity"
	domainRepo "github.com/barberoil/fuelpos/internal/domain/repository"
	"github.com/barberoil/fuelpos/internal/domain/schema"
	"github.com/barberoil/fuelpos/internal/infrastructure/store"
)

type userRepository struct {
	store *store.Store
}

// NewUserRepository creates a new user repository
func NewUserRepository(st *store.Store) domainRepo.UserRepository {
	return &userRepository{store: st}
}

func (r *userRepository) Save(ctx context.Context, user *entity.User) error {
	return r.store.Put(ctx, schema.Users, user)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	found, err := r.store.Get(ctx, schema.Users, id, &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if err := r.store.GetAll(ctx, schema.Users, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, schema.Users, id)
}
