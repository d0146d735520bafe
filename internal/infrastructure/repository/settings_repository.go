package repository

import (
	"context"

	"github.com/barberoil/fuelpos/internal/domain/entity"
	domainRepo "github.com/barberoil/fuelpos/internal/domain/repository"
	"github.com/barberoil/fuelpos/internal/domain/schema"
	"github.com/barberoil/fuelpos/internal/infrastructure/store"
)

type settingsRepository struct {
	store *store.Store
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(st *store.Store) domainRepo.SettingsRepository {
	return &settingsRepository{store: st}
}

func (r *settingsRepository) Get(ctx context.Context, key string) (*entity.Setting, error) {
	var setting entity.Setting
	found, err := r.store.Get(ctx, schema.Settings, key, &setting)
	if err != nil || !found {
		return nil, err
	}
	return &setting, nil
}

func (r *settingsRepository) Save(ctx context.Context, setting *entity.Setting) error {
	return r.store.Put(ctx, schema.Settings, setting)
}

func (r *settingsRepository) List(ctx context.Context) ([]entity.Setting, error) {
	var settings []entity.Setting
	if err := r.store.GetAll(ctx, schema.Settings, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}
