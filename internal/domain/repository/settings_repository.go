package repository

import (
	"context"

	"github.com/barberoil/fuelpos/internal/domain/entity"
)

// SettingsRepository defines the interface for settings data operations
type SettingsRepository interface {
	Get(ctx context.Context, key string) (*entity.Setting, error)
	Save(ctx context.Context, setting *entity.Setting) error
	List(ctx context.Context) ([]entity.Setting, error)
}
