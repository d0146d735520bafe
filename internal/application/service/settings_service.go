package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/barberoil/fuelpos/internal/domain/entity"
	"github.com/barberoil/fuelpos/internal/domain/repository"
	"github.com/barberoil/fuelpos/pkg/apperror"
)

// SettingsService handles settings operations
type SettingsService struct {
	settingsRepo    repository.SettingsRepository
	defaultBusiness entity.BusinessProfile
}

// NewSettingsService creates a new settings service. defaultBusiness is
// returned until a business profile has been saved.
func NewSettingsService(settingsRepo repository.SettingsRepository, defaultBusiness entity.BusinessProfile) *SettingsService {
	return &SettingsService{
		settingsRepo:    settingsRepo,
		defaultBusiness: defaultBusiness,
	}
}

// ListSettings lists all settings
func (s *SettingsService) ListSettings(ctx context.Context) ([]entity.Setting, error) {
	return s.settingsRepo.List(ctx)
}

// GetSetting gets a setting by key
func (s *SettingsService) GetSetting(ctx context.Context, key string) (*entity.Setting, error) {
	setting, err := s.settingsRepo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, apperror.NewNotFoundError("Setting")
	}
	return setting, nil
}

// PutSetting stores a free-form value under key
func (s *SettingsService) PutSetting(ctx context.Context, key string, value json.RawMessage) (*entity.Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, apperror.NewFieldValidationError("key", "Key is required")
	}
	if !json.Valid(value) {
		return nil, apperror.NewFieldValidationError("value", "Value must be valid JSON")
	}
	if key == entity.SettingBusiness {
		var profile entity.BusinessProfile
		if err := json.Unmarshal(value, &profile); err != nil {
			return nil, apperror.NewFieldValidationError("value", "Business profile is malformed")
		}
		if _, err := s.UpdateBusinessProfile(ctx, &profile); err != nil {
			return nil, err
		}
		return s.settingsRepo.Get(ctx, key)
	}

	setting := &entity.Setting{Key: key, Value: value}
	if err := s.settingsRepo.Save(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

// GetBusinessProfile returns the profile printed on delivery tickets
func (s *SettingsService) GetBusinessProfile(ctx context.Context) (*entity.BusinessProfile, error) {
	setting, err := s.settingsRepo.Get(ctx, entity.SettingBusiness)
	if err != nil {
		return nil, err
	}

	profile := s.defaultBusiness
	if setting == nil {
		return &profile, nil
	}
	if err := json.Unmarshal(setting.Value, &profile); err != nil {
		return nil, apperror.NewTransactionFailedError("read business profile", err)
	}
	return &profile, nil
}

// UpdateBusinessProfile replaces the business profile
func (s *SettingsService) UpdateBusinessProfile(ctx context.Context, profile *entity.BusinessProfile) (*entity.BusinessProfile, error) {
	profile.Name = strings.TrimSpace(profile.Name)
	profile.Location = strings.TrimSpace(profile.Location)
	profile.Phone = strings.TrimSpace(profile.Phone)
	if profile.Name == "" {
		return nil, apperror.NewFieldValidationError("name", "Business name is required")
	}

	value, err := json.Marshal(profile)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}
	if err := s.settingsRepo.Save(ctx, &entity.Setting{Key: entity.SettingBusiness, Value: value}); err != nil {
		return nil, err
	}
	return profile, nil
}
