package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/patrickmn/go-cache"
	"gorm.io/datatypes"

	"bizlens/internal/models/db_models"
	"bizlens/internal/repositories"
	"bizlens/pkg/utils"
)

const (
	// SettingVisionModeration toggles SafeSearch calls in image checks.
	SettingVisionModeration = "vision_moderation_enabled"

	settingsCacheTTL = 60 * time.Second
)

type SettingsServiceInterface interface {
	GetBool(ctx context.Context, key string, fallback bool) bool
	GetSetting(key string, ctx context.Context) (*db_models.AppSetting, error)
	UpdateSetting(key string, value json.RawMessage, description string, ctx context.Context) error
	ListSettings(ctx context.Context) ([]db_models.AppSetting, error)
}

type SettingsService struct {
	settingsRepository repositories.SettingsRepository
	cache              *cache.Cache
}

func NewSettingsService(settingsRepository repositories.SettingsRepository) SettingsServiceInterface {
	return &SettingsService{
		settingsRepository: settingsRepository,
		cache:              cache.New(settingsCacheTTL, settingsCacheTTL*2),
	}
}

// GetBool reads a boolean flag, serving from the TTL cache when warm. Any
// lookup or decode problem falls back to the given default.
func (s *SettingsService) GetBool(ctx context.Context, key string, fallback bool) bool {
	if cached, found := s.cache.Get(key); found {
		if value, ok := cached.(bool); ok {
			return value
		}
	}

	setting, err := s.settingsRepository.Get(ctx, key)
	if err != nil {
		log.Printf("Error reading setting %s: %v", key, err)
		return fallback
	}
	if setting == nil {
		return fallback
	}

	var value bool
	if err := json.Unmarshal(setting.Value, &value); err != nil {
		log.Printf("Error decoding setting %s: %v", key, err)
		return fallback
	}

	s.cache.Set(key, value, cache.DefaultExpiration)
	return value
}

func (s *SettingsService) GetSetting(key string, ctx context.Context) (*db_models.AppSetting, error) {
	setting, err := s.settingsRepository.Get(ctx, key)
	if err != nil {
		log.Printf("Error reading setting %s: %v", key, err)
		return nil, utils.ErrDatabaseError
	}
	if setting == nil {
		return nil, utils.ErrSettingNotFound
	}
	return setting, nil
}

func (s *SettingsService) UpdateSetting(key string, value json.RawMessage, description string, ctx context.Context) error {
	if key == "" || len(value) == 0 {
		return utils.ErrInvalidInput
	}
	if !json.Valid(value) {
		return utils.ErrInvalidInput
	}

	err := s.settingsRepository.Set(ctx, key, datatypes.JSON(value), description)
	if err != nil {
		log.Printf("Error updating setting %s: %v", key, err)
		return utils.ErrDatabaseError
	}

	s.cache.Delete(key)
	return nil
}

func (s *SettingsService) ListSettings(ctx context.Context) ([]db_models.AppSetting, error) {
	settings, err := s.settingsRepository.List(ctx)
	if err != nil {
		log.Printf("Error listing settings: %v", err)
		return nil, utils.ErrDatabaseError
	}
	return settings, nil
}
