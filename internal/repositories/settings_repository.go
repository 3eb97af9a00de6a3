package repositories

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bizlens/internal/models/db_models"
)

type SettingsRepository interface {
	Get(ctx context.Context, key string) (*db_models.AppSetting, error)
	Set(ctx context.Context, key string, value datatypes.JSON, description string) error
	List(ctx context.Context) ([]db_models.AppSetting, error)
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context, key string) (*db_models.AppSetting, error) {
	var setting db_models.AppSetting
	err := r.db.WithContext(ctx).First(&setting, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

func (r *settingsRepository) Set(ctx context.Context, key string, value datatypes.JSON, description string) error {
	setting := db_models.AppSetting{
		Key:         key,
		Value:       value,
		Description: description,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "description", "updated_at"}),
		}).
		Create(&setting).Error
}

func (r *settingsRepository) List(ctx context.Context) ([]db_models.AppSetting, error) {
	var settings []db_models.AppSetting
	err := r.db.WithContext(ctx).Order("key ASC").Find(&settings).Error
	if err != nil {
		return nil, err
	}
	return settings, nil
}
