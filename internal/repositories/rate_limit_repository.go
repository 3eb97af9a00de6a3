package repositories

import (
	"context"

	"gorm.io/gorm"

	"bizlens/internal/models/db_models"
)

type RateLimitRepository interface {
	CountSince(ctx context.Context, identifier string, function string, since int64) (int64, error)
	Record(ctx context.Context, identifier string, function string) error
	DeleteOlderThan(ctx context.Context, cutoff int64) (int64, error)
}

type rateLimitRepository struct {
	db *gorm.DB
}

func NewRateLimitRepository(db *gorm.DB) RateLimitRepository {
	return &rateLimitRepository{db: db}
}

func (r *rateLimitRepository) CountSince(ctx context.Context, identifier string, function string, since int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.RateLimit{}).
		Where("identifier = ? AND function = ? AND created_at >= ?", identifier, function, since).
		Count(&count).Error
	return count, err
}

func (r *rateLimitRepository) Record(ctx context.Context, identifier string, function string) error {
	entry := db_models.RateLimit{
		Identifier: identifier,
		Function:   function,
	}
	return r.db.WithContext(ctx).Create(&entry).Error
}

func (r *rateLimitRepository) DeleteOlderThan(ctx context.Context, cutoff int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&db_models.RateLimit{})
	return result.RowsAffected, result.Error
}
