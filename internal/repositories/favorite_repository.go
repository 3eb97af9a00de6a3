package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bizlens/internal/models/db_models"
)

type FavoriteRepository interface {
	Add(ctx context.Context, accountID, businessID uuid.UUID) error
	Remove(ctx context.Context, accountID, businessID uuid.UUID) error
	Exists(ctx context.Context, accountID, businessID uuid.UUID) (bool, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Favorite, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add is idempotent, favoriting twice leaves a single row.
func (r *favoriteRepository) Add(ctx context.Context, accountID, businessID uuid.UUID) error {
	existing, err := r.find(ctx, accountID, businessID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	favorite := db_models.Favorite{
		AccountID:  accountID,
		BusinessID: businessID,
	}
	return r.db.WithContext(ctx).Create(&favorite).Error
}

func (r *favoriteRepository) Remove(ctx context.Context, accountID, businessID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("account_id = ? AND business_id = ?", accountID, businessID).
		Delete(&db_models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *favoriteRepository) Exists(ctx context.Context, accountID, businessID uuid.UUID) (bool, error) {
	existing, err := r.find(ctx, accountID, businessID)
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}

func (r *favoriteRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Favorite, error) {
	var favorites []db_models.Favorite
	err := r.db.WithContext(ctx).
		Preload("Business").
		Preload("Business.Category").
		Preload("Business.City").
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

func (r *favoriteRepository) find(ctx context.Context, accountID, businessID uuid.UUID) (*db_models.Favorite, error) {
	var favorite db_models.Favorite
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND business_id = ?", accountID, businessID).
		First(&favorite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &favorite, nil
}
