package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bizlens/internal/models/db_models"
)

type OfferingRepository interface {
	Create(ctx context.Context, offering *db_models.Offering) (uuid.UUID, error)
	Update(ctx context.Context, offering *db_models.Offering) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error

	GetByID(ctx context.Context, id string) (*db_models.Offering, error)
	ListByBusiness(ctx context.Context, businessID string, page, pageSize int) ([]db_models.Offering, error)
	ListUpdatedSince(ctx context.Context, since int64) ([]db_models.Offering, error)
}

type offeringRepository struct {
	db *gorm.DB
}

func NewOfferingRepository(db *gorm.DB) OfferingRepository {
	return &offeringRepository{db: db}
}

func (r *offeringRepository) Create(ctx context.Context, offering *db_models.Offering) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(offering).Error; err != nil {
		return uuid.Nil, err
	}
	return offering.ID, nil
}

func (r *offeringRepository) Update(ctx context.Context, offering *db_models.Offering) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Save(offering)
		if result.Error != nil {
			return fmt.Errorf("failed to update offering: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *offeringRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&db_models.Offering{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *offeringRepository) GetByID(ctx context.Context, id string) (*db_models.Offering, error) {
	var offering db_models.Offering
	err := r.db.WithContext(ctx).
		Preload("Business").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC, created_at DESC")
		}).
		First(&offering, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &offering, nil
}

func (r *offeringRepository) ListByBusiness(ctx context.Context, businessID string, page, pageSize int) ([]db_models.Offering, error) {
	var offerings []db_models.Offering
	offset := (page - 1) * pageSize

	err := r.db.WithContext(ctx).
		Where("business_id = ? AND is_active = ?", businessID, true).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_approved = ?", true).Order("is_primary DESC, created_at DESC")
		}).
		Offset(offset).
		Limit(pageSize).
		Find(&offerings).Error
	if err != nil {
		return nil, err
	}
	return offerings, nil
}

func (r *offeringRepository) ListUpdatedSince(ctx context.Context, since int64) ([]db_models.Offering, error) {
	var offerings []db_models.Offering
	err := r.db.WithContext(ctx).
		Preload("Business").
		Where("updated_at >= ?", since).
		Find(&offerings).Error
	if err != nil {
		return nil, err
	}
	return offerings, nil
}
