package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bizlens/internal/models/db_models"
)

// BusinessFilter narrows List; zero values mean "no filter".
type BusinessFilter struct {
	CityID       *uuid.UUID
	CategoryID   *uuid.UUID
	Tag          string
	VerifiedOnly bool
	Query        string
}

// BusinessWithDistance is the ListNearby scan target; DistanceKm comes from
// the haversine expression.
type BusinessWithDistance struct {
	db_models.Business
	DistanceKm float64
}

type BusinessRepository interface {
	Create(ctx context.Context, business *db_models.Business) (uuid.UUID, error)
	Update(ctx context.Context, business *db_models.Business) error
	Delete(ctx context.Context, id uuid.UUID) error

	GetByID(ctx context.Context, id string) (*db_models.Business, error)
	GetBySlug(ctx context.Context, slug string) (*db_models.Business, error)
	List(ctx context.Context, filter BusinessFilter, page, pageSize int) ([]db_models.Business, error)
	ListNearby(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]BusinessWithDistance, error)
	ListUpdatedSince(ctx context.Context, since int64) ([]db_models.Business, error)

	UpsertByGMBResource(ctx context.Context, business *db_models.Business) (bool, error)
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	SetVisible(ctx context.Context, id uuid.UUID, visible bool) error
}

type businessRepository struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepository{db: db}
}

func (r *businessRepository) Create(ctx context.Context, business *db_models.Business) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(business).Error; err != nil {
		return uuid.Nil, err
	}
	return business.ID, nil
}

func (r *businessRepository) Update(ctx context.Context, business *db_models.Business) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Save(business)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to update business: %w", result.Error)
		}

		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}

func (r *businessRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&db_models.Business{}, "id = ?", id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// ────────────────────────────────────────────────────────────────
// Read helpers follow the same pattern: default value + nil error
// when no rows are found.
// ────────────────────────────────────────────────────────────────

func (r *businessRepository) GetByID(ctx context.Context, id string) (*db_models.Business, error) {
	var business db_models.Business
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("City").
		Preload("Tags").
		Preload("Offerings", "is_active = ?", true).
		Preload("Offerings.Images", "is_approved = ?", true).
		First(&business, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &business, nil
}

func (r *businessRepository) GetBySlug(ctx context.Context, slug string) (*db_models.Business, error) {
	var business db_models.Business
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("City").
		Preload("Tags").
		Preload("Offerings", "is_active = ?", true).
		Preload("Offerings.Images", "is_approved = ?", true).
		First(&business, "slug = ?", slug).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &business, nil
}

func (r *businessRepository) List(ctx context.Context, filter BusinessFilter, page, pageSize int) ([]db_models.Business, error) {
	var businesses []db_models.Business
	offset := (page - 1) * pageSize

	query := r.db.WithContext(ctx).
		Model(&db_models.Business{}).
		Where("is_visible = ?", true)

	if filter.CityID != nil {
		query = query.Where("city_id = ?", *filter.CityID)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.VerifiedOnly {
		query = query.Where("is_verified = ?", true)
	}
	if filter.Query != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Query+"%")
	}
	if filter.Tag != "" {
		query = query.
			Joins("JOIN business_tags bt ON bt.business_id = businesses.id").
			Joins("JOIN tags t ON t.id = bt.tag_id").
			Where("t.name = ?", filter.Tag)
	}

	err := query.
		Preload("Category").
		Preload("City").
		Preload("Tags").
		Order("rating_avg DESC, rating_count DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&businesses).Error
	if err != nil {
		return nil, err
	}
	return businesses, nil
}

func (r *businessRepository) ListNearby(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]BusinessWithDistance, error) {
	var results []BusinessWithDistance

	query := `
        SELECT * FROM (
            SELECT *,
                (6371 * acos(least(1.0,
                    cos(radians(?)) * cos(radians(latitude)) * cos(radians(longitude) - radians(?))
                    + sin(radians(?)) * sin(radians(latitude))
                ))) AS distance_km
            FROM businesses
            WHERE deleted_at IS NULL AND is_visible = TRUE
        ) nearby
        WHERE nearby.distance_km <= ?
        ORDER BY nearby.distance_km
        LIMIT ?
    `

	err := r.db.WithContext(ctx).Raw(query, lat, lng, lat, radiusKm, limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *businessRepository) ListUpdatedSince(ctx context.Context, since int64) ([]db_models.Business, error) {
	var businesses []db_models.Business
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Tags").
		Where("updated_at >= ?", since).
		Find(&businesses).Error
	if err != nil {
		return nil, err
	}
	return businesses, nil
}

// UpsertByGMBResource keys on the Google location resource name so repeated
// discovery runs update instead of duplicating. Returns true when a new row
// was created.
func (r *businessRepository) UpsertByGMBResource(ctx context.Context, business *db_models.Business) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing db_models.Business
		err := tx.First(&existing, "gmb_resource = ?", business.GMBResource).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			created = true
			return tx.Create(business).Error
		}

		existing.Name = business.Name
		existing.Address = business.Address
		existing.Latitude = business.Latitude
		existing.Longitude = business.Longitude
		existing.Phone = business.Phone
		existing.Website = business.Website
		existing.GMBRaw = business.GMBRaw
		if existing.Description == "" {
			existing.Description = business.Description
		}
		if existing.CategoryID == nil {
			existing.CategoryID = business.CategoryID
		}
		if existing.CityID == nil {
			existing.CityID = business.CityID
		}

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		business.ID = existing.ID
		return nil
	})
	return created, err
}

func (r *businessRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	result := r.db.WithContext(ctx).
		Model(&db_models.Business{}).
		Where("id = ?", id).
		Update("is_verified", verified)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *businessRepository) SetVisible(ctx context.Context, id uuid.UUID, visible bool) error {
	result := r.db.WithContext(ctx).
		Model(&db_models.Business{}).
		Where("id = ?", id).
		Update("is_visible", visible)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
