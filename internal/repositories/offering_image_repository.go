package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bizlens/internal/models/db_models"
)

type OfferingImageRepository interface {
	Add(ctx context.Context, image *db_models.OfferingImage) (uuid.UUID, error)
	GetByID(ctx context.Context, id string) (*db_models.OfferingImage, error)
	ListApprovedSince(ctx context.Context, since int64) ([]db_models.OfferingImage, error)

	SetApproved(ctx context.Context, id uuid.UUID, approved bool) error
	SetPrimary(ctx context.Context, id uuid.UUID) error
	RejectAndPromoteNext(ctx context.Context, id uuid.UUID) (*uuid.UUID, error)
	DeleteAndPromoteNext(ctx context.Context, id uuid.UUID) (*uuid.UUID, error)
}

type offeringImageRepository struct {
	db *gorm.DB
}

func NewOfferingImageRepository(db *gorm.DB) OfferingImageRepository {
	return &offeringImageRepository{db: db}
}

func (r *offeringImageRepository) Add(ctx context.Context, image *db_models.OfferingImage) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(image).Error; err != nil {
		return uuid.Nil, err
	}
	return image.ID, nil
}

func (r *offeringImageRepository) GetByID(ctx context.Context, id string) (*db_models.OfferingImage, error) {
	var image db_models.OfferingImage
	err := r.db.WithContext(ctx).First(&image, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

func (r *offeringImageRepository) ListApprovedSince(ctx context.Context, since int64) ([]db_models.OfferingImage, error) {
	var images []db_models.OfferingImage
	err := r.db.WithContext(ctx).
		Joins("Offering").
		Where("offering_images.is_approved = ? AND offering_images.updated_at >= ?", true, since).
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *offeringImageRepository) SetApproved(ctx context.Context, id uuid.UUID, approved bool) error {
	result := r.db.WithContext(ctx).
		Model(&db_models.OfferingImage{}).
		Where("id = ?", id).
		Update("is_approved", approved)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetPrimary clears the flag on every sibling before setting it, inside one
// transaction, so the single-primary invariant holds.
func (r *offeringImageRepository) SetPrimary(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var image db_models.OfferingImage
		if err := tx.First(&image, "id = ?", id).Error; err != nil {
			return err
		}
		if !image.IsApproved {
			return errors.New("cannot promote an unapproved image")
		}

		if err := tx.Model(&db_models.OfferingImage{}).
			Where("offering_id = ? AND is_primary = ?", image.OfferingID, true).
			Update("is_primary", false).Error; err != nil {
			return err
		}

		return tx.Model(&db_models.OfferingImage{}).
			Where("id = ?", id).
			Update("is_primary", true).Error
	})
}

// RejectAndPromoteNext flips is_approved off and, when the image was primary,
// promotes the most-recently-created approved sibling. Demotion and promotion
// run in the same transaction.
func (r *offeringImageRepository) RejectAndPromoteNext(ctx context.Context, id uuid.UUID) (*uuid.UUID, error) {
	var promotedID *uuid.UUID
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var image db_models.OfferingImage
		if err := tx.First(&image, "id = ?", id).Error; err != nil {
			return err
		}
		wasPrimary := image.IsPrimary

		if err := tx.Model(&db_models.OfferingImage{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{"is_approved": false, "is_primary": false}).Error; err != nil {
			return err
		}

		if !wasPrimary {
			return nil
		}

		next, err := r.promoteNext(tx, image.OfferingID, id)
		if err != nil {
			return err
		}
		promotedID = next
		return nil
	})
	return promotedID, err
}

func (r *offeringImageRepository) DeleteAndPromoteNext(ctx context.Context, id uuid.UUID) (*uuid.UUID, error) {
	var promotedID *uuid.UUID
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var image db_models.OfferingImage
		if err := tx.First(&image, "id = ?", id).Error; err != nil {
			return err
		}
		wasPrimary := image.IsPrimary

		if err := tx.Delete(&db_models.OfferingImage{}, "id = ?", id).Error; err != nil {
			return err
		}

		if !wasPrimary {
			return nil
		}

		next, err := r.promoteNext(tx, image.OfferingID, id)
		if err != nil {
			return err
		}
		promotedID = next
		return nil
	})
	return promotedID, err
}

func (r *offeringImageRepository) promoteNext(tx *gorm.DB, offeringID, excludeID uuid.UUID) (*uuid.UUID, error) {
	var next db_models.OfferingImage
	err := tx.Where("offering_id = ? AND is_approved = ? AND id <> ?", offeringID, true, excludeID).
		Order("created_at DESC").
		First(&next).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if err := tx.Model(&db_models.OfferingImage{}).
		Where("id = ?", next.ID).
		Update("is_primary", true).Error; err != nil {
		return nil, err
	}
	return &next.ID, nil
}
