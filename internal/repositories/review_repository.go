package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bizlens/internal/models/db_models"
)

// ErrAlreadyModerated is returned when a moderation decision targets a review
// that is no longer pending.
var ErrAlreadyModerated = errors.New("review already moderated")

type ModerateParams struct {
	ReviewID    uuid.UUID
	Approve     bool
	ModeratorID uuid.UUID
	Note        string
	CreditAward int
	// NewLevel > 0 updates the reviewer level in the same transaction.
	NewLevel int
}

type ReviewRepository interface {
	Create(ctx context.Context, review *db_models.UserReview) (uuid.UUID, error)
	Update(ctx context.Context, review *db_models.UserReview) error
	GetByID(ctx context.Context, id string) (*db_models.UserReview, error)
	FindByAccountAndBusiness(ctx context.Context, accountID, businessID uuid.UUID) (*db_models.UserReview, error)
	ListApprovedByBusiness(ctx context.Context, businessID string) ([]db_models.UserReview, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.UserReview, error)
	ListPending(ctx context.Context, page int, pageSize int) ([]db_models.UserReview, int64, error)
	Moderate(ctx context.Context, params ModerateParams) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *db_models.UserReview) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return uuid.Nil, err
	}
	return review.ID, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *db_models.UserReview) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Save(review)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (*db_models.UserReview, error) {
	var review db_models.UserReview
	err := r.db.WithContext(ctx).
		Preload("Account").
		Preload("Business").
		First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByAccountAndBusiness(ctx context.Context, accountID, businessID uuid.UUID) (*db_models.UserReview, error) {
	var review db_models.UserReview
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND business_id = ?", accountID, businessID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListApprovedByBusiness(ctx context.Context, businessID string) ([]db_models.UserReview, error) {
	var reviews []db_models.UserReview
	err := r.db.WithContext(ctx).
		Preload("Account").
		Where("business_id = ? AND status = ?", businessID, db_models.ReviewStatusApproved).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.UserReview, error) {
	var reviews []db_models.UserReview
	err := r.db.WithContext(ctx).
		Preload("Business").
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) ListPending(ctx context.Context, page int, pageSize int) ([]db_models.UserReview, int64, error) {
	var reviews []db_models.UserReview
	var total int64

	query := r.db.WithContext(ctx).
		Model(&db_models.UserReview{}).
		Where("status = ?", db_models.ReviewStatusPending)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Account").
		Preload("Business").
		Order("created_at ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// Moderate applies an approve/reject decision. The status flip, the business
// rating aggregates, the credit award and its ledger row all commit in one
// transaction or not at all.
func (r *reviewRepository) Moderate(ctx context.Context, params ModerateParams) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review db_models.UserReview
		if err := tx.First(&review, "id = ?", params.ReviewID).Error; err != nil {
			return err
		}
		if review.Status != db_models.ReviewStatusPending {
			return ErrAlreadyModerated
		}

		status := db_models.ReviewStatusRejected
		if params.Approve {
			status = db_models.ReviewStatusApproved
		}

		now := time.Now().Unix()
		moderatorID := params.ModeratorID
		updates := map[string]interface{}{
			"status":          status,
			"moderated_at":    now,
			"moderated_by":    moderatorID,
			"moderation_note": params.Note,
		}
		if err := tx.Model(&db_models.UserReview{}).
			Where("id = ?", params.ReviewID).
			Updates(updates).Error; err != nil {
			return err
		}

		if !params.Approve {
			return nil
		}

		err := tx.Model(&db_models.Business{}).
			Where("id = ?", review.BusinessID).
			Updates(map[string]interface{}{
				"rating_avg":   gorm.Expr("(rating_avg * rating_count + ?) / (rating_count + 1)", review.Rating),
				"rating_count": gorm.Expr("rating_count + 1"),
			}).Error
		if err != nil {
			return err
		}

		if params.CreditAward <= 0 {
			return nil
		}

		accountUpdates := map[string]interface{}{
			"credits": gorm.Expr("credits + ?", params.CreditAward),
		}
		if params.NewLevel > 0 {
			accountUpdates["level"] = params.NewLevel
		}
		if err := tx.Model(&db_models.Account{}).
			Where("id = ?", review.AccountID).
			Updates(accountUpdates).Error; err != nil {
			return err
		}

		reviewID := review.ID
		ledger := db_models.CreditTransaction{
			AccountID: review.AccountID,
			Delta:     params.CreditAward,
			Reason:    "review_approved",
			ReviewID:  &reviewID,
		}
		return tx.Create(&ledger).Error
	})
}

func (r *reviewRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&db_models.UserReview{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
