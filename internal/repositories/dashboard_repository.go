package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	dbm "bizlens/internal/models/db_models"
)

type DashboardRepository interface {
	// KPIs / counts
	CountTotalBusinesses(ctx context.Context) (int64, error)
	CountVerifiedBusinesses(ctx context.Context) (int64, error)
	CountTotalOfferings(ctx context.Context) (int64, error)
	CountTotalAccounts(ctx context.Context) (int64, error)
	CountNewAccounts(ctx context.Context, start, end time.Time) (int64, error)
	CountReviewsByStatus(ctx context.Context, status dbm.ReviewStatus) (int64, error)
	CountTotalFavorites(ctx context.Context) (int64, error)

	// Time series
	NewReviewsSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error)
	NewAccountsSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error)

	// Leaderboards
	TopBusinessesByReviews(ctx context.Context, start, end time.Time, limit int) ([]BusinessReviewRow, error)

	// Recent moderation activity
	RecentModerations(ctx context.Context, limit int) ([]ModerationRow, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// ---------- Row helpers ----------
type BucketSum struct {
	Bucket time.Time `gorm:"column:bucket"`
	Sum    int64     `gorm:"column:sum"`
}

type BusinessReviewRow struct {
	BusinessID string  `gorm:"column:business_id"`
	Name       string  `gorm:"column:name"`
	Count      int64   `gorm:"column:count"`
	RatingAvg  float64 `gorm:"column:rating_avg"`
}

type ModerationRow struct {
	ID             string `gorm:"column:id"`
	Status         string `gorm:"column:status"`
	Rating         int    `gorm:"column:rating"`
	ModeratedAt    *int64 `gorm:"column:moderated_at"`
	BusinessName   string `gorm:"column:business_name"`
	ModeratorEmail string `gorm:"column:moderator_email"`
}

// ---------- Helpers ----------
func dateTrunc(interval, tz string, unixColumn string) string {
	// unixColumn holds UNIX seconds; convert to timestamptz before truncating
	// so buckets land on calendar boundaries in the requested timezone.
	if tz == "" {
		return "date_trunc(?, to_timestamp(" + unixColumn + "))"
	}
	return "date_trunc(?, timezone(?, to_timestamp(" + unixColumn + ")))"
}

// ---------- Counts ----------
func (r *dashboardRepository) CountTotalBusinesses(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Business{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountVerifiedBusinesses(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Business{}).
		Where("is_verified = ?", true).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountTotalOfferings(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Offering{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountTotalAccounts(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Account{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountNewAccounts(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Account{}).
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountReviewsByStatus(ctx context.Context, status dbm.ReviewStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.UserReview{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountTotalFavorites(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Favorite{}).Count(&n).Error
	return n, err
}

// ---------- Series ----------
func (r *dashboardRepository) NewReviewsSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error) {
	var rows []BucketSum
	truncExpr := dateTrunc(interval, tz, "created_at")
	tx := r.db.WithContext(ctx).
		Table("user_reviews").
		Select(truncExpr+" AS bucket, COUNT(*) AS sum", interval, tz).
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Group("bucket").
		Order("bucket ASC")
	err := tx.Find(&rows).Error
	return rows, err
}

func (r *dashboardRepository) NewAccountsSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error) {
	var rows []BucketSum
	truncExpr := dateTrunc(interval, tz, "created_at")
	tx := r.db.WithContext(ctx).
		Table("accounts").
		Select(truncExpr+" AS bucket, COUNT(*) AS sum", interval, tz).
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Group("bucket").
		Order("bucket ASC")
	err := tx.Find(&rows).Error
	return rows, err
}

// ---------- Leaderboards ----------
func (r *dashboardRepository) TopBusinessesByReviews(ctx context.Context, start, end time.Time, limit int) ([]BusinessReviewRow, error) {
	var rows []BusinessReviewRow
	err := r.db.WithContext(ctx).
		Table("user_reviews ur").
		Select("ur.business_id, b.name, b.rating_avg, COUNT(*) AS count").
		Joins("JOIN businesses b ON b.id = ur.business_id").
		Where("ur.status = ?", dbm.ReviewStatusApproved).
		Where("ur.created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Group("ur.business_id, b.name, b.rating_avg").
		Order("count DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// ---------- Recent moderation ----------
func (r *dashboardRepository) RecentModerations(ctx context.Context, limit int) ([]ModerationRow, error) {
	var rows []ModerationRow
	err := r.db.WithContext(ctx).
		Table("user_reviews ur").
		Select(`
			ur.id,
			ur.status,
			ur.rating,
			ur.moderated_at,
			b.name AS business_name,
			a.email AS moderator_email`).
		Joins("JOIN businesses b ON b.id = ur.business_id").
		Joins("LEFT JOIN accounts a ON a.id = ur.moderated_by").
		Where("ur.moderated_at IS NOT NULL").
		Order("ur.moderated_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
