package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bizlens/internal/models/db_models"
)

type ArticleRepository interface {
	UpsertByWPID(ctx context.Context, article *db_models.Article) (created bool, err error)
	ListRecent(ctx context.Context, limit int) ([]db_models.Article, error)
	Count(ctx context.Context) (int64, error)
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// UpsertByWPID keys on the WordPress post id so re-syncing the same feed
// updates rows in place.
func (r *articleRepository) UpsertByWPID(ctx context.Context, article *db_models.Article) (bool, error) {
	var existing db_models.Article
	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("wp_id = ?", article.WPID).First(&existing).Error
		if err == nil {
			article.ID = existing.ID
			article.CreatedAt = existing.CreatedAt
			return tx.Model(&existing).
				Updates(map[string]interface{}{
					"title":        article.Title,
					"excerpt":      article.Excerpt,
					"url":          article.URL,
					"published_at": article.PublishedAt,
				}).Error
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		created = true
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "wp_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "excerpt", "url", "published_at", "updated_at"}),
		}).Create(article).Error
	})
	return created, err
}

func (r *articleRepository) ListRecent(ctx context.Context, limit int) ([]db_models.Article, error) {
	var articles []db_models.Article
	err := r.db.WithContext(ctx).
		Order("published_at DESC").
		Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.Article{}).Count(&count).Error
	return count, err
}
