package repositories

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bizlens/internal/models/db_models"
)

// BusinessMatch is a business embedding row scored against a query vector.
type BusinessMatch struct {
	db_models.BusinessEmbedding
	Similarity float64
}

type OfferingMatch struct {
	db_models.OfferingEmbedding
	Similarity float64
}

type EmbeddingRepository interface {
	UpsertBusinessEmbedding(ctx context.Context, embedding db_models.BusinessEmbedding) error
	UpsertOfferingEmbedding(ctx context.Context, embedding db_models.OfferingEmbedding) error
	DeleteOfferingEmbedding(ctx context.Context, offeringID string) error

	SearchBusinesses(ctx context.Context, vector pgvector.Vector, threshold float64, limit int) ([]BusinessMatch, error)
	SearchOfferings(ctx context.Context, vector pgvector.Vector, threshold float64, limit int) ([]OfferingMatch, error)

	CountBusinessEmbeddings(ctx context.Context) (int64, error)
	CountOfferingEmbeddings(ctx context.Context) (int64, error)
}

type embeddingRepository struct {
	db *gorm.DB
}

func NewEmbeddingRepository(db *gorm.DB) EmbeddingRepository {
	return &embeddingRepository{db: db}
}

func (r *embeddingRepository) UpsertBusinessEmbedding(ctx context.Context, embedding db_models.BusinessEmbedding) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "business_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"content", "model", "embedding", "updated_at"}),
		}).
		Create(&embedding).Error
}

func (r *embeddingRepository) UpsertOfferingEmbedding(ctx context.Context, embedding db_models.OfferingEmbedding) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "offering_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"content", "model", "embedding", "updated_at"}),
		}).
		Create(&embedding).Error
}

func (r *embeddingRepository) DeleteOfferingEmbedding(ctx context.Context, offeringID string) error {
	return r.db.WithContext(ctx).
		Delete(&db_models.OfferingEmbedding{}, "offering_id = ?", offeringID).Error
}

func (r *embeddingRepository) SearchBusinesses(ctx context.Context, vector pgvector.Vector, threshold float64, limit int) ([]BusinessMatch, error) {
	var results []BusinessMatch

	query := `
        SELECT *, (1 - (embedding <=> $1)) AS similarity
        FROM business_embeddings
        WHERE (1 - (embedding <=> $1)) > $2
        ORDER BY embedding <=> $1
        LIMIT $3
    `

	err := r.db.WithContext(ctx).Raw(query, vector.String(), threshold, limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *embeddingRepository) SearchOfferings(ctx context.Context, vector pgvector.Vector, threshold float64, limit int) ([]OfferingMatch, error) {
	var results []OfferingMatch

	query := `
        SELECT *, (1 - (embedding <=> $1)) AS similarity
        FROM offering_embeddings
        WHERE (1 - (embedding <=> $1)) > $2
        ORDER BY embedding <=> $1
        LIMIT $3
    `

	err := r.db.WithContext(ctx).Raw(query, vector.String(), threshold, limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *embeddingRepository) CountBusinessEmbeddings(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.BusinessEmbedding{}).Count(&count).Error
	return count, err
}

func (r *embeddingRepository) CountOfferingEmbeddings(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.OfferingEmbedding{}).Count(&count).Error
	return count, err
}
