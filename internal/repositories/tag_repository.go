package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bizlens/internal/models/db_models"
)

type TagRepository interface {
	GetByID(ctx context.Context, id string) (*db_models.Tag, error)
	GetAll(ctx context.Context, page int, pageSize int) ([]db_models.Tag, error)
	FindOrCreateByNames(ctx context.Context, names []string) ([]db_models.Tag, error)
	ReplaceForBusiness(ctx context.Context, businessID string, tags []db_models.Tag) error
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) GetByID(ctx context.Context, id string) (*db_models.Tag, error) {
	var tag db_models.Tag
	err := r.db.WithContext(ctx).First(&tag, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetAll(ctx context.Context, page int, pageSize int) ([]db_models.Tag, error) {
	var tags []db_models.Tag
	err := r.db.WithContext(ctx).Scopes(func(db *gorm.DB) *gorm.DB {
		offset := (page - 1) * pageSize
		return db.Offset(offset).Limit(pageSize)
	}).Order("name ASC").Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) FindOrCreateByNames(ctx context.Context, names []string) ([]db_models.Tag, error) {
	tags := make([]db_models.Tag, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		var tag db_models.Tag
		err := r.db.WithContext(ctx).
			Where("name = ?", name).
			FirstOrCreate(&tag, db_models.Tag{Name: name}).Error
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (r *tagRepository) ReplaceForBusiness(ctx context.Context, businessID string, tags []db_models.Tag) error {
	var business db_models.Business
	if err := r.db.WithContext(ctx).First(&business, "id = ?", businessID).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&business).Association("Tags").Replace(tags)
}
