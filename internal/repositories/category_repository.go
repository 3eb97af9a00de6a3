package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bizlens/internal/models/db_models"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *db_models.Category) error
	GetByID(ctx context.Context, id string) (*db_models.Category, error)
	GetAll(ctx context.Context, page int, pageSize int) ([]db_models.Category, error)
	FindOrCreateByName(ctx context.Context, name string) (*db_models.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *db_models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*db_models.Category, error) {
	var category db_models.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetAll(ctx context.Context, page int, pageSize int) ([]db_models.Category, error) {
	var categories []db_models.Category
	err := r.db.WithContext(ctx).Scopes(func(db *gorm.DB) *gorm.DB {
		offset := (page - 1) * pageSize
		return db.Offset(offset).Limit(pageSize)
	}).Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindOrCreateByName(ctx context.Context, name string) (*db_models.Category, error) {
	var category db_models.Category
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		FirstOrCreate(&category, db_models.Category{Name: name}).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}
