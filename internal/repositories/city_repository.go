package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bizlens/internal/models/db_models"
)

type CityRepository interface {
	Create(ctx context.Context, city *db_models.City) error
	GetByID(ctx context.Context, id string) (*db_models.City, error)
	GetAll(ctx context.Context, page int, pageSize int) ([]db_models.City, error)
	FindOrCreate(ctx context.Context, name string, region string) (*db_models.City, error)
}

type cityRepository struct {
	db *gorm.DB
}

func NewCityRepository(db *gorm.DB) CityRepository {
	return &cityRepository{db: db}
}

func (r *cityRepository) Create(ctx context.Context, city *db_models.City) error {
	return r.db.WithContext(ctx).Create(city).Error
}

func (r *cityRepository) GetByID(ctx context.Context, id string) (*db_models.City, error) {
	var city db_models.City
	err := r.db.WithContext(ctx).First(&city, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &city, nil
}

func (r *cityRepository) GetAll(ctx context.Context, page int, pageSize int) ([]db_models.City, error) {
	var cities []db_models.City
	err := r.db.WithContext(ctx).Scopes(func(db *gorm.DB) *gorm.DB {
		offset := (page - 1) * pageSize
		return db.Offset(offset).Limit(pageSize)
	}).Order("name ASC").Find(&cities).Error
	if err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *cityRepository) FindOrCreate(ctx context.Context, name string, region string) (*db_models.City, error) {
	var city db_models.City
	err := r.db.WithContext(ctx).
		Where("name = ? AND region = ?", name, region).
		FirstOrCreate(&city, db_models.City{Name: name, Region: region}).Error
	if err != nil {
		return nil, err
	}
	return &city, nil
}
