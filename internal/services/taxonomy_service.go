package services

import (
	"context"
	"log"

	"bizlens/internal/models/response_models"
	"bizlens/internal/repositories"
	"bizlens/pkg/utils"
)

// TaxonomyServiceInterface serves the lookup lists behind the business list
// filters: categories, cities and tags.
type TaxonomyServiceInterface interface {
	ListCategories(page int, pageSize int, ctx context.Context) ([]response_models.CategoryResponse, error)
	ListCities(page int, pageSize int, ctx context.Context) ([]response_models.CityResponse, error)
	ListTags(page int, pageSize int, ctx context.Context) ([]response_models.TagResponse, error)
}

type TaxonomyService struct {
	categoryRepository repositories.CategoryRepository
	cityRepository     repositories.CityRepository
	tagRepository      repositories.TagRepository
}

func NewTaxonomyService(
	categoryRepository repositories.CategoryRepository,
	cityRepository repositories.CityRepository,
	tagRepository repositories.TagRepository,
) TaxonomyServiceInterface {
	return &TaxonomyService{
		categoryRepository: categoryRepository,
		cityRepository:     cityRepository,
		tagRepository:      tagRepository,
	}
}

func (t *TaxonomyService) ListCategories(page int, pageSize int, ctx context.Context) ([]response_models.CategoryResponse, error) {
	categories, err := t.categoryRepository.GetAll(ctx, page, pageSize)
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, response_models.CategoryResponse{
			ID:   category.ID.String(),
			Name: category.Name,
		})
	}
	return responses, nil
}

func (t *TaxonomyService) ListCities(page int, pageSize int, ctx context.Context) ([]response_models.CityResponse, error) {
	cities, err := t.cityRepository.GetAll(ctx, page, pageSize)
	if err != nil {
		log.Printf("Error listing cities: %v", err)
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.CityResponse, 0, len(cities))
	for _, city := range cities {
		responses = append(responses, response_models.CityResponse{
			ID:     city.ID.String(),
			Name:   city.Name,
			Region: city.Region,
		})
	}
	return responses, nil
}

func (t *TaxonomyService) ListTags(page int, pageSize int, ctx context.Context) ([]response_models.TagResponse, error) {
	tags, err := t.tagRepository.GetAll(ctx, page, pageSize)
	if err != nil {
		log.Printf("Error listing tags: %v", err)
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.TagResponse, 0, len(tags))
	for _, tag := range tags {
		responses = append(responses, response_models.TagResponse{
			ID:   tag.ID.String(),
			Name: tag.Name,
		})
	}
	return responses, nil
}
