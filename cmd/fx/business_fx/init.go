package business_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"bizlens/internal/repositories"
	"bizlens/internal/services"
)

var Module = fx.Provide(
	provideBusinessRepo,
	provideCategoryRepo,
	provideCityRepo,
	provideTagRepo,
	provideBusinessService)

func provideBusinessRepo(db *gorm.DB) repositories.BusinessRepository {
	return repositories.NewBusinessRepository(db)
}

func provideCategoryRepo(db *gorm.DB) repositories.CategoryRepository {
	return repositories.NewCategoryRepository(db)
}

func provideCityRepo(db *gorm.DB) repositories.CityRepository {
	return repositories.NewCityRepository(db)
}

func provideTagRepo(db *gorm.DB) repositories.TagRepository {
	return repositories.NewTagRepository(db)
}

func provideBusinessService(
	businessRepo repositories.BusinessRepository,
	tagRepo repositories.TagRepository,
	embeddingService services.EmbeddingServiceInterface,
) services.BusinessServiceInterface {
	return services.NewBusinessService(businessRepo, tagRepo, embeddingService)
}
