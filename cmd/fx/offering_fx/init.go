package offering_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"bizlens/internal/repositories"
	"bizlens/internal/services"
)

var Module = fx.Provide(
	provideOfferingRepo,
	provideOfferingImageRepo,
	provideOfferingService)

func provideOfferingRepo(db *gorm.DB) repositories.OfferingRepository {
	return repositories.NewOfferingRepository(db)
}

func provideOfferingImageRepo(db *gorm.DB) repositories.OfferingImageRepository {
	return repositories.NewOfferingImageRepository(db)
}

func provideOfferingService(
	offeringRepo repositories.OfferingRepository,
	imageRepo repositories.OfferingImageRepository,
	businessRepo repositories.BusinessRepository,
	moderationService services.ModerationServiceInterface,
	embeddingService services.EmbeddingServiceInterface,
) services.OfferingServiceInterface {
	return services.NewOfferingService(offeringRepo, imageRepo, businessRepo, moderationService, embeddingService)
}
