package search_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"bizlens/internal/config"
	"bizlens/internal/repositories"
	"bizlens/internal/services"
	"bizlens/pkg/utils"
)

var Module = fx.Provide(
	provideOpenAIClient,
	provideEmbeddingClient,
	provideEmbeddingRepo,
	provideEmbeddingService,
	provideSearchService)

func provideOpenAIClient(cfg config.Config) *utils.OpenAIClient {
	return utils.NewOpenAIClient(cfg.OpenAIKey)
}

func provideEmbeddingClient(client *utils.OpenAIClient) utils.EmbeddingClientInterface {
	return client
}

func provideEmbeddingRepo(db *gorm.DB) repositories.EmbeddingRepository {
	return repositories.NewEmbeddingRepository(db)
}

func provideEmbeddingService(
	embedder utils.EmbeddingClientInterface,
	embeddingRepo repositories.EmbeddingRepository,
) services.EmbeddingServiceInterface {
	return services.NewEmbeddingService(embedder, embeddingRepo)
}

func provideSearchService(
	embedder utils.EmbeddingClientInterface,
	embeddingRepo repositories.EmbeddingRepository,
	businessRepo repositories.BusinessRepository,
	offeringRepo repositories.OfferingRepository,
) services.SearchServiceInterface {
	return services.NewSearchService(embedder, embeddingRepo, businessRepo, offeringRepo)
}
