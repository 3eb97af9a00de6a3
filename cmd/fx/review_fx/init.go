package review_fx

import (
	"context"
	"log"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"bizlens/internal/config"
	"bizlens/internal/repositories"
	"bizlens/internal/services"
	"bizlens/pkg/utils"
)

var Module = fx.Provide(
	provideReviewRepo,
	provideReviewRanker,
	provideSafeSearchClient,
	provideModerationService,
	provideReviewService)

func provideReviewRepo(db *gorm.DB) repositories.ReviewRepository {
	return repositories.NewReviewRepository(db)
}

func provideReviewRanker() *services.ReviewRanker {
	return services.NewReviewRanker()
}

// provideSafeSearchClient returns nil when no Google API key is configured;
// the moderation pipeline then falls back to the URL heuristics.
func provideSafeSearchClient(cfg config.Config) utils.SafeSearchClientInterface {
	if cfg.GoogleAPIKey == "" {
		return nil
	}

	client, err := utils.NewVisionSafeSearchClient(context.Background(), cfg.GoogleAPIKey)
	if err != nil {
		log.Printf("Failed to initialize Vision SafeSearch client: %v", err)
		return nil
	}
	return client
}

func provideModerationService(
	settingsService services.SettingsServiceInterface,
	safeSearch utils.SafeSearchClientInterface,
) services.ModerationServiceInterface {
	return services.NewModerationService(settingsService, safeSearch)
}

func provideReviewService(
	reviewRepo repositories.ReviewRepository,
	accountRepo repositories.AccountRepository,
	businessRepo repositories.BusinessRepository,
	ranker *services.ReviewRanker,
	mailService services.MailServiceInterface,
) services.ReviewServiceInterface {
	return services.NewReviewService(reviewRepo, accountRepo, businessRepo, ranker, mailService)
}
