package admin_fx

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
	provideSettingsRepo,
	provideSettingsService,
	provideRateLimitRepo,
	provideRateLimitService,
	provideGMBClient,
	provideGMBService)

func provideSettingsRepo(db *gorm.DB) repositories.SettingsRepository {
	return repositories.NewSettingsRepository(db)
}

func provideSettingsService(settingsRepo repositories.SettingsRepository) services.SettingsServiceInterface {
	return services.NewSettingsService(settingsRepo)
}

func provideRateLimitRepo(db *gorm.DB) repositories.RateLimitRepository {
	return repositories.NewRateLimitRepository(db)
}

func provideRateLimitService(rateLimitRepo repositories.RateLimitRepository) services.RateLimitServiceInterface {
	return services.NewRateLimitService(rateLimitRepo, services.DefaultRateLimitRules())
}

// provideGMBClient returns nil when no Google API key is configured; the
// discover endpoint then reports remediation steps instead of calling out.
func provideGMBClient(cfg config.Config) utils.GMBClientInterface {
	if cfg.GoogleAPIKey == "" {
		return nil
	}

	client, err := utils.NewGMBClient(context.Background(), cfg.GoogleAPIKey)
	if err != nil {
		log.Printf("Failed to initialize Google My Business client: %v", err)
		return nil
	}
	return client
}

func provideGMBService(
	client utils.GMBClientInterface,
	businessRepo repositories.BusinessRepository,
	categoryRepo repositories.CategoryRepository,
	cityRepo repositories.CityRepository,
) services.GMBServiceInterface {
	return services.NewGMBService(client, businessRepo, categoryRepo, cityRepo)
}
