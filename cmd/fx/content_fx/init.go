package content_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"bizlens/internal/config"
	"bizlens/internal/repositories"
	"bizlens/internal/services"
)

var Module = fx.Provide(
	provideArticleRepo,
	provideWordPressService,
	provideNewsletterService)

func provideArticleRepo(db *gorm.DB) repositories.ArticleRepository {
	return repositories.NewArticleRepository(db)
}

func provideWordPressService(cfg config.Config, articleRepo repositories.ArticleRepository) services.WordPressServiceInterface {
	return services.NewWordPressService(cfg.WordPressBaseURL, articleRepo)
}

func provideNewsletterService(cfg config.Config) services.NewsletterServiceInterface {
	return services.NewNewsletterService(cfg.ConvertKitAPIKey, cfg.ConvertKitFormID)
}
