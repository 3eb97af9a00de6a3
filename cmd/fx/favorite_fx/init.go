package favorite_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"bizlens/internal/repositories"
	"bizlens/internal/services"
)

var Module = fx.Provide(
	provideFavoriteRepo,
	provideFavoriteService)

func provideFavoriteRepo(db *gorm.DB) repositories.FavoriteRepository {
	return repositories.NewFavoriteRepository(db)
}

func provideFavoriteService(
	favoriteRepo repositories.FavoriteRepository,
	businessRepo repositories.BusinessRepository,
) services.FavoriteServiceInterface {
	return services.NewFavoriteService(favoriteRepo, businessRepo)
}
