package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"bizlens/internal/models/response_models"
	"bizlens/internal/repositories"
	"bizlens/pkg/utils"
)

type FavoriteServiceInterface interface {
	AddFavorite(accountID, businessID uuid.UUID, ctx context.Context) error
	RemoveFavorite(accountID, businessID uuid.UUID, ctx context.Context) error
	ListFavorites(accountID uuid.UUID, ctx context.Context) ([]response_models.BusinessSummary, error)
}

type FavoriteService struct {
	favoriteRepository repositories.FavoriteRepository
	businessRepository repositories.BusinessRepository
}

func NewFavoriteService(
	favoriteRepository repositories.FavoriteRepository,
	businessRepository repositories.BusinessRepository,
) FavoriteServiceInterface {
	return &FavoriteService{
		favoriteRepository: favoriteRepository,
		businessRepository: businessRepository,
	}
}

func (f *FavoriteService) AddFavorite(accountID, businessID uuid.UUID, ctx context.Context) error {
	business, err := f.businessRepository.GetByID(ctx, businessID.String())
	if err != nil {
		log.Printf("Error fetching business %s: %v", businessID, err)
		return utils.ErrDatabaseError
	}
	if business == nil || !business.IsVisible {
		return utils.ErrBusinessNotFound
	}

	if err := f.favoriteRepository.Add(ctx, accountID, businessID); err != nil {
		log.Printf("Error adding favorite: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (f *FavoriteService) RemoveFavorite(accountID, businessID uuid.UUID, ctx context.Context) error {
	if err := f.favoriteRepository.Remove(ctx, accountID, businessID); err != nil {
		log.Printf("Error removing favorite: %v", err)
		return translateNotFound(err, utils.ErrBusinessNotFound)
	}
	return nil
}

func (f *FavoriteService) ListFavorites(accountID uuid.UUID, ctx context.Context) ([]response_models.BusinessSummary, error) {
	favorites, err := f.favoriteRepository.ListByAccount(ctx, accountID)
	if err != nil {
		log.Printf("Error listing favorites for %s: %v", accountID, err)
		return nil, utils.ErrDatabaseError
	}

	summaries := make([]response_models.BusinessSummary, 0, len(favorites))
	for _, favorite := range favorites {
		summaries = append(summaries, toBusinessSummary(favorite.Business))
	}
	return summaries, nil
}
