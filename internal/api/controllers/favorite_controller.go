package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bizlens/internal/services"
	"bizlens/pkg/utils"
)

type FavoriteController struct {
	favoriteService services.FavoriteServiceInterface
}

func NewFavoriteController(favoriteService services.FavoriteServiceInterface) *FavoriteController {
	return &FavoriteController{
		favoriteService: favoriteService,
	}
}

func (f *FavoriteController) identifiers(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	accountID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid account ID in token")
		return uuid.Nil, uuid.Nil, false
	}

	businessID, err := uuid.Parse(c.Param("businessId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid business ID")
		return uuid.Nil, uuid.Nil, false
	}

	return accountID, businessID, true
}

// AddFavorite godoc
// @Summary Favorite a business
// @Tags Favorites
// @Produce json
// @Param businessId path string true "Business ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /favorites/{businessId} [post]
func (f *FavoriteController) AddFavorite(c *gin.Context) {
	accountID, businessID, ok := f.identifiers(c)
	if !ok {
		return
	}

	if err := f.favoriteService.AddFavorite(accountID, businessID, c.Request.Context()); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Business added to favorites")
}

// RemoveFavorite godoc
// @Summary Remove a business from favorites
// @Tags Favorites
// @Produce json
// @Param businessId path string true "Business ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /favorites/{businessId} [delete]
func (f *FavoriteController) RemoveFavorite(c *gin.Context) {
	accountID, businessID, ok := f.identifiers(c)
	if !ok {
		return
	}

	if err := f.favoriteService.RemoveFavorite(accountID, businessID, c.Request.Context()); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Business removed from favorites")
}

// ListFavorites godoc
// @Summary List the authenticated account's favorite businesses
// @Tags Favorites
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /favorites [get]
func (f *FavoriteController) ListFavorites(c *gin.Context) {
	accountID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid account ID in token")
		return
	}

	favorites, err := f.favoriteService.ListFavorites(accountID, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, favorites, "Favorites fetched successfully")
}
