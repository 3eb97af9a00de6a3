package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bizlens/internal/models/request_models"
	"bizlens/internal/services"
	"bizlens/pkg/utils"
)

type SearchController struct {
	searchService services.SearchServiceInterface
}

func NewSearchController(searchService services.SearchServiceInterface) *SearchController {
	return &SearchController{
		searchService: searchService,
	}
}

// SemanticSearch godoc
// @Summary Search businesses and offerings by meaning
// @Description Embeds the query and runs a cosine-distance search over stored embeddings
// @Tags Search
// @Accept json
// @Produce json
// @Param request body request_models.SemanticSearchRequest true "Search payload"
// @Success 200 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /search/semantic [post]
func (s *SearchController) SemanticSearch(c *gin.Context) {
	var req request_models.SemanticSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	results, err := s.searchService.SemanticSearch(req, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, results, "Search completed successfully")
}
