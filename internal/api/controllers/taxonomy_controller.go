package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bizlens/internal/services"
	"bizlens/pkg/utils"
)

type TaxonomyController struct {
	taxonomyService services.TaxonomyServiceInterface
}

func NewTaxonomyController(taxonomyService services.TaxonomyServiceInterface) *TaxonomyController {
	return &TaxonomyController{
		taxonomyService: taxonomyService,
	}
}

// pagination parses page/pageSize and writes the error response itself when
// the values are unusable.
func (t *TaxonomyController) pagination(c *gin.Context) (int, int, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return 0, 0, false
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "50"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return 0, 0, false
	}

	return page, pageSize, true
}

// ListCategories godoc
// @Summary List business categories
// @Tags Taxonomy
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 50, max: 100)"
// @Success 200 {object} utils.APIResponse
// @Router /categories [get]
func (t *TaxonomyController) ListCategories(c *gin.Context) {
	page, pageSize, ok := t.pagination(c)
	if !ok {
		return
	}

	categories, err := t.taxonomyService.ListCategories(page, pageSize, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, categories, "Categories fetched successfully")
}

// ListCities godoc
// @Summary List cities that have businesses
// @Tags Taxonomy
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 50, max: 100)"
// @Success 200 {object} utils.APIResponse
// @Router /cities [get]
func (t *TaxonomyController) ListCities(c *gin.Context) {
	page, pageSize, ok := t.pagination(c)
	if !ok {
		return
	}

	cities, err := t.taxonomyService.ListCities(page, pageSize, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, cities, "Cities fetched successfully")
}

// ListTags godoc
// @Summary List tags in use
// @Tags Taxonomy
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 50, max: 100)"
// @Success 200 {object} utils.APIResponse
// @Router /tags [get]
func (t *TaxonomyController) ListTags(c *gin.Context) {
	page, pageSize, ok := t.pagination(c)
	if !ok {
		return
	}

	tags, err := t.taxonomyService.ListTags(page, pageSize, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, tags, "Tags fetched successfully")
}
