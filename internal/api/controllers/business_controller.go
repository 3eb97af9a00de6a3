package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bizlens/internal/models/request_models"
	"bizlens/internal/repositories"
	"bizlens/internal/services"
	"bizlens/pkg/utils"
)

type BusinessController struct {
	businessService services.BusinessServiceInterface
}

func NewBusinessController(businessService services.BusinessServiceInterface) *BusinessController {
	return &BusinessController{
		businessService: businessService,
	}
}

// ListBusinesses godoc
// @Summary List visible businesses
// @Description Fetch a paginated business directory, optionally filtered
// @Tags Businesses
// @Produce json
// @Param city_id query string false "Filter by city ID"
// @Param category_id query string false "Filter by category ID"
// @Param tag query string false "Filter by tag name"
// @Param verified query bool false "Only verified businesses"
// @Param q query string false "Name search"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20) minimum(1) maximum(100)
// @Success 200 {object} utils.APIResponse
// @Router /businesses [get]
func (b *BusinessController) ListBusinesses(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "20")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	var filter repositories.BusinessFilter
	if cityStr := c.Query("city_id"); cityStr != "" {
		cityID, err := uuid.Parse(cityStr)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid city ID")
			return
		}
		filter.CityID = &cityID
	}
	if categoryStr := c.Query("category_id"); categoryStr != "" {
		categoryID, err := uuid.Parse(categoryStr)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid category ID")
			return
		}
		filter.CategoryID = &categoryID
	}
	filter.Tag = c.Query("tag")
	filter.VerifiedOnly = c.Query("verified") == "true"
	filter.Query = c.Query("q")

	businesses, err := b.businessService.ListBusinesses(filter, page, pageSize, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, businesses, "Businesses fetched successfully")
}

// GetBusinessById godoc
// @Summary Get a business by ID
// @Tags Businesses
// @Produce json
// @Param businessId path string true "Business ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /businesses/{businessId} [get]
func (b *BusinessController) GetBusinessById(c *gin.Context) {
	businessID := c.Param("businessId")
	if businessID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Business ID is required")
		return
	}

	business, err := b.businessService.GetBusinessByID(businessID, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, business, "Business fetched successfully")
}

// GetBusinessBySlug godoc
// @Summary Get a business by slug
// @Tags Businesses
// @Produce json
// @Param slug path string true "Business slug"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /businesses/slug/{slug} [get]
func (b *BusinessController) GetBusinessBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		utils.RespondError(c, http.StatusBadRequest, "Business slug is required")
		return
	}

	business, err := b.businessService.GetBusinessBySlug(slug, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, business, "Business fetched successfully")
}

// GetNearbyBusinesses godoc
// @Summary List businesses near a point
// @Tags Businesses
// @Produce json
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Param radius_km query number false "Radius in kilometers" default(10)
// @Param limit query int false "Max results" default(20)
// @Success 200 {object} utils.APIResponse
// @Router /businesses/nearby [get]
func (b *BusinessController) GetNearbyBusinesses(c *gin.Context) {
	var query request_models.NearbyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "lat and lng query parameters are required")
		return
	}

	businesses, err := b.businessService.ListNearby(query, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, businesses, "Nearby businesses fetched successfully")
}

// CreateBusiness godoc
// @Summary Create a business
// @Tags Businesses
// @Accept json
// @Produce json
// @Param request body request_models.CreateBusinessRequest true "Business payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/businesses [post]
func (b *BusinessController) CreateBusiness(c *gin.Context) {
	var req request_models.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	id, err := b.businessService.CreateBusiness(req, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"id": id}, "Business created successfully")
}

// UpdateBusiness godoc
// @Summary Update a business
// @Tags Businesses
// @Accept json
// @Produce json
// @Param request body request_models.UpdateBusinessRequest true "Business payload"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/businesses [put]
func (b *BusinessController) UpdateBusiness(c *gin.Context) {
	var req request_models.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := b.businessService.UpdateBusiness(req, c.Request.Context()); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Business updated successfully")
}

// SetVerified godoc
// @Summary Mark a business verified or unverified
// @Tags Businesses
// @Accept json
// @Produce json
// @Param request body request_models.SetVerifiedRequest true "Verification payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/businesses/verify [post]
func (b *BusinessController) SetVerified(c *gin.Context) {
	var req request_models.SetVerifiedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := b.businessService.SetVerified(req, c.Request.Context()); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Business verification updated")
}

// SetVisible godoc
// @Summary Show or hide a business
// @Tags Businesses
// @Accept json
// @Produce json
// @Param request body request_models.SetVisibleRequest true "Visibility payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/businesses/visibility [post]
func (b *BusinessController) SetVisible(c *gin.Context) {
	var req request_models.SetVisibleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := b.businessService.SetVisible(req, c.Request.Context()); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Business visibility updated")
}
