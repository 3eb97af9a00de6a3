package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bizlens/internal/models/request_models"
	"bizlens/internal/services"
	"bizlens/pkg/utils"
)

type OfferingController struct {
	offeringService   services.OfferingServiceInterface
	generationService services.GenerationServiceInterface
}

func NewOfferingController(
	offeringService services.OfferingServiceInterface,
	generationService services.GenerationServiceInterface,
) *OfferingController {
	return &OfferingController{
		offeringService:   offeringService,
		generationService: generationService,
	}
}

// ListByBusiness godoc
// @Summary List offerings of a business
// @Tags Offerings
// @Produce json
// @Param businessId path string true "Business ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20) minimum(1) maximum(100)
// @Success 200 {object} utils.APIResponse
// @Router /businesses/{businessId}/offerings [get]
func (o *OfferingController) ListByBusiness(c *gin.Context) {
	businessID := c.Param("businessId")
	if businessID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Business ID is required")
		return
	}

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

	offerings, err := o.offeringService.ListByBusiness(businessID, page, pageSize, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, offerings, "Offerings fetched successfully")
}

// GetOfferingById godoc
// @Summary Get an offering by ID
// @Tags Offerings
// @Produce json
// @Param id path string true "Offering ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /offerings/{id} [get]
func (o *OfferingController) GetOfferingById(c *gin.Context) {
	offeringID := c.Param("id")
	if offeringID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Offering ID is required")
		return
	}

	offering, err := o.offeringService.GetOfferingByID(offeringID, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, offering, "Offering fetched successfully")
}

// CreateOffering godoc
// @Summary Create an offering
// @Tags Offerings
// @Accept json
// @Produce json
// @Param request body request_models.CreateOfferingRequest true "Offering payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/offerings [post]
func (o *OfferingController) CreateOffering(c *gin.Context) {
	var req request_models.CreateOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	id, err := o.offeringService.CreateOffering(req, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"id": id}, "Offering created successfully")
}

// UpdateOffering godoc
// @Summary Update an offering
// @Tags Offerings
// @Accept json
// @Produce json
// @Param request body request_models.UpdateOfferingRequest true "Offering payload"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/offerings [put]
func (o *OfferingController) UpdateOffering(c *gin.Context) {
	var req request_models.UpdateOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := o.offeringService.UpdateOffering(req, c.Request.Context()); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Offering updated successfully")
}

// AddImage godoc
// @Summary Add an image to an offering
// @Description The image URL is checked for size, type and content before it is stored
// @Tags Offerings
// @Accept json
// @Produce json
// @Param request body request_models.AddOfferingImageRequest true "Image payload"
// @Success 200 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/offerings/images [post]
func (o *OfferingController) AddImage(c *gin.Context) {
	var req request_models.AddOfferingImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	id, err := o.offeringService.AddImage(req, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"id": id}, "Image added successfully")
}

// ApproveImage godoc
// @Summary Approve an offering image
// @Tags Offerings
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/offerings/images/{id}/approve [post]
func (o *OfferingController) ApproveImage(c *gin.Context) {
	imageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid image ID")
		return
	}

	if err := o.offeringService.ApproveImage(imageID, c.Request.Context()); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Image approved successfully")
}

// SetPrimaryImage godoc
// @Summary Promote an approved image to primary
// @Tags Offerings
// @Accept json
// @Produce json
// @Param request body request_models.SetPrimaryImageRequest true "Primary image payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/offerings/images/primary [post]
func (o *OfferingController) SetPrimaryImage(c *gin.Context) {
	var req request_models.SetPrimaryImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := o.offeringService.SetPrimaryImage(req, c.Request.Context()); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Primary image updated")
}

// DeleteImage godoc
// @Summary Delete an offering image
// @Description Deleting the primary image promotes the most recent approved sibling
// @Tags Offerings
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/offerings/images/{id} [delete]
func (o *OfferingController) DeleteImage(c *gin.Context) {
	imageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid image ID")
		return
	}

	if err := o.offeringService.DeleteImage(imageID, c.Request.Context()); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Image deleted successfully")
}

// GenerateDescription godoc
// @Summary Generate a draft description for an offering
// @Description Returns a generated draft; nothing is saved
// @Tags Offerings
// @Accept json
// @Produce json
// @Param id path string true "Offering ID"
// @Param request body request_models.GenerateDescriptionRequest false "Generation hints"
// @Success 200 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/offerings/{id}/generate-description [post]
func (o *OfferingController) GenerateDescription(c *gin.Context) {
	offeringID := c.Param("id")
	if offeringID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Offering ID is required")
		return
	}

	// Body is optional; an empty request generates from stored fields only.
	var req request_models.GenerateDescriptionRequest
	_ = c.ShouldBindJSON(&req)

	draft, err := o.generationService.GenerateOfferingDescription(offeringID, req, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, draft, "Description generated successfully")
}
