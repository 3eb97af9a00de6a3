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

type ReviewController struct {
	reviewService services.ReviewServiceInterface
}

func NewReviewController(reviewService services.ReviewServiceInterface) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

// SubmitReview godoc
// @Summary Submit a review
// @Description Creates a pending review; resubmitting while pending replaces it
// @Tags Reviews
// @Accept json
// @Produce json
// @Param request body request_models.SubmitReviewRequest true "Review payload"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /reviews [post]
func (r *ReviewController) SubmitReview(c *gin.Context) {
	var req request_models.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	accountID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid account ID in token")
		return
	}

	id, err := r.reviewService.SubmitReview(req, accountID, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"id": id, "status": "pending"}, "Review submitted for moderation")
}

// ListBusinessReviews godoc
// @Summary List approved reviews of a business
// @Description Reviews are ordered by the site's priority ranking
// @Tags Reviews
// @Produce json
// @Param businessId path string true "Business ID"
// @Success 200 {object} utils.APIResponse
// @Router /businesses/{businessId}/reviews [get]
func (r *ReviewController) ListBusinessReviews(c *gin.Context) {
	businessID := c.Param("businessId")
	if businessID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Business ID is required")
		return
	}

	reviews, err := r.reviewService.ListApprovedByBusiness(businessID, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, reviews, "Reviews fetched successfully")
}

// RegisterView godoc
// @Summary Count a view on a review
// @Tags Reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} utils.APIResponse
// @Router /reviews/{id}/view [post]
func (r *ReviewController) RegisterView(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid review ID")
		return
	}

	if err := r.reviewService.RegisterView(reviewID, c.Request.Context()); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "View counted")
}

// ModerationQueue godoc
// @Summary List pending reviews
// @Tags Reviews
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20) minimum(1) maximum(100)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/reviews/pending [get]
func (r *ReviewController) ModerationQueue(c *gin.Context) {
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

	queue, err := r.reviewService.ModerationQueue(page, pageSize, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, queue, "Moderation queue fetched successfully")
}

// ModerateReview godoc
// @Summary Approve or reject a pending review
// @Description Approving updates rating aggregates and awards reviewer credits
// @Tags Reviews
// @Accept json
// @Produce json
// @Param request body request_models.ModerateReviewRequest true "Moderation payload"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/reviews/moderate [post]
func (r *ReviewController) ModerateReview(c *gin.Context) {
	var req request_models.ModerateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	moderatorID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid account ID in token")
		return
	}

	result, err := r.reviewService.ModerateReview(req, moderatorID, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Review moderated successfully")
}
