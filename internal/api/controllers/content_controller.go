package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bizlens/internal/models/request_models"
	"bizlens/internal/services"
	"bizlens/pkg/utils"
)

type ContentController struct {
	wordpressService  services.WordPressServiceInterface
	newsletterService services.NewsletterServiceInterface
}

func NewContentController(
	wordpressService services.WordPressServiceInterface,
	newsletterService services.NewsletterServiceInterface,
) *ContentController {
	return &ContentController{
		wordpressService:  wordpressService,
		newsletterService: newsletterService,
	}
}

// ListArticles godoc
// @Summary List recent articles
// @Description Articles are synced from the WordPress blog, newest first
// @Tags Content
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /content/articles [get]
func (ct *ContentController) ListArticles(c *gin.Context) {
	articles, err := ct.wordpressService.ListArticles(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, articles, "Articles fetched successfully")
}

// SyncContent godoc
// @Summary Sync articles from WordPress
// @Tags Content
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/content/sync [post]
func (ct *ContentController) SyncContent(c *gin.Context) {
	summary, err := ct.wordpressService.SyncPosts(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrWordPressNotConfigured) {
			utils.RespondError(c, http.StatusInternalServerError, err.Error())
			return
		}
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, summary, "Content sync finished")
}

// Subscribe godoc
// @Summary Subscribe an email to the newsletter
// @Tags Content
// @Accept json
// @Produce json
// @Param request body request_models.SubscribeRequest true "Subscription payload"
// @Success 200 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /newsletter/subscribe [post]
func (ct *ContentController) Subscribe(c *gin.Context) {
	var req request_models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := ct.newsletterService.Subscribe(req, c.Request.Context()); err != nil {
		if errors.Is(err, services.ErrNewsletterNotConfigured) {
			utils.RespondError(c, http.StatusInternalServerError, err.Error())
			return
		}
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Subscribed successfully")
}
