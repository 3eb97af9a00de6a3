package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bizlens/internal/models/request_models"
	"bizlens/internal/services"
	"bizlens/pkg/utils"
)

// AdminController groups the operational endpoints: settings, the manual
// refresh trigger and GMB discovery.
type AdminController struct {
	settingsService services.SettingsServiceInterface
	refreshService  services.RefreshServiceInterface
	gmbService      services.GMBServiceInterface
}

func NewAdminController(
	settingsService services.SettingsServiceInterface,
	refreshService services.RefreshServiceInterface,
	gmbService services.GMBServiceInterface,
) *AdminController {
	return &AdminController{
		settingsService: settingsService,
		refreshService:  refreshService,
		gmbService:      gmbService,
	}
}

// ListSettings godoc
// @Summary List application settings
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/settings [get]
func (a *AdminController) ListSettings(c *gin.Context) {
	settings, err := a.settingsService.ListSettings(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, settings, "Settings fetched successfully")
}

// GetSetting godoc
// @Summary Get one application setting
// @Tags Admin
// @Produce json
// @Param key path string true "Setting key"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/settings/{key} [get]
func (a *AdminController) GetSetting(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		utils.RespondError(c, http.StatusBadRequest, "Setting key is required")
		return
	}

	setting, err := a.settingsService.GetSetting(key, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, setting, "Setting fetched successfully")
}

// UpdateSetting godoc
// @Summary Create or update an application setting
// @Description The new value takes effect within the settings cache TTL
// @Tags Admin
// @Accept json
// @Produce json
// @Param key path string true "Setting key"
// @Param request body request_models.UpdateSettingRequest true "Setting payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/settings/{key} [put]
func (a *AdminController) UpdateSetting(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		utils.RespondError(c, http.StatusBadRequest, "Setting key is required")
		return
	}

	var req request_models.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.settingsService.UpdateSetting(key, req.Value, req.Description, c.Request.Context()); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Setting updated successfully")
}

// TriggerRefresh godoc
// @Summary Run the offerings refresh now
// @Description Re-embeds recently changed rows and re-checks recent images; fails fast if a run is in progress
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/refresh [post]
func (a *AdminController) TriggerRefresh(c *gin.Context) {
	summary, err := a.refreshService.RunRefresh(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, summary, "Refresh finished")
}

// DiscoverGMB godoc
// @Summary Import businesses from Google My Business
// @Description Scans readable GMB accounts and upserts their locations as hidden, unverified businesses
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.ImportLocationsRequest false "Import scope"
// @Success 200 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/gmb/discover [post]
func (a *AdminController) DiscoverGMB(c *gin.Context) {
	// Body is optional; empty means every readable account.
	var req request_models.ImportLocationsRequest
	_ = c.ShouldBindJSON(&req)

	summary, err := a.gmbService.DiscoverLocations(req, c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrGoogleKeyMissing) {
			utils.RespondError(c, http.StatusInternalServerError, err.Error())
			return
		}
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, summary, "Discovery finished")
}
