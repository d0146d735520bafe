package handler

import (
	"github.com/barberoil/fuelpos/internal/application/service"
	"github.com/barberoil/fuelpos/internal/domain/entity"
	"github.com/barberoil/fuelpos/internal/presentation/http/dto/request"
	"github.com/barberoil/fuelpos/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// SettingsHandler handles settings requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetBusiness returns the business profile printed on tickets
func (h *SettingsHandler) GetBusiness(c *gin.Context) {
	profile, err := h.settingsService.GetBusinessProfile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Business profile retrieved successfully", profile)
}

// UpdateBusiness replaces the business profile
func (h *SettingsHandler) UpdateBusiness(c *gin.Context) {
	var req request.BusinessProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	profile, err := h.settingsService.UpdateBusinessProfile(c.Request.Context(), &entity.BusinessProfile{
		Name:     req.Name,
		Location: req.Location,
		Phone:    req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Business profile updated successfully", profile)
}

// List returns every stored setting
func (h *SettingsHandler) List(c *gin.Context) {
	settings, err := h.settingsService.ListSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// Get returns the setting stored under a key
func (h *SettingsHandler) Get(c *gin.Context) {
	setting, err := h.settingsService.GetSetting(c.Request.Context(), c.Param("key"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Setting retrieved successfully", setting)
}

// Put stores a value under a key
func (h *SettingsHandler) Put(c *gin.Context) {
	var req request.SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	setting, err := h.settingsService.PutSetting(c.Request.Context(), c.Param("key"), req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Setting saved successfully", setting)
}
