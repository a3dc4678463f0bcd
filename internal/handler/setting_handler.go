package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/placement-backend/internal/middleware"
	"github.com/stemsi/placement-backend/internal/model"
	"github.com/stemsi/placement-backend/internal/response"
	"github.com/stemsi/placement-backend/internal/service"
	"github.com/stemsi/placement-backend/internal/validator"
)

type SettingHandler struct {
	settingService *service.SettingService
}

func NewSettingHandler(settingService *service.SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingService}
}

// GetSettings godoc
// GET /api/v1/admin/settings
func (h *SettingHandler) GetSettings(c *gin.Context) {
	claims := middleware.GetClaims(c)
	settings, err := h.settingService.Get(c.Request.Context(), claims.InstituteID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, settings.View())
}

// UpdateSettings godoc
// PUT /api/v1/admin/settings
func (h *SettingHandler) UpdateSettings(c *gin.Context) {
	var req model.UpdateSettingsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	settings, err := h.settingService.Update(c.Request.Context(), claims.InstituteID, req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, settings.View())
}

// GetPublicSettings godoc
// GET /api/v1/public/institutes/:institute_id/settings
// Branding shown on the institute's sign-in page.
func (h *SettingHandler) GetPublicSettings(c *gin.Context) {
	instituteID, err := strconv.Atoi(c.Param("institute_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	settings, err := h.settingService.Get(c.Request.Context(), instituteID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, settings.View())
}
