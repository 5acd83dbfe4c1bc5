package controllers

import (
	"errors"
	"net/http"

	"boardroom-backend/services"
	"boardroom-backend/utils"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	SettingsSvc *services.SettingsService
}

func NewSettingsController(svc *services.SettingsService) *SettingsController {
	return &SettingsController{SettingsSvc: svc}
}

func (ctrl *SettingsController) GetOfficeSettings(c *gin.Context) {
	setting, err := ctrl.SettingsSvc.Get()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "failed to load settings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, setting)
}

func (ctrl *SettingsController) UpdateOfficeSettings(c *gin.Context) {
	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	delete(updateData, "id")
	delete(updateData, "created_at")
	delete(updateData, "updated_at")

	setting, err := ctrl.SettingsSvc.Update(updateData)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSettings) {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidSettings",
				"slot_minutes must be positive and open_hour/close_hour must form a valid window")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "failed to update settings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, setting)
}
