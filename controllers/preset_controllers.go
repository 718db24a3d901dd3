package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/apperrors"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/models"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/utils"
)

// PresetController menyimpan preset filter dan toggle tampilan dashboard
// sebagai blob konfigurasi bernama per user.
type PresetController struct {
	DB *gorm.DB
}

func NewPresetController(db *gorm.DB) *PresetController {
	return &PresetController{DB: db}
}

// ListPresets -> GET /presets
func (pc *PresetController) ListPresets(c *gin.Context) {
	var presets []models.FilterPreset
	if err := pc.DB.Where("user_id = ?", currentUserID(c)).Order("name").Find(&presets).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Saved presets", presets)
}

// SavePreset -> PUT /presets/:name, upsert blob by name
func (pc *PresetController) SavePreset(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		err := fmt.Errorf("%w: preset name is required", apperrors.ErrValidationFailed)
		utils.RespondError(c, statusForError(err), err)
		return
	}

	var payload json.RawMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	preset := models.FilterPreset{
		UserID:  currentUserID(c),
		Name:    name,
		Payload: string(payload),
	}
	err := pc.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&preset).Error
	if err != nil {
		utils.RespondError(c, statusForError(apperrors.ErrPersistenceUnavailable), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Preset saved", preset)
}

// DeletePreset -> DELETE /presets/:name
func (pc *PresetController) DeletePreset(c *gin.Context) {
	result := pc.DB.Where("user_id = ? AND name = ?", currentUserID(c), c.Param("name")).
		Delete(&models.FilterPreset{})
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("preset not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Preset deleted", nil)
}
