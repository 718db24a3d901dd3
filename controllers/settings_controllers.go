package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/apperrors"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/models"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/utils"
)

type SettingsController struct {
	DB *gorm.DB
}

func NewSettingsController(db *gorm.DB) *SettingsController {
	return &SettingsController{DB: db}
}

// GetSettings -> persentase pajak/service user; default 7/0 kalau belum pernah diset
func (sc *SettingsController) GetSettings(c *gin.Context) {
	userID := currentUserID(c)

	var settings models.Settings
	if err := sc.DB.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		settings = models.DefaultSettings(userID)
	}

	utils.RespondJSON(c, http.StatusOK, "Settings", settings)
}

// UpdateSettings -> PUT /settings {tax_pct, svc_pct}, dua-duanya harus >= 0
func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	var req struct {
		TaxPct *float64 `json:"tax_pct" binding:"required"`
		SvcPct *float64 `json:"svc_pct" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if *req.TaxPct < 0 || *req.SvcPct < 0 {
		err := fmt.Errorf("%w: percentages must not be negative", apperrors.ErrValidationFailed)
		utils.RespondError(c, statusForError(err), err)
		return
	}

	settings := models.Settings{
		UserID: currentUserID(c),
		TaxPct: *req.TaxPct,
		SvcPct: *req.SvcPct,
	}
	err := sc.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"tax_pct", "svc_pct", "updated_at"}),
	}).Create(&settings).Error
	if err != nil {
		utils.RespondError(c, statusForError(apperrors.ErrPersistenceUnavailable), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Settings saved", settings)
}
