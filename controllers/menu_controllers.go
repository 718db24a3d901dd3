package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/apperrors"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/events"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/models"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

type menuRequest struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Price       *float64 `json:"price"`
	Description string   `json:"description"`
	SpicyLevel  int      `json:"spicy_level"`
	Veg         bool     `json:"veg"`
	Active      *bool    `json:"active"`
}

func (req *menuRequest) toModel() (models.Menu, error) {
	if req.Price != nil && *req.Price < 0 {
		return models.Menu{}, fmt.Errorf("%w: price must not be negative", apperrors.ErrValidationFailed)
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		// Identifier stabil diturunkan dari nama kalau tidak dikirim
		id = models.Slugify(req.Name)
	}
	if id == "" {
		return models.Menu{}, fmt.Errorf("%w: item needs a name or id", apperrors.ErrValidationFailed)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	return models.Menu{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Category:    strings.TrimSpace(req.Category),
		Price:       req.Price,
		Description: req.Description,
		SpicyLevel:  req.SpicyLevel,
		Veg:         req.Veg,
		Active:      active,
	}, nil
}

// GetAllMenus -> katalog item aktif, filter opsional category dan q (search)
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	query := mc.DB.Where("active = ?", true)
	if cat := c.Query("category"); cat != "" {
		query = query.Where("category = ?", cat)
	}
	if q := strings.ToLower(c.Query("q")); q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"lower(name) LIKE ? OR lower(description) LIKE ? OR lower(category) LIKE ?",
			like, like, like,
		)
	}

	var menus []models.Menu
	if err := query.Order("category, name").Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// GetCategories -> daftar kategori = nilai category distinct dari item aktif
func (mc *MenuController) GetCategories(c *gin.Context) {
	var categories []string
	err := mc.DB.Model(&models.Menu{}).
		Where("active = ?", true).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All categories", categories)
}

// GetMenuByID -> detail satu item (termasuk yang nonaktif, untuk admin)
func (mc *MenuController) GetMenuByID(c *gin.Context) {
	var menu models.Menu
	if err := mc.DB.First(&menu, "id = ?", c.Param("menu_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

// CreateMenu
func (mc *MenuController) CreateMenu(c *gin.Context) {
	var req menuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	menu, err := req.toModel()
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}
	menu.CreatedAt = time.Now()
	menu.UpdatedAt = time.Now()

	if err := mc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.broadcastCatalog()
	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

// UpdateMenu -> update sebagian field, termasuk set harga untuk item
// yang belum punya harga
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	var menu models.Menu
	if err := mc.DB.First(&menu, "id = ?", c.Param("menu_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		Category    *string  `json:"category"`
		Price       *float64 `json:"price"`
		Description *string  `json:"description"`
		SpicyLevel  *int     `json:"spicy_level"`
		Veg         *bool    `json:"veg"`
		Active      *bool    `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Price != nil {
		if *req.Price < 0 {
			err := fmt.Errorf("%w: price must not be negative", apperrors.ErrValidationFailed)
			utils.RespondError(c, statusForError(err), err)
			return
		}
		menu.Price = req.Price
	}
	if req.Name != nil {
		menu.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		menu.Category = strings.TrimSpace(*req.Category)
	}
	if req.Description != nil {
		menu.Description = *req.Description
	}
	if req.SpicyLevel != nil {
		menu.SpicyLevel = *req.SpicyLevel
	}
	if req.Veg != nil {
		menu.Veg = *req.Veg
	}
	if req.Active != nil {
		menu.Active = *req.Active
	}
	menu.UpdatedAt = time.Now()

	if err := mc.DB.Save(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.broadcastCatalog()
	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

// SyncMenu -> refresh katalog wholesale: seluruh isi diganti dengan
// snapshot yang dikirim, dalam satu transaksi
func (mc *MenuController) SyncMenu(c *gin.Context) {
	var req struct {
		Items []menuRequest `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	menus := make([]models.Menu, 0, len(req.Items))
	seen := make(map[string]bool)
	now := time.Now()
	for _, item := range req.Items {
		menu, err := item.toModel()
		if err != nil {
			utils.RespondError(c, statusForError(err), err)
			return
		}
		if seen[menu.ID] {
			err := fmt.Errorf("%w: duplicate item id %q", apperrors.ErrValidationFailed, menu.ID)
			utils.RespondError(c, statusForError(err), err)
			return
		}
		seen[menu.ID] = true
		menu.CreatedAt = now
		menu.UpdatedAt = now
		menus = append(menus, menu)
	}

	err := mc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Menu{}).Error; err != nil {
			return err
		}
		if len(menus) == 0 {
			return nil
		}
		return tx.Create(&menus).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Catalog synced: %d items", len(menus))
	mc.broadcastCatalog()
	utils.RespondJSON(c, http.StatusOK, "Catalog synced", menus)
}

// DeleteMenu -> nonaktifkan item (soft delete); katalog tidak pernah
// kehilangan item yang sudah pernah dijual
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	var menu models.Menu
	if err := mc.DB.First(&menu, "id = ?", c.Param("menu_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if !menu.Active {
		utils.RespondError(c, http.StatusBadRequest, errors.New("menu already inactive"))
		return
	}

	menu.Active = false
	menu.UpdatedAt = time.Now()
	if err := mc.DB.Save(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.broadcastCatalog()
	utils.RespondJSON(c, http.StatusOK, "Menu deactivated", menu)
}

// broadcastCatalog kirim snapshot penuh item aktif ke subscriber websocket
func (mc *MenuController) broadcastCatalog() {
	var menus []models.Menu
	if err := mc.DB.Where("active = ?", true).Order("category, name").Find(&menus).Error; err != nil {
		utils.ErrorLogger.Printf("menu: load catalog for broadcast failed: %v", err)
		return
	}
	events.BroadcastMenuUpdate(menus)
}
