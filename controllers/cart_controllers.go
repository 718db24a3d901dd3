package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/models"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/services"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/utils"
)

type CartController struct {
	DB    *gorm.DB
	Carts *services.CartService
}

func NewCartController(db *gorm.DB, carts *services.CartService) *CartController {
	return &CartController{DB: db, Carts: carts}
}

func currentUserID(c *gin.Context) uint {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// cartView: baris + totals selalu dihitung ulang bareng, tidak pernah stale
func (cc *CartController) cartView(userID uint) gin.H {
	lines := cc.Carts.Lines(userID)
	settings := cc.settingsFor(userID)
	totals := services.ComputeTotals(lines, settings.TaxPct, settings.SvcPct)
	return gin.H{
		"lines":  lines,
		"totals": totals,
	}
}

func (cc *CartController) settingsFor(userID uint) models.Settings {
	var settings models.Settings
	if err := cc.DB.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return models.DefaultSettings(userID)
	}
	return settings
}

// GetCart -> isi cart session + totals
func (cc *CartController) GetCart(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Cart", cc.cartView(currentUserID(c)))
}

// AddItem -> POST /cart/items {menu_id}
func (cc *CartController) AddItem(c *gin.Context) {
	var req struct {
		MenuID string `json:"menu_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var menu models.Menu
	if err := cc.DB.Where("active = ?", true).First(&menu, "id = ?", req.MenuID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	userID := currentUserID(c)
	if err := cc.Carts.AddItem(userID, menu); err != nil {
		// ErrPriceMissing: client harus set harga dulu lewat PATCH /menus/:id
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item added", cc.cartView(userID))
}

// SetQuantity -> PATCH /cart/items/:item_id {qty}; qty <= 0 menghapus baris
func (cc *CartController) SetQuantity(c *gin.Context) {
	var req struct {
		Qty *int `json:"qty" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	userID := currentUserID(c)
	cc.Carts.SetQuantity(userID, c.Param("item_id"), *req.Qty)
	utils.RespondJSON(c, http.StatusOK, "Quantity updated", cc.cartView(userID))
}

// RemoveItem -> DELETE /cart/items/:item_id
func (cc *CartController) RemoveItem(c *gin.Context) {
	userID := currentUserID(c)
	cc.Carts.RemoveItem(userID, c.Param("item_id"))
	utils.RespondJSON(c, http.StatusOK, "Item removed", cc.cartView(userID))
}

// ClearCart -> DELETE /cart (konfirmasi user terjadi di sisi UI)
func (cc *CartController) ClearCart(c *gin.Context) {
	userID := currentUserID(c)
	cc.Carts.Clear(userID)
	utils.RespondJSON(c, http.StatusOK, "Cart cleared", cc.cartView(userID))
}
