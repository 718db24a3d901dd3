package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/apperrors"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/events"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/models"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// GetAllOrders -> ledger, selalu urut created_at desc, filter status opsional
// (all|open|paid|void)
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	status := c.DefaultQuery("status", "all")
	switch status {
	case "all", models.OrderStatusOpen, models.OrderStatusPaid, models.OrderStatusVoid:
	default:
		err := fmt.Errorf("%w: unknown status %q", apperrors.ErrValidationFailed, status)
		utils.RespondError(c, statusForError(err), err)
		return
	}

	query := oc.DB.Preload("Items").Order("created_at DESC")
	if status != "all" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail satu order beserta items
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, "id = ?", c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// MarkPaid -> PATCH /orders/:order_id/pay, transisi open -> paid.
// Hanya field status + paid_at yang berubah; created_at dan items tidak disentuh.
func (oc *OrderController) MarkPaid(c *gin.Context) {
	oc.transition(c, func(order *models.Order) error {
		return order.MarkPaid(time.Now())
	})
}

// VoidOrder -> PATCH /orders/:order_id/void, transisi open|paid -> void.
// Void terminal; konfirmasi user diurus di UI.
func (oc *OrderController) VoidOrder(c *gin.Context) {
	oc.transition(c, func(order *models.Order) error {
		return order.Void()
	})
}

func (oc *OrderController) transition(c *gin.Context, apply func(*models.Order) error) {
	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, "id = ?", c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	prior := order.Status

	if err := apply(&order); err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	// Update field-level saja, dokumen order tidak pernah dibuat ulang.
	// Guard status lama di WHERE: kalau request lain sempat memindahkan
	// status duluan, update ini jadi no-op dan dijawab konflik.
	updates := map[string]interface{}{
		"status":     order.Status,
		"paid_at":    order.PaidAt,
		"updated_at": time.Now(),
	}
	res := oc.DB.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, prior).
		Updates(updates)
	if res.Error != nil {
		utils.RespondError(c, statusForError(apperrors.ErrPersistenceUnavailable), res.Error)
		return
	}
	if res.RowsAffected == 0 {
		err := fmt.Errorf("order %s is no longer %s", order.OrderNo, prior)
		utils.RespondError(c, http.StatusConflict, err)
		return
	}

	events.BroadcastOrderUpdate(order)
	utils.InfoLogger.Printf("Order %s -> %s", order.OrderNo, order.Status)
	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}
