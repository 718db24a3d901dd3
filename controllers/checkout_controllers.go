package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/services"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/utils"
)

type CheckoutController struct {
	Checkout *services.CheckoutService
}

func NewCheckoutController(checkout *services.CheckoutService) *CheckoutController {
	return &CheckoutController{Checkout: checkout}
}

// Charge -> POST /checkout. Cart gagal = cart utuh, bisa diulang;
// sukses = cart kosong dan tepat satu order baru.
func (cc *CheckoutController) Charge(c *gin.Context) {
	var req struct {
		OrderType     string `json:"order_type"`
		TableRef      string `json:"table_ref"`
		PaymentMethod string `json:"payment_method"`
	}
	// Body opsional; default dine_in + cash
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}

	order, err := cc.Checkout.Charge(currentUserID(c), services.ChargeOptions{
		OrderType:     req.OrderType,
		TableRef:      req.TableRef,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}
