package models

import (
	"time"

	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/apperrors"
)

const (
	OrderStatusOpen = "open"
	OrderStatusPaid = "paid"
	OrderStatusVoid = "void"
)

const (
	OrderTypeDineIn   = "dine_in"
	OrderTypeTakeaway = "takeaway"
)

// Order dibuat oleh checkout dan immutable kecuali field status/payment.
// Order tidak pernah dihapus.
type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	OrderNo       string      `gorm:"type:varchar(40);uniqueIndex;not null" json:"order_no"`
	CashierID     uint        `gorm:"not null;index" json:"cashier_id"`
	Cashier       User        `gorm:"foreignKey:CashierID" json:"-"`
	OrderType     string      `gorm:"type:varchar(20);not null;default:'dine_in'" json:"order_type"`
	TableRef      *string     `gorm:"type:varchar(20)" json:"table_ref,omitempty"`
	Status        string      `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	Subtotal      float64     `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Tax           float64     `gorm:"type:decimal(10,2);not null" json:"tax"`
	Service       float64     `gorm:"type:decimal(10,2);not null" json:"service"`
	Total         float64     `gorm:"type:decimal(10,2);not null" json:"total"`
	Currency      string      `gorm:"type:varchar(3);not null;default:'THB'" json:"currency"`
	PaymentMethod string      `gorm:"type:varchar(20);not null;default:'cash'" json:"payment_method"`
	PaidAt        *time.Time  `json:"paid_at,omitempty"`
	CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
	Items         []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// MarkPaid transisi open -> paid. Hanya valid dari open.
func (o *Order) MarkPaid(now time.Time) error {
	if o.Status == OrderStatusVoid {
		return apperrors.ErrOrderVoided
	}
	if o.Status != OrderStatusOpen {
		return apperrors.ErrValidationFailed
	}
	o.Status = OrderStatusPaid
	o.PaidAt = &now
	return nil
}

// Void transisi open|paid -> void. Void bersifat terminal.
func (o *Order) Void() error {
	if o.Status == OrderStatusVoid {
		return apperrors.ErrOrderVoided
	}
	o.Status = OrderStatusVoid
	return nil
}
