package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/apperrors"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/events"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/models"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/utils"
)

// ChargeOptions adalah input user saat checkout.
type ChargeOptions struct {
	OrderType     string
	TableRef      string
	PaymentMethod string
}

// CheckoutService merakit order immutable dari isi cart lalu menulisnya
// sebagai satu dokumen all-or-nothing. Mode menentukan status awal order:
// "paid" (direct charge) atau "open" (dua langkah) — pilihan konfigurasi
// deployment, bukan cabang runtime.
type CheckoutService struct {
	db    *gorm.DB
	carts *CartService
	mode  string

	mu       sync.Mutex
	inflight map[uint]bool
}

func NewCheckoutService(db *gorm.DB, carts *CartService, mode string) *CheckoutService {
	if mode != models.OrderStatusOpen {
		mode = models.OrderStatusPaid
	}
	return &CheckoutService{
		db:       db,
		carts:    carts,
		mode:     mode,
		inflight: make(map[uint]bool),
	}
}

func (s *CheckoutService) beginCharge(userID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[userID] {
		return false
	}
	s.inflight[userID] = true
	return true
}

func (s *CheckoutService) endCharge(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, userID)
}

// Charge memvalidasi cart, membuat order dalam satu transaksi, lalu
// menghapus baris yang ter-charge. Kalau write gagal, cart tidak disentuh dan operasi
// bisa diulang. Charge kedua untuk session yang sama selagi yang pertama
// masih jalan ditolak dengan ErrChargeInFlight — guard anti dobel submit.
func (s *CheckoutService) Charge(userID uint, opt ChargeOptions) (*models.Order, error) {
	if !s.beginCharge(userID) {
		return nil, apperrors.ErrChargeInFlight
	}
	defer s.endCharge(userID)

	lines := s.carts.Lines(userID)
	if len(lines) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	settings := s.settingsFor(userID)
	totals := ComputeTotals(lines, settings.TaxPct, settings.SvcPct)
	if totals.Total <= 0 {
		return nil, fmt.Errorf("%w: order total must be positive", apperrors.ErrValidationFailed)
	}

	orderType := opt.OrderType
	if orderType != models.OrderTypeTakeaway {
		orderType = models.OrderTypeDineIn
	}
	method := opt.PaymentMethod
	if method == "" {
		method = "cash"
	}

	now := time.Now()
	order := models.Order{
		OrderNo:       uuid.NewString(),
		CashierID:     userID,
		OrderType:     orderType,
		Status:        s.mode,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Service:       totals.Service,
		Total:         totals.Total,
		Currency:      "THB",
		PaymentMethod: method,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if opt.TableRef != "" {
		order.TableRef = &opt.TableRef
	}
	if s.mode == models.OrderStatusPaid {
		order.PaidAt = &now
	}
	for _, line := range lines {
		order.Items = append(order.Items, models.OrderItem{
			MenuID:    line.ItemID,
			Name:      line.Name,
			Quantity:  line.Qty,
			Price:     line.Price,
			LineTotal: line.LineTotal(),
		})
	}

	// Satu Create = order + items dalam satu transaksi; tidak ada order parsial
	if err := s.db.Create(&order).Error; err != nil {
		utils.ErrorLogger.Printf("checkout: create order for user %d failed: %v", userID, err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistenceUnavailable, err)
	}

	// Hanya baris yang ter-charge yang dihapus; mutasi cart yang masuk
	// di tengah charge tetap ada untuk order berikutnya
	s.carts.RemoveCharged(userID, lines)
	events.BroadcastOrderUpdate(order)

	utils.InfoLogger.Printf("checkout: order %s created (user=%d status=%s total=%.2f)",
		order.OrderNo, userID, order.Status, order.Total)
	return &order, nil
}

// settingsFor mengambil settings user; fallback ke default 7/0 kalau belum ada.
func (s *CheckoutService) settingsFor(userID uint) models.Settings {
	var settings models.Settings
	err := s.db.Where("user_id = ?", userID).First(&settings).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.ErrorLogger.Printf("checkout: load settings for user %d failed: %v", userID, err)
		}
		return models.DefaultSettings(userID)
	}
	return settings
}
