package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/models"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/router"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Menu{},
		&models.Order{},
		&models.OrderItem{},
		&models.Settings{},
		&models.CartSnapshot{},
		&models.FilterPreset{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Status  bool            `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	if out != nil {
		assert.NoError(t, json.Unmarshal(envelope.Data, out))
	}
}

// TestPOSEndToEnd menguji flow utama:
// 1. Register + login kasir -> token
// 2. Isi katalog, termasuk item tanpa harga
// 3. Add to cart: item tanpa harga ditolak sampai harga di-set
// 4. Checkout -> order paid, cart kosong
// 5. Ledger: void bersifat terminal
func TestPOSEndToEnd(t *testing.T) {
	db := setupTestDB(t)
	r := router.SetupRouter(db)

	// 1. Register + login
	w := doJSON(t, r, http.MethodPost, "/register", "", map[string]string{
		"name":     "Test Cashier",
		"email":    "cashier@example.com",
		"password": "secret123",
		"role":     "cashier",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/login", "", map[string]string{
		"email":    "cashier@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Token string `json:"token"`
	}
	decodeData(t, w, &login)
	assert.NotEmpty(t, login.Token)
	token := login.Token

	// 2. Isi katalog; "Market Fish" tanpa harga, id diturunkan dari nama
	price := 60.0
	w = doJSON(t, r, http.MethodPost, "/menus", token, map[string]interface{}{
		"name":     "Pad Thai",
		"category": "Mains",
		"price":    price,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var created models.Menu
	decodeData(t, w, &created)
	assert.Equal(t, "pad-thai", created.ID)

	w = doJSON(t, r, http.MethodPost, "/menus", token, map[string]interface{}{
		"name":     "Market Fish",
		"category": "Specials",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Kategori = nilai distinct dari item aktif
	w = doJSON(t, r, http.MethodGet, "/categories", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var categories []string
	decodeData(t, w, &categories)
	assert.Equal(t, []string{"Mains", "Specials"}, categories)

	// 3. Item tanpa harga ditolak sampai harganya di-set
	w = doJSON(t, r, http.MethodPost, "/cart/items", token, map[string]string{"menu_id": "market-fish"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/menus/market-fish", token, map[string]float64{"price": 250})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/cart/items", token, map[string]string{"menu_id": "market-fish"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/cart/items", token, map[string]string{"menu_id": "pad-thai"})
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPatch, "/cart/items/pad-thai", token, map[string]int{"qty": 2})
	assert.Equal(t, http.StatusOK, w.Code)

	var cart struct {
		Lines  []struct {
			ItemID string  `json:"item_id"`
			Qty    int     `json:"qty"`
			Price  float64 `json:"price"`
		} `json:"lines"`
		Totals struct {
			Subtotal float64 `json:"subtotal"`
			Tax      float64 `json:"tax"`
			Total    float64 `json:"total"`
		} `json:"totals"`
	}
	decodeData(t, w, &cart)
	assert.Len(t, cart.Lines, 2)
	// 250 + 2*60 = 370; default tax 7% = 25.90
	assert.Equal(t, 370.0, cart.Totals.Subtotal)
	assert.Equal(t, 25.90, cart.Totals.Tax)
	assert.Equal(t, 395.90, cart.Totals.Total)

	// 4. Checkout (mode default: direct charge -> paid)
	w = doJSON(t, r, http.MethodPost, "/checkout", token, map[string]string{
		"order_type":     "takeaway",
		"payment_method": "cash",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var order models.Order
	decodeData(t, w, &order)
	assert.Equal(t, models.OrderStatusPaid, order.Status)
	assert.Equal(t, 395.90, order.Total)

	// Cart kosong setelah charge sukses
	w = doJSON(t, r, http.MethodGet, "/cart", token, nil)
	decodeData(t, w, &cart)
	assert.Empty(t, cart.Lines)

	// Checkout lagi dengan cart kosong ditolak, tidak ada order baru
	w = doJSON(t, r, http.MethodPost, "/checkout", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 5. Ledger
	w = doJSON(t, r, http.MethodGet, "/orders?status=paid", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	decodeData(t, w, &orders)
	assert.Len(t, orders, 1)

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/orders/%d/void", orders[0].ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/orders/%d/pay", orders[0].ID), token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGlobalRateLimiterApplies(t *testing.T) {
	db := setupTestDB(t)
	r := router.SetupRouter(db)

	// Limiter 50 req/detik per IP berlaku untuk semua route
	last := http.StatusOK
	for i := 0; i < 60; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		last = w.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestSettingsValidation(t *testing.T) {
	db := setupTestDB(t)
	r := router.SetupRouter(db)

	w := doJSON(t, r, http.MethodPost, "/register", "", map[string]string{
		"name":     "Settings User",
		"email":    "settings@example.com",
		"password": "secret123",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, http.MethodPost, "/login", "", map[string]string{
		"email":    "settings@example.com",
		"password": "secret123",
	})
	var login struct {
		Token string `json:"token"`
	}
	decodeData(t, w, &login)

	// Default 7/0 sebelum pernah diset
	w = doJSON(t, r, http.MethodGet, "/settings", login.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var settings models.Settings
	decodeData(t, w, &settings)
	assert.Equal(t, 7.0, settings.TaxPct)
	assert.Equal(t, 0.0, settings.SvcPct)

	// Negatif ditolak tanpa mengubah state
	w = doJSON(t, r, http.MethodPut, "/settings", login.Token, map[string]float64{
		"tax_pct": -1, "svc_pct": 0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, "/settings", login.Token, map[string]float64{
		"tax_pct": 10, "svc_pct": 5,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/settings", login.Token, nil)
	decodeData(t, w, &settings)
	assert.Equal(t, 10.0, settings.TaxPct)
	assert.Equal(t, 5.0, settings.SvcPct)
}
