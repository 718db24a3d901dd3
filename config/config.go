package config

import (
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/models"
)

// InitDB membuka koneksi database sesuai env. Default sqlite file lokal
// supaya development tidak butuh server MySQL.
func InitDB() (*gorm.DB, error) {
	driver := os.Getenv("DB_DRIVER")
	dsn := os.Getenv("DB_DSN")

	switch driver {
	case "mysql":
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	default:
		if dsn == "" {
			dsn = "pos.db"
		}
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}

// CheckoutMode: "paid" = direct charge, "open" = dua langkah (mark paid
// belakangan di ledger). Pilihan deployment, bukan cabang runtime per order.
func CheckoutMode() string {
	if os.Getenv("CHECKOUT_MODE") == models.OrderStatusOpen {
		return models.OrderStatusOpen
	}
	return models.OrderStatusPaid
}

// SheetWebAppURL: endpoint web-app spreadsheet untuk dashboard pengeluaran
func SheetWebAppURL() string {
	return os.Getenv("SHEET_WEBAPP_URL")
}
