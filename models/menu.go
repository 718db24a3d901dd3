package models

import (
	"regexp"
	"strings"
	"time"
)

// Menu adalah item katalog. Price nullable: item tanpa harga harus
// di-set dulu harganya sebelum bisa masuk cart.
type Menu struct {
	ID          string    `gorm:"primaryKey;type:varchar(100)" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Category    string    `gorm:"type:varchar(100);not null;index" json:"category"`
	Price       *float64  `gorm:"type:decimal(10,2)" json:"price"`
	Description string    `gorm:"type:text" json:"description"`
	SpicyLevel  int       `json:"spicy_level"`
	Veg         bool      `json:"veg"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify menghasilkan identifier stabil dari nama item
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugStrip.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
