package models

import "time"

// CartSnapshot adalah mirror best-effort isi cart per user, dimuat ulang
// verbatim saat sesi dimulai. Bukan source of truth.
type CartSnapshot struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	UpdatedAt time.Time `json:"updated_at"`
}
