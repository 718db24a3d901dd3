package models

import "time"

// FilterPreset menyimpan konfigurasi filter/tampilan dashboard sebagai blob JSON bernama.
type FilterPreset struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_preset_user_name,unique" json:"-"`
	Name      string    `gorm:"type:varchar(100);not null;index:idx_preset_user_name,unique" json:"name"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
