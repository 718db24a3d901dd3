package models

import "time"

const (
	DefaultTaxPct = 7.0
	DefaultSvcPct = 0.0
)

// Settings menyimpan persentase pajak dan service per user.
type Settings struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"-"`
	TaxPct    float64   `gorm:"not null;default:7" json:"tax_pct"`
	SvcPct    float64   `gorm:"not null;default:0" json:"svc_pct"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func DefaultSettings(userID uint) Settings {
	return Settings{
		UserID: userID,
		TaxPct: DefaultTaxPct,
		SvcPct: DefaultSvcPct,
	}
}
