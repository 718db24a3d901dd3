package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/apperrors"
)

// ExpenseEntry adalah satu baris dari endpoint tabular (spreadsheet web-app).
// Amount bertanda: negatif = pengeluaran, positif = pemasukan.
type ExpenseEntry struct {
	Date        string  `json:"date"`
	Transaction string  `json:"transaction"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Tags        string  `json:"tags,omitempty"`
	Receipt     string  `json:"receipt,omitempty"`
}

// Validate memeriksa baris di boundary sebelum dipakai atau dikirim.
func (e *ExpenseEntry) Validate() error {
	if strings.TrimSpace(e.Transaction) == "" {
		return fmt.Errorf("%w: transaction is required", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(e.Category) == "" {
		return fmt.Errorf("%w: category is required", apperrors.ErrValidationFailed)
	}
	if _, err := time.Parse("2006-01-02", e.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", apperrors.ErrValidationFailed)
	}
	return nil
}

// IsExpense reports whether the entry is an expense (negative amount).
func (e ExpenseEntry) IsExpense() bool {
	return e.Amount < 0
}

// Month returns the YYYY-MM bucket of the entry.
func (e ExpenseEntry) Month() string {
	if len(e.Date) >= 7 {
		return e.Date[:7]
	}
	return ""
}

// TagList memecah kolom tags (comma-separated) menjadi slice, tanpa entri kosong.
func (e ExpenseEntry) TagList() []string {
	if strings.TrimSpace(e.Tags) == "" {
		return nil
	}
	parts := strings.Split(e.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
