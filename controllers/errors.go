package controllers

import (
	"errors"
	"net/http"

	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/apperrors"
)

// statusForError memetakan error taxonomy ke kode HTTP di operation boundary.
// Tidak ada error yang dibiarkan lolos sebagai panic — session tetap hidup.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrPriceMissing),
		errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrChargeInFlight),
		errors.Is(err, apperrors.ErrOrderVoided):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrNoPermission):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrPersistenceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
