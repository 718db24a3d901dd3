package apperrors

import "errors"

var (
	// ErrPriceMissing: item katalog belum punya harga, harus di-set dulu sebelum masuk cart
	ErrPriceMissing = errors.New("item has no price set")

	// ErrPersistenceUnavailable: subscription atau write ke database gagal, operasi bisa diulang
	ErrPersistenceUnavailable = errors.New("persistence unavailable")

	// ErrValidationFailed: input tidak valid di boundary, tidak ada state yang berubah
	ErrValidationFailed = errors.New("validation failed")

	ErrEmptyCart      = errors.New("cart is empty")
	ErrChargeInFlight = errors.New("a charge is already in progress")
	ErrOrderVoided    = errors.New("order is void and cannot change status")
	ErrNoPermission   = errors.New("you do not have permission for this action")
)
