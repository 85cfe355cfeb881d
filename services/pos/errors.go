package pos

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfStock           = errors.New("stok habis")
	ErrInsufficientStock    = errors.New("stok tidak cukup")
	ErrPaymentInsufficient  = errors.New("pembayaran kurang")
	ErrCheckoutFailed       = errors.New("transaksi gagal")
	ErrCheckoutInProgress   = errors.New("transaksi sedang diproses")
	ErrCartEmpty            = errors.New("keranjang kosong")
	ErrPaymentNotFound      = errors.New("pembayaran tidak ditemukan")
	ErrUnknownPaymentMethod = errors.New("metode pembayaran tidak dikenal")
)

// InsufficientStockError reports how many units the snapshot allows.
type InsufficientStockError struct {
	ProductID string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stok tersedia hanya %d", e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// CheckoutFailedError carries the message of the transaction service, if it gave one.
type CheckoutFailedError struct {
	Message string
	cause   error
}

func newCheckoutFailedError(cause error) *CheckoutFailedError {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	if msg == "" {
		msg = ErrCheckoutFailed.Error()
	}
	return &CheckoutFailedError{
		Message: msg,
		cause:   cause,
	}
}

func (e *CheckoutFailedError) Error() string {
	return e.Message
}

func (e *CheckoutFailedError) Is(target error) bool {
	return target == ErrCheckoutFailed
}

func (e *CheckoutFailedError) Unwrap() error {
	return e.cause
}

func outOfStock(p Product) error {
	return fmt.Errorf("%s %w", p.Name, ErrOutOfStock)
}
