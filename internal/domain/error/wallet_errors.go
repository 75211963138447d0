// Package error defines domain-specific errors for the Dompetku application.
package error

import "errors"

// Wallet domain errors.
var (
	// ErrWalletNotFound is returned when a wallet is not found in the system.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrNotAuthorizedToModifyWallet is returned when user is not authorized to modify a wallet.
	ErrNotAuthorizedToModifyWallet = errors.New("not authorized to modify wallet")

	// ErrInvalidWalletType is returned when the wallet type is invalid.
	ErrInvalidWalletType = errors.New("invalid wallet type")

	// ErrWalletHasTransactions is returned when deleting a wallet that still has postings.
	ErrWalletHasTransactions = errors.New("wallet has transactions and cannot be deleted")

	// ErrNegativeOpeningBalance is returned when a wallet is created with a negative opening balance.
	ErrNegativeOpeningBalance = errors.New("opening balance must not be negative")
)

// WalletErrorCode defines error codes for wallet errors.
// Format: WAL-XXYYYY where XX is category and YYYY is specific error.
type WalletErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidWalletType      WalletErrorCode = "WAL-010001"
	ErrCodeWalletNotFound         WalletErrorCode = "WAL-010002"
	ErrCodeNotAuthorizedWallet    WalletErrorCode = "WAL-010003"
	ErrCodeMissingWalletFields    WalletErrorCode = "WAL-010004"
	ErrCodeNegativeOpeningBalance WalletErrorCode = "WAL-010005"

	// Constraint errors (02XXXX)
	ErrCodeWalletHasTransactions WalletErrorCode = "WAL-020001"
)

// WalletError represents a wallet error with code and message.
type WalletError struct {
	Code    WalletErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *WalletError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *WalletError) Unwrap() error {
	return e.Err
}

// NewWalletError creates a new WalletError with the given code and message.
func NewWalletError(code WalletErrorCode, message string, err error) *WalletError {
	return &WalletError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
