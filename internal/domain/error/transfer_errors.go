// Package error defines domain-specific errors for the Dompetku application.
package error

import "errors"

// Transfer domain errors.
var (
	// ErrSameWalletTransfer is returned when source and destination wallets are identical.
	ErrSameWalletTransfer = errors.New("cannot transfer to the same wallet")

	// ErrInsufficientFunds is returned when the source balance cannot cover amount plus fee.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidTransferAmount is returned when the transfer amount is not positive.
	ErrInvalidTransferAmount = errors.New("transfer amount must be positive")

	// ErrInvalidTransferFee is returned when the transfer fee is negative.
	ErrInvalidTransferFee = errors.New("transfer fee must not be negative")
)

// TransferErrorCode defines error codes for transfer errors.
// Format: TRF-XXYYYY where XX is category and YYYY is specific error.
type TransferErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeSameWalletTransfer    TransferErrorCode = "TRF-010001"
	ErrCodeInvalidTransferAmount TransferErrorCode = "TRF-010002"
	ErrCodeInvalidTransferFee    TransferErrorCode = "TRF-010003"
	ErrCodeMissingTransferFields TransferErrorCode = "TRF-010004"

	// Execution errors (02XXXX)
	ErrCodeInsufficientFunds TransferErrorCode = "TRF-020001"
)

// TransferError represents a transfer error with code and message.
type TransferError struct {
	Code    TransferErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransferError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransferError) Unwrap() error {
	return e.Err
}

// NewTransferError creates a new TransferError with the given code and message.
func NewTransferError(code TransferErrorCode, message string, err error) *TransferError {
	return &TransferError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
