// Package error defines domain-specific errors for the Dompetku application.
package error

import "errors"

// Wallet sharing domain errors.
var (
	// ErrShareNotFound is returned when a wallet share grant is not found.
	ErrShareNotFound = errors.New("wallet share not found")

	// ErrRecipientNotFound is returned when the share target user does not exist.
	ErrRecipientNotFound = errors.New("recipient user not found")

	// ErrNotAuthorizedToShare is returned when a non-owner attempts to share or revoke.
	ErrNotAuthorizedToShare = errors.New("only the wallet owner may share or revoke")

	// ErrInvalidSharePermission is returned when the permission level is invalid.
	ErrInvalidSharePermission = errors.New("invalid share permission")
)

// SharingErrorCode defines error codes for wallet sharing errors.
// Format: SHR-XXYYYY where XX is category and YYYY is specific error.
type SharingErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidSharePermission SharingErrorCode = "SHR-010001"
	ErrCodeShareNotFound          SharingErrorCode = "SHR-010002"
	ErrCodeRecipientNotFound      SharingErrorCode = "SHR-010003"

	// Authorization errors (02XXXX)
	ErrCodeNotAuthorizedToShare SharingErrorCode = "SHR-020001"
)

// SharingError represents a wallet sharing error with code and message.
type SharingError struct {
	Code    SharingErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SharingError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SharingError) Unwrap() error {
	return e.Err
}

// NewSharingError creates a new SharingError with the given code and message.
func NewSharingError(code SharingErrorCode, message string, err error) *SharingError {
	return &SharingError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
