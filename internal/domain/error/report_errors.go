// Package error defines domain-specific errors for the Dompetku application.
package error

import "errors"

// Report / CSV import domain errors.
var (
	// ErrInvalidCSV is returned when the uploaded file cannot be read as CSV at all.
	ErrInvalidCSV = errors.New("invalid CSV file")

	// ErrImportCommitFailed is returned when the batch of parsed rows fails to commit.
	ErrImportCommitFailed = errors.New("failed to commit imported transactions")
)

// ReportErrorCode defines error codes for reporting and import errors.
// Format: RPT-XXYYYY where XX is category and YYYY is specific error.
type ReportErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidCSV ReportErrorCode = "RPT-010001"

	// Commit errors (02XXXX)
	ErrCodeImportCommitFailed ReportErrorCode = "RPT-020001"
)

// ReportError represents a reporting error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
