// Package errors provides custom error types for the Bilanz API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
)

// General errors. Not-found errors deliberately cover both "absent" and
// "owned by another tenant" so existence never leaks across tenants.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Budget errors.
var (
	ErrBudgetNotFound       = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
	ErrNoValidBudgetLines   = &AppError{Code: "NO_VALID_BUDGET_LINES", Message: "At least one budget line with planned amount > 0 is required", StatusCode: http.StatusBadRequest}
	ErrInvalidBudgetPeriod  = &AppError{Code: "INVALID_BUDGET_PERIOD", Message: "Start date must not be after end date", StatusCode: http.StatusBadRequest}
	ErrBudgetStatusConflict = &AppError{Code: "BUDGET_STATUS_CONFLICT", Message: "The requested status transition is not allowed", StatusCode: http.StatusConflict}
	ErrBudgetNotConfirmed   = &AppError{Code: "BUDGET_NOT_CONFIRMED", Message: "Only a confirmed budget can be revised", StatusCode: http.StatusConflict}
)

// Analytical account errors.
var (
	ErrAnalyticalAccountNotFound = &AppError{Code: "ANALYTICAL_ACCOUNT_NOT_FOUND", Message: "Analytical account not found", StatusCode: http.StatusNotFound}
	ErrDuplicateAccountCode      = &AppError{Code: "DUPLICATE_ACCOUNT_CODE", Message: "An analytical account with this code already exists", StatusCode: http.StatusConflict}
	ErrAnalyticalAccountInUse    = &AppError{Code: "ANALYTICAL_ACCOUNT_IN_USE", Message: "Analytical account is referenced by budget lines or rules", StatusCode: http.StatusConflict}
)

// Auto-analytical model errors.
var (
	ErrModelNotFound   = &AppError{Code: "MODEL_NOT_FOUND", Message: "Auto-analytical model not found", StatusCode: http.StatusNotFound}
	ErrPartnerNotFound = &AppError{Code: "PARTNER_NOT_FOUND", Message: "Partner not found", StatusCode: http.StatusNotFound}
)

// Contact errors.
var (
	ErrContactNotFound = &AppError{Code: "CONTACT_NOT_FOUND", Message: "Contact not found", StatusCode: http.StatusNotFound}
)

// Journal entry errors.
var (
	ErrJournalEntryNotFound = &AppError{Code: "JOURNAL_ENTRY_NOT_FOUND", Message: "Journal entry not found", StatusCode: http.StatusNotFound}
	ErrNegativeEntryAmount  = &AppError{Code: "NEGATIVE_ENTRY_AMOUNT", Message: "Journal entry amount must not be negative", StatusCode: http.StatusBadRequest}
)
