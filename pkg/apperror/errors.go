package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes. Each code identifies one error kind surfaced to the UI.
const (
	CodeValidation         = "VAL_001"
	CodeNotFound           = "LED_001"
	CodeInvalidAmount      = "LED_002"
	CodeDuplicateCommand   = "LED_003"
	CodeTransferIncomplete = "LED_004"
	CodeExchangeRate       = "FX_001"
	CodeInternal           = "SYS_001"
	CodePersistence        = "SYS_002"
	CodeRateLimited        = "SYS_003"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Is reports whether err is (or wraps) an AppError carrying code.
func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// ---- Input validation (VAL) ----

// Validation reports malformed input: non-positive amounts, same-wallet
// transfers, missing fields, category/type mismatches.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

// Validationf is Validation with formatting.
func Validationf(format string, args ...any) *AppError {
	return Validation(fmt.Sprintf(format, args...))
}

// ---- Ledger business logic (LED) ----

func ErrNotFound(entity string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrInvalidAmount(message string) *AppError {
	return New(CodeInvalidAmount, message, http.StatusUnprocessableEntity)
}

func ErrDuplicateCommand() *AppError {
	return New(CodeDuplicateCommand, "Command has already been submitted", http.StatusConflict)
}

func ErrTransferIncomplete(err error) *AppError {
	return Wrap(CodeTransferIncomplete, "Transfer could not be completed or rolled back", http.StatusInternalServerError, err)
}

// ---- Exchange rate (FX) ----

func ErrInvalidExchangeRate() *AppError {
	return New(CodeExchangeRate, "Exchange rate must be a finite positive number", http.StatusBadRequest)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}

func ErrPersistence(err error) *AppError {
	return Wrap(CodePersistence, "Ledger state could not be saved", http.StatusServiceUnavailable, err)
}

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimited, "Too many requests, slow down", http.StatusTooManyRequests)
}
