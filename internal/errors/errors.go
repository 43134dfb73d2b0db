// Package errors provides custom error types for the Cookbook API.
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

// Authentication errors.
var (
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Recipe errors. ErrRecipeNotFound is returned both for nonexistent ids and
// for mutations attempted by a non-owner, so callers cannot probe for the
// existence of other users' records.
var (
	ErrRecipeNotFound = &AppError{Code: "RECIPE_NOT_FOUND", Message: "Recipe not found", StatusCode: http.StatusNotFound}
)

// Category errors. The not-found sentinel doubles as the ownership failure,
// same as recipes; native categories fail owner-scoped mutations the same way.
var (
	ErrCategoryNotFound  = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrDuplicateCategory = &AppError{Code: "DUPLICATE_CATEGORY", Message: "A category with this name already exists", StatusCode: http.StatusConflict}
)

// Import errors.
var (
	ErrImportFetch      = &AppError{Code: "IMPORT_FETCH_FAILED", Message: "Could not fetch the page", StatusCode: http.StatusBadGateway}
	ErrSiteIncompatible = &AppError{Code: "SITE_INCOMPATIBLE", Message: "Site is not compatible (no schema.org/Recipe data)", StatusCode: http.StatusUnprocessableEntity}
	ErrImportURL        = &AppError{Code: "IMPORT_URL_INVALID", Message: "URL must start with http:// or https://", StatusCode: http.StatusBadRequest}
)
