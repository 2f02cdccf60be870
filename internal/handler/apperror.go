package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrInvalidRequest   = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrInternalError    = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	// Bad credentials, non-positive amounts and insufficient funds all map here.
	ErrActionNotCompleted      = &AppError{http.StatusUnprocessableEntity, "ACTION_NOT_COMPLETED", "The action couldn't be completed"}
	ErrAccountNumbersExhausted = &AppError{http.StatusServiceUnavailable, "ACCOUNT_NUMBERS_EXHAUSTED", "No account number is available, please retry later"}
)
