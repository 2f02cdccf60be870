package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound                = errors.New("not found")
	ErrInvalidCredentials      = errors.New("invalid account number or pin code")
	ErrInvalidAmount           = errors.New("amount must be greater than zero")
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrInvalidTransactionType  = errors.New("invalid transaction type")
	ErrAccountNumbersExhausted = errors.New("no free account number found")
	ErrUniqueViolation         = errors.New("unique constraint violation")
	ErrSerialization           = errors.New("serialization failure")
	ErrValidation              = errors.New("validation failed")
)

type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every field of an account request that failed its check.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
