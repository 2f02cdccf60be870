package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Credentials is the account number + PIN pair that gates every ledger operation.
type Credentials struct {
	AccountNumber int
	PinCode       int
}

// Plausible reports whether both halves are 4-digit integers. Anything else
// can never match a stored account.
func (c Credentials) Plausible() bool {
	return c.AccountNumber >= MinAccountNumber && c.AccountNumber <= MaxAccountNumber &&
		c.PinCode >= MinPinCode && c.PinCode <= MaxPinCode
}

// ParseCredentials converts raw front-end input. Non-integer input is
// reported as ErrInvalidCredentials.
func ParseCredentials(accountNumber, pinCode string) (Credentials, error) {
	num, err := strconv.Atoi(strings.TrimSpace(accountNumber))
	if err != nil {
		return Credentials{}, fmt.Errorf("ParseCredentials: account number: %w", ErrInvalidCredentials)
	}
	pin, err := strconv.Atoi(strings.TrimSpace(pinCode))
	if err != nil {
		return Credentials{}, fmt.Errorf("ParseCredentials: pin code: %w", ErrInvalidCredentials)
	}
	return Credentials{AccountNumber: num, PinCode: pin}, nil
}
