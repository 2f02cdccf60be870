package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType int16

const (
	TransactionTypeInitialBalance TransactionType = 0
	TransactionTypeDeposit        TransactionType = 1
	TransactionTypeWithdraw       TransactionType = 2
)

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeInitialBalance, TransactionTypeDeposit, TransactionTypeWithdraw:
		return true
	}
	return false
}

func (t TransactionType) String() string {
	switch t {
	case TransactionTypeInitialBalance:
		return "Initial Balance"
	case TransactionTypeDeposit:
		return "Deposit"
	case TransactionTypeWithdraw:
		return "Withdraw"
	default:
		return "Unknown"
	}
}

const (
	AmountScale            = 2
	MaxAmountIntegerDigits = 12

	// Exponents outside this span are rejected before any rescaling.
	maxAmountExponent = 32
)

// ValidAmount reports whether amount is positive, carries at most AmountScale
// fractional digits and at most MaxAmountIntegerDigits integer digits.
// Trailing fractional zeros are allowed.
func ValidAmount(amount decimal.Decimal) bool {
	if !amount.IsPositive() {
		return false
	}
	exp := amount.Exponent()
	if exp < -maxAmountExponent || exp > maxAmountExponent {
		return false
	}
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return false
	}
	return amount.NumDigits()+int(exp) <= MaxAmountIntegerDigits
}

// NoAccessBalance is returned by balance queries whose credentials do not match an account.
var NoAccessBalance = decimal.NewFromInt(-1)

// Transaction is one immutable ledger fact. Balance is the account balance
// after the transaction, not the amount moved.
type Transaction struct {
	ID            int64
	AccountNumber int
	Type          TransactionType
	Date          time.Time
	Balance       decimal.Decimal
}

type TransactionTypeInfo struct {
	Type        TransactionType
	Description string
}
