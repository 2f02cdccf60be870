package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidAmount(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"500", true},
		{"0.01", true},
		{"199.99", true},
		{"10.000", true},
		{"1e3", true},
		{"999999999999.99", true},
		{"0", false},
		{"-5", false},
		{"0.001", false},
		{"12.345", false},
		{"1000000000000", false},
		{"1e12", false},
		{"1e-20000000", false},
		{"1e20000000", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ValidAmount(d))
		})
	}
}

func TestTransactionType_String(t *testing.T) {
	assert.Equal(t, "Initial Balance", TransactionTypeInitialBalance.String())
	assert.Equal(t, "Deposit", TransactionTypeDeposit.String())
	assert.Equal(t, "Withdraw", TransactionTypeWithdraw.String())
	assert.False(t, TransactionType(7).IsValid())
}
