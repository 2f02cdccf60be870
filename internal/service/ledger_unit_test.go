package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/pin-ledger/internal/domain"
)

type mockLedgerAccounts struct{}

func (mockLedgerAccounts) Exists(context.Context, domain.Credentials) (bool, error) { return true, nil }

func (mockLedgerAccounts) Delete(context.Context, domain.Credentials) (bool, error) { return true, nil }

type mockTransactions struct {
	balance decimal.Decimal
	appends int
}

func (m *mockTransactions) Append(_ context.Context, _ *sql.Tx, n int, txType domain.TransactionType, balance decimal.Decimal) (*domain.Transaction, error) {
	m.appends++
	return &domain.Transaction{AccountNumber: n, Type: txType, Balance: balance}, nil
}

func (m *mockTransactions) LatestBalance(context.Context, *sql.Tx, int) (decimal.Decimal, error) {
	return m.balance, nil
}

func (m *mockTransactions) ListByAccount(context.Context, int) ([]domain.Transaction, error) {
	return nil, nil
}

func TestDeposit_OutOfBoundsAmountNeverReachesStore(t *testing.T) {
	txs := &mockTransactions{balance: decimal.NewFromInt(100)}
	ledger := NewLedger(mockLedgerAccounts{}, txs, nil, nil, LedgerOptions{})
	creds := domain.Credentials{AccountNumber: 4821, PinCode: 1234}

	for _, raw := range []string{"1e-20000000", "1e20000000", "0.005", "1000000000000"} {
		amount, err := decimal.NewFromString(raw)
		require.NoError(t, err)

		start := time.Now()
		ok, err := ledger.Deposit(context.Background(), creds, amount)
		require.NoError(t, err, raw)
		assert.False(t, ok, raw)
		assert.Less(t, time.Since(start), time.Second, raw)

		ok, err = ledger.Withdraw(context.Background(), creds, amount)
		require.NoError(t, err, raw)
		assert.False(t, ok, raw)
	}
	assert.Zero(t, txs.appends)

	ok, err := ledger.Deposit(context.Background(), creds, decimal.RequireFromString("25.50"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, txs.appends)
}
