package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/pin-ledger/internal/domain"
	"github.com/josh-kwaku/pin-ledger/internal/repository"
	"github.com/josh-kwaku/pin-ledger/internal/testutil"
)

func TestEnsureSchema_IdempotentSeed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repository.EnsureSchema(ctx, db))
	assert.Equal(t, 3, testutil.CountRows(t, db, "transaction_types"))

	types, err := repository.NewTransactionTypeRepository(repository.NewStore(db)).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.TransactionTypeInfo{
		{Type: domain.TransactionTypeInitialBalance, Description: "Initial Balance"},
		{Type: domain.TransactionTypeDeposit, Description: "Deposit"},
		{Type: domain.TransactionTypeWithdraw, Description: "Withdraw"},
	}, types)
}

func TestRegistryClaim_UniqueViolation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	registry := repository.NewRegistryRepository(repository.NewStore(db))
	ctx := context.Background()

	first, err := registry.Claim(ctx, 4821)
	require.NoError(t, err)
	assert.Positive(t, first)

	_, err = registry.Claim(ctx, 4821)
	require.ErrorIs(t, err, domain.ErrUniqueViolation)

	second, err := registry.Claim(ctx, 4822)
	require.NoError(t, err)
	assert.Greater(t, second, first)
}

func TestAccountRepository_ExistsAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	accounts := repository.NewAccountRepository(repository.NewStore(db))
	ctx := context.Background()

	seeded := testutil.SeedAccount(t, db, 4821, 1234)

	ok, err := accounts.Exists(ctx, seeded.Credentials())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = accounts.Exists(ctx, domain.Credentials{AccountNumber: 4821, PinCode: 4321})
	require.NoError(t, err)
	assert.False(t, ok)

	got, found := testutil.LoadAccount(t, db, 4821)
	require.True(t, found)
	assert.Equal(t, seeded.HolderName, got.HolderName)
	assert.Equal(t, seeded.BirthDate.Format("2006-01-02"), got.BirthDate.Format("2006-01-02"))

	deleted, err := accounts.Delete(ctx, domain.Credentials{AccountNumber: 4821, PinCode: 4321})
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = accounts.Delete(ctx, seeded.Credentials())
	require.NoError(t, err)
	assert.True(t, deleted)

	_, found = testutil.LoadAccount(t, db, 4821)
	assert.False(t, found)
}

func TestAccountRepository_DuplicateNumber(t *testing.T) {
	db := testutil.SetupTestDB(t)
	accounts := repository.NewAccountRepository(repository.NewStore(db))

	seeded := testutil.SeedAccount(t, db, 4821, 1234)
	err := accounts.Create(context.Background(), seeded)
	require.ErrorIs(t, err, domain.ErrUniqueViolation)
}

func TestTransactionRepository_LatestBalance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	txs := repository.NewTransactionRepository(repository.NewStore(db))
	ctx := context.Background()

	_, err := txs.LatestBalance(ctx, nil, 4821)
	require.ErrorIs(t, err, domain.ErrNotFound)

	testutil.SeedAccount(t, db, 4821, 1234)

	_, err = txs.Append(ctx, nil, 4821, domain.TransactionTypeDeposit, decimal.NewFromInt(500))
	require.NoError(t, err)
	last, err := txs.Append(ctx, nil, 4821, domain.TransactionTypeWithdraw, testutil.Dec(t, "299.50"))
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionTypeWithdraw, last.Type)
	assert.False(t, last.Date.IsZero())

	balance, err := txs.LatestBalance(ctx, nil, 4821)
	require.NoError(t, err)
	assert.True(t, testutil.Dec(t, "299.50").Equal(balance), "got %s", balance)

	entries, err := txs.ListByAccount(ctx, 4821)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, last.ID, entries[0].ID)
	assert.Equal(t, domain.TransactionTypeInitialBalance, entries[2].Type)
}

func TestTransactionRepository_RejectsNegativeBalance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	txs := repository.NewTransactionRepository(repository.NewStore(db))

	_, err := txs.Append(context.Background(), nil, 4821, domain.TransactionTypeWithdraw, decimal.NewFromInt(-1))
	require.Error(t, err)
	assert.Equal(t, 0, testutil.CountTransactions(t, db, 4821))
}

func TestStoreInTx_RollsBackOnError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := repository.NewStore(db)
	txs := repository.NewTransactionRepository(store)
	ctx := context.Background()

	boom := errors.New("boom")
	err := store.InTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, func(tx *sql.Tx) error {
		if _, err := txs.Append(ctx, tx, 4821, domain.TransactionTypeDeposit, decimal.NewFromInt(10)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, testutil.CountTransactions(t, db, 4821))

	err = store.InTx(ctx, nil, func(tx *sql.Tx) error {
		_, err := txs.Append(ctx, tx, 4821, domain.TransactionTypeDeposit, decimal.NewFromInt(10))
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, testutil.CountTransactions(t, db, 4821))
}
