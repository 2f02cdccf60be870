package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/pin-ledger/internal/domain"
)

const transactionColumns = `transaction_id, account_number, transaction_type,
	transaction_date, account_balance`

type TransactionRepository struct {
	store *Store
}

func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

// Append inserts a ledger row carrying the resulting balance. The store
// assigns the id and the timestamp.
func (r *TransactionRepository) Append(ctx context.Context, tx *sql.Tx, accountNumber int, txType domain.TransactionType, balance decimal.Decimal) (*domain.Transaction, error) {
	var t domain.Transaction
	err := r.store.QueryRow(ctx, tx,
		func(s scanner) error { return scanTransaction(s, &t) },
		`INSERT INTO transactions (account_number, transaction_type, account_balance)
		VALUES ($1, $2, $3)
		RETURNING `+transactionColumns,
		accountNumber, txType, balance,
	)
	if err != nil {
		return nil, fmt.Errorf("Append: %w", err)
	}
	return &t, nil
}

// LatestBalance derives the current balance from the newest ledger row.
// Rows sharing a timestamp are ordered by id. An account with no rows
// yields domain.ErrNotFound.
func (r *TransactionRepository) LatestBalance(ctx context.Context, tx *sql.Tx, accountNumber int) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.store.QueryRow(ctx, tx,
		func(s scanner) error { return s.Scan(&balance) },
		`SELECT account_balance FROM transactions
		WHERE account_number = $1
		ORDER BY transaction_date DESC, transaction_id DESC
		LIMIT 1`,
		accountNumber,
	)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("LatestBalance: %w", err)
	}
	return balance, nil
}

// ListByAccount returns every ledger row for the account number, newest
// first, whether or not the account still exists.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountNumber int) ([]domain.Transaction, error) {
	var entries []domain.Transaction
	err := r.store.Query(ctx, nil,
		func(s scanner) error {
			var t domain.Transaction
			if err := scanTransaction(s, &t); err != nil {
				return err
			}
			entries = append(entries, t)
			return nil
		},
		`SELECT `+transactionColumns+` FROM transactions
		WHERE account_number = $1
		ORDER BY transaction_date DESC, transaction_id DESC`,
		accountNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByAccount: %w", err)
	}
	return entries, nil
}

func scanTransaction(s scanner, t *domain.Transaction) error {
	return s.Scan(&t.ID, &t.AccountNumber, &t.Type, &t.Date, &t.Balance)
}
