package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/josh-kwaku/pin-ledger/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

var seedTransactionTypes = []domain.TransactionType{
	domain.TransactionTypeInitialBalance,
	domain.TransactionTypeDeposit,
	domain.TransactionTypeWithdraw,
}

// EnsureSchema creates the ledger tables when missing and seeds the
// transaction type dimension when it is empty. Safe to run on every start.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("EnsureSchema: %w", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transaction_types`).Scan(&count); err != nil {
		return fmt.Errorf("EnsureSchema: count transaction types: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, t := range seedTransactionTypes {
		_, err := db.ExecContext(ctx,
			`INSERT INTO transaction_types (transaction_type, description) VALUES ($1, $2)
			ON CONFLICT (transaction_type) DO NOTHING`,
			t, t.String(),
		)
		if err != nil {
			return fmt.Errorf("EnsureSchema: seed %s: %w", t, err)
		}
	}
	return nil
}
