package testutil

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/pin-ledger/internal/domain"
)

// SeedAccount writes an account row and its initial zero-balance ledger row
// directly, bypassing the allocator.
func SeedAccount(t *testing.T, db *sql.DB, accountNumber, pinCode int) *domain.Account {
	t.Helper()

	a := &domain.Account{
		AccountNumber: accountNumber,
		PinCode:       pinCode,
		HolderName:    "Seeded Holder",
		Email:         "seeded@example.com",
		Address:       "1 Herzl St, Tel Aviv",
		PhoneNumber:   "0521234567",
		BirthDate:     time.Date(1985, time.April, 2, 0, 0, 0, 0, time.UTC),
	}

	SeedRegistry(t, db, accountNumber)

	_, err := db.Exec(
		`INSERT INTO accounts (account_number, pin_code, holder_name, email, address, phone_number, birth_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.AccountNumber, a.PinCode, a.HolderName, a.Email, a.Address, a.PhoneNumber, a.BirthDate,
	)
	if err != nil {
		t.Fatalf("seed account %d: %v", accountNumber, err)
	}

	_, err = db.Exec(
		`INSERT INTO transactions (account_number, transaction_type, account_balance) VALUES ($1, 0, 0)`,
		accountNumber,
	)
	if err != nil {
		t.Fatalf("seed initial transaction %d: %v", accountNumber, err)
	}
	return a
}

func SeedRegistry(t *testing.T, db *sql.DB, accountNumbers ...int) {
	t.Helper()

	for _, n := range accountNumbers {
		_, err := db.Exec(
			`INSERT INTO account_number_registry (account_number) VALUES ($1)
			 ON CONFLICT (account_number) DO NOTHING`, n,
		)
		if err != nil {
			t.Fatalf("seed registry %d: %v", n, err)
		}
	}
}

// LoadAccount reads the stored account row, reporting false when there is none.
func LoadAccount(t *testing.T, db *sql.DB, accountNumber int) (*domain.Account, bool) {
	t.Helper()

	var a domain.Account
	err := db.QueryRow(
		`SELECT account_number, pin_code, holder_name, email, address, phone_number, birth_date
		 FROM accounts WHERE account_number = $1`, accountNumber,
	).Scan(&a.AccountNumber, &a.PinCode, &a.HolderName, &a.Email, &a.Address, &a.PhoneNumber, &a.BirthDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false
	}
	if err != nil {
		t.Fatalf("load account %d: %v", accountNumber, err)
	}
	return &a, true
}

func CountTransactions(t *testing.T, db *sql.DB, accountNumber int) int {
	t.Helper()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM transactions WHERE account_number = $1`, accountNumber).Scan(&count)
	if err != nil {
		t.Fatalf("count transactions for %d: %v", accountNumber, err)
	}
	return count
}

func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&count); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return count
}

// TransactionTypes lists the ledger row types for the account in insertion order.
func TransactionTypes(t *testing.T, db *sql.DB, accountNumber int) []domain.TransactionType {
	t.Helper()

	rows, err := db.Query(
		`SELECT transaction_type FROM transactions WHERE account_number = $1 ORDER BY transaction_id`,
		accountNumber,
	)
	if err != nil {
		t.Fatalf("list transaction types for %d: %v", accountNumber, err)
	}
	defer rows.Close()

	var types []domain.TransactionType
	for rows.Next() {
		var tt domain.TransactionType
		if err := rows.Scan(&tt); err != nil {
			t.Fatalf("scan transaction type: %v", err)
		}
		types = append(types, tt)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}
	return types
}

func Dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}
