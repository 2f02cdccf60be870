package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/josh-kwaku/pin-ledger/internal/domain"
)

const accountColumns = `account_number, pin_code, holder_name, email, address,
	phone_number, birth_date`

type AccountRepository struct {
	store *Store
}

func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.store.Exec(ctx, nil,
		`INSERT INTO accounts (`+accountColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		account.AccountNumber, account.PinCode, account.HolderName, account.Email,
		account.Address, account.PhoneNumber, account.BirthDate,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// Exists reports whether an account row matches both the number and the PIN.
func (r *AccountRepository) Exists(ctx context.Context, creds domain.Credentials) (bool, error) {
	var one int
	err := r.store.QueryRow(ctx, nil,
		func(s scanner) error { return s.Scan(&one) },
		`SELECT 1 FROM accounts WHERE account_number = $1 AND pin_code = $2`,
		creds.AccountNumber, creds.PinCode,
	)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("Exists: %w", err)
	}
	return true, nil
}

// Delete removes the account row matching the credentials and reports
// whether one was removed. Ledger rows are left in place.
func (r *AccountRepository) Delete(ctx context.Context, creds domain.Credentials) (bool, error) {
	n, err := r.store.Exec(ctx, nil,
		`DELETE FROM accounts WHERE account_number = $1 AND pin_code = $2`,
		creds.AccountNumber, creds.PinCode,
	)
	if err != nil {
		return false, fmt.Errorf("Delete: %w", err)
	}
	return n > 0, nil
}
