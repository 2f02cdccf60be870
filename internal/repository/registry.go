package repository

import (
	"context"
	"fmt"
)

type RegistryRepository struct {
	store *Store
}

func NewRegistryRepository(store *Store) *RegistryRepository {
	return &RegistryRepository{store: store}
}

// Claim reserves an account number and returns the registry row id. A number
// that is already taken fails with domain.ErrUniqueViolation.
func (r *RegistryRepository) Claim(ctx context.Context, accountNumber int) (int64, error) {
	id, err := r.store.InsertID(ctx, nil,
		`INSERT INTO account_number_registry (account_number) VALUES ($1) RETURNING id`,
		accountNumber,
	)
	if err != nil {
		return 0, fmt.Errorf("Claim: %w", err)
	}
	return id, nil
}
