package repository

import (
	"context"
	"fmt"

	"github.com/josh-kwaku/pin-ledger/internal/domain"
)

type TransactionTypeRepository struct {
	store *Store
}

func NewTransactionTypeRepository(store *Store) *TransactionTypeRepository {
	return &TransactionTypeRepository{store: store}
}

func (r *TransactionTypeRepository) List(ctx context.Context) ([]domain.TransactionTypeInfo, error) {
	var types []domain.TransactionTypeInfo
	err := r.store.Query(ctx, nil,
		func(s scanner) error {
			var t domain.TransactionTypeInfo
			if err := s.Scan(&t.Type, &t.Description); err != nil {
				return err
			}
			types = append(types, t)
			return nil
		},
		`SELECT transaction_type, description FROM transaction_types ORDER BY transaction_type`,
	)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return types, nil
}
