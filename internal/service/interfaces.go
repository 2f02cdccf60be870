package service

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/pin-ledger/internal/domain"
)

type ledgerAccountRepo interface {
	Exists(ctx context.Context, creds domain.Credentials) (bool, error)
	Delete(ctx context.Context, creds domain.Credentials) (bool, error)
}

type transactionRepo interface {
	Append(ctx context.Context, tx *sql.Tx, accountNumber int, txType domain.TransactionType, balance decimal.Decimal) (*domain.Transaction, error)
	LatestBalance(ctx context.Context, tx *sql.Tx, accountNumber int) (decimal.Decimal, error)
	ListByAccount(ctx context.Context, accountNumber int) ([]domain.Transaction, error)
}

type transactionTypeRepo interface {
	List(ctx context.Context) ([]domain.TransactionTypeInfo, error)
}

type txRunner interface {
	InTx(ctx context.Context, opts *sql.TxOptions, fn func(tx *sql.Tx) error) error
}

type accountCreator interface {
	Create(ctx context.Context, account *domain.Account) error
}

type numberAllocator interface {
	Allocate(ctx context.Context) (int, error)
}

type initialRecorder interface {
	RecordInitial(ctx context.Context, accountNumber int) error
}
