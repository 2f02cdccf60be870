package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/pin-ledger/internal/domain"
	"github.com/josh-kwaku/pin-ledger/internal/logging"
)

type LedgerOptions struct {
	// Serializable wraps the balance read and the append of each posting in
	// one serializable transaction. Without it two concurrent postings on
	// the same account can both build on the same balance.
	Serializable         bool
	SerializationRetries int
}

// Ledger owns the transaction log: credential checks, derived balances and
// the append-only postings. Balances are never cached; every read goes to
// the newest ledger row.
type Ledger struct {
	accounts     ledgerAccountRepo
	transactions transactionRepo
	types        transactionTypeRepo
	store        txRunner
	opts         LedgerOptions

	// beforeAppend runs between the balance read and the append of a posting.
	beforeAppend func()
}

func NewLedger(
	accounts ledgerAccountRepo,
	transactions transactionRepo,
	types transactionTypeRepo,
	store txRunner,
	opts LedgerOptions,
) *Ledger {
	if opts.SerializationRetries < 1 {
		opts.SerializationRetries = 1
	}
	return &Ledger{
		accounts:     accounts,
		transactions: transactions,
		types:        types,
		store:        store,
		opts:         opts,
	}
}

// Lookup reports whether an account matches both the number and the PIN.
// Credentials that are not 4-digit integers never reach the store.
func (l *Ledger) Lookup(ctx context.Context, creds domain.Credentials) (bool, error) {
	if !creds.Plausible() {
		return false, nil
	}
	ok, err := l.accounts.Exists(ctx, creds)
	if err != nil {
		return false, fmt.Errorf("Lookup: %w", err)
	}
	return ok, nil
}

// CurrentBalance returns domain.NoAccessBalance when the credentials do not
// match an account.
func (l *Ledger) CurrentBalance(ctx context.Context, creds domain.Credentials) (decimal.Decimal, error) {
	ok, err := l.Lookup(ctx, creds)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("CurrentBalance: %w", err)
	}
	if !ok {
		return domain.NoAccessBalance, nil
	}

	balance, err := l.transactions.LatestBalance(ctx, nil, creds.AccountNumber)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("CurrentBalance: %w", err)
	}
	return balance, nil
}

// Deposit reports false for bad credentials and invalid amounts alike.
// The error is reserved for store failures.
func (l *Ledger) Deposit(ctx context.Context, creds domain.Credentials, amount decimal.Decimal) (bool, error) {
	_, err := l.Post(ctx, creds, domain.TransactionTypeDeposit, amount)
	return l.outcome(ctx, "Deposit", creds, err)
}

// Withdraw reports false for bad credentials, invalid amounts and
// withdrawals that would overdraw. The error is reserved for store failures.
func (l *Ledger) Withdraw(ctx context.Context, creds domain.Credentials, amount decimal.Decimal) (bool, error) {
	_, err := l.Post(ctx, creds, domain.TransactionTypeWithdraw, amount)
	return l.outcome(ctx, "Withdraw", creds, err)
}

// Post appends a deposit or withdrawal and returns the new ledger row.
// Business failures come back as domain.ErrInvalidCredentials,
// domain.ErrInvalidAmount or domain.ErrInsufficientFunds.
func (l *Ledger) Post(ctx context.Context, creds domain.Credentials, txType domain.TransactionType, amount decimal.Decimal) (*domain.Transaction, error) {
	if txType != domain.TransactionTypeDeposit && txType != domain.TransactionTypeWithdraw {
		return nil, fmt.Errorf("Post: %w", domain.ErrInvalidTransactionType)
	}

	ok, err := l.Lookup(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("Post: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("Post: %w", domain.ErrInvalidCredentials)
	}
	if !domain.ValidAmount(amount) {
		return nil, fmt.Errorf("Post: %w", domain.ErrInvalidAmount)
	}

	var t *domain.Transaction
	if l.opts.Serializable {
		t, err = l.postSerializable(ctx, creds.AccountNumber, txType, amount)
	} else {
		t, err = l.post(ctx, nil, creds.AccountNumber, txType, amount)
	}
	if err != nil {
		return nil, fmt.Errorf("Post: %w", err)
	}

	logging.FromContext(ctx).Info("transaction posted",
		"transaction_id", t.ID,
		"account_number", t.AccountNumber,
		"transaction_type", t.Type.String(),
		"amount", amount.String(),
		"balance", t.Balance.String(),
	)
	return t, nil
}

func (l *Ledger) postSerializable(ctx context.Context, accountNumber int, txType domain.TransactionType, amount decimal.Decimal) (*domain.Transaction, error) {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 1; attempt <= l.opts.SerializationRetries; attempt++ {
		var t *domain.Transaction
		err = l.store.InTx(ctx, opts, func(tx *sql.Tx) error {
			var postErr error
			t, postErr = l.post(ctx, tx, accountNumber, txType, amount)
			return postErr
		})
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, domain.ErrSerialization) {
			return nil, fmt.Errorf("postSerializable: %w", err)
		}
		logging.FromContext(ctx).Debug("posting conflicted, retrying",
			"account_number", accountNumber,
			"attempt", attempt,
		)
	}
	return nil, fmt.Errorf("postSerializable: gave up after %d attempts: %w", l.opts.SerializationRetries, err)
}

// post reads the latest balance and appends the resulting one. With a nil tx
// the two statements commit separately.
func (l *Ledger) post(ctx context.Context, tx *sql.Tx, accountNumber int, txType domain.TransactionType, amount decimal.Decimal) (*domain.Transaction, error) {
	balance, err := l.transactions.LatestBalance(ctx, tx, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("post: %w", err)
	}

	next := balance.Add(amount)
	if txType == domain.TransactionTypeWithdraw {
		next = balance.Sub(amount)
	}
	if next.IsNegative() {
		return nil, fmt.Errorf("post: %w", domain.ErrInsufficientFunds)
	}

	if l.beforeAppend != nil {
		l.beforeAppend()
	}

	t, err := l.transactions.Append(ctx, tx, accountNumber, txType, next)
	if err != nil {
		return nil, fmt.Errorf("post: %w", err)
	}
	return t, nil
}

// Delete removes the account row and keeps its ledger history.
func (l *Ledger) Delete(ctx context.Context, creds domain.Credentials) (bool, error) {
	ok, err := l.Lookup(ctx, creds)
	if err != nil {
		return false, fmt.Errorf("Delete: %w", err)
	}
	if !ok {
		return false, nil
	}

	deleted, err := l.accounts.Delete(ctx, creds)
	if err != nil {
		return false, fmt.Errorf("Delete: %w", err)
	}
	if deleted {
		logging.FromContext(ctx).Info("account deleted", "account_number", creds.AccountNumber)
	}
	return deleted, nil
}

// RecordInitial writes the zero-balance opening row of a new account.
func (l *Ledger) RecordInitial(ctx context.Context, accountNumber int) error {
	if _, err := l.transactions.Append(ctx, nil, accountNumber, domain.TransactionTypeInitialBalance, decimal.Zero); err != nil {
		return fmt.Errorf("RecordInitial: %w", err)
	}
	return nil
}

// History returns the account's ledger, newest first.
func (l *Ledger) History(ctx context.Context, creds domain.Credentials) ([]domain.Transaction, error) {
	ok, err := l.Lookup(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("History: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("History: %w", domain.ErrInvalidCredentials)
	}

	entries, err := l.transactions.ListByAccount(ctx, creds.AccountNumber)
	if err != nil {
		return nil, fmt.Errorf("History: %w", err)
	}
	return entries, nil
}

func (l *Ledger) TransactionTypes(ctx context.Context) ([]domain.TransactionTypeInfo, error) {
	types, err := l.types.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("TransactionTypes: %w", err)
	}
	return types, nil
}

// outcome collapses business failures into false.
func (l *Ledger) outcome(ctx context.Context, op string, creds domain.Credentials, err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if isBusinessFailure(err) {
		logging.FromContext(ctx).Debug("action could not be completed",
			"op", op,
			"account_number", creds.AccountNumber,
			"reason", err.Error(),
		)
		return false, nil
	}
	return false, fmt.Errorf("%s: %w", op, err)
}

func isBusinessFailure(err error) bool {
	return errors.Is(err, domain.ErrInvalidCredentials) ||
		errors.Is(err, domain.ErrInvalidAmount) ||
		errors.Is(err, domain.ErrInsufficientFunds)
}
