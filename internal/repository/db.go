package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/josh-kwaku/pin-ledger/internal/domain"
)

const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
)

type scanner interface {
	Scan(dest ...any) error
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store executes parameterized statements against Postgres. A nil tx runs
// the statement on the pool, where it commits on its own before the call
// returns. A non-nil tx runs it inside that transaction.
type Store struct {
	pool *sql.DB
}

func NewStore(pool *sql.DB) *Store {
	return &Store{pool: pool}
}

func (s *Store) on(tx *sql.Tx) querier {
	if tx != nil {
		return tx
	}
	return s.pool
}

// Exec runs a statement that returns no rows and reports the rows affected.
func (s *Store) Exec(ctx context.Context, tx *sql.Tx, query string, args ...any) (int64, error) {
	res, err := s.on(tx).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("Exec: %w", translate(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("Exec: rows affected: %w", err)
	}
	return n, nil
}

// Query calls scan once per result row.
func (s *Store) Query(ctx context.Context, tx *sql.Tx, scan func(scanner) error, query string, args ...any) error {
	rows, err := s.on(tx).QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("Query: %w", translate(err))
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("Query: scan: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("Query: rows: %w", translate(err))
	}
	return nil
}

// QueryRow scans a single row. No row yields domain.ErrNotFound.
func (s *Store) QueryRow(ctx context.Context, tx *sql.Tx, scan func(scanner) error, query string, args ...any) error {
	err := scan(s.on(tx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("QueryRow: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("QueryRow: %w", translate(err))
	}
	return nil
}

// InsertID runs an INSERT ... RETURNING <id> statement and returns the id.
// lib/pq does not implement LastInsertId, so the id comes back as a row.
func (s *Store) InsertID(ctx context.Context, tx *sql.Tx, query string, args ...any) (int64, error) {
	var id int64
	if err := s.on(tx).QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("InsertID: %w", translate(err))
	}
	return id, nil
}

// InTx runs fn inside one transaction, committing when fn returns nil.
func (s *Store) InTx(ctx context.Context, opts *sql.TxOptions, fn func(tx *sql.Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("InTx: begin: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return fmt.Errorf("InTx: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("InTx: commit: %w", translate(err))
	}
	return nil
}

// translate maps the Postgres error codes callers react to onto domain errors.
func translate(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %s", domain.ErrUniqueViolation, pqErr.Constraint)
	case pgSerializationFailure:
		return fmt.Errorf("%w: %s", domain.ErrSerialization, pqErr.Message)
	default:
		return err
	}
}
