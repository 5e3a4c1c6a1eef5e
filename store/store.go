// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/setlist/db"
)

var (
	// ErrNotFound reports that no row matched the lookup key.
	ErrNotFound = errors.New("not found")
	// ErrConflict reports that an insert collided with an existing natural key.
	ErrConflict = errors.New("natural key already exists")
)

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries holds every store operation, bound to a connection or a transaction.
type Queries struct {
	q       Querier
	dialect db.Dialect
	newID   func() string
}

// Store is the entry point: its embedded Queries run outside a transaction,
// InTx hands out a transaction-bound Queries.
type Store struct {
	*Queries
	conn *sql.DB
}

// New creates a Store over conn. newID assigns primary keys on insert.
func New(conn *sql.DB, dialect db.Dialect, newID func() string) *Store {
	return &Store{
		Queries: &Queries{q: conn, dialect: dialect, newID: newID},
		conn:    conn,
	}
}

// InTx runs fn inside a single transaction. It commits when fn returns nil
// and rolls back otherwise.
func (s *Store) InTx(ctx context.Context, fn func(q *Queries) error) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&Queries{q: tx, dialect: s.dialect, newID: s.newID}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (q *Queries) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return q.q.ExecContext(ctx, db.Rebind(q.dialect, query), args...)
}

func (q *Queries) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return q.q.QueryContext(ctx, db.Rebind(q.dialect, query), args...)
}

func (q *Queries) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return q.q.QueryRowContext(ctx, db.Rebind(q.dialect, query), args...)
}

// insertOnce runs an INSERT ... ON CONFLICT DO NOTHING and maps a skipped
// row to ErrConflict.
func (q *Queries) insertOnce(ctx context.Context, what, query string, args ...any) error {
	res, err := q.exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert %s: %w", what, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", what, ErrConflict)
	}
	return nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
