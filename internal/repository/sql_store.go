package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// queryer is satisfied by both *sql.DB and *sql.Tx so that read helpers
// can run inside or outside a transaction.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLStore is the MySQL implementation of Store.  Row level locking comes
// from `SELECT ... FOR UPDATE` on auction_items; the lock is held until
// the owning transaction commits or rolls back.  All timestamps are
// stored and compared in UTC.
type SQLStore struct {
	db *sql.DB
}

var (
	_ Store = (*SQLStore)(nil)
	_ Tx    = (*sqlTx)(nil)
)

// NewSQLStore returns a new SQLStore bound to the provided database.
func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

// DB exposes the underlying handle, e.g. for health checks.
func (s *SQLStore) DB() *sql.DB { return s.db }

// Begin opens a new transaction on the default isolation level.
func (s *SQLStore) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqlTx{tx: tx}, nil
}

// Now returns the database clock so that expiry checks never depend on
// the application host's clock.
func (s *SQLStore) Now(ctx context.Context) (time.Time, error) {
	return nowOf(ctx, s.db)
}

// sqlTx implements Tx on top of *sql.Tx.
type sqlTx struct {
	tx *sql.Tx
}

func (t *sqlTx) Commit() error   { return t.tx.Commit() }
func (t *sqlTx) Rollback() error { return t.tx.Rollback() }

func (t *sqlTx) Now(ctx context.Context) (time.Time, error) {
	return nowOf(ctx, t.tx)
}

func nowOf(ctx context.Context, q queryer) (time.Time, error) {
	var now time.Time
	if err := q.QueryRowContext(ctx, `SELECT UTC_TIMESTAMP(6)`).Scan(&now); err != nil {
		return time.Time{}, err
	}
	return now.UTC(), nil
}

// notFound converts sql.ErrNoRows into ErrNotFound and passes any other
// error through unchanged.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func nullUint(v sql.NullInt64) *uint64 {
	if !v.Valid {
		return nil
	}
	u := uint64(v.Int64)
	return &u
}

func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	i := v.Int64
	return &i
}
