package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const (
	// DriverPostgres selects the PostgreSQL store.
	DriverPostgres = "postgres"
	// DriverSQLite selects the SQLite store.
	DriverSQLite = "sqlite3"
)

// ErrUnsupportedDriver is returned when the configured driver is neither PostgreSQL nor SQLite.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Database is the store handle shared by the repositories.
// Every call borrows a pooled connection and releases it once the statement completes.
type Database interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) (*sql.Row, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	PingContext(ctx context.Context) error
	Close() error
}

// NewDatabase opens the store for the given driver and makes sure the users table exists.
func NewDatabase(ctx context.Context, driver, connectionString string) (*SQLDatabase, error) {
	switch driver {
	case DriverPostgres:
		return NewPostgresDatabase(ctx, connectionString)
	case DriverSQLite:
		return NewSQLiteDatabase(ctx, connectionString)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// SQLDatabase implements the Database interface on top of database/sql.
type SQLDatabase struct {
	db *sql.DB
}

func open(ctx context.Context, driver, connectionString, schema string) (*sql.DB, error) {
	db, err := sql.Open(driver, connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to check database connection: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create users table: %w", err)
	}

	return db, nil
}

// ExecContext executes a query that doesn't return rows.
func (sdb *SQLDatabase) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return sdb.db.ExecContext(ctx, query, args...)
}

// QueryRowContext retrieves a single row.
func (sdb *SQLDatabase) QueryRowContext(ctx context.Context, query string, args ...any) (*sql.Row, error) {
	return sdb.db.QueryRowContext(ctx, query, args...), nil
}

// QueryContext executes a query that returns multiple rows.
func (sdb *SQLDatabase) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return sdb.db.QueryContext(ctx, query, args...)
}

// PingContext verifies the store is still reachable.
func (sdb *SQLDatabase) PingContext(ctx context.Context) error {
	return sdb.db.PingContext(ctx)
}

// Close closes the database connection.
func (sdb *SQLDatabase) Close() error {
	if err := sdb.db.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}
