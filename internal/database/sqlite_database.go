package database

import (
	"context"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS users (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		username VARCHAR(80)  NOT NULL UNIQUE,
		email    VARCHAR(120) NOT NULL UNIQUE,
		role     VARCHAR(120) NOT NULL
	)
`

// NewSQLiteDatabase creates a new SQLDatabase backed by a SQLite file or shared in-memory database.
func NewSQLiteDatabase(ctx context.Context, connectionString string) (*SQLDatabase, error) {
	db, err := open(ctx, DriverSQLite, connectionString, sqliteSchema)
	if err != nil {
		return nil, err
	}

	// SQLite allows a single writer; one connection also keeps a shared in-memory database alive.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout=5000`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLDatabase{
		db: db,
	}, nil
}
