package database

import (
	"context"

	_ "github.com/lib/pq"
)

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS users (
		id       SERIAL PRIMARY KEY,
		username VARCHAR(80)  NOT NULL UNIQUE,
		email    VARCHAR(120) NOT NULL UNIQUE,
		role     VARCHAR(120) NOT NULL
	)
`

// NewPostgresDatabase creates a new SQLDatabase backed by PostgreSQL.
// It establishes a connection to the database, verifies its availability and creates the users table if needed.
func NewPostgresDatabase(ctx context.Context, connectionString string) (*SQLDatabase, error) {
	db, err := open(ctx, DriverPostgres, connectionString, postgresSchema)
	if err != nil {
		return nil, err
	}

	return &SQLDatabase{
		db: db,
	}, nil
}
