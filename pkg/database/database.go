package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// DatabaseQueryer is satisfied by both *pgxpool.Pool and pgx.Tx so that
// repositories can run inside or outside a transaction unchanged.
type DatabaseQueryer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func ConnectDB(connString string) *pgxpool.Pool {
	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		logrus.Fatalf("connecting to database: %v", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		logrus.Fatalf("pinging database: %v", err)
	}

	return pool
}

// Migrate creates the notes table. Timestamps default to the database
// clock; the application never supplies its own.
func Migrate(ctx context.Context, db DatabaseQueryer) error {
	_, err := db.Exec(
		ctx,
		`CREATE TABLE IF NOT EXISTS notes (
			id         uuid PRIMARY KEY,
			user_id    text NOT NULL,
			title      text NOT NULL,
			content    text NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now(),
			updated_at timestamptz NOT NULL DEFAULT now()
		)`,
	)
	if err != nil {
		return err
	}

	_, err = db.Exec(
		ctx,
		`CREATE INDEX IF NOT EXISTS notes_user_id_created_at_idx
			ON notes (user_id, created_at DESC)`,
	)
	return err
}
