package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables para MVP (ajustable luego)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// schema es idempotente; se aplica al arrancar con EnsureSchema.
const schema = `
CREATE TABLE IF NOT EXISTS pets (
	id            TEXT PRIMARY KEY,
	owner_user_id TEXT NOT NULL,
	name          TEXT NOT NULL,
	species       TEXT NOT NULL,
	breed         TEXT NOT NULL DEFAULT '',
	sex           TEXT NOT NULL DEFAULT 'unknown',
	birth_date    DATE,
	microchip     TEXT NOT NULL DEFAULT '',
	notes         TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS pets_owner_idx ON pets (owner_user_id);

CREATE TABLE IF NOT EXISTS vaccine_tracking (
	id             TEXT PRIMARY KEY,
	pet_id         TEXT NOT NULL,
	species        TEXT NOT NULL,
	tracking_type  TEXT NOT NULL,
	lifecycle      TEXT NOT NULL,
	initial_series JSONB,
	history        JSONB NOT NULL DEFAULT '[]'::jsonb,
	version        INTEGER NOT NULL DEFAULT 0,
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL,
	archived_at    TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS vaccine_tracking_pet_idx ON vaccine_tracking (pet_id);
CREATE UNIQUE INDEX IF NOT EXISTS vaccine_tracking_one_active
	ON vaccine_tracking (pet_id, tracking_type) WHERE lifecycle = 'ACTIVE';
`

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
