package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const schema = `
CREATE TABLE IF NOT EXISTS pets (
	id            TEXT PRIMARY KEY,
	owner_user_id TEXT NOT NULL,
	created_at_ns INTEGER NOT NULL,
	payload       BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS pets_owner_idx ON pets (owner_user_id, created_at_ns);

CREATE TABLE IF NOT EXISTS vaccine_tracking (
	id            TEXT PRIMARY KEY,
	pet_id        TEXT NOT NULL,
	tracking_type TEXT NOT NULL,
	lifecycle     TEXT NOT NULL,
	version       INTEGER NOT NULL DEFAULT 0,
	created_at_ns INTEGER NOT NULL,
	payload       BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS vaccine_tracking_pet_idx ON vaccine_tracking (pet_id, created_at_ns);
CREATE UNIQUE INDEX IF NOT EXISTS vaccine_tracking_one_active
	ON vaccine_tracking (pet_id, tracking_type) WHERE lifecycle = 'ACTIVE';
`

// Open abre (o crea) la base SQLite en path y aplica el schema.
// Usa una sola conexión: SQLite admite un escritor a la vez y ":memory:" es por conexión.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		path = "pet-health-record.db"
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlitedrv.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT, sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}
