package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/PicoEvanZhu/workdeck/internal/db"
)

// SQLitePrefsRepo implements PrefsRepo using a SQLite database.
type SQLitePrefsRepo struct {
	db db.DBTX
}

// NewSQLitePrefsRepo creates a new SQLitePrefsRepo.
func NewSQLitePrefsRepo(conn db.DBTX) *SQLitePrefsRepo {
	return &SQLitePrefsRepo{db: conn}
}

func (r *SQLitePrefsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM prefs WHERE key = ?`, key)

	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("scanning pref %q: %w", key, err)
	}
	return value, true, nil
}

func (r *SQLitePrefsRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO prefs (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value,
		updated_at = strftime('%Y-%m-%dT%H:%M:%fZ','now')`, key, value)
	if err != nil {
		return fmt.Errorf("storing pref %q: %w", key, err)
	}
	return nil
}

func (r *SQLitePrefsRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM prefs WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting pref %q: %w", key, err)
	}
	return nil
}
