package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rafiqdev/fieldforce/internal/dbx"
	"github.com/rafiqdev/fieldforce/internal/watch"
)

// SQLiteRepository implements Repository over a key/value table.
type SQLiteRepository struct {
	db      dbx.DBTX
	changes *watch.Broadcaster
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, changes: watch.NewBroadcaster()}
}

func (r *SQLiteRepository) Changes() *watch.Broadcaster {
	return r.changes
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preference[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Put(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to put preference[%s]: %w", key, err)
	}

	r.changes.Notify()
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM preferences WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete preference[%s]: %w", key, err)
	}

	r.changes.Notify()
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM preferences`)
	if err != nil {
		return fmt.Errorf("failed to clear preferences: %w", err)
	}

	r.changes.Notify()
	return nil
}
