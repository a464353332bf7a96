package menu

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rafiqdev/fieldforce/internal/client/models"
	"github.com/rafiqdev/fieldforce/internal/dbx"
	"github.com/rafiqdev/fieldforce/internal/logging"
	"github.com/rafiqdev/fieldforce/internal/watch"
)

// SQLiteRepository implements Repository. It holds *sql.DB (not DBTX)
// because ReplaceAll needs its own transaction.
type SQLiteRepository struct {
	db      *sql.DB
	log     logging.Logger
	changes *watch.Broadcaster
}

func NewSQLiteRepository(db *sql.DB, log logging.Logger) *SQLiteRepository {
	return &SQLiteRepository{
		db:      db,
		log:     log.With("component", "menu"),
		changes: watch.NewBroadcaster(),
	}
}

func (r *SQLiteRepository) Changes() *watch.Broadcaster {
	return r.changes
}

// ReplaceAll clears the table and inserts the new ordered collection as one
// transaction.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, entries []models.MenuPermissionEntry) error {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM menu_permissions`); err != nil {
			return fmt.Errorf("failed to clear menu permissions: %w", err)
		}
		for _, e := range entries {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO menu_permissions (title, sequence) VALUES (?, ?)`,
				e.Title, e.Sequence)
			if err != nil {
				return fmt.Errorf("failed to insert menu permission %q: %w", e.Title, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.changes.Notify()
	return nil
}

// List returns all entries ordered by sequence.
func (r *SQLiteRepository) List(ctx context.Context) ([]models.MenuPermissionEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT title, sequence FROM menu_permissions ORDER BY sequence ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to select menu permissions: %w", err)
	}
	defer rows.Close()

	var result []models.MenuPermissionEntry
	for rows.Next() {
		var item models.MenuPermissionEntry
		if err := rows.Scan(&item.Title, &item.Sequence); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Observe emits the current collection immediately, then again after every
// replacement, until ctx is cancelled. Read failures inside the stream are
// logged and skipped; the stream itself stays alive.
func (r *SQLiteRepository) Observe(ctx context.Context) <-chan []models.MenuPermissionEntry {
	out := make(chan []models.MenuPermissionEntry, 1)
	signals := r.changes.Subscribe(ctx)

	emit := func() {
		entries, err := r.List(ctx)
		if err != nil {
			if ctx.Err() == nil {
				r.log.Warn(ctx, "observe: listing menu permissions failed", "error", err)
			}
			return
		}
		select {
		case out <- entries:
		case <-ctx.Done():
		}
	}

	go func() {
		defer close(out)
		emit()
		for {
			select {
			case _, ok := <-signals:
				if !ok {
					return
				}
				emit()
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
