// Package localdb opens the client's embedded SQLite database, runs the
// goose migrations and wires up the repositories.
package localdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/rafiqdev/fieldforce/internal/client/migrations"
	"github.com/rafiqdev/fieldforce/internal/client/repositories/menu"
	"github.com/rafiqdev/fieldforce/internal/client/repositories/prefs"
	"github.com/rafiqdev/fieldforce/internal/client/repositories/session"
	"github.com/rafiqdev/fieldforce/internal/logging"
)

// Repositories bundles the three local stores plus the shared handle.
type Repositories struct {
	Session *session.SQLiteRepository
	Prefs   *prefs.Store
	Menu    *menu.SQLiteRepository
	DB      *sql.DB
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

func Init(ctx context.Context, dsn string, log logging.Logger) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		Session: session.NewSQLiteRepository(db),
		Prefs:   prefs.NewStore(prefs.NewSQLiteRepository(db)),
		Menu:    menu.NewSQLiteRepository(db, log),
		DB:      db,
	}, nil
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}
