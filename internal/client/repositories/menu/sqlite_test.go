package menu

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafiqdev/fieldforce/internal/client/models"
	"github.com/rafiqdev/fieldforce/internal/logging"

	_ "modernc.org/sqlite"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE menu_permissions (
  id       INTEGER PRIMARY KEY AUTOINCREMENT,
  title    TEXT NOT NULL,
  sequence INTEGER NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func entries(titles ...string) []models.MenuPermissionEntry {
	out := make([]models.MenuPermissionEntry, 0, len(titles))
	for i, title := range titles {
		out = append(out, models.MenuPermissionEntry{Title: title, Sequence: i})
	}
	return out
}

func TestReplaceAll_ThenListOrdered(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), testLogger())
	ctx := context.Background()

	err := r.ReplaceAll(ctx, []models.MenuPermissionEntry{
		{Title: "Post Order", Sequence: 2},
		{Title: "Attendance", Sequence: 1},
	})
	require.NoError(t, err)

	got, err := r.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []models.MenuPermissionEntry{
		{Title: "Attendance", Sequence: 1},
		{Title: "Post Order", Sequence: 2},
	}, got)
}

func TestReplaceAll_IsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), testLogger())
	ctx := context.Background()

	in := entries("Draft Order", "Post Order")
	require.NoError(t, r.ReplaceAll(ctx, in))
	require.NoError(t, r.ReplaceAll(ctx, in))

	got, err := r.List(ctx)
	require.NoError(t, err)
	require.Equal(t, in, got) // no duplication: replace-all clears first
}

func TestReplaceAll_EmptyClearsTable(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), testLogger())
	ctx := context.Background()

	require.NoError(t, r.ReplaceAll(ctx, entries("Leave")))
	require.NoError(t, r.ReplaceAll(ctx, nil))

	got, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestObserve_EmitsCurrentStateImmediately(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, r.ReplaceAll(ctx, entries("Attendance")))

	ch := r.Observe(ctx)
	select {
	case got := <-ch:
		require.Equal(t, entries("Attendance"), got)
	case <-time.After(time.Second):
		t.Fatal("no initial emission")
	}
}

func TestObserve_EmitsAgainOnReplacement(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := r.Observe(ctx)

	// drain the initial (empty) emission
	select {
	case got := <-ch:
		assert.Empty(t, got)
	case <-time.After(time.Second):
		t.Fatal("no initial emission")
	}

	require.NoError(t, r.ReplaceAll(ctx, entries("Post Order")))

	select {
	case got := <-ch:
		require.Equal(t, entries("Post Order"), got)
	case <-time.After(time.Second):
		t.Fatal("no emission after replacement")
	}
}

func TestObserve_ClosesOnCancel(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), testLogger())
	ctx, cancel := context.WithCancel(context.Background())

	ch := r.Observe(ctx)
	<-ch // initial emission
	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}
