package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rafiqdev/fieldforce/internal/client/api"
	"github.com/rafiqdev/fieldforce/internal/client/repositories/menu"
	"github.com/rafiqdev/fieldforce/internal/client/repositories/prefs"
	"github.com/rafiqdev/fieldforce/internal/client/repositories/session"
	"github.com/rafiqdev/fieldforce/internal/logging"

	_ "modernc.org/sqlite"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type stores struct {
	sessions *session.SQLiteRepository
	prefs    *prefs.Store
	menu     *menu.SQLiteRepository
}

func newTestStores(t *testing.T) *stores {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session (
  id              INTEGER PRIMARY KEY CHECK (id = 1),
  emp_id          TEXT NOT NULL,
  emp_name        TEXT NOT NULL,
  mobile_no       TEXT NOT NULL,
  phone_number    TEXT NOT NULL,
  fcm_token       TEXT NOT NULL,
  password_digest TEXT NOT NULL,
  otp             TEXT NOT NULL,
  access_token    TEXT NOT NULL,
  refresh_token   TEXT NOT NULL,
  is_signed_up    BOOLEAN NOT NULL,
  is_logged_in    BOOLEAN NOT NULL,
  is_first_sync   BOOLEAN NOT NULL,
  is_first_login  BOOLEAN NOT NULL,
  user_role_type  TEXT NOT NULL
);
CREATE TABLE preferences (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
CREATE TABLE menu_permissions (
  id       INTEGER PRIMARY KEY AUTOINCREMENT,
  title    TEXT NOT NULL,
  sequence INTEGER NOT NULL
);`)
	require.NoError(t, err)

	return &stores{
		sessions: session.NewSQLiteRepository(db),
		prefs:    prefs.NewStore(prefs.NewSQLiteRepository(db)),
		menu:     menu.NewSQLiteRepository(db, testLogger()),
	}
}

var errUnexpectedCall = errors.New("unexpected api call")

// fakeClient implements api.Client with pluggable behaviors. A nil behavior
// fails the call, so tests also assert what must not be called.
type fakeClient struct {
	loginFn     func(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error)
	validateFn  func(ctx context.Context, empID, otp int) (bool, error)
	firstSyncFn func(ctx context.Context, empID string) (*api.FirstSyncData, error)
	menuFn      func(ctx context.Context) ([]api.MenuPermissionDTO, error)
	fcmFn       func(ctx context.Context, token string) error
	noticesFn   func(ctx context.Context, empID string) ([]api.NoticeDTO, error)

	accessToken  string
	refreshToken string
}

func (f *fakeClient) Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
	if f.loginFn == nil {
		return nil, errUnexpectedCall
	}
	return f.loginFn(ctx, req)
}

func (f *fakeClient) ValidateOTP(ctx context.Context, empID, otp int) (bool, error) {
	if f.validateFn == nil {
		return false, errUnexpectedCall
	}
	return f.validateFn(ctx, empID, otp)
}

func (f *fakeClient) FirstSync(ctx context.Context, empID string) (*api.FirstSyncData, error) {
	if f.firstSyncFn == nil {
		return nil, errUnexpectedCall
	}
	return f.firstSyncFn(ctx, empID)
}

func (f *fakeClient) AppMenuPermission(ctx context.Context) ([]api.MenuPermissionDTO, error) {
	if f.menuFn == nil {
		return nil, errUnexpectedCall
	}
	return f.menuFn(ctx)
}

func (f *fakeClient) UpdateFCMToken(ctx context.Context, token string) error {
	if f.fcmFn == nil {
		return errUnexpectedCall
	}
	return f.fcmFn(ctx, token)
}

func (f *fakeClient) Notices(ctx context.Context, empID string) ([]api.NoticeDTO, error) {
	if f.noticesFn == nil {
		return nil, errUnexpectedCall
	}
	return f.noticesFn(ctx, empID)
}

func (f *fakeClient) SetTokens(accessToken, refreshToken string) {
	f.accessToken = accessToken
	f.refreshToken = refreshToken
}

// staticTokenProvider is a TokenProvider with a fixed token or error.
type staticTokenProvider struct {
	token string
	err   error
}

func (p *staticTokenProvider) Token(ctx context.Context) (string, error) {
	return p.token, p.err
}

func ptr[T any](v T) *T { return &v }
