package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rafiqdev/fieldforce/internal/client/models"
	"github.com/rafiqdev/fieldforce/internal/common"
	"github.com/rafiqdev/fieldforce/internal/dbx"
	"github.com/rafiqdev/fieldforce/internal/watch"
)

// singletonID is the fixed primary key of the session row.
const singletonID = 1

// SQLiteRepository implements Repository over a DBTX.
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

// Save upserts the singleton row, replacing every column. Old and new field
// values are never merged.
func (r *SQLiteRepository) Save(ctx context.Context, rec *models.SessionRecord) error {
	query := `INSERT INTO session (id, emp_id, emp_name, mobile_no, phone_number, fcm_token,
			password_digest, otp, access_token, refresh_token,
			is_signed_up, is_logged_in, is_first_sync, is_first_login, user_role_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			emp_id = excluded.emp_id,
			emp_name = excluded.emp_name,
			mobile_no = excluded.mobile_no,
			phone_number = excluded.phone_number,
			fcm_token = excluded.fcm_token,
			password_digest = excluded.password_digest,
			otp = excluded.otp,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			is_signed_up = excluded.is_signed_up,
			is_logged_in = excluded.is_logged_in,
			is_first_sync = excluded.is_first_sync,
			is_first_login = excluded.is_first_login,
			user_role_type = excluded.user_role_type
	`
	_, err := r.db.ExecContext(ctx, query,
		singletonID, rec.EmpID, rec.EmpName, rec.MobileNo, rec.PhoneNumber, rec.FCMToken,
		rec.PasswordDigest, rec.OTP, rec.AccessToken, rec.RefreshToken,
		rec.IsSignedUp, rec.IsLoggedIn, rec.IsFirstSync, rec.IsFirstLogin, rec.UserRoleType)
	if err != nil {
		return fmt.Errorf("%w: failed to save session: %v", common.ErrStorage, err)
	}

	r.changes.Notify()
	return nil
}

// Get returns the current record, or (nil, nil) when none exists.
func (r *SQLiteRepository) Get(ctx context.Context) (*models.SessionRecord, error) {
	query := `SELECT emp_id, emp_name, mobile_no, phone_number, fcm_token,
			password_digest, otp, access_token, refresh_token,
			is_signed_up, is_logged_in, is_first_sync, is_first_login, user_role_type
		FROM session WHERE id = ?`

	rec := &models.SessionRecord{}
	err := r.db.QueryRowContext(ctx, query, singletonID).Scan(
		&rec.EmpID, &rec.EmpName, &rec.MobileNo, &rec.PhoneNumber, &rec.FCMToken,
		&rec.PasswordDigest, &rec.OTP, &rec.AccessToken, &rec.RefreshToken,
		&rec.IsSignedUp, &rec.IsLoggedIn, &rec.IsFirstSync, &rec.IsFirstLogin, &rec.UserRoleType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get session: %v", common.ErrStorage, err)
	}
	return rec, nil
}

// Clear deletes the singleton row entirely. Deleting an absent row is not
// an error.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session WHERE id = ?`, singletonID)
	if err != nil {
		return fmt.Errorf("%w: failed to clear session: %v", common.ErrStorage, err)
	}

	r.changes.Notify()
	return nil
}

// IsLoggedIn degrades to false on absence or any storage fault.
func (r *SQLiteRepository) IsLoggedIn(ctx context.Context) bool {
	rec, err := r.Get(ctx)
	if err != nil || rec == nil {
		return false
	}
	return rec.IsLoggedIn
}
