// Package services contains the application services of the field-force
// client: the login/OTP state machine, the first-sync bootstrap, attendance
// and order tracking, and the dashboard aggregator.
package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rafiqdev/fieldforce/internal/client/api"
	"github.com/rafiqdev/fieldforce/internal/client/models"
	"github.com/rafiqdev/fieldforce/internal/client/notify"
	"github.com/rafiqdev/fieldforce/internal/client/repositories/prefs"
	"github.com/rafiqdev/fieldforce/internal/client/repositories/session"
	"github.com/rafiqdev/fieldforce/internal/common"
	"github.com/rafiqdev/fieldforce/internal/cryptox"
	"github.com/rafiqdev/fieldforce/internal/logging"
)

// AuthService drives the login state machine:
//
//	Unauthenticated -> AwaitingOTP -> Authenticated(firstSyncPending) -> Authenticated(synced)
//
// Contract:
//   - Login: request an OTP; persists a partial session (tokens, otp,
//     identity). isLoggedIn stays false until OTP validation.
//   - ValidateOTP: server-side check; explicit validated=true flips
//     isLoggedIn and isSignedUp. The OTP is never consumed client-side.
//   - Logout: the one logout procedure — erases the session record and the
//     pending-approval flag; cached dashboard projections are retained.
//   - IsLoggedIn / SavedSession: splash-gating reads, degrading to
//     "no session" on storage faults.
type AuthService interface {
	Login(ctx context.Context, empID, password string) error
	SignUp(ctx context.Context, empID, password, confirmPassword string) error
	ValidateOTP(ctx context.Context, empID, otp string) error
	Logout(ctx context.Context) error
	IsLoggedIn(ctx context.Context) bool
	SavedSession(ctx context.Context) (*models.SessionRecord, error)
	UpdateFCMToken(ctx context.Context) error
}

type authService struct {
	client   api.Client
	sessions session.Repository
	prefs    *prefs.Store
	tokens   notify.TokenProvider
	log      logging.Logger
}

func NewAuthService(client api.Client, sessions session.Repository, prefsStore *prefs.Store, tokens notify.TokenProvider, log logging.Logger) AuthService {
	return &authService{
		client:   client,
		sessions: sessions,
		prefs:    prefsStore,
		tokens:   tokens,
		log:      log.With("component", "auth"),
	}
}

func validateSignIn(empID, password string) error {
	switch {
	case empID == "":
		return fmt.Errorf("%w: user cannot be empty", common.ErrValidation)
	case password == "":
		return fmt.Errorf("%w: password cannot be empty", common.ErrValidation)
	case len(password) < 4:
		return fmt.Errorf("%w: password must be at least 4 digits", common.ErrValidation)
	}
	return nil
}

func validateSignUp(empID, password, confirmPassword string) error {
	if err := validateSignIn(empID, password); err != nil {
		return err
	}
	if password != confirmPassword {
		return fmt.Errorf("%w: passwords don't match", common.ErrValidation)
	}
	return nil
}

// Login validates input, fetches the push token (unavailable is non-fatal)
// and calls the auth endpoint. On success a partial SessionRecord is
// persisted and the dashboard identity seed is written into the preference
// cache when it is still empty.
func (a *authService) Login(ctx context.Context, empID, password string) error {
	if err := validateSignIn(empID, password); err != nil {
		return err
	}
	return a.signIn(ctx, empID, password)
}

// SignUp is Login plus the confirm-password check of the sign-up form.
func (a *authService) SignUp(ctx context.Context, empID, password, confirmPassword string) error {
	if err := validateSignUp(empID, password, confirmPassword); err != nil {
		return err
	}
	return a.signIn(ctx, empID, password)
}

func (a *authService) signIn(ctx context.Context, empID, password string) error {
	fcmToken, err := a.tokens.Token(ctx)
	if err != nil {
		// push token unavailable is not fatal; the server can live without it
		a.log.Warn(ctx, "push token unavailable", "error", err)
		fcmToken = ""
	}

	resp, err := a.client.Login(ctx, api.LoginRequest{UserName: empID, FCMToken: fcmToken})
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	rec := &models.SessionRecord{
		EmpID:          resp.EmpID,
		EmpName:        resp.Name,
		MobileNo:       resp.MobileNo,
		FCMToken:       fcmToken,
		PasswordDigest: cryptox.DigestPassword([]byte(password)),
		AccessToken:    resp.Token,
		RefreshToken:   resp.RefreshToken,
		IsFirstLogin:   resp.IsFirstLogin,
		UserRoleType:   resp.UserRoleType,
	}
	if rec.EmpID == "" {
		rec.EmpID = empID
	}
	if resp.OTPCode != nil {
		rec.OTP = strconv.Itoa(*resp.OTPCode)
	}

	// credential write failures must surface: a silent loss here would
	// desynchronize login state from the server
	if err := a.sessions.Save(ctx, rec); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	a.seedDashboardIdentity(ctx, rec)
	return nil
}

// seedDashboardIdentity writes the employee id seed and, when the cached
// projection has no identity yet, its name/id. Failures here are logged,
// not surfaced: the session write already succeeded.
func (a *authService) seedDashboardIdentity(ctx context.Context, rec *models.SessionRecord) {
	if rec.EmpID != "" {
		if err := a.prefs.SetString(ctx, prefs.KeyEmpID, rec.EmpID); err != nil {
			a.log.Warn(ctx, "seeding empId preference failed", "error", err)
		}
	}

	summary, err := a.prefs.DashboardSummary(ctx)
	if err != nil {
		a.log.Warn(ctx, "reading dashboard summary failed", "error", err)
		return
	}
	if summary.EmployeeID != "" || rec.EmpID == "" {
		return
	}
	summary.EmployeeName = rec.EmpName
	summary.EmployeeID = rec.EmpID
	if err := a.prefs.SetDashboardSummary(ctx, summary); err != nil {
		a.log.Warn(ctx, "seeding dashboard summary failed", "error", err)
	}
}

// ValidateOTP transitions AwaitingOTP -> Authenticated(firstSyncPending).
// An explicit validated=false leaves the session untouched; the server
// remains the source of truth for OTP validity.
func (a *authService) ValidateOTP(ctx context.Context, empID, otp string) error {
	empIDNum, err := strconv.Atoi(empID)
	if err != nil {
		return fmt.Errorf("%w: employee id must be numeric", common.ErrValidation)
	}
	otpNum, err := strconv.Atoi(otp)
	if err != nil {
		return fmt.Errorf("%w: OTP must be numeric", common.ErrValidation)
	}

	validated, err := a.client.ValidateOTP(ctx, empIDNum, otpNum)
	if err != nil {
		return fmt.Errorf("OTP validation error: %w", err)
	}
	if !validated {
		return fmt.Errorf("%w: OTP validation failed", common.ErrServerRejected)
	}

	rec, err := a.sessions.Get(ctx)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}
	if rec == nil {
		return common.ErrNotLoggedIn
	}

	rec.IsLoggedIn = true
	rec.IsSignedUp = true
	if err := a.sessions.Save(ctx, rec); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Logout is the single logout procedure for both storage paths: the session
// row is deleted entirely and the pending-approval flag is reset. Cached
// projections (summary, attendance, post-order count) are retained so a
// re-login shows the last known dashboard immediately.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	if err := a.prefs.SetBool(ctx, prefs.KeyPendingApprovalFlag, false); err != nil {
		a.log.Warn(ctx, "resetting pending-approval flag failed", "error", err)
	}
	return nil
}

func (a *authService) IsLoggedIn(ctx context.Context) bool {
	return a.sessions.IsLoggedIn(ctx)
}

// SavedSession returns the stored record, or nil when none exists or the
// store is faulty (degrade to "no session" on reads).
func (a *authService) SavedSession(ctx context.Context) (*models.SessionRecord, error) {
	rec, err := a.sessions.Get(ctx)
	if err != nil {
		a.log.Warn(ctx, "reading session failed", "error", err)
		return nil, nil
	}
	return rec, nil
}

// UpdateFCMToken re-registers the current push token with the backend.
func (a *authService) UpdateFCMToken(ctx context.Context) error {
	token, err := a.tokens.Token(ctx)
	if err != nil || token == "" {
		return fmt.Errorf("push token unavailable: %w", err)
	}
	if err := a.client.UpdateFCMToken(ctx, token); err != nil {
		return fmt.Errorf("updating push token: %w", err)
	}
	return nil
}
