// Package api contains the remote API surface consumed by the sync core.
// Transport concerns (connection pooling, TLS, transport-level retry) belong
// to the injected http.Client; this package only speaks the wire contract.
package api

import "context"

// Client is the remote backend as seen by the services layer.
type Client interface {
	// Login requests an OTP for the employee; tokens in the response are
	// retained by the client for subsequent authenticated calls.
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	// ValidateOTP reports whether the server accepted the OTP. An explicit
	// validated=false comes back as (false, nil), not as an error.
	ValidateOTP(ctx context.Context, empID int, otp int) (bool, error)

	// FirstSync fetches the first-sync payload (employee info).
	FirstSync(ctx context.Context, empID string) (*FirstSyncData, error)

	// AppMenuPermission fetches the raw menu permission list.
	AppMenuPermission(ctx context.Context) ([]MenuPermissionDTO, error)

	// UpdateFCMToken registers the push token with the backend.
	UpdateFCMToken(ctx context.Context, token string) error

	// Notices fetches broadcast notices for the employee.
	Notices(ctx context.Context, empID string) ([]NoticeDTO, error)

	// SetTokens primes the client with previously persisted tokens.
	SetTokens(accessToken, refreshToken string)
}
