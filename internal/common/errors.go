// Package common defines shared constants and sentinel errors used across
// the field-force client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Remote call failures.
	ErrNetwork        = errors.New("network failure")
	ErrServerRejected = errors.New("server rejected request")
	ErrMissingData    = errors.New("no data received from server")

	// Local storage failures.
	ErrStorage = errors.New("storage failure")

	// Client-side input checks.
	ErrValidation = errors.New("validation error")

	// Auth flow.
	ErrNotLoggedIn  = errors.New("not logged in")
	ErrTokenExpired = errors.New("token expired")
)
