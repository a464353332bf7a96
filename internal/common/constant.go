package common

const (
	// AuthHeaderName is the HTTP header carrying the access token.
	AuthHeaderName = "Authorization"

	// RequestIDHeaderName carries a per-request correlation id.
	RequestIDHeaderName = "X-Request-Id"
)
