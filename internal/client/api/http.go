package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rafiqdev/fieldforce/internal/common"
	"github.com/rafiqdev/fieldforce/internal/logging"
)

const (
	loginPath          = "/api/v1/app/auth/login"
	validateOTPPath    = "/api/v1/app/auth/ValidateOtp"
	updateFCMTokenPath = "/api/v1/app/auth/updateFcmToken"
	refreshTokenPath   = "/api/v1/app/auth/refreshToken"
	firstSyncPath      = "/api/v1/app/sync/first-sync"
	menuPermissionPath = "/api/v1/Menu/app-menu-permission"
	noticesPath        = "/api/v1/broadcast/all-notification"
)

// HTTPClient implements Client over the backend's JSON envelope.
// The *http.Client is injected; transport configuration is the caller's
// concern. Access/refresh tokens captured at login are attached to every
// authenticated call, with a proactive refresh when the access token's
// JWT expiry has passed.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	log     logging.Logger

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func NewHTTPClient(baseURL string, hc *http.Client, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      hc,
		log:     log.With("component", "api"),
	}
}

func (c *HTTPClient) SetTokens(accessToken, refreshToken string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = accessToken
	c.refreshToken = refreshToken
}

func (c *HTTPClient) tokens() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

// accessTokenExpired reports whether the token carries an exp claim in the
// past. Unparseable tokens or tokens without exp count as not expired; the
// server remains the authority and will reject them if needed.
func accessTokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// tokenForRequest returns the current access token, refreshing it first
// when it is expired and a refresh token is available.
func (c *HTTPClient) tokenForRequest(ctx context.Context) (string, error) {
	access, refresh := c.tokens()
	if access == "" || !accessTokenExpired(access) {
		return access, nil
	}
	if refresh == "" {
		return "", common.ErrTokenExpired
	}

	env, err := call[refreshTokenResponse](ctx, c, http.MethodPost, refreshTokenPath, nil, refreshTokenRequest{RefreshToken: refresh}, false)
	if err != nil {
		return "", fmt.Errorf("token refresh: %w", err)
	}
	data, err := requireData(env)
	if err != nil {
		return "", fmt.Errorf("token refresh: %w", err)
	}

	c.SetTokens(data.Token, data.RefreshToken)
	c.log.Debug(ctx, "access token refreshed")
	return data.Token, nil
}

// call performs one round trip and decodes the JSON envelope. Transport
// faults map to ErrNetwork; a non-2xx HTTP status or envelope statusCode
// maps to ErrServerRejected carrying the best available message.
func call[T any](ctx context.Context, c *HTTPClient, method, path string, query url.Values, body any, authed bool) (*baseResponse[T], error) {
	var reqBody *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	if authed {
		token, err := c.tokenForRequest(ctx)
		if err != nil {
			return nil, err
		}
		if token != "" {
			req.Header.Set(common.AuthHeaderName, "Bearer "+token)
		}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	defer resp.Body.Close()

	var env baseResponse[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: malformed response body", common.ErrServerRejected)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", common.ErrServerRejected, errMessage(&env, resp.StatusCode))
	}
	if env.StatusCode != nil && (*env.StatusCode < 200 || *env.StatusCode > 299) {
		return nil, fmt.Errorf("%w: %s", common.ErrServerRejected, errMessage(&env, *env.StatusCode))
	}

	return &env, nil
}

// errMessage picks the server-provided message, else joined error details,
// else a derived status description.
func errMessage[T any](env *baseResponse[T], statusCode int) string {
	if env.Message != nil && *env.Message != "" {
		return *env.Message
	}
	if len(env.Error) > 0 {
		return strings.Join(env.Error, ", ")
	}
	return fmt.Sprintf("status code %d", statusCode)
}

func requireData[T any](env *baseResponse[T]) (*T, error) {
	if env.Data == nil {
		return nil, common.ErrMissingData
	}
	return env.Data, nil
}

func (c *HTTPClient) Login(ctx context.Context, reqModel LoginRequest) (*LoginResponse, error) {
	env, err := call[LoginResponse](ctx, c, http.MethodPost, loginPath, nil, reqModel, false)
	if err != nil {
		return nil, err
	}
	data, err := requireData(env)
	if err != nil {
		return nil, err
	}

	if data.Token != "" {
		c.SetTokens(data.Token, data.RefreshToken)
	}
	return data, nil
}

func (c *HTTPClient) ValidateOTP(ctx context.Context, empID int, otp int) (bool, error) {
	env, err := call[otpValidationResponse](ctx, c, http.MethodPost, validateOTPPath, nil, otpValidationRequest{EmpID: empID, OTP: otp}, false)
	if err != nil {
		return false, err
	}
	data, err := requireData(env)
	if err != nil {
		return false, err
	}
	return data.Validated, nil
}

func (c *HTTPClient) FirstSync(ctx context.Context, empID string) (*FirstSyncData, error) {
	q := url.Values{"EmpId": {empID}}
	env, err := call[FirstSyncData](ctx, c, http.MethodGet, firstSyncPath, q, nil, true)
	if err != nil {
		return nil, err
	}
	return requireData(env)
}

func (c *HTTPClient) AppMenuPermission(ctx context.Context) ([]MenuPermissionDTO, error) {
	env, err := call[[]MenuPermissionDTO](ctx, c, http.MethodGet, menuPermissionPath, nil, nil, true)
	if err != nil {
		return nil, err
	}
	data, err := requireData(env)
	if err != nil {
		return nil, err
	}
	return *data, nil
}

func (c *HTTPClient) UpdateFCMToken(ctx context.Context, token string) error {
	_, err := call[struct{}](ctx, c, http.MethodPost, updateFCMTokenPath, nil, updateFCMTokenRequest{FCMToken: token}, true)
	return err
}

func (c *HTTPClient) Notices(ctx context.Context, empID string) ([]NoticeDTO, error) {
	q := url.Values{"Emp_Id": {empID}}
	env, err := call[[]NoticeDTO](ctx, c, http.MethodGet, noticesPath, q, nil, true)
	if err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, nil
	}
	return *env.Data, nil
}
