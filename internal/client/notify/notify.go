// Package notify abstracts the push-messaging platform: obtaining a device
// push token and displaying incoming notifications.
package notify

import (
	"context"

	"github.com/google/uuid"

	"github.com/rafiqdev/fieldforce/internal/logging"
)

// TokenProvider returns the device push token. An empty token means the
// platform is unavailable; callers treat that as non-fatal.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Display forwards a notification to the host for rendering. No return
// value is consumed.
type Display interface {
	Show(ctx context.Context, title, body string)
}

// DevTokenProvider hands out a process-stable random token. It stands in
// for the real messaging SDK in development and tests.
type DevTokenProvider struct {
	token string
}

func NewDevTokenProvider() *DevTokenProvider {
	return &DevTokenProvider{token: "dev-" + uuid.NewString()}
}

func (p *DevTokenProvider) Token(ctx context.Context) (string, error) {
	return p.token, nil
}

// LogDisplay renders notifications into the structured log.
type LogDisplay struct {
	log logging.Logger
}

func NewLogDisplay(log logging.Logger) *LogDisplay {
	return &LogDisplay{log: log.With("component", "notify")}
}

func (d *LogDisplay) Show(ctx context.Context, title, body string) {
	if title == "" {
		title = "Notification"
	}
	d.log.Info(ctx, "notification", "title", title, "body", body)
}
