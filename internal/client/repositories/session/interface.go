// Package session persists the singleton login/session record.
package session

import (
	"context"

	"github.com/rafiqdev/fieldforce/internal/client/models"
	"github.com/rafiqdev/fieldforce/internal/watch"
)

// Repository is the durable single-row session store.
//
// Contract:
//   - Save: upsert, total replace, durable on return; failures surface.
//   - Get: current record or (nil, nil) when none exists.
//   - Clear: deletes the record entirely (logout), not a flag flip.
//   - IsLoggedIn: false (never an error) on absence or storage fault.
type Repository interface {
	Save(ctx context.Context, rec *models.SessionRecord) error
	Get(ctx context.Context) (*models.SessionRecord, error)
	Clear(ctx context.Context) error
	IsLoggedIn(ctx context.Context) bool

	// Changes signals after every successful Save/Clear.
	Changes() *watch.Broadcaster
}
