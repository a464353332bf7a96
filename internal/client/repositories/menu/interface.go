// Package menu caches the enabled dashboard menu entries. The collection is
// replaced wholesale on every sync; entries are never updated in place.
package menu

import (
	"context"

	"github.com/rafiqdev/fieldforce/internal/client/models"
)

// Repository is the permission cache.
//
// ReplaceAll runs clear+insert inside one transaction, so callers may treat
// the replacement as atomic. Observe is push-based: it emits immediately
// with current state, then again after every replacement; the stream ends
// only when ctx is cancelled, and a fresh observation starts from current
// state.
type Repository interface {
	ReplaceAll(ctx context.Context, entries []models.MenuPermissionEntry) error
	List(ctx context.Context) ([]models.MenuPermissionEntry, error)
	Observe(ctx context.Context) <-chan []models.MenuPermissionEntry
}
