// Package prefs is the durable key-value preference cache holding
// denormalized, UI-optimized projections. Values are opaque blobs keyed by
// semantic names; the typed Store facade handles (de)serialization.
//
// There is no cross-key transactionality: concurrent writers of the same key
// are last-write-wins, relying on the store's atomic single-key write.
package prefs

import (
	"context"

	"github.com/rafiqdev/fieldforce/internal/watch"
)

// Repository is the raw byte-level contract. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error

	// Changes signals after every successful Put/Delete/Clear.
	Changes() *watch.Broadcaster
}

// Semantic keys. New cached fields get a new key here; no schema migration
// is needed.
const (
	KeyEmpID               = "empId"
	KeyDashboardSummary    = "dashboardSummaryModel"
	KeyAttendance          = "attendanceModel"
	KeyPostOrderInfo       = "postOrderInfo"
	KeyPendingApprovalFlag = "hasPendingOrderApprovalRedDot"
)
