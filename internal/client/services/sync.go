package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rafiqdev/fieldforce/internal/client/api"
	"github.com/rafiqdev/fieldforce/internal/client/models"
	"github.com/rafiqdev/fieldforce/internal/client/repositories/menu"
	"github.com/rafiqdev/fieldforce/internal/client/repositories/prefs"
	"github.com/rafiqdev/fieldforce/internal/client/repositories/session"
	"github.com/rafiqdev/fieldforce/internal/common"
	"github.com/rafiqdev/fieldforce/internal/logging"
)

const lastSyncTimeLayout = "02 Jan 2006, 03:04 PM"

// SyncService runs the first-sync bootstrap and the menu permission refresh.
type SyncService interface {
	// FirstSync fetches the employee profile, marks the first sync done and
	// then refreshes the menu permissions. A permissions failure does not
	// fail the sync: identity and the done-flag are already durable, and the
	// done-flag is what keeps the client from re-entering first sync.
	FirstSync(ctx context.Context, empID string) error

	// RefreshMenuPermissions replaces the cached permission set with the
	// server's current one.
	RefreshMenuPermissions(ctx context.Context) error
}

type syncService struct {
	client   api.Client
	sessions session.Repository
	prefs    *prefs.Store
	menu     menu.Repository
	log      logging.Logger
	now      func() time.Time
}

func NewSyncService(client api.Client, sessions session.Repository, prefsStore *prefs.Store, menuRepo menu.Repository, log logging.Logger) SyncService {
	return &syncService{
		client:   client,
		sessions: sessions,
		prefs:    prefsStore,
		menu:     menuRepo,
		log:      log.With("component", "sync"),
		now:      time.Now,
	}
}

// FirstSync ordering is load-bearing:
//
//  1. employee info is merged into the dashboard summary and persisted,
//  2. isFirstSyncDone and the sync timestamp are persisted,
//  3. only then are menu permissions fetched.
//
// Steps 1-2 must succeed before 3 starts; a crash between them leaves the
// client synced-but-permissionless, which the dashboard renders as an empty
// menu rather than a login loop.
func (s *syncService) FirstSync(ctx context.Context, empID string) error {
	if empID == "" {
		return fmt.Errorf("%w: employee id cannot be empty", common.ErrValidation)
	}

	data, err := s.client.FirstSync(ctx, empID)
	if err != nil {
		return fmt.Errorf("first sync error: %w", err)
	}

	summary, err := s.prefs.DashboardSummary(ctx)
	if err != nil {
		return fmt.Errorf("reading dashboard summary: %w", err)
	}

	// each field overwrites only when the server sent a usable value;
	// the previously seeded identity survives a sparse response
	if info := data.EmployeeInfo; info != nil {
		if info.SurName != nil && *info.SurName != "" {
			summary.EmployeeName = *info.SurName
		}
		if info.EmpID != nil && *info.EmpID != "" {
			summary.EmployeeID = *info.EmpID
		}
	}
	if err := s.prefs.SetDashboardSummary(ctx, summary); err != nil {
		return fmt.Errorf("saving dashboard summary: %w", err)
	}

	summary.IsFirstSyncDone = true
	summary.LastSyncTime = s.now().Format(lastSyncTimeLayout)
	if err := s.prefs.SetDashboardSummary(ctx, summary); err != nil {
		return fmt.Errorf("marking first sync done: %w", err)
	}

	s.markSessionSynced(ctx)

	if err := s.RefreshMenuPermissions(ctx); err != nil {
		s.log.Warn(ctx, "menu permission refresh failed, continuing", "error", err)
	}
	return nil
}

// markSessionSynced mirrors the done-flag onto the session record. The
// summary flag is the authoritative gate, so a failure here only warns.
func (s *syncService) markSessionSynced(ctx context.Context) {
	rec, err := s.sessions.Get(ctx)
	if err != nil || rec == nil {
		if err != nil {
			s.log.Warn(ctx, "reading session failed", "error", err)
		}
		return
	}
	if rec.IsFirstSync {
		return
	}
	rec.IsFirstSync = true
	if err := s.sessions.Save(ctx, rec); err != nil {
		s.log.Warn(ctx, "updating session sync flag failed", "error", err)
	}
}

func (s *syncService) RefreshMenuPermissions(ctx context.Context) error {
	dtos, err := s.client.AppMenuPermission(ctx)
	if err != nil {
		return fmt.Errorf("fetching menu permissions: %w", err)
	}

	entries := filterMenuPermissions(dtos)
	if err := s.menu.ReplaceAll(ctx, entries); err != nil {
		return fmt.Errorf("replacing menu permissions: %w", err)
	}

	s.log.Info(ctx, "menu permissions refreshed", "count", len(entries))
	return nil
}

// filterMenuPermissions drops disabled and untitled entries. A nil enabled
// flag counts as enabled. Entries without a server sequence get their
// position in the filtered list, so ordering stays stable.
func filterMenuPermissions(dtos []api.MenuPermissionDTO) []models.MenuPermissionEntry {
	entries := make([]models.MenuPermissionEntry, 0, len(dtos))
	for _, dto := range dtos {
		if dto.IsEnabled != nil && !*dto.IsEnabled {
			continue
		}
		if dto.Title == nil || *dto.Title == "" {
			continue
		}
		seq := len(entries)
		if dto.Sequence != nil {
			seq = *dto.Sequence
		}
		entries = append(entries, models.MenuPermissionEntry{Title: *dto.Title, Sequence: seq})
	}
	return entries
}
