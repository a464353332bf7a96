package services

import (
	"context"
	"fmt"

	"github.com/rafiqdev/fieldforce/internal/client/api"
	"github.com/rafiqdev/fieldforce/internal/client/models"
	"github.com/rafiqdev/fieldforce/internal/client/repositories/menu"
	"github.com/rafiqdev/fieldforce/internal/client/repositories/prefs"
	"github.com/rafiqdev/fieldforce/internal/client/repositories/session"
	"github.com/rafiqdev/fieldforce/internal/logging"
)

// Attendance display states.
const (
	StatusIdle       = "Idle"
	StatusCheckedIn  = "Checked In"
	StatusCheckedOut = "Checked Out"
)

// capabilityByTitle maps server menu titles onto client capabilities.
// Unknown titles become CapabilityUnmapped, never an arbitrary default.
var capabilityByTitle = map[string]models.Capability{
	"Start Your Day":          models.CapabilityStartYourDay,
	"Post Order":              models.CapabilityPostOrder,
	"Post Special Order":      models.CapabilityPostSpecialOrder,
	"Order History":           models.CapabilityOrderHistoryUser,
	"My Order History":        models.CapabilityOrderHistoryUser,
	"Order History (Manager)": models.CapabilityOrderHistoryManager,
	"Manager Live Location":   models.CapabilityManagerLiveLocation,
	"Attendance Report":       models.CapabilityAttendanceReport,
	"Leave Management":        models.CapabilityLeaveManagement,
	"Leave":                   models.CapabilityLeave,
	"Draft Order":             models.CapabilityDraftOrder,
	"Sales Summary Report":    models.CapabilitySalesSummaryReport,
	"Product Sales Report":    models.CapabilityProductSalesReport,
	"Chemist Sales Report":    models.CapabilityChemistSalesReport,
}

// DashboardService derives the display-ready dashboard state from the three
// local stores. All reads merge at read time; nothing here writes back.
type DashboardService interface {
	// Summary computes the merged dashboard projection.
	Summary(ctx context.Context) (models.DashboardSummary, error)

	// ObserveSummary emits a freshly computed summary immediately and then
	// after every change in any underlying store, until ctx is cancelled.
	ObserveSummary(ctx context.Context) <-chan models.DashboardSummary

	// MenuItems derives the display menu from the cached permissions.
	MenuItems(ctx context.Context) ([]models.MenuItem, error)

	// ObserveMenu is MenuItems as a stream, re-emitting on each replacement.
	ObserveMenu(ctx context.Context) <-chan []models.MenuItem

	// Notices fetches broadcast notices; any failure yields an empty list.
	Notices(ctx context.Context) []models.Notice
}

type dashboardService struct {
	client   api.Client
	sessions session.Repository
	prefs    *prefs.Store
	menu     menu.Repository
	log      logging.Logger
}

func NewDashboardService(client api.Client, sessions session.Repository, prefsStore *prefs.Store, menuRepo menu.Repository, log logging.Logger) DashboardService {
	return &dashboardService{
		client:   client,
		sessions: sessions,
		prefs:    prefsStore,
		menu:     menuRepo,
		log:      log.With("component", "dashboard"),
	}
}

func (d *dashboardService) Summary(ctx context.Context) (models.DashboardSummary, error) {
	summary, err := d.prefs.DashboardSummary(ctx)
	if err != nil {
		return summary, fmt.Errorf("reading dashboard summary: %w", err)
	}

	rec, err := d.sessions.Get(ctx)
	if err != nil {
		d.log.Warn(ctx, "reading session failed", "error", err)
		rec = nil
	}

	// identity fallback chain: cached projection, then prefs seed, then
	// session record
	if summary.EmployeeID == "" {
		summary.EmployeeID, _ = d.prefs.String(ctx, prefs.KeyEmpID, "")
	}
	if rec != nil {
		if summary.EmployeeName == "" {
			summary.EmployeeName = rec.EmpName
		}
		if summary.EmployeeID == "" {
			summary.EmployeeID = rec.EmpID
		}
	}

	attendance, err := d.prefs.Attendance(ctx)
	if err != nil {
		d.log.Warn(ctx, "reading attendance failed", "error", err)
		attendance = models.AttendanceModel{Session: models.SessionStage}
	}
	summary.AttendanceStatus = d.attendanceStatus(ctx, attendance.Session)

	if info, err := d.prefs.PostOrderInfo(ctx); err == nil {
		summary.PostOrderCount = info.Count
	} else {
		d.log.Warn(ctx, "reading post-order info failed", "error", err)
	}

	if pending, err := d.prefs.Bool(ctx, prefs.KeyPendingApprovalFlag, false); err == nil {
		summary.HasPendingApproval = pending
	} else {
		d.log.Warn(ctx, "reading pending-approval flag failed", "error", err)
	}

	return summary, nil
}

func (d *dashboardService) attendanceStatus(ctx context.Context, s models.AttendanceSession) string {
	switch s {
	case models.SessionStage:
		return StatusIdle
	case models.SessionCheckIn:
		return StatusCheckedIn
	case models.SessionCheckOut:
		return StatusCheckedOut
	default:
		d.log.Warn(ctx, "unknown attendance session", "session", string(s))
		return StatusIdle
	}
}

// ObserveSummary combines the session and preference change streams plus the
// menu observation into one conflated summary stream. Emissions coalesce: a
// slow consumer sees the latest state, not every intermediate one.
func (d *dashboardService) ObserveSummary(ctx context.Context) <-chan models.DashboardSummary {
	out := make(chan models.DashboardSummary, 1)

	sessionCh := d.sessions.Changes().Subscribe(ctx)
	prefsCh := d.prefs.Repo().Changes().Subscribe(ctx)
	menuCh := d.menu.Observe(ctx)

	emit := func() {
		summary, err := d.Summary(ctx)
		if err != nil {
			d.log.Warn(ctx, "computing summary failed, skipping emission", "error", err)
			return
		}
		select {
		case out <- summary:
		default:
			// conflate: drop the stale value if the consumer has not
			// taken it yet
			select {
			case <-out:
			default:
			}
			out <- summary
		}
	}

	go func() {
		defer close(out)
		emit()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-sessionCh:
				if !ok {
					return
				}
				emit()
			case _, ok := <-prefsCh:
				if !ok {
					return
				}
				emit()
			case _, ok := <-menuCh:
				if !ok {
					return
				}
				emit()
			}
		}
	}()

	return out
}

func (d *dashboardService) MenuItems(ctx context.Context) ([]models.MenuItem, error) {
	entries, err := d.menu.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing menu permissions: %w", err)
	}

	pending, err := d.prefs.Bool(ctx, prefs.KeyPendingApprovalFlag, false)
	if err != nil {
		d.log.Warn(ctx, "reading pending-approval flag failed", "error", err)
		pending = false
	}

	return d.deriveMenu(ctx, entries, pending), nil
}

func (d *dashboardService) ObserveMenu(ctx context.Context) <-chan []models.MenuItem {
	out := make(chan []models.MenuItem, 1)
	in := d.menu.Observe(ctx)

	go func() {
		defer close(out)
		for entries := range in {
			pending, err := d.prefs.Bool(ctx, prefs.KeyPendingApprovalFlag, false)
			if err != nil {
				pending = false
			}
			items := d.deriveMenu(ctx, entries, pending)
			select {
			case out <- items:
			default:
				select {
				case <-out:
				default:
				}
				out <- items
			}
		}
	}()

	return out
}

func (d *dashboardService) deriveMenu(ctx context.Context, entries []models.MenuPermissionEntry, pendingApproval bool) []models.MenuItem {
	items := make([]models.MenuItem, 0, len(entries))
	for _, e := range entries {
		capability, ok := capabilityByTitle[e.Title]
		if !ok {
			capability = models.CapabilityUnmapped
			d.log.Warn(ctx, "unmapped menu title", "title", e.Title)
		}
		items = append(items, models.MenuItem{
			Title:           e.Title,
			Capability:      capability,
			Sequence:        e.Sequence,
			IsRedDotVisible: capability == models.CapabilityOrderHistoryManager && pendingApproval,
		})
	}
	return items
}

// Notices degrades to empty on every failure path: a missing employee id,
// a transport error or a rejected response all yield no notices.
func (d *dashboardService) Notices(ctx context.Context) []models.Notice {
	empID, err := d.prefs.String(ctx, prefs.KeyEmpID, "")
	if err != nil || empID == "" {
		return nil
	}

	dtos, err := d.client.Notices(ctx, empID)
	if err != nil {
		d.log.Warn(ctx, "fetching notices failed", "error", err)
		return nil
	}

	notices := make([]models.Notice, 0, len(dtos))
	for _, dto := range dtos {
		var n models.Notice
		if dto.Title != nil {
			n.Title = *dto.Title
		}
		if dto.Body != nil {
			n.Description = *dto.Body
		}
		if dto.Date != nil {
			n.Date = *dto.Date
		}
		notices = append(notices, n)
	}
	return notices
}
