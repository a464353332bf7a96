package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafiqdev/fieldforce/internal/client/api"
	"github.com/rafiqdev/fieldforce/internal/client/models"
	"github.com/rafiqdev/fieldforce/internal/common"
)

func newSyncService(t *testing.T, client api.Client) (SyncService, *stores) {
	t.Helper()
	st := newTestStores(t)
	return NewSyncService(client, st.sessions, st.prefs, st.menu, testLogger()), st
}

func firstSyncResponse(empID, name string) func(ctx context.Context, id string) (*api.FirstSyncData, error) {
	return func(ctx context.Context, id string) (*api.FirstSyncData, error) {
		return &api.FirstSyncData{
			EmployeeInfo: &api.EmployeeInfoDTO{EmpID: ptr(empID), SurName: ptr(name)},
		}, nil
	}
}

func TestFirstSync_EmptyEmployeeID(t *testing.T) {
	svc, _ := newSyncService(t, &fakeClient{})

	err := svc.FirstSync(context.Background(), "")
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestFirstSync_RemoteErrorPropagates(t *testing.T) {
	client := &fakeClient{
		firstSyncFn: func(ctx context.Context, empID string) (*api.FirstSyncData, error) {
			return nil, common.ErrNetwork
		},
	}
	svc, st := newSyncService(t, client)
	ctx := context.Background()

	err := svc.FirstSync(ctx, "10023")
	require.ErrorIs(t, err, common.ErrNetwork)

	summary, err := st.prefs.DashboardSummary(ctx)
	require.NoError(t, err)
	assert.False(t, summary.IsFirstSyncDone, "failed sync must not set the done flag")
}

func TestFirstSync_WritesIdentityAndFlag(t *testing.T) {
	client := &fakeClient{
		firstSyncFn: firstSyncResponse("10023", "Rahim Uddin"),
		menuFn: func(ctx context.Context) ([]api.MenuPermissionDTO, error) {
			return []api.MenuPermissionDTO{
				{Title: ptr("Post Order"), Sequence: ptr(1)},
			}, nil
		},
	}
	svc, st := newSyncService(t, client)
	ctx := context.Background()

	require.NoError(t, svc.FirstSync(ctx, "10023"))

	summary, err := st.prefs.DashboardSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Rahim Uddin", summary.EmployeeName)
	assert.Equal(t, "10023", summary.EmployeeID)
	assert.True(t, summary.IsFirstSyncDone)
	assert.NotEmpty(t, summary.LastSyncTime)

	got, err := st.menu.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []models.MenuPermissionEntry{{Title: "Post Order", Sequence: 1}}, got)
}

func TestFirstSync_SparseResponseKeepsSeededIdentity(t *testing.T) {
	client := &fakeClient{
		firstSyncFn: func(ctx context.Context, empID string) (*api.FirstSyncData, error) {
			return &api.FirstSyncData{}, nil
		},
		menuFn: func(ctx context.Context) ([]api.MenuPermissionDTO, error) {
			return nil, nil
		},
	}
	svc, st := newSyncService(t, client)
	ctx := context.Background()

	require.NoError(t, st.prefs.SetDashboardSummary(ctx, models.DashboardSummary{
		EmployeeName: "Seeded Name",
		EmployeeID:   "10023",
	}))

	require.NoError(t, svc.FirstSync(ctx, "10023"))

	summary, err := st.prefs.DashboardSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Seeded Name", summary.EmployeeName)
	assert.Equal(t, "10023", summary.EmployeeID)
	assert.True(t, summary.IsFirstSyncDone)
}

func TestFirstSync_PermissionFailureStillSucceeds(t *testing.T) {
	client := &fakeClient{
		firstSyncFn: firstSyncResponse("10023", "Rahim Uddin"),
		menuFn: func(ctx context.Context) ([]api.MenuPermissionDTO, error) {
			return nil, errors.New("permission endpoint down")
		},
	}
	svc, st := newSyncService(t, client)
	ctx := context.Background()

	require.NoError(t, svc.FirstSync(ctx, "10023"), "permission failure must not fail the sync")

	summary, err := st.prefs.DashboardSummary(ctx)
	require.NoError(t, err)
	assert.True(t, summary.IsFirstSyncDone, "the done flag is durable before permissions")
}

func TestFirstSync_FlagDurableBeforePermissionFetch(t *testing.T) {
	var st *stores
	client := &fakeClient{
		firstSyncFn: firstSyncResponse("10023", "Rahim Uddin"),
	}
	client.menuFn = func(ctx context.Context) ([]api.MenuPermissionDTO, error) {
		// the done flag must already be persisted when this endpoint is hit,
		// otherwise a crash here would re-enter first sync forever
		summary, err := st.prefs.DashboardSummary(ctx)
		require.NoError(t, err)
		assert.True(t, summary.IsFirstSyncDone)
		return nil, nil
	}

	svc, created := newSyncService(t, client)
	st = created

	require.NoError(t, svc.FirstSync(context.Background(), "10023"))
}

func TestFirstSync_MarksSessionSynced(t *testing.T) {
	client := &fakeClient{
		firstSyncFn: firstSyncResponse("10023", "Rahim Uddin"),
		menuFn: func(ctx context.Context) ([]api.MenuPermissionDTO, error) {
			return nil, nil
		},
	}
	svc, st := newSyncService(t, client)
	ctx := context.Background()

	require.NoError(t, st.sessions.Save(ctx, &models.SessionRecord{EmpID: "10023", IsLoggedIn: true}))
	require.NoError(t, svc.FirstSync(ctx, "10023"))

	rec, err := st.sessions.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.IsFirstSync)
}

func TestRefreshMenuPermissions_ReplacesWholesale(t *testing.T) {
	perms := []api.MenuPermissionDTO{
		{Title: ptr("Post Order"), Sequence: ptr(1)},
		{Title: ptr("Attendance Report"), Sequence: ptr(2)},
	}
	client := &fakeClient{
		menuFn: func(ctx context.Context) ([]api.MenuPermissionDTO, error) {
			return perms, nil
		},
	}
	svc, st := newSyncService(t, client)
	ctx := context.Background()

	require.NoError(t, st.menu.ReplaceAll(ctx, []models.MenuPermissionEntry{
		{Title: "Stale Entry", Sequence: 0},
	}))

	require.NoError(t, svc.RefreshMenuPermissions(ctx))

	got, err := st.menu.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []models.MenuPermissionEntry{
		{Title: "Post Order", Sequence: 1},
		{Title: "Attendance Report", Sequence: 2},
	}, got)
}

func TestFilterMenuPermissions(t *testing.T) {
	in := []api.MenuPermissionDTO{
		{Title: ptr("Post Order"), Sequence: ptr(5)},
		{Title: ptr("Disabled"), IsEnabled: ptr(false)},
		{Title: nil},
		{Title: ptr("")},
		{Title: ptr("Leave"), IsEnabled: ptr(true)},
		{Title: ptr("Draft Order")},
	}

	got := filterMenuPermissions(in)

	require.Equal(t, []models.MenuPermissionEntry{
		{Title: "Post Order", Sequence: 5},
		{Title: "Leave", Sequence: 1}, // position in the filtered list
		{Title: "Draft Order", Sequence: 2},
	}, got)
}

func TestFilterMenuPermissions_NilEnabledMeansEnabled(t *testing.T) {
	got := filterMenuPermissions([]api.MenuPermissionDTO{
		{Title: ptr("Leave"), Sequence: ptr(3)},
	})

	require.Len(t, got, 1)
	assert.Equal(t, "Leave", got[0].Title)
}
