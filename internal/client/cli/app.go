// Package cli is the interactive terminal front-end of the field-force
// client: a small REPL over the auth, sync, attendance, order and dashboard
// services.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/rafiqdev/fieldforce/internal/client/api"
	"github.com/rafiqdev/fieldforce/internal/client/config"
	"github.com/rafiqdev/fieldforce/internal/client/localdb"
	"github.com/rafiqdev/fieldforce/internal/client/notify"
	"github.com/rafiqdev/fieldforce/internal/client/services"
	"github.com/rafiqdev/fieldforce/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config     *config.Config
	repos      *localdb.Repositories
	auth       services.AuthService
	sync       services.SyncService
	attendance services.AttendanceService
	orders     services.OrderService
	dashboard  services.DashboardService
	log        logging.Logger
	reader     *bufio.Reader
	empID      string
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.NewSlogLogger(slog.Default())

	repos, err := localdb.Init(ctx, c.DatabaseDSN, log)
	if err != nil {
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.APIBaseURL, &http.Client{Timeout: c.HTTPTimeout}, log)
	tokens := notify.NewDevTokenProvider()

	a := &App{
		config:     c,
		repos:      repos,
		auth:       services.NewAuthService(apiClient, repos.Session, repos.Prefs, tokens, log),
		sync:       services.NewSyncService(apiClient, repos.Session, repos.Prefs, repos.Menu, log),
		attendance: services.NewAttendanceService(repos.Prefs, log),
		orders:     services.NewOrderService(repos.Prefs, log),
		dashboard:  services.NewDashboardService(apiClient, repos.Session, repos.Prefs, repos.Menu, log),
		log:        log,
		reader:     bufio.NewReader(os.Stdin),
	}

	// a previously saved session resumes without a fresh login
	if rec, _ := a.auth.SavedSession(ctx); rec != nil {
		apiClient.SetTokens(rec.AccessToken, rec.RefreshToken)
		a.empID = rec.EmpID
	}

	return a, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.repos.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsLoggedIn(context.Background())
}
