package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rafiqdev/fieldforce/internal/client/models"
)

// Store is the typed facade over the raw repository. Structured singletons
// are stored as JSON blobs; high-frequency primitive flags get dedicated
// typed accessors. Missing keys yield the type's zero value, never an error.
type Store struct {
	repo Repository
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

func (s *Store) Repo() Repository {
	return s.repo
}

func getJSON[T any](ctx context.Context, s *Store, key string) (T, error) {
	var zero T
	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		return zero, err
	}
	if raw == nil {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, fmt.Errorf("failed to decode preference[%s]: %w", key, err)
	}
	return v, nil
}

func putJSON[T any](ctx context.Context, s *Store, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode preference[%s]: %w", key, err)
	}
	return s.repo.Put(ctx, key, raw)
}

// DashboardSummary returns the cached projection, zero-valued when absent.
func (s *Store) DashboardSummary(ctx context.Context) (models.DashboardSummary, error) {
	return getJSON[models.DashboardSummary](ctx, s, KeyDashboardSummary)
}

func (s *Store) SetDashboardSummary(ctx context.Context, v models.DashboardSummary) error {
	return putJSON(ctx, s, KeyDashboardSummary, v)
}

// Attendance returns the cached attendance model; an absent key maps to the
// idle session stage.
func (s *Store) Attendance(ctx context.Context) (models.AttendanceModel, error) {
	v, err := getJSON[models.AttendanceModel](ctx, s, KeyAttendance)
	if err != nil {
		return v, err
	}
	if v.Session == "" {
		v.Session = models.SessionStage
	}
	return v, nil
}

func (s *Store) SetAttendance(ctx context.Context, v models.AttendanceModel) error {
	return putJSON(ctx, s, KeyAttendance, v)
}

func (s *Store) PostOrderInfo(ctx context.Context) (models.PostOrderInfo, error) {
	return getJSON[models.PostOrderInfo](ctx, s, KeyPostOrderInfo)
}

func (s *Store) SetPostOrderInfo(ctx context.Context, v models.PostOrderInfo) error {
	return putJSON(ctx, s, KeyPostOrderInfo, v)
}

// Bool reads a boolean flag; missing key returns def.
func (s *Store) Bool(ctx context.Context, key string, def bool) (bool, error) {
	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		return def, err
	}
	if raw == nil {
		return def, nil
	}
	v, err := strconv.ParseBool(string(raw))
	if err != nil {
		return def, fmt.Errorf("failed to decode preference[%s]: %w", key, err)
	}
	return v, nil
}

func (s *Store) SetBool(ctx context.Context, key string, v bool) error {
	return s.repo.Put(ctx, key, []byte(strconv.FormatBool(v)))
}

// Int reads an integer; missing key returns def.
func (s *Store) Int(ctx context.Context, key string, def int) (int, error) {
	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		return def, err
	}
	if raw == nil {
		return def, nil
	}
	v, err := strconv.Atoi(string(raw))
	if err != nil {
		return def, fmt.Errorf("failed to decode preference[%s]: %w", key, err)
	}
	return v, nil
}

func (s *Store) SetInt(ctx context.Context, key string, v int) error {
	return s.repo.Put(ctx, key, []byte(strconv.Itoa(v)))
}

// String reads a string; missing key returns def.
func (s *Store) String(ctx context.Context, key string, def string) (string, error) {
	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		return def, err
	}
	if raw == nil {
		return def, nil
	}
	return string(raw), nil
}

func (s *Store) SetString(ctx context.Context, key string, v string) error {
	return s.repo.Put(ctx, key, []byte(v))
}
