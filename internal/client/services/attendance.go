package services

import (
	"context"
	"fmt"

	"github.com/rafiqdev/fieldforce/internal/client/models"
	"github.com/rafiqdev/fieldforce/internal/client/repositories/prefs"
	"github.com/rafiqdev/fieldforce/internal/common"
	"github.com/rafiqdev/fieldforce/internal/logging"
)

// AttendanceService tracks the attendance state of the working day. The
// state lives in the preference cache; transitions follow
// idle -> checked in -> checked out, with Reset returning to idle.
type AttendanceService interface {
	CheckIn(ctx context.Context) error
	CheckOut(ctx context.Context) error
	Reset(ctx context.Context) error
	Current(ctx context.Context) (models.AttendanceModel, error)
}

type attendanceService struct {
	prefs *prefs.Store
	log   logging.Logger
}

func NewAttendanceService(prefsStore *prefs.Store, log logging.Logger) AttendanceService {
	return &attendanceService{
		prefs: prefsStore,
		log:   log.With("component", "attendance"),
	}
}

func (a *attendanceService) CheckIn(ctx context.Context) error {
	cur, err := a.prefs.Attendance(ctx)
	if err != nil {
		return fmt.Errorf("reading attendance: %w", err)
	}
	if cur.Session == models.SessionCheckIn {
		return fmt.Errorf("%w: already checked in", common.ErrValidation)
	}
	return a.transition(ctx, models.SessionCheckIn)
}

func (a *attendanceService) CheckOut(ctx context.Context) error {
	cur, err := a.prefs.Attendance(ctx)
	if err != nil {
		return fmt.Errorf("reading attendance: %w", err)
	}
	if cur.Session != models.SessionCheckIn {
		return fmt.Errorf("%w: cannot check out without checking in", common.ErrValidation)
	}
	return a.transition(ctx, models.SessionCheckOut)
}

// Reset returns attendance to the idle stage, usually at the day rollover.
func (a *attendanceService) Reset(ctx context.Context) error {
	return a.transition(ctx, models.SessionStage)
}

func (a *attendanceService) Current(ctx context.Context) (models.AttendanceModel, error) {
	return a.prefs.Attendance(ctx)
}

func (a *attendanceService) transition(ctx context.Context, to models.AttendanceSession) error {
	if err := a.prefs.SetAttendance(ctx, models.AttendanceModel{Session: to}); err != nil {
		return fmt.Errorf("saving attendance: %w", err)
	}
	a.log.Info(ctx, "attendance updated", "session", string(to))
	return nil
}
