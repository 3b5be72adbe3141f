package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/relief-experts/attendance-backend-go/internal/domain/attendance"
	"github.com/relief-experts/attendance-backend-go/internal/domain/center"
	"github.com/relief-experts/attendance-backend-go/internal/domain/employee"
	"github.com/relief-experts/attendance-backend-go/internal/domain/holiday"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/geoclock"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/timecalc"
)

// Jobs bundles the background jobs with their dependencies.
type Jobs struct {
	clock      *geoclock.Clock
	attendance attendance.Repository
	employees  employee.Repository
	centers    center.Repository
	holidays   holiday.Repository
}

func NewJobs(clock *geoclock.Clock, attendanceRepo attendance.Repository, employeeRepo employee.Repository, centerRepo center.Repository, holidayRepo holiday.Repository) *Jobs {
	return &Jobs{
		clock:      clock,
		attendance: attendanceRepo,
		employees:  employeeRepo,
		centers:    centerRepo,
		holidays:   holidayRepo,
	}
}

// Register adds all background jobs to the scheduler.
func (j *Jobs) Register(s *Scheduler, resyncInterval time.Duration) {
	s.AddJob("time-resync", resyncInterval, j.ResyncClock)
	s.AddJob("mark-absentees", 24*time.Hour, j.MarkAbsentees)
}

// ResyncClock refreshes the offset against the external time sources.
// A failed sync keeps the previous offset.
func (j *Jobs) ResyncClock(ctx context.Context) error {
	if err := j.clock.Resolve(ctx); err != nil {
		slog.Warn("Time resync failed, keeping previous offset", "error", err)
	}
	return nil
}

// MarkAbsentees writes an absent record for every active administrative
// employee who had no attendance yesterday, skipping holidays and
// non-working days of the employee's center.
func (j *Jobs) MarkAbsentees(ctx context.Context) error {
	yesterday := j.clock.Now().AddDate(0, 0, -1)
	date := timecalc.Today(yesterday)

	holidays, err := j.holidays.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list holidays: %w", err)
	}
	holidayDates := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		holidayDates[h.Date] = struct{}{}
	}
	if _, ok := holidayDates[date]; ok {
		slog.Info("Skipping absence marking on holiday", "date", date)
		return nil
	}

	centers, err := j.centers.List(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to list centers: %w", err)
	}
	centersByID := make(map[string]center.Center, len(centers))
	for _, c := range centers {
		centersByID[c.ID] = c
	}

	employees, err := j.employees.List(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}

	var marked int
	for _, e := range employees {
		if !e.Administrative() {
			continue
		}
		c, ok := centersByID[e.CenterID]
		if !ok || !c.IsWorkingDay(yesterday.Weekday()) {
			continue
		}

		hasRecord, err := j.attendance.HasRecordForDate(ctx, e.ID, date)
		if err != nil {
			slog.Error("Failed to check attendance record", "employee_id", e.ID, "date", date, "error", err)
			continue
		}
		if hasRecord {
			continue
		}

		_, err = j.attendance.Create(ctx, attendance.Record{
			ID:         uuid.NewString(),
			EmployeeID: e.ID,
			CenterID:   e.CenterID,
			Date:       date,
			CheckIn:    timecalc.StartOfDay(yesterday),
			Status:     attendance.StatusAbsent,
		})
		if err != nil {
			slog.Error("Failed to mark absentee", "employee_id", e.ID, "date", date, "error", err)
			continue
		}
		marked++
	}

	slog.Info("Absence marking completed", "date", date, "marked", marked)
	return nil
}
