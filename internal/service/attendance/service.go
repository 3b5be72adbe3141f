package attendance

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/relief-experts/attendance-backend-go/internal/config"
	"github.com/relief-experts/attendance-backend-go/internal/domain/attendance"
	"github.com/relief-experts/attendance-backend-go/internal/domain/center"
	"github.com/relief-experts/attendance-backend-go/internal/domain/employee"
	"github.com/relief-experts/attendance-backend-go/internal/domain/template"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/database"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/geo"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/geoclock"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/retry"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/timecalc"
	"github.com/relief-experts/attendance-backend-go/internal/repository/postgresql"
)

// timeSource supplies the synchronized wall clock the gate stamps
// records with.
type timeSource interface {
	Now() time.Time
}

type GateService struct {
	runTx     func(ctx context.Context, fn func(ctx context.Context) error) error
	clock     timeSource
	records   attendance.Repository
	employees employee.Repository
	centers   center.Repository
	templates template.Repository
	cfg       config.AttendanceConfig
}

func NewGateService(
	db *database.DB,
	clock *geoclock.Clock,
	records attendance.Repository,
	employees employee.Repository,
	centers center.Repository,
	templates template.Repository,
	cfg config.AttendanceConfig,
) attendance.Service {
	return &GateService{
		runTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
		clock:     clock,
		records:   records,
		employees: employees,
		centers:   centers,
		templates: templates,
		cfg:       cfg,
	}
}

// attempt is the validated context shared by check-in and check-out.
type attempt struct {
	now      time.Time
	center   center.Center
	employee employee.Employee
	bind     bool // device must be bound during commit
}

// CheckIn implements attendance.Service.
func (s *GateService) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.Result, error) {
	if err := req.Validate(); err != nil {
		return attendance.Result{}, err
	}

	at, err := s.validateAttempt(ctx, req.CenterID, req.EmployeeID, req.DeviceID, req.NetworkID, req.Location)
	if err != nil {
		return attendance.Result{}, err
	}

	// State check. At most one open record per employee; administrative
	// employees additionally get a single record per calendar date.
	latest, err := s.records.GetLatestByEmployee(ctx, at.employee.ID)
	if err != nil && !errors.Is(err, attendance.ErrRecordNotFound) {
		return attendance.Result{}, fmt.Errorf("failed to load latest record: %w", err)
	}
	if err == nil && latest.Open() {
		return attendance.Result{}, attendance.ErrAlreadyClockedIn
	}

	today := timecalc.Today(at.now)
	if at.employee.Administrative() {
		hasRecord, err := s.records.HasRecordForDate(ctx, at.employee.ID, today)
		if err != nil {
			return attendance.Result{}, fmt.Errorf("failed to check daily record: %w", err)
		}
		if hasRecord {
			return attendance.Result{}, attendance.ErrAlreadyCheckedInToday
		}
	}

	// Delay is only measured against the schedule in administrative
	// mode; shift employees check in whenever their shift starts.
	delay := 0
	if at.employee.Administrative() {
		delay = timecalc.LateMinutes(at.now, at.center.StartTime, at.center.CheckInGrace)
	}

	status := attendance.StatusPresent
	outcome := attendance.OutcomeCheckIn
	if delay > 0 {
		status = attendance.StatusLate
		outcome = attendance.OutcomeLateCheckIn
	}

	record := attendance.Record{
		ID:           uuid.NewString(),
		EmployeeID:   at.employee.ID,
		CenterID:     at.center.ID,
		Date:         today,
		CheckIn:      at.now,
		Status:       status,
		DelayMinutes: delay,
		NetworkID:    req.NetworkID,
	}
	if req.Location.Resolved() {
		record.Latitude = &req.Location.Point.Lat
		record.Longitude = &req.Location.Point.Lon
	}

	err = retry.Do(ctx, s.cfg.StoreRetryAttempts, func() error {
		return s.runTx(ctx, func(txCtx context.Context) error {
			if at.bind {
				if err := s.employees.BindDevice(txCtx, at.employee.ID, req.DeviceID); err != nil {
					return retry.Permanent(err)
				}
			}
			created, err := s.records.Create(txCtx, record)
			if err != nil {
				return err
			}
			record = created
			return nil
		})
	})
	if err != nil {
		return attendance.Result{}, err
	}

	return attendance.Result{
		Outcome: outcome,
		Minutes: delay,
		Message: s.renderMessage(ctx, outcome, delay),
		Record:  record,
	}, nil
}

// CheckOut implements attendance.Service.
func (s *GateService) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.Result, error) {
	if err := req.Validate(); err != nil {
		return attendance.Result{}, err
	}

	at, err := s.validateAttempt(ctx, req.CenterID, req.EmployeeID, req.DeviceID, req.NetworkID, req.Location)
	if err != nil {
		return attendance.Result{}, err
	}

	latest, err := s.records.GetLatestByEmployee(ctx, at.employee.ID)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.Result{}, attendance.ErrNotClockedIn
		}
		return attendance.Result{}, fmt.Errorf("failed to load latest record: %w", err)
	}
	if !latest.Open() {
		return attendance.Result{}, attendance.ErrNotClockedIn
	}

	early := 0
	if at.employee.Administrative() {
		early = timecalc.EarlyMinutes(at.now, at.center.EndTime, at.center.CheckOutGrace)
	}

	outcome := attendance.OutcomeCheckOut
	if early > 0 {
		outcome = attendance.OutcomeEarlyCheckOut
	}

	now := at.now
	latest.CheckOut = &now
	latest.EarlyDepartureMinutes = early
	latest.WorkingHours = timecalc.WorkingHours(latest.CheckIn, now)
	if checkOutDate := timecalc.Today(now); checkOutDate != latest.Date {
		latest.CheckOutDate = &checkOutDate
	}
	if req.Location.Resolved() {
		lat, lon := req.Location.Point.Lat, req.Location.Point.Lon
		latest.Latitude = &lat
		latest.Longitude = &lon
	}

	err = retry.Do(ctx, s.cfg.StoreRetryAttempts, func() error {
		return s.records.Close(ctx, latest)
	})
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			// Lost a race with a concurrent check-out.
			return attendance.Result{}, attendance.ErrNotClockedIn
		}
		return attendance.Result{}, err
	}

	return attendance.Result{
		Outcome: outcome,
		Minutes: early,
		Message: s.renderMessage(ctx, outcome, early),
		Record:  latest,
	}, nil
}

// validateAttempt runs the shared gate pipeline: identity, network,
// geofence, then device binding. Order matters; the first failing
// stage decides the rejection the caller sees.
func (s *GateService) validateAttempt(ctx context.Context, centerID, employeeID, deviceID, networkID string, loc geoclock.Location) (attempt, error) {
	at := attempt{now: s.clock.Now()}

	c, err := s.centers.GetByID(ctx, centerID)
	if err != nil {
		if errors.Is(err, center.ErrCenterNotFound) {
			return attempt{}, attendance.ErrCenterMissing
		}
		return attempt{}, fmt.Errorf("failed to load center: %w", err)
	}
	if !c.IsActive {
		return attempt{}, attendance.ErrCenterInactive
	}

	e, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attempt{}, attendance.ErrEmployeeMissing
		}
		return attempt{}, fmt.Errorf("failed to load employee: %w", err)
	}
	if !e.IsActive {
		return attempt{}, attendance.ErrEmployeeInactive
	}
	if e.CenterID != c.ID {
		return attempt{}, attendance.ErrEmployeeMissing
	}

	if s.cfg.EnforceNetworkCheck && c.AuthorizedNetwork != nil && *c.AuthorizedNetwork != "" {
		if networkID != *c.AuthorizedNetwork {
			return attempt{}, attendance.ErrNetworkNotAuthorized
		}
	}

	if c.HasGeofence() {
		if !loc.Resolved() {
			return attempt{}, attendance.ErrLocationRequired
		}
		distance := geo.HaversineMeters(loc.Point.Lat, loc.Point.Lon, *c.Latitude, *c.Longitude)
		if distance > c.Radius(s.cfg.DefaultRadiusMeters) {
			return attempt{}, attendance.ErrOutsideGeofence
		}
	}

	// Device binding is bidirectional: the employee must use their
	// bound device, and the device must not belong to someone else.
	if e.DeviceID != nil {
		if *e.DeviceID != deviceID {
			return attempt{}, attendance.ErrDeviceMismatch
		}
	} else {
		owner, err := s.employees.GetByDeviceID(ctx, deviceID)
		if err != nil && !errors.Is(err, employee.ErrEmployeeNotFound) {
			return attempt{}, fmt.Errorf("failed to check device owner: %w", err)
		}
		if err == nil && owner.ID != e.ID {
			return attempt{}, attendance.ErrDeviceInUse
		}
		at.bind = true
	}

	at.center = c
	at.employee = e
	return at, nil
}

// CurrentState implements attendance.Service.
func (s *GateService) CurrentState(ctx context.Context, employeeID string) (attendance.State, error) {
	latest, err := s.records.GetLatestByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.ClockedOut, nil
		}
		return "", fmt.Errorf("failed to load latest record: %w", err)
	}
	if latest.Open() {
		return attendance.ClockedIn, nil
	}
	return attendance.ClockedOut, nil
}

// List implements attendance.Service.
func (s *GateService) List(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	return s.records.List(ctx, filter)
}

// Delete implements attendance.Service.
func (s *GateService) Delete(ctx context.Context, id string) error {
	return s.records.Delete(ctx, id)
}

var defaultMessages = map[attendance.Outcome]string{
	attendance.OutcomeCheckIn:       "Welcome, your check-in was recorded.",
	attendance.OutcomeLateCheckIn:   "Check-in recorded with a delay of {minutes} minutes.",
	attendance.OutcomeCheckOut:      "Check-out recorded, see you tomorrow.",
	attendance.OutcomeEarlyCheckOut: "Check-out recorded {minutes} minutes before the end of the day.",
}

func (s *GateService) renderMessage(ctx context.Context, outcome attendance.Outcome, minutes int) string {
	content := defaultMessages[outcome]
	if t, err := s.templates.GetByType(ctx, string(outcome)); err == nil {
		content = t.Content
	}
	return strings.ReplaceAll(content, "{minutes}", strconv.Itoa(minutes))
}
