package attendance

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/relief-experts/attendance-backend-go/internal/config"
	"github.com/relief-experts/attendance-backend-go/internal/domain/attendance"
	"github.com/relief-experts/attendance-backend-go/internal/domain/center"
	"github.com/relief-experts/attendance-backend-go/internal/domain/employee"
	"github.com/relief-experts/attendance-backend-go/internal/domain/template"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/geoclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

type fakeRecordRepo struct {
	records map[string]attendance.Record
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: make(map[string]attendance.Record)}
}

func (r *fakeRecordRepo) Create(_ context.Context, record attendance.Record) (attendance.Record, error) {
	r.records[record.ID] = record
	return record, nil
}

func (r *fakeRecordRepo) Close(_ context.Context, record attendance.Record) error {
	existing, ok := r.records[record.ID]
	if !ok || existing.CheckOut != nil {
		return attendance.ErrRecordNotFound
	}
	r.records[record.ID] = record
	return nil
}

func (r *fakeRecordRepo) Update(_ context.Context, record attendance.Record) error {
	if _, ok := r.records[record.ID]; !ok {
		return attendance.ErrRecordNotFound
	}
	r.records[record.ID] = record
	return nil
}

func (r *fakeRecordRepo) GetLatestByEmployee(_ context.Context, employeeID string) (attendance.Record, error) {
	var matches []attendance.Record
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID {
			matches = append(matches, rec)
		}
	}
	if len(matches) == 0 {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].CheckIn.After(matches[j].CheckIn) })
	return matches[0], nil
}

func (r *fakeRecordRepo) HasRecordForDate(_ context.Context, employeeID string, date string) (bool, error) {
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && rec.Date == date {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRecordRepo) GetByID(_ context.Context, id string) (attendance.Record, error) {
	rec, ok := r.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return rec, nil
}

func (r *fakeRecordRepo) List(_ context.Context, _ attendance.Filter) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range r.records {
		out = append(out, rec)
	}
	return out, nil
}

func (r *fakeRecordRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.records[id]; !ok {
		return attendance.ErrRecordNotFound
	}
	delete(r.records, id)
	return nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(employees ...employee.Employee) *fakeEmployeeRepo {
	m := make(map[string]employee.Employee, len(employees))
	for _, e := range employees {
		m[e.ID] = e
	}
	return &fakeEmployeeRepo{employees: m}
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.employees[e.ID] = e
	return e, nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) GetByDeviceID(_ context.Context, deviceID string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.DeviceID != nil && *e.DeviceID == deviceID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) ListByCenter(_ context.Context, centerID string, _ bool) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		if e.CenterID == centerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEmployeeRepo) List(_ context.Context, _ bool) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, e employee.Employee) error {
	r.employees[e.ID] = e
	return nil
}

func (r *fakeEmployeeRepo) BindDevice(_ context.Context, employeeID, deviceID string) error {
	e, ok := r.employees[employeeID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	now := time.Now()
	e.DeviceID = &deviceID
	e.LastDeviceUpdate = &now
	r.employees[employeeID] = e
	return nil
}

func (r *fakeEmployeeRepo) ResetDevice(_ context.Context, employeeID string) error {
	e, ok := r.employees[employeeID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.DeviceID = nil
	r.employees[employeeID] = e
	return nil
}

func (r *fakeEmployeeRepo) SoftDelete(_ context.Context, id string) error {
	delete(r.employees, id)
	return nil
}

type fakeCenterRepo struct {
	centers map[string]center.Center
}

func newFakeCenterRepo(centers ...center.Center) *fakeCenterRepo {
	m := make(map[string]center.Center, len(centers))
	for _, c := range centers {
		m[c.ID] = c
	}
	return &fakeCenterRepo{centers: m}
}

func (r *fakeCenterRepo) Create(_ context.Context, c center.Center) (center.Center, error) {
	r.centers[c.ID] = c
	return c, nil
}

func (r *fakeCenterRepo) GetByID(_ context.Context, id string) (center.Center, error) {
	c, ok := r.centers[id]
	if !ok {
		return center.Center{}, center.ErrCenterNotFound
	}
	return c, nil
}

func (r *fakeCenterRepo) GetByAuthorizedNetwork(_ context.Context, networkID string) (center.Center, error) {
	for _, c := range r.centers {
		if c.AuthorizedNetwork != nil && *c.AuthorizedNetwork == networkID {
			return c, nil
		}
	}
	return center.Center{}, center.ErrCenterNotFound
}

func (r *fakeCenterRepo) List(_ context.Context, _ bool) ([]center.Center, error) {
	var out []center.Center
	for _, c := range r.centers {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCenterRepo) Update(_ context.Context, c center.Center) error {
	r.centers[c.ID] = c
	return nil
}

func (r *fakeCenterRepo) Delete(_ context.Context, id string) error {
	delete(r.centers, id)
	return nil
}

type fakeTemplateRepo struct {
	templates map[string]template.MessageTemplate
}

func (r *fakeTemplateRepo) GetByType(_ context.Context, templateType string) (template.MessageTemplate, error) {
	t, ok := r.templates[templateType]
	if !ok {
		return template.MessageTemplate{}, template.ErrTemplateNotFound
	}
	return t, nil
}

func (r *fakeTemplateRepo) List(_ context.Context) ([]template.MessageTemplate, error) {
	return nil, nil
}

func (r *fakeTemplateRepo) Upsert(_ context.Context, t template.MessageTemplate) (template.MessageTemplate, error) {
	if r.templates == nil {
		r.templates = make(map[string]template.MessageTemplate)
	}
	r.templates[t.Type] = t
	return t, nil
}

const (
	centerLat = 36.2021
	centerLon = 37.1343
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func testCenter() center.Center {
	return center.Center{
		ID:                "center-1",
		Name:              "North Center",
		StartTime:         "09:00",
		EndTime:           "17:00",
		CheckInGrace:      10,
		CheckOutGrace:     5,
		AuthorizedNetwork: strPtr("net-1"),
		Latitude:          floatPtr(centerLat),
		Longitude:         floatPtr(centerLon),
		IsActive:          true,
		WorkingDays:       []int{0, 1, 2, 3, 4},
	}
}

func testEmployee(mode employee.WorkMode) employee.Employee {
	return employee.Employee{
		ID:       "emp-1",
		Code:     "E-100",
		Name:     "Sami",
		CenterID: "center-1",
		IsActive: true,
		WorkMode: mode,
	}
}

type gateFixture struct {
	svc       *GateService
	records   *fakeRecordRepo
	employees *fakeEmployeeRepo
	centers   *fakeCenterRepo
	templates *fakeTemplateRepo
}

func newGateFixture(now time.Time, emp employee.Employee, c center.Center, cfg config.AttendanceConfig) gateFixture {
	records := newFakeRecordRepo()
	employees := newFakeEmployeeRepo(emp)
	centers := newFakeCenterRepo(c)
	templates := &fakeTemplateRepo{}

	svc := &GateService{
		runTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
		clock:     fixedClock{t: now},
		records:   records,
		employees: employees,
		centers:   centers,
		templates: templates,
		cfg:       cfg,
	}

	return gateFixture{svc: svc, records: records, employees: employees, centers: centers, templates: templates}
}

func defaultCfg() config.AttendanceConfig {
	return config.AttendanceConfig{
		DefaultRadiusMeters: 50,
		StoreRetryAttempts:  1,
	}
}

func onSiteLocation() geoclock.Location {
	return geoclock.Location{
		Status: geoclock.LocationActive,
		Point:  &geoclock.Point{Lat: centerLat, Lon: centerLon},
	}
}

func checkInRequest() attendance.CheckInRequest {
	return attendance.CheckInRequest{
		CenterID:   "center-1",
		EmployeeID: "emp-1",
		DeviceID:   "device-1",
		NetworkID:  "net-1",
		Location:   onSiteLocation(),
	}
}

func TestCheckInOnTime(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 55, 0, 0, time.UTC)
	f := newGateFixture(now, testEmployee(employee.WorkModeAdministrative), testCenter(), defaultCfg())

	result, err := f.svc.CheckIn(context.Background(), checkInRequest())
	require.NoError(t, err)

	assert.Equal(t, attendance.OutcomeCheckIn, result.Outcome)
	assert.Equal(t, 0, result.Minutes)
	assert.Equal(t, attendance.StatusPresent, result.Record.Status)
	assert.Equal(t, "2026-03-02", result.Record.Date)
	assert.Equal(t, now, result.Record.CheckIn)
	assert.Nil(t, result.Record.CheckOut)
}

func TestCheckInLateAfterGrace(t *testing.T) {
	// 09:25 against a 09:00 start with 10 minutes grace.
	now := time.Date(2026, 3, 2, 9, 25, 0, 0, time.UTC)
	f := newGateFixture(now, testEmployee(employee.WorkModeAdministrative), testCenter(), defaultCfg())

	result, err := f.svc.CheckIn(context.Background(), checkInRequest())
	require.NoError(t, err)

	assert.Equal(t, attendance.OutcomeLateCheckIn, result.Outcome)
	assert.Equal(t, 15, result.Minutes)
	assert.Equal(t, attendance.StatusLate, result.Record.Status)
	assert.Equal(t, 15, result.Record.DelayMinutes)
}

func TestCheckInWithinGraceIsPresent(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 10, 0, 0, time.UTC)
	f := newGateFixture(now, testEmployee(employee.WorkModeAdministrative), testCenter(), defaultCfg())

	result, err := f.svc.CheckIn(context.Background(), checkInRequest())
	require.NoError(t, err)

	assert.Equal(t, attendance.OutcomeCheckIn, result.Outcome)
	assert.Equal(t, attendance.StatusPresent, result.Record.Status)
}

func TestCheckInShiftModeIgnoresSchedule(t *testing.T) {
	// Far past the administrative start time; shift employees are
	// never late.
	now := time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC)
	f := newGateFixture(now, testEmployee(employee.WorkModeShifts), testCenter(), defaultCfg())

	result, err := f.svc.CheckIn(context.Background(), checkInRequest())
	require.NoError(t, err)

	assert.Equal(t, attendance.OutcomeCheckIn, result.Outcome)
	assert.Equal(t, 0, result.Record.DelayMinutes)
	assert.Equal(t, attendance.StatusPresent, result.Record.Status)
}

func TestCheckInBindsDeviceOnFirstUse(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	f := newGateFixture(now, testEmployee(employee.WorkModeAdministrative), testCenter(), defaultCfg())

	_, err := f.svc.CheckIn(context.Background(), checkInRequest())
	require.NoError(t, err)

	bound, err := f.employees.GetByID(context.Background(), "emp-1")
	require.NoError(t, err)
	require.NotNil(t, bound.DeviceID)
	assert.Equal(t, "device-1", *bound.DeviceID)
}

func TestCheckInRejectsForeignDevice(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	emp := testEmployee(employee.WorkModeAdministrative)
	emp.DeviceID = strPtr("device-1")
	f := newGateFixture(now, emp, testCenter(), defaultCfg())

	req := checkInRequest()
	req.DeviceID = "device-other"
	_, err := f.svc.CheckIn(context.Background(), req)
	assert.ErrorIs(t, err, attendance.ErrDeviceMismatch)
}

func TestCheckInRejectsSharedDevice(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	f := newGateFixture(now, testEmployee(employee.WorkModeAdministrative), testCenter(), defaultCfg())

	other := testEmployee(employee.WorkModeAdministrative)
	other.ID = "emp-2"
	other.Code = "E-101"
	other.DeviceID = strPtr("device-1")
	f.employees.employees[other.ID] = other

	_, err := f.svc.CheckIn(context.Background(), checkInRequest())
	assert.ErrorIs(t, err, attendance.ErrDeviceInUse)
}

func TestCheckInRequiresLocationInsideGeofence(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	f := newGateFixture(now, testEmployee(employee.WorkModeAdministrative), testCenter(), defaultCfg())

	req := checkInRequest()
	req.Location = geoclock.Location{Status: geoclock.LocationDenied}
	_, err := f.svc.CheckIn(context.Background(), req)
	assert.ErrorIs(t, err, attendance.ErrLocationRequired)

	// About a kilometer north of the center.
	req.Location = geoclock.Location{
		Status: geoclock.LocationActive,
		Point:  &geoclock.Point{Lat: centerLat + 0.01, Lon: centerLon},
	}
	_, err = f.svc.CheckIn(context.Background(), req)
	assert.ErrorIs(t, err, attendance.ErrOutsideGeofence)
}

func TestCheckInSkipsGeofenceWhenCenterHasNone(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	c := testCenter()
	c.Latitude = nil
	c.Longitude = nil
	f := newGateFixture(now, testEmployee(employee.WorkModeAdministrative), c, defaultCfg())

	req := checkInRequest()
	req.Location = geoclock.Location{Status: geoclock.LocationDenied}
	_, err := f.svc.CheckIn(context.Background(), req)
	assert.NoError(t, err)
}

func TestCheckInNetworkEnforcement(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	cfg := defaultCfg()
	cfg.EnforceNetworkCheck = true
	f := newGateFixture(now, testEmployee(employee.WorkModeAdministrative), testCenter(), cfg)

	req := checkInRequest()
	req.NetworkID = "net-unknown"
	_, err := f.svc.CheckIn(context.Background(), req)
	assert.ErrorIs(t, err, attendance.ErrNetworkNotAuthorized)

	// Enforcement disabled: the same request passes.
	f2 := newGateFixture(now, testEmployee(employee.WorkModeAdministrative), testCenter(), defaultCfg())
	_, err = f2.svc.CheckIn(context.Background(), req)
	assert.NoError(t, err)
}

func TestCheckInRejectsOpenRecord(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	f := newGateFixture(now, testEmployee(employee.WorkModeAdministrative), testCenter(), defaultCfg())

	_, err := f.svc.CheckIn(context.Background(), checkInRequest())
	require.NoError(t, err)

	_, err = f.svc.CheckIn(context.Background(), checkInRequest())
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestCheckInAdministrativeOncePerDay(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	f := newGateFixture(now, testEmployee(employee.WorkModeAdministrative), testCenter(), defaultCfg())

	_, err := f.svc.CheckIn(context.Background(), checkInRequest())
	require.NoError(t, err)

	f.svc.clock = fixedClock{t: now.Add(8 * time.Hour)}
	_, err = f.svc.CheckOut(context.Background(), attendance.CheckOutRequest(checkInRequest()))
	require.NoError(t, err)

	_, err = f.svc.CheckIn(context.Background(), checkInRequest())
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedInToday)
}

func TestCheckInShiftModeAllowsSecondShiftSameDay(t *testing.T) {
	now := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)
	f := newGateFixture(now, testEmployee(employee.WorkModeShifts), testCenter(), defaultCfg())

	_, err := f.svc.CheckIn(context.Background(), checkInRequest())
	require.NoError(t, err)

	f.svc.clock = fixedClock{t: now.Add(6 * time.Hour)}
	_, err = f.svc.CheckOut(context.Background(), attendance.CheckOutRequest(checkInRequest()))
	require.NoError(t, err)

	f.svc.clock = fixedClock{t: now.Add(12 * time.Hour)}
	_, err = f.svc.CheckIn(context.Background(), checkInRequest())
	assert.NoError(t, err)
}

func TestCheckInInactiveEmployeeAndCenter(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	emp := testEmployee(employee.WorkModeAdministrative)
	emp.IsActive = false
	f := newGateFixture(now, emp, testCenter(), defaultCfg())
	_, err := f.svc.CheckIn(context.Background(), checkInRequest())
	assert.ErrorIs(t, err, attendance.ErrEmployeeInactive)

	c := testCenter()
	c.IsActive = false
	f = newGateFixture(now, testEmployee(employee.WorkModeAdministrative), c, defaultCfg())
	_, err = f.svc.CheckIn(context.Background(), checkInRequest())
	assert.ErrorIs(t, err, attendance.ErrCenterInactive)
}

func TestCheckOutComputesHoursAndEarlyDeparture(t *testing.T) {
	checkIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	f := newGateFixture(checkIn, testEmployee(employee.WorkModeAdministrative), testCenter(), defaultCfg())

	_, err := f.svc.CheckIn(context.Background(), checkInRequest())
	require.NoError(t, err)

	// 16:40 against a 17:00 end with 5 minutes grace.
	f.svc.clock = fixedClock{t: time.Date(2026, 3, 2, 16, 40, 0, 0, time.UTC)}
	result, err := f.svc.CheckOut(context.Background(), attendance.CheckOutRequest(checkInRequest()))
	require.NoError(t, err)

	assert.Equal(t, attendance.OutcomeEarlyCheckOut, result.Outcome)
	assert.Equal(t, 15, result.Minutes)
	assert.Equal(t, 15, result.Record.EarlyDepartureMinutes)
	assert.InDelta(t, 7.67, result.Record.WorkingHours, 0.001)
	require.NotNil(t, result.Record.CheckOut)
	assert.Nil(t, result.Record.CheckOutDate)
}

func TestCheckOutCapturesCheckOutCoordinates(t *testing.T) {
	checkIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	f := newGateFixture(checkIn, testEmployee(employee.WorkModeAdministrative), testCenter(), defaultCfg())

	_, err := f.svc.CheckIn(context.Background(), checkInRequest())
	require.NoError(t, err)

	// The employee moved a few meters inside the geofence; the closed
	// record carries the check-out position, not the check-in one.
	f.svc.clock = fixedClock{t: time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)}
	req := attendance.CheckOutRequest(checkInRequest())
	req.Location = geoclock.Location{
		Status: geoclock.LocationActive,
		Point:  &geoclock.Point{Lat: centerLat + 0.0001, Lon: centerLon + 0.0001},
	}
	result, err := f.svc.CheckOut(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, result.Record.Latitude)
	require.NotNil(t, result.Record.Longitude)
	assert.Equal(t, centerLat+0.0001, *result.Record.Latitude)
	assert.Equal(t, centerLon+0.0001, *result.Record.Longitude)
}

func TestCheckOutOvernightShiftKeepsCheckInDate(t *testing.T) {
	checkIn := time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC)
	f := newGateFixture(checkIn, testEmployee(employee.WorkModeShifts), testCenter(), defaultCfg())

	_, err := f.svc.CheckIn(context.Background(), checkInRequest())
	require.NoError(t, err)

	f.svc.clock = fixedClock{t: time.Date(2026, 3, 3, 6, 0, 0, 0, time.UTC)}
	result, err := f.svc.CheckOut(context.Background(), attendance.CheckOutRequest(checkInRequest()))
	require.NoError(t, err)

	assert.Equal(t, "2026-03-02", result.Record.Date)
	require.NotNil(t, result.Record.CheckOutDate)
	assert.Equal(t, "2026-03-03", *result.Record.CheckOutDate)
	assert.Equal(t, 8.0, result.Record.WorkingHours)
	assert.Equal(t, 0, result.Record.EarlyDepartureMinutes)
}

func TestCheckOutWithoutOpenRecord(t *testing.T) {
	now := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
	f := newGateFixture(now, testEmployee(employee.WorkModeAdministrative), testCenter(), defaultCfg())

	_, err := f.svc.CheckOut(context.Background(), attendance.CheckOutRequest(checkInRequest()))
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestCheckInRendersTemplateMessage(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 25, 0, 0, time.UTC)
	f := newGateFixture(now, testEmployee(employee.WorkModeAdministrative), testCenter(), defaultCfg())
	_, err := f.templates.Upsert(context.Background(), template.MessageTemplate{
		ID:      "t-1",
		Type:    string(attendance.OutcomeLateCheckIn),
		Content: "You are {minutes} minutes late.",
	})
	require.NoError(t, err)

	result, err := f.svc.CheckIn(context.Background(), checkInRequest())
	require.NoError(t, err)
	assert.Equal(t, "You are 15 minutes late.", result.Message)
}

func TestCurrentState(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	f := newGateFixture(now, testEmployee(employee.WorkModeAdministrative), testCenter(), defaultCfg())

	state, err := f.svc.CurrentState(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, attendance.ClockedOut, state)

	_, err = f.svc.CheckIn(context.Background(), checkInRequest())
	require.NoError(t, err)

	state, err = f.svc.CurrentState(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, attendance.ClockedIn, state)
}
