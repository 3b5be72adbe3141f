package report

import (
	"context"
	"testing"
	"time"

	"github.com/relief-experts/attendance-backend-go/internal/domain/attendance"
	"github.com/relief-experts/attendance-backend-go/internal/domain/center"
	"github.com/relief-experts/attendance-backend-go/internal/domain/employee"
	"github.com/relief-experts/attendance-backend-go/internal/domain/holiday"
	"github.com/relief-experts/attendance-backend-go/internal/domain/report"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/changefeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

func timePtr(t time.Time) *time.Time { return &t }

func testSnapshot() *Snapshot {
	snap := NewSnapshot()
	snap.employees["emp-1"] = employee.Employee{
		ID: "emp-1", Code: "E-100", Name: "Sami", CenterID: "center-1",
		IsActive: true, WorkMode: employee.WorkModeAdministrative,
	}
	snap.employees["emp-2"] = employee.Employee{
		ID: "emp-2", Code: "E-101", Name: "Rama", CenterID: "center-1",
		IsActive: true, WorkMode: employee.WorkModeShifts,
	}
	snap.centers["center-1"] = center.Center{
		ID: "center-1", Name: "North Center", StartTime: "09:00", EndTime: "17:00",
		IsActive: true, WorkingDays: []int{0, 1, 2, 3, 4},
	}
	return snap
}

func closedRecord(id, employeeID, date string, checkIn, checkOut time.Time, status attendance.Status, delay int, hours float64) attendance.Record {
	return attendance.Record{
		ID:           id,
		EmployeeID:   employeeID,
		CenterID:     "center-1",
		Date:         date,
		CheckIn:      checkIn,
		CheckOut:     timePtr(checkOut),
		Status:       status,
		DelayMinutes: delay,
		WorkingHours: hours,
	}
}

func TestReconstructSplitsMultiDayShift(t *testing.T) {
	snap := testSnapshot()
	// 2026-03-02 22:00 through 2026-03-04 06:00.
	snap.records["rec-1"] = closedRecord("rec-1", "emp-2", "2026-03-02",
		time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 4, 6, 0, 0, 0, time.UTC),
		attendance.StatusPresent, 0, 32)

	svc := NewReconstructorService(snap, fixedClock{t: time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)})
	rows, _, err := svc.Reconstruct(context.Background(), report.Filter{DateFrom: "2026-03-01", DateTo: "2026-03-31"})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "rec-1-2026-03-02", rows[0].ID)
	assert.Equal(t, "rec-1-2026-03-03", rows[1].ID)
	assert.Equal(t, "rec-1-2026-03-04", rows[2].ID)

	assert.Equal(t, 2.0, rows[0].WorkingHours)
	assert.Equal(t, 24.0, rows[1].WorkingHours)
	assert.Equal(t, 6.0, rows[2].WorkingHours)

	for _, row := range rows {
		assert.True(t, row.IsSplit)
		assert.Equal(t, "rec-1", row.RecordID)
		assert.Equal(t, attendance.StatusPresent, row.Status)
	}

	assert.Equal(t, "22:00", rows[0].CheckIn)
	assert.Equal(t, "00:00", rows[0].CheckOut)
	assert.Equal(t, "06:00", rows[2].CheckOut)
}

func TestReconstructMarksMissedCheckOut(t *testing.T) {
	snap := testSnapshot()
	snap.records["rec-1"] = attendance.Record{
		ID: "rec-1", EmployeeID: "emp-2", CenterID: "center-1", Date: "2026-03-02",
		CheckIn: time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC),
		Status:  attendance.StatusPresent,
	}

	// Three days later the span is still open. Every day already behind
	// us is a final missed check-out; only today's tail is provisional.
	svc := NewReconstructorService(snap, fixedClock{t: time.Date(2026, 3, 5, 6, 0, 0, 0, time.UTC)})
	rows, _, err := svc.Reconstruct(context.Background(), report.Filter{DateFrom: "2026-03-01", DateTo: "2026-03-31"})
	require.NoError(t, err)
	require.Len(t, rows, 4)

	for _, row := range rows[:3] {
		assert.Equal(t, attendance.StatusNotLoggedOut, row.Status)
		assert.False(t, row.Provisional)
	}
	assert.Equal(t, 24.0, rows[2].WorkingHours)
	assert.Equal(t, "00:00", rows[2].CheckOut)

	assert.Equal(t, attendance.StatusPresent, rows[3].Status)
	assert.True(t, rows[3].Provisional)
	assert.Empty(t, rows[3].CheckOut)
	assert.Equal(t, 6.0, rows[3].WorkingHours)
}

func TestReconstructAdministrativeOvernightIsNotSplit(t *testing.T) {
	snap := testSnapshot()
	// Administrative record crossing midnight keeps its stored status
	// and delay; only shift spans explode into per-day rows.
	snap.records["rec-1"] = closedRecord("rec-1", "emp-1", "2026-03-02",
		time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 3, 1, 0, 0, 0, time.UTC),
		attendance.StatusLate, 45, 2)

	svc := NewReconstructorService(snap, fixedClock{t: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)})
	rows, _, err := svc.Reconstruct(context.Background(), report.Filter{DateFrom: "2026-03-01", DateTo: "2026-03-31"})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "rec-1", rows[0].ID)
	assert.False(t, rows[0].IsSplit)
	assert.Equal(t, "2026-03-02", rows[0].Date)
	assert.Equal(t, attendance.StatusLate, rows[0].Status)
	assert.Equal(t, 45, rows[0].DelayMinutes)
	assert.Equal(t, 2.0, rows[0].WorkingHours)
	assert.Equal(t, "23:00", rows[0].CheckIn)
	assert.Equal(t, "01:00", rows[0].CheckOut)
}

func TestReconstructOpenRecordTodayIsProvisional(t *testing.T) {
	snap := testSnapshot()
	snap.records["rec-1"] = attendance.Record{
		ID: "rec-1", EmployeeID: "emp-1", CenterID: "center-1", Date: "2026-03-02",
		CheckIn: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		Status:  attendance.StatusPresent,
	}

	svc := NewReconstructorService(snap, fixedClock{t: time.Date(2026, 3, 2, 13, 30, 0, 0, time.UTC)})
	rows, _, err := svc.Reconstruct(context.Background(), report.Filter{DateFrom: "2026-03-02", DateTo: "2026-03-02"})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.True(t, rows[0].Provisional)
	assert.Empty(t, rows[0].CheckOut)
	assert.Equal(t, 4.5, rows[0].WorkingHours)
}

func TestReconstructIsIdempotent(t *testing.T) {
	snap := testSnapshot()
	snap.records["rec-1"] = closedRecord("rec-1", "emp-1", "2026-03-02",
		time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC),
		attendance.StatusPresent, 0, 8)
	snap.records["rec-2"] = closedRecord("rec-2", "emp-2", "2026-03-02",
		time.Date(2026, 3, 2, 20, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 3, 4, 0, 0, 0, time.UTC),
		attendance.StatusPresent, 0, 8)

	svc := NewReconstructorService(snap, fixedClock{t: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)})
	filter := report.Filter{DateFrom: "2026-03-01", DateTo: "2026-03-31"}

	first, firstSummary, err := svc.Reconstruct(context.Background(), filter)
	require.NoError(t, err)
	second, secondSummary, err := svc.Reconstruct(context.Background(), filter)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstSummary, secondSummary)
}

func TestReconstructFilterWindow(t *testing.T) {
	snap := testSnapshot()
	snap.records["rec-1"] = closedRecord("rec-1", "emp-2", "2026-03-02",
		time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 4, 6, 0, 0, 0, time.UTC),
		attendance.StatusPresent, 0, 32)

	svc := NewReconstructorService(snap, fixedClock{t: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)})
	rows, _, err := svc.Reconstruct(context.Background(), report.Filter{DateFrom: "2026-03-03", DateTo: "2026-03-03"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "rec-1-2026-03-03", rows[0].ID)
	assert.Equal(t, 24.0, rows[0].WorkingHours)
}

func TestReconstructAnnotatesAdministrativeRowsOnly(t *testing.T) {
	snap := testSnapshot()
	snap.holidays["2026-03-02"] = holiday.Holiday{ID: "h-1", Name: "Revolution Day", Date: "2026-03-02"}
	// 2026-03-07 is a Saturday, outside working days 0-4.
	snap.records["rec-1"] = closedRecord("rec-1", "emp-1", "2026-03-02",
		time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC),
		attendance.StatusPresent, 0, 8)
	snap.records["rec-2"] = closedRecord("rec-2", "emp-1", "2026-03-07",
		time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 7, 13, 0, 0, 0, time.UTC),
		attendance.StatusPresent, 0, 4)
	snap.records["rec-3"] = closedRecord("rec-3", "emp-2", "2026-03-02",
		time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC),
		attendance.StatusPresent, 0, 8)

	svc := NewReconstructorService(snap, fixedClock{t: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)})
	rows, _, err := svc.Reconstruct(context.Background(), report.Filter{DateFrom: "2026-03-01", DateTo: "2026-03-31"})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	byID := make(map[string]report.Row)
	for _, row := range rows {
		byID[row.ID] = row
	}

	require.NotNil(t, byID["rec-1"].HolidayName)
	assert.Equal(t, "Revolution Day", *byID["rec-1"].HolidayName)
	assert.True(t, byID["rec-2"].IsWeekend)
	// Shift employees are exempt from both flags.
	assert.Nil(t, byID["rec-3"].HolidayName)
	assert.False(t, byID["rec-3"].IsWeekend)
}

func TestReconstructSummary(t *testing.T) {
	snap := testSnapshot()
	snap.records["rec-1"] = closedRecord("rec-1", "emp-1", "2026-03-02",
		time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC),
		attendance.StatusPresent, 0, 8)
	snap.records["rec-2"] = closedRecord("rec-2", "emp-1", "2026-03-03",
		time.Date(2026, 3, 3, 9, 45, 0, 0, time.UTC),
		time.Date(2026, 3, 3, 17, 0, 0, 0, time.UTC),
		attendance.StatusLate, 35, 7.25)
	snap.records["rec-3"] = attendance.Record{
		ID: "rec-3", EmployeeID: "emp-1", CenterID: "center-1", Date: "2026-03-04",
		CheckIn: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		Status:  attendance.StatusAbsent,
	}

	svc := NewReconstructorService(snap, fixedClock{t: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)})
	rows, summary, err := svc.Reconstruct(context.Background(), report.Filter{DateFrom: "2026-03-01", DateTo: "2026-03-31"})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 3, summary.TotalRows)
	assert.Equal(t, 50.0, summary.DisciplineRate)
	assert.Equal(t, 15.25, summary.TotalHours)
	assert.Equal(t, 1, summary.CriticalDelays)
	assert.Equal(t, 2, summary.ActualWorkDays)
}

func TestReconstructRejectsBadRanges(t *testing.T) {
	svc := NewReconstructorService(testSnapshot(), fixedClock{t: time.Now()})

	_, _, err := svc.Reconstruct(context.Background(), report.Filter{DateFrom: "02-03-2026", DateTo: "2026-03-31"})
	assert.ErrorIs(t, err, report.ErrInvalidDate)

	_, _, err = svc.Reconstruct(context.Background(), report.Filter{DateFrom: "2026-03-31", DateTo: "2026-03-01"})
	assert.ErrorIs(t, err, report.ErrInvalidDateRange)
}

func TestSnapshotAppliesFeedEvents(t *testing.T) {
	snap := testSnapshot()

	rec := closedRecord("rec-1", "emp-1", "2026-03-02",
		time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC),
		attendance.StatusPresent, 0, 8)
	snap.apply(changefeed.Event{Table: "attendance_records", Op: changefeed.OpInserted, Record: rec})
	assert.Len(t, snap.records, 1)

	snap.apply(changefeed.Event{Table: "attendance_records", Op: changefeed.OpDeleted, Record: attendance.Record{ID: "rec-1"}})
	assert.Empty(t, snap.records)

	// A device binding event carries only id and device fields; the
	// snapshot merges it into the existing employee.
	device := "device-9"
	snap.apply(changefeed.Event{Table: "employees", Op: changefeed.OpUpdated, Record: employee.Employee{ID: "emp-1", DeviceID: &device}})
	require.NotNil(t, snap.employees["emp-1"].DeviceID)
	assert.Equal(t, "device-9", *snap.employees["emp-1"].DeviceID)
	assert.Equal(t, "E-100", snap.employees["emp-1"].Code)
}
