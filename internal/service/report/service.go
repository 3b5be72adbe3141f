package report

import (
	"context"
	"sort"
	"time"

	"github.com/relief-experts/attendance-backend-go/internal/domain/attendance"
	"github.com/relief-experts/attendance-backend-go/internal/domain/center"
	"github.com/relief-experts/attendance-backend-go/internal/domain/employee"
	"github.com/relief-experts/attendance-backend-go/internal/domain/holiday"
	"github.com/relief-experts/attendance-backend-go/internal/domain/report"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/timecalc"
)

const dateLayout = "2006-01-02"

// criticalDelayMinutes marks a delay the dashboard surfaces
// prominently.
const criticalDelayMinutes = 30

type timeSource interface {
	Now() time.Time
}

// ReconstructorService turns raw attendance spans into day-scoped
// timesheet rows. Reconstruction is a pure function of the snapshot
// and the filter; running it twice never changes stored data.
type ReconstructorService struct {
	snap  *Snapshot
	clock timeSource
}

func NewReconstructorService(snap *Snapshot, clock timeSource) report.Service {
	return &ReconstructorService{snap: snap, clock: clock}
}

// Reconstruct implements report.Service.
func (s *ReconstructorService) Reconstruct(_ context.Context, filter report.Filter) ([]report.Row, report.Summary, error) {
	from, err := time.Parse(dateLayout, filter.DateFrom)
	if err != nil {
		return nil, report.Summary{}, report.ErrInvalidDate
	}
	to, err := time.Parse(dateLayout, filter.DateTo)
	if err != nil {
		return nil, report.Summary{}, report.ErrInvalidDate
	}
	if to.Before(from) {
		return nil, report.Summary{}, report.ErrInvalidDateRange
	}

	records, employees, centers, holidays := s.snap.view()
	now := s.clock.Now()

	var rows []report.Row
	for _, rec := range records {
		// A broken source record skips, it never aborts the report.
		if rec.ID == "" || rec.EmployeeID == "" || rec.CheckIn.IsZero() {
			continue
		}
		if filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.CenterID != nil && rec.CenterID != *filter.CenterID {
			continue
		}
		e := employees[rec.EmployeeID]
		for _, row := range s.explode(rec, e, now) {
			if row.Date < filter.DateFrom || row.Date > filter.DateTo {
				continue
			}
			s.annotate(&row, e, centers[rec.CenterID], holidays)
			rows = append(rows, row)
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		if rows[i].EmployeeID != rows[j].EmployeeID {
			return rows[i].EmployeeID < rows[j].EmployeeID
		}
		return rows[i].ID < rows[j].ID
	})

	return rows, summarize(rows), nil
}

// explode converts one record into its per-day rows. Only shift-mode
// spans split: one row per touched calendar day, the first row runs
// to midnight, interior rows cover full days, and the last row ends
// at the check-out. Administrative records pass through unsplit with
// their stored status and minutes. Open spans use the synchronized
// now as a provisional end; rows on days before today are final and
// flag the missed check-out, only today's row stays provisional.
func (s *ReconstructorService) explode(rec attendance.Record, e employee.Employee, now time.Time) []report.Row {
	end := now
	open := rec.Open()
	if !open {
		end = *rec.CheckOut
	}
	if end.Before(rec.CheckIn) {
		end = rec.CheckIn
	}

	startDate := timecalc.Today(rec.CheckIn)
	endDate := timecalc.Today(end)

	if startDate == endDate || e.Administrative() {
		row := report.Row{
			ID:                    rec.ID,
			RecordID:              rec.ID,
			EmployeeID:            rec.EmployeeID,
			CenterID:              rec.CenterID,
			Date:                  rec.Date,
			CheckIn:               rec.CheckIn.Format("15:04"),
			Status:                rec.Status,
			DelayMinutes:          rec.DelayMinutes,
			EarlyDepartureMinutes: rec.EarlyDepartureMinutes,
			WorkingHours:          rec.WorkingHours,
			Notes:                 rec.Notes,
		}
		if rec.Status == attendance.StatusAbsent {
			row.CheckIn = ""
			row.WorkingHours = 0
			return []report.Row{row}
		}
		if open {
			row.WorkingHours = timecalc.WorkingHours(rec.CheckIn, end)
			if startDate == timecalc.Today(now) {
				row.Provisional = true
			} else {
				row.Status = attendance.StatusNotLoggedOut
			}
		} else {
			row.CheckOut = end.Format("15:04")
		}
		return []report.Row{row}
	}

	var rows []report.Row
	segStart := rec.CheckIn
	for day := timecalc.StartOfDay(rec.CheckIn); !day.After(timecalc.StartOfDay(end)); day = day.AddDate(0, 0, 1) {
		segEnd := day.AddDate(0, 0, 1) // midnight after this day
		last := timecalc.Today(day) == endDate
		if last {
			segEnd = end
		}

		date := timecalc.Today(day)
		row := report.Row{
			ID:           rec.ID + "-" + date,
			RecordID:     rec.ID,
			EmployeeID:   rec.EmployeeID,
			CenterID:     rec.CenterID,
			Date:         date,
			CheckIn:      segStart.Format("15:04"),
			Status:       attendance.StatusPresent,
			WorkingHours: timecalc.WorkingHours(segStart, segEnd),
			IsSplit:      true,
			Notes:        rec.Notes,
		}
		// Still clocked in: every day already behind us is a missed
		// check-out, today's tail stays provisional until the employee
		// actually leaves.
		if open {
			if date == timecalc.Today(now) {
				row.Provisional = true
			} else {
				row.Status = attendance.StatusNotLoggedOut
			}
		}
		if !last || !open {
			row.CheckOut = segEnd.Format("15:04")
		}
		rows = append(rows, row)

		segStart = segEnd
	}
	return rows
}

// annotate adds holiday and weekend context. Shift employees work
// through both, so only administrative rows are flagged.
func (s *ReconstructorService) annotate(row *report.Row, e employee.Employee, c center.Center, holidays map[string]holiday.Holiday) {
	if !e.Administrative() {
		return
	}
	if h, ok := holidays[row.Date]; ok {
		name := h.Name
		row.HolidayName = &name
	}
	if c.ID != "" {
		if day, err := time.Parse(dateLayout, row.Date); err == nil {
			row.IsWeekend = !c.IsWorkingDay(day.Weekday())
		}
	}
}

func summarize(rows []report.Row) report.Summary {
	summary := report.Summary{TotalRows: len(rows)}

	var attended, onTime int
	workDays := make(map[string]struct{})
	for _, row := range rows {
		summary.TotalHours += row.WorkingHours
		if row.DelayMinutes > criticalDelayMinutes {
			summary.CriticalDelays++
		}
		if row.Status == attendance.StatusAbsent {
			continue
		}
		attended++
		if row.DelayMinutes == 0 {
			onTime++
		}
		if row.WorkingHours > 0 {
			workDays[row.EmployeeID+"/"+row.Date] = struct{}{}
		}
	}

	if attended > 0 {
		summary.DisciplineRate = timecalc.Round2(float64(onTime) / float64(attended) * 100)
	}
	summary.TotalHours = timecalc.Round2(summary.TotalHours)
	summary.ActualWorkDays = len(workDays)
	return summary
}
