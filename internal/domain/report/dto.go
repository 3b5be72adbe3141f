package report

import (
	"github.com/relief-experts/attendance-backend-go/internal/domain/attendance"
)

// Row is one day-scoped timesheet entry. Multi-day shift records are
// exploded into one row per calendar day; rows keep the source record
// identifiers and are display-only.
type Row struct {
	ID                    string            `json:"id"`
	RecordID              string            `json:"record_id"`
	EmployeeID            string            `json:"employee_id"`
	CenterID              string            `json:"center_id"`
	Date                  string            `json:"date"`
	CheckIn               string            `json:"check_in,omitempty"`
	CheckOut              string            `json:"check_out,omitempty"`
	Status                attendance.Status `json:"status"`
	DelayMinutes          int               `json:"delay_minutes"`
	EarlyDepartureMinutes int               `json:"early_departure_minutes"`
	WorkingHours          float64           `json:"working_hours"`
	IsSplit               bool              `json:"is_split"`
	// Provisional marks the still-open row for today; it changes once
	// the employee checks out.
	Provisional bool    `json:"provisional,omitempty"`
	HolidayName *string `json:"holiday_name,omitempty"`
	IsWeekend   bool    `json:"is_weekend,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// Filter bounds a reconstruction run.
type Filter struct {
	DateFrom   string  `json:"date_from"`
	DateTo     string  `json:"date_to"`
	CenterID   *string `json:"center_id,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

// Summary aggregates the reconstructed rows the way the dashboard
// presents them.
type Summary struct {
	TotalRows      int     `json:"total_rows"`
	DisciplineRate float64 `json:"discipline_rate"` // % of on-time rows
	TotalHours     float64 `json:"total_hours"`
	CriticalDelays int     `json:"critical_delays"` // rows with delay > 30 min
	ActualWorkDays int     `json:"actual_work_days"`
}
