package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent      Status = "present"
	StatusLate         Status = "late"
	StatusAbsent       Status = "absent"
	StatusHoliday      Status = "holiday"
	StatusNotLoggedOut Status = "not_logged_out"
)

// State is the derived clock state of an employee, inferred from the
// latest record rather than stored.
type State string

const (
	ClockedIn  State = "CLOCKED_IN"
	ClockedOut State = "CLOCKED_OUT"
)

// Outcome keys select the templated portal message for an accepted
// attempt.
type Outcome string

const (
	OutcomeCheckIn       Outcome = "check_in"
	OutcomeLateCheckIn   Outcome = "late_check_in"
	OutcomeCheckOut      Outcome = "check_out"
	OutcomeEarlyCheckOut Outcome = "early_check_out"
)

// Record is one attendance span. CheckOut is nil while the employee is
// still clocked in ("open record"); CheckOutDate may differ from Date
// for shift spans crossing midnight.
type Record struct {
	ID                    string
	EmployeeID            string
	CenterID              string
	Date                  string // calendar date of check-in, YYYY-MM-DD
	CheckIn               time.Time
	CheckOut              *time.Time
	CheckOutDate          *string
	Status                Status
	DelayMinutes          int
	EarlyDepartureMinutes int
	WorkingHours          float64
	NetworkID             string
	Latitude              *float64
	Longitude             *float64
	Notes                 *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Open reports whether the record is still clocked in.
func (r Record) Open() bool {
	return r.CheckOut == nil
}
