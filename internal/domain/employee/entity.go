package employee

import (
	"time"
)

type WorkMode string

const (
	// WorkModeAdministrative follows the center's daily schedule and
	// accrues delay/early-departure penalties.
	WorkModeAdministrative WorkMode = "administrative"
	// WorkModeShifts may span calendar days and is exempt from daily
	// lateness, holiday and weekend rules.
	WorkModeShifts WorkMode = "shifts"
)

type Employee struct {
	ID               string
	Code             string
	Name             string
	CenterID         string
	WorkingHours     float64 // nominal daily hours
	JoinedDate       string
	DeviceID         *string
	LastDeviceUpdate *time.Time
	IsActive         bool
	WorkMode         WorkMode
	ProjectID        *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

// Administrative reports whether the daily schedule rules apply.
func (e Employee) Administrative() bool {
	return e.WorkMode != WorkModeShifts
}
