package center

import (
	"time"
)

// Center is an attendance site with its schedule and verification
// policy.
type Center struct {
	ID                string
	Name              string
	StartTime         string // HH:mm
	EndTime           string // HH:mm
	CheckInGrace      int    // minutes
	CheckOutGrace     int    // minutes
	AuthorizedNetwork *string
	Latitude          *float64
	Longitude         *float64
	RadiusMeters      *float64
	IsActive          bool
	WorkingDays       []int // 0=Sunday..6=Saturday
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasGeofence reports whether a geofence is configured.
func (c Center) HasGeofence() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// Radius returns the configured radius or fallback when coordinates
// exist without one.
func (c Center) Radius(fallback float64) float64 {
	if c.RadiusMeters != nil && *c.RadiusMeters > 0 {
		return *c.RadiusMeters
	}
	return fallback
}

// IsWorkingDay reports whether weekday is in the center's working set.
func (c Center) IsWorkingDay(weekday time.Weekday) bool {
	for _, d := range c.WorkingDays {
		if d == int(weekday) {
			return true
		}
	}
	return false
}
