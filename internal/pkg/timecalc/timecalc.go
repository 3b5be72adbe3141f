// Package timecalc holds the pure attendance arithmetic: lateness,
// early departure and worked-hours calculations against a center's
// scheduled HH:mm times.
package timecalc

import (
	"math"
	"time"
)

// scheduledInstant places scheduledHHmm on the same calendar day as ref.
// A malformed time-of-day yields the zero instant on that day.
func scheduledInstant(ref time.Time, scheduledHHmm string) time.Time {
	t, err := time.Parse("15:04", scheduledHHmm)
	if err != nil {
		t = time.Time{}
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), t.Hour(), t.Minute(), 0, 0, ref.Location())
}

// LateMinutes returns how many minutes actual is past the scheduled
// start, after deducting the grace period. Arriving on or before the
// scheduled instant is never late.
func LateMinutes(actual time.Time, scheduledHHmm string, graceMinutes int) int {
	scheduled := scheduledInstant(actual, scheduledHHmm)
	if !actual.After(scheduled) {
		return 0
	}
	raw := int(actual.Sub(scheduled).Minutes())
	if late := raw - graceMinutes; late > 0 {
		return late
	}
	return 0
}

// EarlyMinutes is the mirror of LateMinutes for departures before the
// scheduled end time.
func EarlyMinutes(actual time.Time, scheduledHHmm string, graceMinutes int) int {
	scheduled := scheduledInstant(actual, scheduledHHmm)
	if !actual.Before(scheduled) {
		return 0
	}
	raw := int(scheduled.Sub(actual).Minutes())
	if early := raw - graceMinutes; early > 0 {
		return early
	}
	return 0
}

// WorkingHours returns the elapsed hours between check-in and
// check-out, rounded to two decimals, never negative.
func WorkingHours(checkIn, checkOut time.Time) float64 {
	minutes := checkOut.Sub(checkIn).Minutes()
	hours := minutes / 60
	if hours < 0 {
		return 0
	}
	return Round2(hours)
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Today formats t as the portal's calendar-date key.
func Today(t time.Time) string {
	return t.Format("2006-01-02")
}

// StartOfDay returns local midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
