package holiday

import "errors"

// Holiday dates are excluded from actual-working-day counts and flag
// report rows for administrative employees.
type Holiday struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"` // YYYY-MM-DD
}

var ErrHolidayNotFound = errors.New("holiday not found")
