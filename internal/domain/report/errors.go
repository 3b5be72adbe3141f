package report

import "errors"

var (
	ErrInvalidDateRange = errors.New("end date must be on or after the start date")
	ErrInvalidDate      = errors.New("dates must use the YYYY-MM-DD format")
)
