package report

import "context"

// Service reconstructs day-level timesheet rows from raw attendance
// spans. It reads the in-memory snapshot kept current by the change
// feed, never the store directly.
type Service interface {
	Reconstruct(ctx context.Context, filter Filter) ([]Row, Summary, error)
}
