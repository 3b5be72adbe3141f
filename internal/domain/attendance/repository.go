package attendance

import (
	"context"
)

// Repository defines data access for attendance records. Mutations
// publish to the change feed after commit.
type Repository interface {
	// Create inserts the record produced by an accepted check-in.
	Create(ctx context.Context, record Record) (Record, error)

	// Close writes the check-out fields of an open record.
	Close(ctx context.Context, record Record) error

	// Update rewrites a record (admin corrections).
	Update(ctx context.Context, record Record) error

	// GetLatestByEmployee returns the most recent record by check-in
	// timestamp, or ErrRecordNotFound.
	GetLatestByEmployee(ctx context.Context, employeeID string) (Record, error)

	// HasRecordForDate reports whether any record exists for the
	// employee on the given calendar date.
	HasRecordForDate(ctx context.Context, employeeID string, date string) (bool, error)

	GetByID(ctx context.Context, id string) (Record, error)
	List(ctx context.Context, filter Filter) ([]Record, error)
	Delete(ctx context.Context, id string) error
}

// Service is the attendance gate: the check-in/check-out decision
// engine the public portal talks to.
type Service interface {
	// CheckIn runs the validation pipeline and creates a record on
	// acceptance.
	CheckIn(ctx context.Context, req CheckInRequest) (Result, error)

	// CheckOut closes the employee's open record.
	CheckOut(ctx context.Context, req CheckOutRequest) (Result, error)

	// CurrentState derives the employee's clock state from the latest
	// record.
	CurrentState(ctx context.Context, employeeID string) (State, error)

	List(ctx context.Context, filter Filter) ([]Record, error)
	Delete(ctx context.Context, id string) error
}
