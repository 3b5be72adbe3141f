package notification

import "context"

type Repository interface {
	Create(ctx context.Context, n Notification) (Notification, error)
	List(ctx context.Context) ([]Notification, error)
	// ListForTarget returns notifications addressed to everyone, to
	// the given center, or to the given employee.
	ListForTarget(ctx context.Context, centerID, employeeID string) ([]Notification, error)
	Delete(ctx context.Context, id string) error
}

type Service interface {
	Send(ctx context.Context, req CreateRequest) (Notification, error)
	List(ctx context.Context) ([]Notification, error)
	ListForTarget(ctx context.Context, centerID, employeeID string) ([]Notification, error)
	Delete(ctx context.Context, id string) error
}
