package employee

import "context"

type Repository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	// GetByDeviceID finds the employee currently bound to a device,
	// or ErrEmployeeNotFound. The device binding is one-to-one.
	GetByDeviceID(ctx context.Context, deviceID string) (Employee, error)
	ListByCenter(ctx context.Context, centerID string, activeOnly bool) ([]Employee, error)
	List(ctx context.Context, activeOnly bool) ([]Employee, error)
	Update(ctx context.Context, e Employee) error
	// BindDevice sets the one-time device binding.
	BindDevice(ctx context.Context, employeeID, deviceID string) error
	// ResetDevice clears the binding (administrative action).
	ResetDevice(ctx context.Context, employeeID string) error
	SoftDelete(ctx context.Context, id string) error
}

type Service interface {
	Create(ctx context.Context, req UpsertRequest) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, centerID *string, activeOnly bool) ([]Employee, error)
	Update(ctx context.Context, id string, req UpsertRequest) (Employee, error)
	ResetDevice(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
