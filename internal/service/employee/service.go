package employee

import (
	"context"

	"github.com/google/uuid"
	"github.com/relief-experts/attendance-backend-go/internal/domain/center"
	"github.com/relief-experts/attendance-backend-go/internal/domain/employee"
)

type EmployeeService struct {
	employees employee.Repository
	centers   center.Repository
}

func NewEmployeeService(employees employee.Repository, centers center.Repository) employee.Service {
	return &EmployeeService{employees: employees, centers: centers}
}

// Create implements employee.Service.
func (s *EmployeeService) Create(ctx context.Context, req employee.UpsertRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}
	if _, err := s.centers.GetByID(ctx, req.CenterID); err != nil {
		return employee.Employee{}, err
	}

	return s.employees.Create(ctx, employee.Employee{
		ID:           uuid.NewString(),
		Code:         req.Code,
		Name:         req.Name,
		CenterID:     req.CenterID,
		WorkingHours: req.WorkingHours,
		JoinedDate:   req.JoinedDate,
		IsActive:     req.IsActive,
		WorkMode:     employee.WorkMode(req.WorkMode),
		ProjectID:    req.ProjectID,
	})
}

// GetByID implements employee.Service.
func (s *EmployeeService) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

// List implements employee.Service.
func (s *EmployeeService) List(ctx context.Context, centerID *string, activeOnly bool) ([]employee.Employee, error) {
	if centerID != nil {
		return s.employees.ListByCenter(ctx, *centerID, activeOnly)
	}
	return s.employees.List(ctx, activeOnly)
}

// Update implements employee.Service.
func (s *EmployeeService) Update(ctx context.Context, id string, req employee.UpsertRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	existing, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}
	if req.CenterID != existing.CenterID {
		if _, err := s.centers.GetByID(ctx, req.CenterID); err != nil {
			return employee.Employee{}, err
		}
	}

	existing.Code = req.Code
	existing.Name = req.Name
	existing.CenterID = req.CenterID
	existing.WorkingHours = req.WorkingHours
	existing.JoinedDate = req.JoinedDate
	existing.IsActive = req.IsActive
	existing.WorkMode = employee.WorkMode(req.WorkMode)
	existing.ProjectID = req.ProjectID

	if err := s.employees.Update(ctx, existing); err != nil {
		return employee.Employee{}, err
	}
	return existing, nil
}

// ResetDevice implements employee.Service. Clearing the binding lets
// the employee's next check-in adopt a new device.
func (s *EmployeeService) ResetDevice(ctx context.Context, id string) error {
	return s.employees.ResetDevice(ctx, id)
}

// Delete implements employee.Service.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	return s.employees.SoftDelete(ctx, id)
}
