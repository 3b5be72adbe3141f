package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/relief-experts/attendance-backend-go/internal/domain/employee"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/changefeed"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/database"
)

const employeesTable = "employees"

const employeeColumns = `
	id, code, name, center_id, working_hours, joined_date, device_id,
	last_device_update, is_active, work_mode, project_id,
	created_at, updated_at, deleted_at`

type employeeRepository struct {
	db   *database.DB
	feed *changefeed.Hub
}

func NewEmployeeRepository(db *database.DB, feed *changefeed.Hub) employee.Repository {
	return &employeeRepository{db: db, feed: feed}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.Code, &e.Name, &e.CenterID, &e.WorkingHours, &e.JoinedDate, &e.DeviceID,
		&e.LastDeviceUpdate, &e.IsActive, &e.WorkMode, &e.ProjectID,
		&e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	)
	return e, err
}

// Create implements employee.Repository.
func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	if err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM employees WHERE code = $1 AND deleted_at IS NULL)`,
		e.Code,
	).Scan(&exists); err != nil {
		return employee.Employee{}, fmt.Errorf("failed to check employee code: %w", err)
	}
	if exists {
		return employee.Employee{}, employee.ErrEmployeeCodeExists
	}

	query := `
		INSERT INTO employees (
			id, code, name, center_id, working_hours, joined_date,
			is_active, work_mode, project_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		e.ID, e.Code, e.Name, e.CenterID, e.WorkingHours, e.JoinedDate,
		e.IsActive, e.WorkMode, e.ProjectID,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	r.feed.Publish(changefeed.Event{Table: employeesTable, Op: changefeed.OpInserted, Record: e})
	return e, nil
}

// GetByID implements employee.Repository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1 AND deleted_at IS NULL`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

// GetByDeviceID implements employee.Repository.
func (r *employeeRepository) GetByDeviceID(ctx context.Context, deviceID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE device_id = $1 AND deleted_at IS NULL LIMIT 1`, deviceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by device: %w", err)
	}
	return e, nil
}

// ListByCenter implements employee.Repository.
func (r *employeeRepository) ListByCenter(ctx context.Context, centerID string, activeOnly bool) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE center_id = $1 AND deleted_at IS NULL`
	if activeOnly {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY name`

	rows, err := q.Query(ctx, query, centerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

// List implements employee.Repository.
func (r *employeeRepository) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE deleted_at IS NULL`
	if activeOnly {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// Update implements employee.Repository.
func (r *employeeRepository) Update(ctx context.Context, e employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET code = $1, name = $2, center_id = $3, working_hours = $4,
		    joined_date = $5, is_active = $6, work_mode = $7,
		    project_id = $8, updated_at = $9
		WHERE id = $10 AND deleted_at IS NULL
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		e.Code, e.Name, e.CenterID, e.WorkingHours,
		e.JoinedDate, e.IsActive, e.WorkMode,
		e.ProjectID, time.Now().UTC(),
		e.ID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}

	r.feed.Publish(changefeed.Event{Table: employeesTable, Op: changefeed.OpUpdated, Record: e})
	return nil
}

// BindDevice implements employee.Repository. The binding is one-time:
// an already bound employee keeps its device.
func (r *employeeRepository) BindDevice(ctx context.Context, employeeID, deviceID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET device_id = $1, last_device_update = $2, updated_at = $2
		WHERE id = $3 AND device_id IS NULL AND deleted_at IS NULL
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, deviceID, time.Now().UTC(), employeeID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Already bound or missing; the gate validated the binding
			// beforehand, so treat as idempotent success for the bound case.
			existing, getErr := r.GetByID(ctx, employeeID)
			if getErr != nil {
				return getErr
			}
			if existing.DeviceID != nil && *existing.DeviceID == deviceID {
				return nil
			}
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to bind device: %w", err)
	}

	r.feed.Publish(changefeed.Event{Table: employeesTable, Op: changefeed.OpUpdated, Record: employee.Employee{ID: employeeID, DeviceID: &deviceID}})
	return nil
}

// ResetDevice implements employee.Repository.
func (r *employeeRepository) ResetDevice(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `
		UPDATE employees
		SET device_id = NULL, last_device_update = $1, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`, time.Now().UTC(), employeeID)
	if err != nil {
		return fmt.Errorf("failed to reset device: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	r.feed.Publish(changefeed.Event{Table: employeesTable, Op: changefeed.OpUpdated, Record: employee.Employee{ID: employeeID}})
	return nil
}

// SoftDelete implements employee.Repository.
func (r *employeeRepository) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `
		UPDATE employees SET deleted_at = $1, is_active = false WHERE id = $2 AND deleted_at IS NULL
	`, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	r.feed.Publish(changefeed.Event{Table: employeesTable, Op: changefeed.OpDeleted, Record: employee.Employee{ID: id}})
	return nil
}
