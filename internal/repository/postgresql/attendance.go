package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/relief-experts/attendance-backend-go/internal/domain/attendance"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/changefeed"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/database"
)

const attendanceTable = "attendance_records"

const attendanceColumns = `
	id, employee_id, center_id, date, check_in, check_out, check_out_date,
	status, delay_minutes, early_departure_minutes, working_hours,
	network_id, latitude, longitude, notes, created_at, updated_at`

type attendanceRepository struct {
	db   *database.DB
	feed *changefeed.Hub
}

func NewAttendanceRepository(db *database.DB, feed *changefeed.Hub) attendance.Repository {
	return &attendanceRepository{db: db, feed: feed}
}

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.CenterID, &rec.Date, &rec.CheckIn, &rec.CheckOut, &rec.CheckOutDate,
		&rec.Status, &rec.DelayMinutes, &rec.EarlyDepartureMinutes, &rec.WorkingHours,
		&rec.NetworkID, &rec.Latitude, &rec.Longitude, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Create implements attendance.Repository.
func (a *attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, center_id, date, check_in, check_out, check_out_date,
			status, delay_minutes, early_departure_minutes, working_hours,
			network_id, latitude, longitude, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.ID,
		rec.EmployeeID,
		rec.CenterID,
		rec.Date,
		rec.CheckIn,
		rec.CheckOut,
		rec.CheckOutDate,
		rec.Status,
		rec.DelayMinutes,
		rec.EarlyDepartureMinutes,
		rec.WorkingHours,
		rec.NetworkID,
		rec.Latitude,
		rec.Longitude,
		rec.Notes,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	a.feed.Publish(changefeed.Event{Table: attendanceTable, Op: changefeed.OpInserted, Record: rec})
	return rec, nil
}

// Close implements attendance.Repository.
func (a *attendanceRepository) Close(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET check_out = $1, check_out_date = $2, early_departure_minutes = $3,
		    working_hours = $4, latitude = $5, longitude = $6, updated_at = $7
		WHERE id = $8 AND check_out IS NULL
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		rec.CheckOut, rec.CheckOutDate, rec.EarlyDepartureMinutes,
		rec.WorkingHours, rec.Latitude, rec.Longitude, time.Now().UTC(),
		rec.ID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to close attendance record: %w", err)
	}

	a.feed.Publish(changefeed.Event{Table: attendanceTable, Op: changefeed.OpUpdated, Record: rec})
	return nil
}

// Update implements attendance.Repository.
func (a *attendanceRepository) Update(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET date = $1, check_in = $2, check_out = $3, check_out_date = $4,
		    status = $5, delay_minutes = $6, early_departure_minutes = $7,
		    working_hours = $8, notes = $9, updated_at = $10
		WHERE id = $11
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		rec.Date, rec.CheckIn, rec.CheckOut, rec.CheckOutDate,
		rec.Status, rec.DelayMinutes, rec.EarlyDepartureMinutes,
		rec.WorkingHours, rec.Notes, time.Now().UTC(),
		rec.ID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update attendance record: %w", err)
	}

	a.feed.Publish(changefeed.Event{Table: attendanceTable, Op: changefeed.OpUpdated, Record: rec})
	return nil
}

// GetLatestByEmployee implements attendance.Repository.
func (a *attendanceRepository) GetLatestByEmployee(ctx context.Context, employeeID string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		ORDER BY check_in DESC
		LIMIT 1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get latest attendance record: %w", err)
	}

	return rec, nil
}

// HasRecordForDate implements attendance.Repository.
func (a *attendanceRepository) HasRecordForDate(ctx context.Context, employeeID string, date string) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM attendance_records
			WHERE employee_id = $1
			  AND date = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check attendance for date: %w", err)
	}

	return exists, nil
}

// GetByID implements attendance.Repository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE id = $1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

// List implements attendance.Repository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.CenterID != nil && *filter.CenterID != "" {
		baseWhere += fmt.Sprintf(" AND center_id = $%d", argIdx)
		args = append(args, *filter.CenterID)
		argIdx++
	}
	if filter.DateFrom != nil && *filter.DateFrom != "" {
		baseWhere += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil && *filter.DateTo != "" {
		baseWhere += fmt.Sprintf(" AND date <= $%d", argIdx)
		args = append(args, *filter.DateTo)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE ` + baseWhere + `
		ORDER BY check_in DESC
	`
	query = strings.TrimSpace(query)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Delete implements attendance.Repository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	a.feed.Publish(changefeed.Event{Table: attendanceTable, Op: changefeed.OpDeleted, Record: attendance.Record{ID: id}})
	return nil
}
