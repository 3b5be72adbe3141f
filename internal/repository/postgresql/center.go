package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/relief-experts/attendance-backend-go/internal/domain/center"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/changefeed"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/database"
)

const centersTable = "centers"

const centerColumns = `
	id, name, start_time, end_time, check_in_grace, check_out_grace,
	authorized_network, latitude, longitude, radius_meters, is_active,
	working_days, created_at, updated_at`

type centerRepository struct {
	db   *database.DB
	feed *changefeed.Hub
}

func NewCenterRepository(db *database.DB, feed *changefeed.Hub) center.Repository {
	return &centerRepository{db: db, feed: feed}
}

func scanCenter(row pgx.Row) (center.Center, error) {
	var c center.Center
	var workingDays []int32
	err := row.Scan(
		&c.ID, &c.Name, &c.StartTime, &c.EndTime, &c.CheckInGrace, &c.CheckOutGrace,
		&c.AuthorizedNetwork, &c.Latitude, &c.Longitude, &c.RadiusMeters, &c.IsActive,
		&workingDays, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return center.Center{}, err
	}
	c.WorkingDays = make([]int, 0, len(workingDays))
	for _, d := range workingDays {
		c.WorkingDays = append(c.WorkingDays, int(d))
	}
	return c, nil
}

func workingDaysArg(days []int) []int32 {
	out := make([]int32, 0, len(days))
	for _, d := range days {
		out = append(out, int32(d))
	}
	return out
}

// Create implements center.Repository.
func (r *centerRepository) Create(ctx context.Context, c center.Center) (center.Center, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO centers (
			id, name, start_time, end_time, check_in_grace, check_out_grace,
			authorized_network, latitude, longitude, radius_meters, is_active, working_days
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		c.ID, c.Name, c.StartTime, c.EndTime, c.CheckInGrace, c.CheckOutGrace,
		c.AuthorizedNetwork, c.Latitude, c.Longitude, c.RadiusMeters, c.IsActive,
		workingDaysArg(c.WorkingDays),
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return center.Center{}, fmt.Errorf("failed to create center: %w", err)
	}

	r.feed.Publish(changefeed.Event{Table: centersTable, Op: changefeed.OpInserted, Record: c})
	return c, nil
}

// GetByID implements center.Repository.
func (r *centerRepository) GetByID(ctx context.Context, id string) (center.Center, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanCenter(q.QueryRow(ctx, `SELECT `+centerColumns+` FROM centers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return center.Center{}, center.ErrCenterNotFound
		}
		return center.Center{}, fmt.Errorf("failed to get center: %w", err)
	}
	return c, nil
}

// GetByAuthorizedNetwork implements center.Repository.
func (r *centerRepository) GetByAuthorizedNetwork(ctx context.Context, networkID string) (center.Center, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + centerColumns + `
		FROM centers
		WHERE authorized_network = $1 AND is_active = true
		LIMIT 1
	`
	c, err := scanCenter(q.QueryRow(ctx, query, networkID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return center.Center{}, center.ErrCenterNotFound
		}
		return center.Center{}, fmt.Errorf("failed to resolve center by network: %w", err)
	}
	return c, nil
}

// List implements center.Repository.
func (r *centerRepository) List(ctx context.Context, activeOnly bool) ([]center.Center, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + centerColumns + ` FROM centers`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query centers: %w", err)
	}
	defer rows.Close()

	var centers []center.Center
	for rows.Next() {
		c, err := scanCenter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan center: %w", err)
		}
		centers = append(centers, c)
	}
	return centers, rows.Err()
}

// Update implements center.Repository.
func (r *centerRepository) Update(ctx context.Context, c center.Center) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE centers
		SET name = $1, start_time = $2, end_time = $3, check_in_grace = $4,
		    check_out_grace = $5, authorized_network = $6, latitude = $7,
		    longitude = $8, radius_meters = $9, is_active = $10,
		    working_days = $11, updated_at = $12
		WHERE id = $13
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		c.Name, c.StartTime, c.EndTime, c.CheckInGrace,
		c.CheckOutGrace, c.AuthorizedNetwork, c.Latitude,
		c.Longitude, c.RadiusMeters, c.IsActive,
		workingDaysArg(c.WorkingDays), time.Now().UTC(),
		c.ID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return center.ErrCenterNotFound
		}
		return fmt.Errorf("failed to update center: %w", err)
	}

	r.feed.Publish(changefeed.Event{Table: centersTable, Op: changefeed.OpUpdated, Record: c})
	return nil
}

// Delete implements center.Repository.
func (r *centerRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM centers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete center: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return center.ErrCenterNotFound
	}

	r.feed.Publish(changefeed.Event{Table: centersTable, Op: changefeed.OpDeleted, Record: center.Center{ID: id}})
	return nil
}
