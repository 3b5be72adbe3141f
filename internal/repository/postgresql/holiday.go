package postgresql

import (
	"context"
	"fmt"

	"github.com/relief-experts/attendance-backend-go/internal/domain/holiday"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/changefeed"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/database"
)

const holidaysTable = "holidays"

type holidayRepository struct {
	db   *database.DB
	feed *changefeed.Hub
}

func NewHolidayRepository(db *database.DB, feed *changefeed.Hub) holiday.Repository {
	return &holidayRepository{db: db, feed: feed}
}

func (r *holidayRepository) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`INSERT INTO holidays (id, name, date) VALUES ($1, $2, $3)`,
		h.ID, h.Name, h.Date,
	)
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	r.feed.Publish(changefeed.Event{Table: holidaysTable, Op: changefeed.OpInserted, Record: h})
	return h, nil
}

func (r *holidayRepository) List(ctx context.Context) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, date FROM holidays ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.Name, &h.Date); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

func (r *holidayRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}

	r.feed.Publish(changefeed.Event{Table: holidaysTable, Op: changefeed.OpDeleted, Record: holiday.Holiday{ID: id}})
	return nil
}
