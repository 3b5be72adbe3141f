package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/relief-experts/attendance-backend-go/internal/domain/admin"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/changefeed"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/database"
)

const adminsTable = "admins"

type adminRepository struct {
	db   *database.DB
	feed *changefeed.Hub
}

func NewAdminRepository(db *database.DB, feed *changefeed.Hub) admin.Repository {
	return &adminRepository{db: db, feed: feed}
}

func scanAdmin(row pgx.Row) (admin.Admin, error) {
	var a admin.Admin
	err := row.Scan(
		&a.ID, &a.Name, &a.Username, &a.PasswordHash, &a.Role,
		&a.ManagedCenterIDs, &a.IsBlocked, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *adminRepository) Create(ctx context.Context, a admin.Admin) (admin.Admin, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	if err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM admins WHERE username = $1)`, a.Username,
	).Scan(&exists); err != nil {
		return admin.Admin{}, fmt.Errorf("failed to check admin username: %w", err)
	}
	if exists {
		return admin.Admin{}, admin.ErrUsernameExists
	}

	err := q.QueryRow(ctx, `
		INSERT INTO admins (id, name, username, password_hash, role, managed_center_ids, is_blocked)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, a.ID, a.Name, a.Username, a.PasswordHash, a.Role, a.ManagedCenterIDs, a.IsBlocked,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return admin.Admin{}, fmt.Errorf("failed to create admin: %w", err)
	}

	r.feed.Publish(changefeed.Event{Table: adminsTable, Op: changefeed.OpInserted, Record: a})
	return a, nil
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (admin.Admin, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAdmin(q.QueryRow(ctx, `
		SELECT id, name, username, password_hash, role, managed_center_ids, is_blocked, created_at, updated_at
		FROM admins WHERE username = $1
	`, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return admin.Admin{}, admin.ErrAdminNotFound
		}
		return admin.Admin{}, fmt.Errorf("failed to get admin: %w", err)
	}
	return a, nil
}

func (r *adminRepository) List(ctx context.Context) ([]admin.Admin, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, username, password_hash, role, managed_center_ids, is_blocked, created_at, updated_at
		FROM admins ORDER BY username
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query admins: %w", err)
	}
	defer rows.Close()

	var admins []admin.Admin
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan admin: %w", err)
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

func (r *adminRepository) Update(ctx context.Context, a admin.Admin) error {
	q := GetQuerier(ctx, r.db)

	var updatedID string
	err := q.QueryRow(ctx, `
		UPDATE admins
		SET name = $1, username = $2, password_hash = $3, role = $4,
		    managed_center_ids = $5, is_blocked = $6, updated_at = $7
		WHERE id = $8
		RETURNING id
	`, a.Name, a.Username, a.PasswordHash, a.Role,
		a.ManagedCenterIDs, a.IsBlocked, time.Now().UTC(), a.ID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return admin.ErrAdminNotFound
		}
		return fmt.Errorf("failed to update admin: %w", err)
	}

	r.feed.Publish(changefeed.Event{Table: adminsTable, Op: changefeed.OpUpdated, Record: a})
	return nil
}

func (r *adminRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete admin: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return admin.ErrAdminNotFound
	}

	r.feed.Publish(changefeed.Event{Table: adminsTable, Op: changefeed.OpDeleted, Record: admin.Admin{ID: id}})
	return nil
}
