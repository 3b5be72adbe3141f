package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/relief-experts/attendance-backend-go/internal/domain/project"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/changefeed"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/database"
)

const projectsTable = "projects"

type projectRepository struct {
	db   *database.DB
	feed *changefeed.Hub
}

func NewProjectRepository(db *database.DB, feed *changefeed.Hub) project.Repository {
	return &projectRepository{db: db, feed: feed}
}

func scanProject(row pgx.Row) (project.Project, error) {
	var p project.Project
	err := row.Scan(&p.ID, &p.Name, &p.Code, &p.Description, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt)
	return p, err
}

func (r *projectRepository) Create(ctx context.Context, p project.Project) (project.Project, error) {
	q := GetQuerier(ctx, r.db)

	err := q.QueryRow(ctx, `
		INSERT INTO projects (id, name, code, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, p.ID, p.Name, p.Code, p.Description).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return project.Project{}, fmt.Errorf("failed to create project: %w", err)
	}

	r.feed.Publish(changefeed.Event{Table: projectsTable, Op: changefeed.OpInserted, Record: p})
	return p, nil
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (project.Project, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanProject(q.QueryRow(ctx, `
		SELECT id, name, code, description, created_at, updated_at, deleted_at
		FROM projects WHERE id = $1 AND deleted_at IS NULL
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.Project{}, project.ErrProjectNotFound
		}
		return project.Project{}, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

func (r *projectRepository) List(ctx context.Context) ([]project.Project, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, code, description, created_at, updated_at, deleted_at
		FROM projects WHERE deleted_at IS NULL ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *projectRepository) Update(ctx context.Context, p project.Project) error {
	q := GetQuerier(ctx, r.db)

	var updatedID string
	err := q.QueryRow(ctx, `
		UPDATE projects
		SET name = $1, code = $2, description = $3, updated_at = $4
		WHERE id = $5 AND deleted_at IS NULL
		RETURNING id
	`, p.Name, p.Code, p.Description, time.Now().UTC(), p.ID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.ErrProjectNotFound
		}
		return fmt.Errorf("failed to update project: %w", err)
	}

	r.feed.Publish(changefeed.Event{Table: projectsTable, Op: changefeed.OpUpdated, Record: p})
	return nil
}

func (r *projectRepository) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx,
		`UPDATE projects SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return project.ErrProjectNotFound
	}

	r.feed.Publish(changefeed.Event{Table: projectsTable, Op: changefeed.OpDeleted, Record: project.Project{ID: id}})
	return nil
}
