package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/relief-experts/attendance-backend-go/internal/domain/template"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/changefeed"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/database"
)

const templatesTable = "message_templates"

type templateRepository struct {
	db   *database.DB
	feed *changefeed.Hub
}

func NewTemplateRepository(db *database.DB, feed *changefeed.Hub) template.Repository {
	return &templateRepository{db: db, feed: feed}
}

func (r *templateRepository) GetByType(ctx context.Context, templateType string) (template.MessageTemplate, error) {
	q := GetQuerier(ctx, r.db)

	var t template.MessageTemplate
	err := q.QueryRow(ctx,
		`SELECT id, type, content FROM message_templates WHERE type = $1`, templateType,
	).Scan(&t.ID, &t.Type, &t.Content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return template.MessageTemplate{}, template.ErrTemplateNotFound
		}
		return template.MessageTemplate{}, fmt.Errorf("failed to get message template: %w", err)
	}
	return t, nil
}

func (r *templateRepository) List(ctx context.Context) ([]template.MessageTemplate, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, type, content FROM message_templates ORDER BY type`)
	if err != nil {
		return nil, fmt.Errorf("failed to query message templates: %w", err)
	}
	defer rows.Close()

	var templates []template.MessageTemplate
	for rows.Next() {
		var t template.MessageTemplate
		if err := rows.Scan(&t.ID, &t.Type, &t.Content); err != nil {
			return nil, fmt.Errorf("failed to scan message template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// Upsert implements template.Repository. Types are unique, so a second
// write for the same type replaces the content.
func (r *templateRepository) Upsert(ctx context.Context, t template.MessageTemplate) (template.MessageTemplate, error) {
	q := GetQuerier(ctx, r.db)

	err := q.QueryRow(ctx, `
		INSERT INTO message_templates (id, type, content)
		VALUES ($1, $2, $3)
		ON CONFLICT (type) DO UPDATE SET content = EXCLUDED.content
		RETURNING id
	`, t.ID, t.Type, t.Content).Scan(&t.ID)
	if err != nil {
		return template.MessageTemplate{}, fmt.Errorf("failed to upsert message template: %w", err)
	}

	r.feed.Publish(changefeed.Event{Table: templatesTable, Op: changefeed.OpUpdated, Record: t})
	return t, nil
}
