package postgresql

import (
	"context"
	"fmt"

	"github.com/relief-experts/attendance-backend-go/internal/domain/settings"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/changefeed"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/database"
)

const settingsTable = "system_settings"

type settingsRepository struct {
	db   *database.DB
	feed *changefeed.Hub
}

func NewSettingsRepository(db *database.DB, feed *changefeed.Hub) settings.Repository {
	return &settingsRepository{db: db, feed: feed}
}

// Get implements settings.Repository. The table holds a single row
// with id = 1, seeded by the migration.
func (r *settingsRepository) Get(ctx context.Context) (settings.SystemSettings, error) {
	q := GetQuerier(ctx, r.db)

	var s settings.SystemSettings
	err := q.QueryRow(ctx, `
		SELECT id, system_name, logo_url, language, date_format, time_format
		FROM system_settings WHERE id = 1
	`).Scan(&s.ID, &s.SystemName, &s.LogoURL, &s.Language, &s.DateFormat, &s.TimeFormat)
	if err != nil {
		return settings.SystemSettings{}, fmt.Errorf("failed to get system settings: %w", err)
	}
	return s, nil
}

func (r *settingsRepository) Update(ctx context.Context, s settings.SystemSettings) (settings.SystemSettings, error) {
	q := GetQuerier(ctx, r.db)

	s.ID = 1
	_, err := q.Exec(ctx, `
		UPDATE system_settings
		SET system_name = $1, logo_url = $2, language = $3, date_format = $4, time_format = $5
		WHERE id = 1
	`, s.SystemName, s.LogoURL, s.Language, s.DateFormat, s.TimeFormat)
	if err != nil {
		return settings.SystemSettings{}, fmt.Errorf("failed to update system settings: %w", err)
	}

	r.feed.Publish(changefeed.Event{Table: settingsTable, Op: changefeed.OpUpdated, Record: s})
	return s, nil
}
