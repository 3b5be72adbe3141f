package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/relief-experts/attendance-backend-go/internal/domain/notification"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/changefeed"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/database"
)

const notificationsTable = "notifications"

type notificationRepository struct {
	db   *database.DB
	feed *changefeed.Hub
}

func NewNotificationRepository(db *database.DB, feed *changefeed.Hub) notification.Repository {
	return &notificationRepository{db: db, feed: feed}
}

func scanNotification(row pgx.Row) (notification.Notification, error) {
	var n notification.Notification
	err := row.Scan(&n.ID, &n.Title, &n.Message, &n.TargetType, &n.TargetID, &n.SenderName, &n.SentAt)
	return n, err
}

func (r *notificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	err := q.QueryRow(ctx, `
		INSERT INTO notifications (id, title, message, target_type, target_id, sender_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING sent_at
	`, n.ID, n.Title, n.Message, n.TargetType, n.TargetID, n.SenderName).Scan(&n.SentAt)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}

	r.feed.Publish(changefeed.Event{Table: notificationsTable, Op: changefeed.OpInserted, Record: n})
	return n, nil
}

func (r *notificationRepository) List(ctx context.Context) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, title, message, target_type, target_id, sender_name, sent_at
		FROM notifications ORDER BY sent_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	return collectNotifications(rows)
}

// ListForTarget implements notification.Repository.
func (r *notificationRepository) ListForTarget(ctx context.Context, centerID, employeeID string) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, title, message, target_type, target_id, sender_name, sent_at
		FROM notifications
		WHERE target_type = 'all'
		   OR (target_type = 'center' AND target_id = $1)
		   OR (target_type = 'employee' AND target_id = $2)
		ORDER BY sent_at DESC
	`, centerID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	return collectNotifications(rows)
}

func collectNotifications(rows pgx.Rows) ([]notification.Notification, error) {
	var notifications []notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *notificationRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}

	r.feed.Publish(changefeed.Event{Table: notificationsTable, Op: changefeed.OpDeleted, Record: notification.Notification{ID: id}})
	return nil
}
