package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/relief-experts/attendance-backend-go/internal/domain/notification"
)

type NotificationService struct {
	notifications notification.Repository
}

func NewNotificationService(notifications notification.Repository) notification.Service {
	return &NotificationService{notifications: notifications}
}

// Send implements notification.Service.
func (s *NotificationService) Send(ctx context.Context, req notification.CreateRequest) (notification.Notification, error) {
	if err := req.Validate(); err != nil {
		return notification.Notification{}, err
	}

	return s.notifications.Create(ctx, notification.Notification{
		ID:         uuid.NewString(),
		Title:      req.Title,
		Message:    req.Message,
		TargetType: notification.TargetType(req.TargetType),
		TargetID:   req.TargetID,
		SenderName: req.SenderName,
	})
}

// List implements notification.Service.
func (s *NotificationService) List(ctx context.Context) ([]notification.Notification, error) {
	return s.notifications.List(ctx)
}

// ListForTarget implements notification.Service.
func (s *NotificationService) ListForTarget(ctx context.Context, centerID, employeeID string) ([]notification.Notification, error) {
	return s.notifications.ListForTarget(ctx, centerID, employeeID)
}

// Delete implements notification.Service.
func (s *NotificationService) Delete(ctx context.Context, id string) error {
	return s.notifications.Delete(ctx, id)
}
