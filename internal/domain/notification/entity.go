package notification

import (
	"errors"
	"time"
)

type TargetType string

const (
	TargetAll      TargetType = "all"
	TargetCenter   TargetType = "center"
	TargetEmployee TargetType = "employee"
)

// Notification is a broadcast shown on the public portal.
type Notification struct {
	ID         string
	Title      string
	Message    string
	TargetType TargetType
	TargetID   *string
	SenderName string
	SentAt     time.Time
}

var ErrNotificationNotFound = errors.New("notification not found")
