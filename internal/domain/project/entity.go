package project

import (
	"errors"
	"time"
)

type Project struct {
	ID          string
	Name        string
	Code        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

var ErrProjectNotFound = errors.New("project not found")
