package admin

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAdminBlocked       = errors.New("admin account is blocked")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrUsernameExists     = errors.New("username already exists")
)

var ErrInvalidToken = errors.New("invalid or expired token")
