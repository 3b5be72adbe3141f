package admin

import (
	"time"
)

type Role string

const (
	RoleSuperAdmin     Role = "SUPER_ADMIN"
	RoleGeneralManager Role = "GENERAL_MANAGER"
	RoleCenterManager  Role = "CENTER_MANAGER"
)

// Admin is a dashboard user. Credentials live only here, bcrypt-hashed.
// There is no built-in bypass account.
type Admin struct {
	ID               string
	Name             string
	Username         string
	PasswordHash     string
	Role             Role
	ManagedCenterIDs []string
	IsBlocked        bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
