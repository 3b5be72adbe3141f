package admin

import (
	"github.com/relief-experts/attendance-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "username must be 3-50 characters"})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
}

type CreateRequest struct {
	Name             string   `json:"name"`
	Username         string   `json:"username"`
	Password         string   `json:"password"`
	Role             string   `json:"role"`
	ManagedCenterIDs []string `json:"managed_center_ids,omitempty"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "username must be 3-50 characters"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}
	errs = append(errs, validateRole(r.Role, r.ManagedCenterIDs)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateRequest struct {
	Name             string   `json:"name"`
	Username         string   `json:"username"`
	Password         *string  `json:"password,omitempty"`
	Role             string   `json:"role"`
	ManagedCenterIDs []string `json:"managed_center_ids,omitempty"`
	IsBlocked        bool     `json:"is_blocked"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "username must be 3-50 characters"})
	}
	if r.Password != nil && len(*r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}
	errs = append(errs, validateRole(r.Role, r.ManagedCenterIDs)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateRole(role string, managedCenterIDs []string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	switch Role(role) {
	case RoleSuperAdmin, RoleGeneralManager:
	case RoleCenterManager:
		if len(managedCenterIDs) == 0 {
			errs = append(errs, validator.ValidationError{Field: "managed_center_ids", Message: "center managers need at least one managed center"})
		}
	default:
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be SUPER_ADMIN, GENERAL_MANAGER or CENTER_MANAGER"})
	}
	return errs
}
