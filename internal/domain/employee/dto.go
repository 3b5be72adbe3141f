package employee

import (
	"github.com/relief-experts/attendance-backend-go/internal/pkg/validator"
)

type UpsertRequest struct {
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	CenterID     string  `json:"center_id"`
	WorkingHours float64 `json:"working_hours"`
	JoinedDate   string  `json:"joined_date"`
	IsActive     bool    `json:"is_active"`
	WorkMode     string  `json:"work_mode"`
	ProjectID    *string `json:"project_id,omitempty"`
}

func (r *UpsertRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeCode(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "code must be 2-20 letters, digits or dashes"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if validator.IsEmpty(r.CenterID) {
		errs = append(errs, validator.ValidationError{Field: "center_id", Message: "center_id is required"})
	}
	if r.WorkingHours <= 0 || r.WorkingHours > 24 {
		errs = append(errs, validator.ValidationError{Field: "working_hours", Message: "working_hours must be between 0 and 24"})
	}
	if _, ok := validator.IsValidDate(r.JoinedDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "joined_date", Message: "joined_date must be YYYY-MM-DD"})
	}
	switch WorkMode(r.WorkMode) {
	case WorkModeAdministrative, WorkModeShifts:
	default:
		errs = append(errs, validator.ValidationError{Field: "work_mode", Message: "work_mode must be administrative or shifts"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
