package notification

import (
	"github.com/relief-experts/attendance-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	Title      string  `json:"title"`
	Message    string  `json:"message"`
	TargetType string  `json:"target_type"`
	TargetID   *string `json:"target_id,omitempty"`
	SenderName string  `json:"sender_name"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	}
	if validator.IsEmpty(r.Message) {
		errs = append(errs, validator.ValidationError{Field: "message", Message: "message is required"})
	}
	switch TargetType(r.TargetType) {
	case TargetAll:
	case TargetCenter, TargetEmployee:
		if r.TargetID == nil || validator.IsEmpty(*r.TargetID) {
			errs = append(errs, validator.ValidationError{Field: "target_id", Message: "target_id is required for center and employee targets"})
		}
	default:
		errs = append(errs, validator.ValidationError{Field: "target_type", Message: "target_type must be all, center or employee"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
