package response

import (
	"errors"
	"net/http"

	"github.com/relief-experts/attendance-backend-go/internal/domain/admin"
	"github.com/relief-experts/attendance-backend-go/internal/domain/attendance"
	"github.com/relief-experts/attendance-backend-go/internal/domain/center"
	"github.com/relief-experts/attendance-backend-go/internal/domain/employee"
	"github.com/relief-experts/attendance-backend-go/internal/domain/holiday"
	"github.com/relief-experts/attendance-backend-go/internal/domain/notification"
	"github.com/relief-experts/attendance-backend-go/internal/domain/project"
	"github.com/relief-experts/attendance-backend-go/internal/domain/report"
	"github.com/relief-experts/attendance-backend-go/internal/domain/template"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Store and
// integrity failures surface as a generic 500; their detail belongs
// in logs, not in portal responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Gate rejections. Security outcomes require the user to change
	// physical or network context; ordering outcomes require fixing
	// the check-in/check-out sequence.
	case attendance.IsSecurity(err):
		Forbidden(w, err.Error())
	case attendance.IsOrdering(err):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrEmployeeInactive),
		errors.Is(err, attendance.ErrCenterInactive):
		Forbidden(w, err.Error())
	case errors.Is(err, attendance.ErrEmployeeMissing),
		errors.Is(err, attendance.ErrCenterMissing):
		NotFound(w, err.Error())

	// Auth errors.
	case errors.Is(err, admin.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, admin.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, admin.ErrAdminBlocked):
		Forbidden(w, err.Error())

	// Uniqueness conflicts.
	case errors.Is(err, admin.ErrUsernameExists):
		Conflict(w, "Username already exists")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")

	// Lookups.
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, center.ErrCenterNotFound):
		NotFound(w, "Center not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, admin.ErrAdminNotFound):
		NotFound(w, "Admin not found")
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, project.ErrProjectNotFound):
		NotFound(w, "Project not found")
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, template.ErrTemplateNotFound):
		NotFound(w, "Message template not found")

	// Report bounds.
	case errors.Is(err, report.ErrInvalidDate),
		errors.Is(err, report.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
