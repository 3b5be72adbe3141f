package attendance

import (
	"github.com/relief-experts/attendance-backend-go/internal/pkg/geoclock"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/validator"
)

// CheckInRequest is a single check-in attempt from the public portal.
type CheckInRequest struct {
	CenterID   string            `json:"center_id"`
	EmployeeID string            `json:"employee_id"`
	DeviceID   string            `json:"device_id"`
	NetworkID  string            `json:"network_id"`
	Location   geoclock.Location `json:"location"`
}

func (r *CheckInRequest) Validate() error {
	return validateAttempt(r.CenterID, r.EmployeeID, r.DeviceID, r.Location)
}

// CheckOutRequest closes the employee's open record.
type CheckOutRequest struct {
	CenterID   string            `json:"center_id"`
	EmployeeID string            `json:"employee_id"`
	DeviceID   string            `json:"device_id"`
	NetworkID  string            `json:"network_id"`
	Location   geoclock.Location `json:"location"`
}

func (r *CheckOutRequest) Validate() error {
	return validateAttempt(r.CenterID, r.EmployeeID, r.DeviceID, r.Location)
}

func validateAttempt(centerID, employeeID, deviceID string, loc geoclock.Location) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(centerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "center_id",
			Message: "center_id is required",
		})
	}
	if validator.IsEmpty(employeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(deviceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "device_id",
			Message: "device_id is required",
		})
	}
	if loc.Point != nil {
		if !validator.IsValidLatitude(loc.Point.Lat) {
			errs = append(errs, validator.ValidationError{
				Field:   "location.point.lat",
				Message: "latitude must be between -90 and 90",
			})
		}
		if !validator.IsValidLongitude(loc.Point.Lon) {
			errs = append(errs, validator.ValidationError{
				Field:   "location.point.lon",
				Message: "longitude must be between -180 and 180",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Result is the gate's contract with the portal UI: the outcome key,
// the minutes figure behind it and the rendered template message.
type Result struct {
	Outcome Outcome `json:"outcome"`
	Minutes int     `json:"minutes"`
	Message string  `json:"message"`
	Record  Record  `json:"record"`
}

// Filter narrows admin attendance listings.
type Filter struct {
	EmployeeID *string
	CenterID   *string
	DateFrom   *string
	DateTo     *string
	Status     *Status
}
