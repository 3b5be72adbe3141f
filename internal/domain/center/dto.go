package center

import (
	"github.com/relief-experts/attendance-backend-go/internal/pkg/validator"
)

type UpsertRequest struct {
	Name              string   `json:"name"`
	StartTime         string   `json:"start_time"`
	EndTime           string   `json:"end_time"`
	CheckInGrace      int      `json:"check_in_grace"`
	CheckOutGrace     int      `json:"check_out_grace"`
	AuthorizedNetwork *string  `json:"authorized_network,omitempty"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
	RadiusMeters      *float64 `json:"radius_meters,omitempty"`
	IsActive          bool     `json:"is_active"`
	WorkingDays       []int    `json:"working_days"`
}

func (r *UpsertRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsValidTimeOfDay(r.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time must be HH:mm"})
	}
	if !validator.IsValidTimeOfDay(r.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time must be HH:mm"})
	}
	if r.CheckInGrace < 0 {
		errs = append(errs, validator.ValidationError{Field: "check_in_grace", Message: "grace period must not be negative"})
	}
	if r.CheckOutGrace < 0 {
		errs = append(errs, validator.ValidationError{Field: "check_out_grace", Message: "grace period must not be negative"})
	}
	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude and longitude must be set together"})
	}
	if r.RadiusMeters != nil && *r.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{Field: "radius_meters", Message: "radius must be positive"})
	}
	for _, d := range r.WorkingDays {
		if !validator.IsValidWeekday(d) {
			errs = append(errs, validator.ValidationError{Field: "working_days", Message: "working days must be 0 (Sunday) through 6 (Saturday)"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
