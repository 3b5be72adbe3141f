package attendance

import "errors"

// Security rejections: recoverable only by the user changing physical
// or network context, never retried silently.
var (
	ErrNetworkNotAuthorized = errors.New("network identifier does not match the center's authorized network")
	ErrOutsideGeofence      = errors.New("you are outside the center's allowed radius")
	ErrLocationRequired     = errors.New("location access is required, enable GPS and retry")
	ErrDeviceMismatch       = errors.New("this account is bound to a different device")
	ErrDeviceInUse          = errors.New("this device is already bound to another employee")
)

// Ordering errors: the user corrects the sequence and retries.
var (
	ErrAlreadyClockedIn      = errors.New("an open attendance record already exists, check out first")
	ErrAlreadyCheckedInToday = errors.New("you have already checked in today")
	ErrNotClockedIn          = errors.New("you have not checked in yet")
)

// Integrity and lookup failures.
var (
	ErrRecordNotFound   = errors.New("attendance record not found")
	ErrEmployeeMissing  = errors.New("employee record missing, contact an administrator")
	ErrCenterMissing    = errors.New("center record missing, contact an administrator")
	ErrEmployeeInactive = errors.New("employee is not active")
	ErrCenterInactive   = errors.New("center is not active")
)

// IsSecurity reports whether err is a security rejection.
func IsSecurity(err error) bool {
	return errors.Is(err, ErrNetworkNotAuthorized) ||
		errors.Is(err, ErrOutsideGeofence) ||
		errors.Is(err, ErrLocationRequired) ||
		errors.Is(err, ErrDeviceMismatch) ||
		errors.Is(err, ErrDeviceInUse)
}

// IsOrdering reports whether err is a user ordering error.
func IsOrdering(err error) bool {
	return errors.Is(err, ErrAlreadyClockedIn) ||
		errors.Is(err, ErrAlreadyCheckedInToday) ||
		errors.Is(err, ErrNotClockedIn)
}
