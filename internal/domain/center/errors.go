package center

import "errors"

var (
	ErrCenterNotFound = errors.New("center not found")
)
