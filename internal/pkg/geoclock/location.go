package geoclock

// LocationStatus mirrors the portal's one-shot geolocation outcome.
type LocationStatus string

const (
	LocationActive   LocationStatus = "active"
	LocationDenied   LocationStatus = "denied"
	LocationChecking LocationStatus = "checking"
)

// Point is a device-reported coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Location is the device's resolved position as attached to a
// check-in/check-out attempt. Resolution happens on the device; no
// automatic retries, the caller re-requests when needed.
type Location struct {
	Status LocationStatus `json:"status"`
	Point  *Point         `json:"point,omitempty"`
}

// Resolved reports whether a usable coordinate is present.
func (l Location) Resolved() bool {
	return l.Status == LocationActive && l.Point != nil
}
