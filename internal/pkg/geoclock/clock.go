// Package geoclock resolves trusted wall-clock time from external
// network-time sources and defines the location vocabulary the gate
// validates against. Device clocks are not trusted for attendance.
package geoclock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// ErrSyncUnavailable is returned when every configured source failed.
// The previously adopted offset (or zero) stays in effect; callers
// keep operating.
var ErrSyncUnavailable = errors.New("network time sync unavailable")

// adoptionThreshold: a fresh offset only replaces a trusted one when it
// deviates by more than this, so jittery sources do not make the
// portal clock wander.
const adoptionThreshold = 30 * time.Second

// Clock serves synced "now" based on a network-time offset.
type Clock struct {
	sources      []string
	fetchTimeout time.Duration
	client       *http.Client

	mu     sync.RWMutex
	offset time.Duration
	synced bool
}

// timeSourcePayload covers both timeapi.io ("dateTime") and
// worldtimeapi.org ("datetime") response shapes.
type timeSourcePayload struct {
	DateTimeCamel string `json:"dateTime"`
	DateTimeLower string `json:"datetime"`
}

func NewClock(sources []string, fetchTimeout time.Duration) *Clock {
	return &Clock{
		sources:      sources,
		fetchTimeout: fetchTimeout,
		client:       &http.Client{},
	}
}

// Now returns local time corrected by the last adopted offset.
func (c *Clock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Now().Add(c.offset)
}

// Synced reports whether a network source has been adopted since start.
func (c *Clock) Synced() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.synced
}

// Offset returns the currently adopted offset.
func (c *Clock) Offset() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.offset
}

// Resolve queries the configured sources in priority order and adopts
// the first successful offset. Failure of every source leaves the last
// known offset in place and returns ErrSyncUnavailable.
func (c *Clock) Resolve(ctx context.Context) error {
	for _, source := range c.sources {
		offset, err := c.fetchOffset(ctx, source)
		if err != nil {
			slog.Warn("time source failed", "source", source, "error", err)
			continue
		}
		c.adopt(offset)
		return nil
	}

	c.mu.Lock()
	c.synced = false
	c.mu.Unlock()
	return ErrSyncUnavailable
}

func (c *Clock) fetchOffset(ctx context.Context, source string) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Cache-Control", "no-store")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var payload timeSourcePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decode time payload: %w", err)
	}

	raw := payload.DateTimeCamel
	if raw == "" {
		raw = payload.DateTimeLower
	}
	remote, err := parseRemoteTime(raw)
	if err != nil {
		return 0, err
	}

	end := time.Now()
	latency := end.Sub(start) / 2

	// offset = remote + half round trip - local
	corrected := remote.Add(latency)
	return corrected.Sub(end), nil
}

// adopt installs the offset when it is the first sync or deviates from
// the trusted value by more than the adoption threshold.
func (c *Clock) adopt(offset time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delta := offset - c.offset
	if delta < 0 {
		delta = -delta
	}
	if !c.synced || delta > adoptionThreshold {
		c.offset = offset
	}
	c.synced = true
}

func parseRemoteTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("time payload missing datetime field")
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.9999999"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", raw)
}
