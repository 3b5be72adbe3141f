package geoclock

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockResolveAdoptsOffset(t *testing.T) {
	remote := time.Now().Add(2 * time.Minute)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"datetime":"` + remote.Format(time.RFC3339Nano) + `"}`))
	}))
	defer srv.Close()

	clock := NewClock([]string{srv.URL}, time.Second)
	require.NoError(t, clock.Resolve(context.Background()))

	assert.True(t, clock.Synced())
	// Offset should land near the 2 minute skew.
	assert.InDelta(t, (2 * time.Minute).Seconds(), clock.Offset().Seconds(), 5)
	assert.WithinDuration(t, remote, clock.Now(), 5*time.Second)
}

func TestClockResolveFailsOverBetweenSources(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer bad.Close()

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"dateTime":"` + time.Now().Format(time.RFC3339Nano) + `"}`))
	}))
	defer good.Close()

	clock := NewClock([]string{bad.URL, good.URL}, time.Second)
	require.NoError(t, clock.Resolve(context.Background()))
	assert.True(t, clock.Synced())
}

func TestClockResolveFailOpenKeepsOffset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	clock := NewClock([]string{srv.URL}, time.Second)
	err := clock.Resolve(context.Background())
	assert.ErrorIs(t, err, ErrSyncUnavailable)
	assert.False(t, clock.Synced())
	// Now must still be usable.
	assert.WithinDuration(t, time.Now(), clock.Now(), time.Second)
}

func TestLocationResolved(t *testing.T) {
	loc := Location{Status: LocationActive, Point: &Point{Lat: 1, Lon: 2}}
	assert.True(t, loc.Resolved())
	assert.False(t, Location{Status: LocationDenied}.Resolved())
	assert.False(t, Location{Status: LocationActive}.Resolved())
}
