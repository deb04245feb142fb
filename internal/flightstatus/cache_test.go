package flightstatus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightshare/flight-share/pkg/logger"
)

func testStatuses(carrier, number string) []*FlightStatus {
	return []*FlightStatus{{
		Type:             "DatedFlight",
		FlightDesignator: FlightDesignator{CarrierCode: carrier, FlightNumber: number},
	}}
}

func TestCacheLogicalExpiry(t *testing.T) {
	cache := NewCache(24*time.Hour, logger.NewNop())

	storedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	now := storedAt
	cache.now = func() time.Time { return now }

	value := testStatuses("DL", "100")
	cache.Put("DL-100-2024-06-01", value)

	// One millisecond before the TTL boundary: still a hit
	now = storedAt.Add(24*time.Hour - time.Millisecond)
	got, ok := cache.Get("DL-100-2024-06-01")
	require.True(t, ok)
	assert.Equal(t, value, got)

	// Exactly at the TTL boundary: behaves as absent
	now = storedAt.Add(24 * time.Hour)
	_, ok = cache.Get("DL-100-2024-06-01")
	assert.False(t, ok)

	// And beyond
	now = storedAt.Add(25 * time.Hour)
	_, ok = cache.Get("DL-100-2024-06-01")
	assert.False(t, ok)

	// The expired entry is not physically removed until overwritten
	assert.Equal(t, 1, cache.Len())
}

func TestCacheOverwriteRefreshesEntry(t *testing.T) {
	cache := NewCache(24*time.Hour, logger.NewNop())

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.Put("key", testStatuses("DL", "100"))

	// Expire, then overwrite: the new value is served with a fresh clock
	now = now.Add(30 * time.Hour)
	_, ok := cache.Get("key")
	require.False(t, ok)

	fresh := testStatuses("DL", "200")
	cache.Put("key", fresh)

	got, ok := cache.Get("key")
	require.True(t, ok)
	assert.Equal(t, fresh, got)
	assert.Equal(t, 1, cache.Len())
}

func TestCacheMissOnUnknownKey(t *testing.T) {
	cache := NewCache(time.Hour, logger.NewNop())
	_, ok := cache.Get("nope")
	assert.False(t, ok)
}
