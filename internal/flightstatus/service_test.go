package flightstatus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightshare/flight-share/pkg/logger"
)

// stubClient is a ScheduleClient returning canned results and counting calls
type stubClient struct {
	mu      sync.Mutex
	calls   int
	flights []DatedFlight
	err     error
}

func (s *stubClient) Schedule(ctx context.Context, q Query) ([]DatedFlight, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.flights, nil
}

func (s *stubClient) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newTestService(client ScheduleClient) *Service {
	log := logger.NewNop()
	return NewService(client, NewCache(24*time.Hour, log), nil, log)
}

func TestServiceSecondLookupIsCacheHit(t *testing.T) {
	client := &stubClient{flights: []DatedFlight{fullRawFlight()}}
	service := newTestService(client)

	first, err := service.Lookup(context.Background(), testQuery())
	require.NoError(t, err)
	second, err := service.Lookup(context.Background(), testQuery())
	require.NoError(t, err)

	// Exactly one provider call; both lookups see the same canonical records
	assert.Equal(t, 1, client.callCount())
	assert.Equal(t, first, second)
	for i := range first {
		assert.Same(t, first[i], second[i])
	}
}

func TestServiceErrorsAreNotCached(t *testing.T) {
	client := &stubClient{err: ErrFlightNotFound}
	service := newTestService(client)

	_, err := service.Lookup(context.Background(), testQuery())
	assert.ErrorIs(t, err, ErrFlightNotFound)

	// Recovery: the next lookup goes back to the provider
	client.mu.Lock()
	client.err = nil
	client.flights = []DatedFlight{fullRawFlight()}
	client.mu.Unlock()

	statuses, err := service.Lookup(context.Background(), testQuery())
	require.NoError(t, err)
	assert.Len(t, statuses, 1)
	assert.Equal(t, 2, client.callCount())
}

func TestServiceConfigErrorPropagates(t *testing.T) {
	service := newTestService(&stubClient{err: ErrConfigMissing})

	_, err := service.Lookup(context.Background(), testQuery())
	assert.ErrorIs(t, err, ErrConfigMissing)
}

func TestServiceDistinctKeysHitProviderIndependently(t *testing.T) {
	client := &stubClient{flights: []DatedFlight{fullRawFlight()}}
	service := newTestService(client)

	_, err := service.Lookup(context.Background(), testQuery())
	require.NoError(t, err)

	other := testQuery()
	other.FlightNumber = "0100" // literal key: not equivalent to "100"
	_, err = service.Lookup(context.Background(), other)
	require.NoError(t, err)

	assert.Equal(t, 2, client.callCount())
}

func TestServiceLookupAllPartialSuccess(t *testing.T) {
	good := testQuery()
	bad := Query{CarrierCode: "XX", FlightNumber: "999", ScheduledDepartureDate: "2024-06-02"}

	// The stub fails every query but the good one
	service := newTestService(&queryAwareClient{
		good: good.CacheKey(),
		ok:   []DatedFlight{fullRawFlight()},
	})

	results := service.LookupAll(context.Background(), []Query{good, bad})
	require.Len(t, results, 2)

	assert.NoError(t, results[0].Err)
	assert.Len(t, results[0].Flights, 1)
	assert.Equal(t, good, results[0].Query)

	assert.ErrorIs(t, results[1].Err, ErrFlightNotFound)
	assert.Nil(t, results[1].Flights)
	assert.Equal(t, bad, results[1].Query)
}

// queryAwareClient succeeds for one key and 404s everything else
type queryAwareClient struct {
	good string
	ok   []DatedFlight
}

func (c *queryAwareClient) Schedule(ctx context.Context, q Query) ([]DatedFlight, error) {
	if q.CacheKey() == c.good {
		return c.ok, nil
	}
	return nil, ErrFlightNotFound
}

func TestServiceCoalescesConcurrentIdenticalLookups(t *testing.T) {
	release := make(chan struct{})
	client := &blockingClient{release: release, flights: []DatedFlight{fullRawFlight()}}
	service := newTestService(client)

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = service.Lookup(context.Background(), testQuery())
		}(i)
	}

	// Let every caller reach the singleflight barrier, then release
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, 1, client.callCount())
}

// blockingClient parks every Schedule call until released
type blockingClient struct {
	mu      sync.Mutex
	calls   int
	release chan struct{}
	flights []DatedFlight
}

func (c *blockingClient) Schedule(ctx context.Context, q Query) ([]DatedFlight, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	<-c.release
	return c.flights, nil
}

func (c *blockingClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
