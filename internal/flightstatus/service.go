package flightstatus

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/flightshare/flight-share/internal/metrics"
	"github.com/flightshare/flight-share/pkg/logger"
)

// ScheduleClient fetches raw schedule data from the provider
type ScheduleClient interface {
	Schedule(ctx context.Context, q Query) ([]DatedFlight, error)
}

// Service runs the lookup pipeline: cache short-circuit, provider call,
// normalization, cache write. Concurrent lookups for the same key are
// coalesced onto one provider call via singleflight; distinct keys run
// independently.
type Service struct {
	client  ScheduleClient
	cache   *Cache
	metrics *metrics.Metrics
	group   singleflight.Group
	logger  *logger.Logger
}

// NewService creates a new flight status service
func NewService(client ScheduleClient, cache *Cache, m *metrics.Metrics, log *logger.Logger) *Service {
	return &Service{
		client:  client,
		cache:   cache,
		metrics: m,
		logger:  log.Named("flightstatus"),
	}
}

// Lookup resolves one validated query to its canonical flight statuses.
// Only successful, non-empty results are cached: every error path bypasses
// the cache entirely.
func (s *Service) Lookup(ctx context.Context, q Query) ([]*FlightStatus, error) {
	key := q.CacheKey()

	if cached, ok := s.cache.Get(key); ok {
		s.logger.Debug("Cache hit", logger.String("key", key))
		if s.metrics != nil {
			s.metrics.CacheHits.Inc()
		}
		return cached, nil
	}
	if s.metrics != nil {
		s.metrics.CacheMisses.Inc()
	}

	result, err, shared := s.group.Do(key, func() (interface{}, error) {
		return s.fetch(ctx, q, key)
	})
	if err != nil {
		s.recordError(err)
		return nil, err
	}
	if shared {
		s.logger.Debug("Lookup coalesced with concurrent request", logger.String("key", key))
	}

	return result.([]*FlightStatus), nil
}

// fetch performs the provider round trip and caches the normalized result
func (s *Service) fetch(ctx context.Context, q Query, key string) ([]*FlightStatus, error) {
	if s.metrics != nil {
		s.metrics.LookupsInFlight.Inc()
		defer s.metrics.LookupsInFlight.Dec()
		s.metrics.ProviderCalls.Inc()
	}

	s.logger.Info("Fetching flight status from provider",
		logger.String("query", q.String()))

	raw, err := s.client.Schedule(ctx, q)
	if err != nil {
		return nil, err
	}

	statuses := normalizeAll(raw)
	s.cache.Put(key, statuses)

	return statuses, nil
}

// Result is the outcome of one lookup within a fan-out batch
type Result struct {
	Query   Query
	Flights []*FlightStatus
	Err     error
}

// LookupAll resolves a batch of queries concurrently, one goroutine per
// query. Results come back in input order; each query fails or succeeds
// independently, the batch itself never fails.
func (s *Service) LookupAll(ctx context.Context, queries []Query) []Result {
	results := make([]Result, len(queries))

	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q Query) {
			defer wg.Done()
			flights, err := s.Lookup(ctx, q)
			results[i] = Result{Query: q, Flights: flights, Err: err}
		}(i, q)
	}
	wg.Wait()

	return results
}

// recordError counts a failed lookup by error kind
func (s *Service) recordError(err error) {
	if s.metrics == nil {
		return
	}
	var kind string
	switch {
	case errors.Is(err, ErrConfigMissing):
		kind = "config_missing"
	case errors.Is(err, ErrFlightNotFound):
		kind = "not_found"
	default:
		kind = "provider"
	}
	s.metrics.LookupErrors.WithLabelValues(kind).Inc()
}
