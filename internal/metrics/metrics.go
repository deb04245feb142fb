package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's prometheus collectors
type Metrics struct {
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
	ProviderCalls   prometheus.Counter
	LookupErrors    *prometheus.CounterVec
	LookupsInFlight prometheus.Gauge
}

// New creates the metrics registered against the given registerer
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "flightshare_cache_hits_total",
			Help: "Number of lookup cache hits.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "flightshare_cache_misses_total",
			Help: "Number of lookup cache misses, logical expiries included.",
		}),
		ProviderCalls: factory.NewCounter(prometheus.CounterOpts{
			Name: "flightshare_provider_calls_total",
			Help: "Number of round trips made to the schedule provider.",
		}),
		LookupErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "flightshare_lookup_errors_total",
			Help: "Number of failed lookups by error kind.",
		}, []string{"kind"}),
		LookupsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "flightshare_lookups_in_flight",
			Help: "Number of lookups currently running.",
		}),
	}
}
