package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
	OutcomeAbsent   = "absent"
)

// Metrics holds all Prometheus metrics for the service. Each instance owns
// its registry, so a nil *Metrics is a valid no-op recorder.
type Metrics struct {
	registry *prometheus.Registry

	UsersCreated        prometheus.Counter
	ApplicationsPacked  *prometheus.CounterVec
	ApplicationsVerified *prometheus.CounterVec
	LicenseeDecoded     *prometheus.CounterVec
	FeeQuotes           *prometheus.CounterVec
	PermitCacheHits     prometheus.Counter
	PermitCacheMisses   prometheus.Counter
	EndpointLatency     *prometheus.HistogramVec

	RedisPoolHits       prometheus.Counter
	RedisPoolMisses     prometheus.Counter
	RedisPoolTimeouts   prometheus.Counter
	RedisPoolTotalConns prometheus.Gauge
	RedisPoolIdleConns  prometheus.Gauge
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		UsersCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "licensing_users_created_total",
			Help: "Total number of users created",
		}),
		ApplicationsPacked: f.NewCounterVec(prometheus.CounterOpts{
			Name: "licensing_applications_packed_total",
			Help: "Applications packed into storage words, labeled by outcome",
		}, []string{"outcome"}),
		ApplicationsVerified: f.NewCounterVec(prometheus.CounterOpts{
			Name: "licensing_applications_verified_total",
			Help: "Packed words compared against the ledger, labeled by outcome",
		}, []string{"outcome"}),
		LicenseeDecoded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "licensing_licensee_decoded_total",
			Help: "Licensee records decoded from ledger accounts, labeled by outcome",
		}, []string{"outcome"}),
		FeeQuotes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "licensing_fee_quotes_total",
			Help: "Fee quotes, labeled by permit and outcome",
		}, []string{"permit", "outcome"}),
		PermitCacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "licensing_permit_cache_hits_total",
			Help: "Permit lookups served from the cache",
		}),
		PermitCacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "licensing_permit_cache_misses_total",
			Help: "Permit lookups that fell through to the ledger",
		}),
		EndpointLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "licensing_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		RedisPoolHits: f.NewCounter(prometheus.CounterOpts{
			Name: "licensing_redis_pool_hits_total",
			Help: "Number of times a connection was found in the pool",
		}),
		RedisPoolMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "licensing_redis_pool_misses_total",
			Help: "Number of times a connection was not found in the pool",
		}),
		RedisPoolTimeouts: f.NewCounter(prometheus.CounterOpts{
			Name: "licensing_redis_pool_timeouts_total",
			Help: "Number of times a connection was not obtained due to timeout",
		}),
		RedisPoolTotalConns: f.NewGauge(prometheus.GaugeOpts{
			Name: "licensing_redis_pool_total_conns",
			Help: "Number of total connections in the pool",
		}),
		RedisPoolIdleConns: f.NewGauge(prometheus.GaugeOpts{
			Name: "licensing_redis_pool_idle_conns",
			Help: "Number of idle connections in the pool",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) IncrementUsersCreated() {
	if m == nil {
		return
	}
	m.UsersCreated.Inc()
}

func (m *Metrics) IncrementApplicationsPacked(outcome string) {
	if m == nil {
		return
	}
	m.ApplicationsPacked.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementApplicationsVerified(outcome string) {
	if m == nil {
		return
	}
	m.ApplicationsVerified.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementLicenseeDecoded(outcome string) {
	if m == nil {
		return
	}
	m.LicenseeDecoded.WithLabelValues(outcome).Inc()
}

// IncrementFeeQuotes records a quote. Unknown permits share one label value
// so callers cannot grow the series set.
func (m *Metrics) IncrementFeeQuotes(permit, outcome string) {
	if m == nil {
		return
	}
	m.FeeQuotes.WithLabelValues(permit, outcome).Inc()
}

// IncPermitCacheHit satisfies oracle.CacheMetrics.
func (m *Metrics) IncPermitCacheHit() {
	if m == nil {
		return
	}
	m.PermitCacheHits.Inc()
}

// IncPermitCacheMiss satisfies oracle.CacheMetrics.
func (m *Metrics) IncPermitCacheMiss() {
	if m == nil {
		return
	}
	m.PermitCacheMisses.Inc()
}

// ObserveEndpointLatency records the latency for a given endpoint
func (m *Metrics) ObserveEndpointLatency(endpoint string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.EndpointLatency.WithLabelValues(endpoint).Observe(durationSeconds)
}

// RecordRedisPool sets the pool gauges and adds the counter deltas since the last sample.
func (m *Metrics) RecordRedisPool(totalConns, idleConns uint32, hitsDelta, missesDelta, timeoutsDelta uint32) {
	if m == nil {
		return
	}
	m.RedisPoolTotalConns.Set(float64(totalConns))
	m.RedisPoolIdleConns.Set(float64(idleConns))
	m.RedisPoolHits.Add(float64(hitsDelta))
	m.RedisPoolMisses.Add(float64(missesDelta))
	m.RedisPoolTimeouts.Add(float64(timeoutsDelta))
}
