package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IndependentRegistries(t *testing.T) {
	a := New()
	b := New()

	a.IncrementUsersCreated()

	assert.Equal(t, float64(1), testutil.ToFloat64(a.UsersCreated))
	assert.Equal(t, float64(0), testutil.ToFloat64(b.UsersCreated))
}

func TestCounters(t *testing.T) {
	m := New()

	m.IncrementApplicationsPacked(OutcomeOK)
	m.IncrementApplicationsPacked(OutcomeRejected)
	m.IncrementApplicationsPacked(OutcomeOK)
	m.IncrementFeeQuotes("Asset Creation", OutcomeOK)
	m.IncPermitCacheHit()
	m.IncPermitCacheMiss()
	m.IncPermitCacheMiss()
	m.RecordRedisPool(4, 2, 10, 1, 0)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ApplicationsPacked.WithLabelValues(OutcomeOK)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ApplicationsPacked.WithLabelValues(OutcomeRejected)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.FeeQuotes.WithLabelValues("Asset Creation", OutcomeOK)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.PermitCacheHits))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.PermitCacheMisses))
	assert.Equal(t, float64(4), testutil.ToFloat64(m.RedisPoolTotalConns))
	assert.Equal(t, float64(10), testutil.ToFloat64(m.RedisPoolHits))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementUsersCreated()
		m.IncrementLicenseeDecoded(OutcomeError)
		m.IncPermitCacheHit()
		m.ObserveEndpointLatency("/health", 0.1)
		m.RecordRedisPool(1, 1, 1, 1, 1)
	})
	assert.Nil(t, m.Registry())
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveEndpointLatency("/application/fee", 0.02)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "licensing_endpoint_latency_seconds")
}
