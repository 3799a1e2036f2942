package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderCounts(t *testing.T) {
	r := New(prometheus.NewRegistry())

	r.RecordUpstream("api.stlouisfed.org", 200, 0.12)
	r.RecordUpstream("api.stlouisfed.org", 200, 0.08)
	r.RecordRateLimited("alphavantage")
	r.RecordCacheLookup("equity", true)
	r.RecordCacheLookup("equity", false)
	r.RecordCacheLookup("equity", false)
	r.RecordDropped("indicator")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.upstreamTotal.WithLabelValues("api.stlouisfed.org", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.rateLimitedTotal.WithLabelValues("alphavantage")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cacheLookups.WithLabelValues("equity", "hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.cacheLookups.WithLabelValues("equity", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.droppedTotal.WithLabelValues("indicator")))
}

func TestNewTwiceWithSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}

func TestInFlight(t *testing.T) {
	r := New(prometheus.NewRegistry())
	done := r.RequestStarted("/api/fred", "GET")
	assert.Equal(t, 1.0, testutil.ToFloat64(r.httpInFlight.WithLabelValues("/api/fred", "GET")))
	done()
	assert.Equal(t, 0.0, testutil.ToFloat64(r.httpInFlight.WithLabelValues("/api/fred", "GET")))
	r.RecordRequest("/api/fred", "GET", 502, 0.3, 120)
	assert.Equal(t, 1.0, testutil.ToFloat64(r.httpRequests.WithLabelValues("/api/fred", "GET", "502")))
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "2xx", StatusClass(204))
	assert.Equal(t, "4xx", StatusClass(429))
	assert.Equal(t, "5xx", StatusClass(0))
}
