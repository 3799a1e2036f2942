package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "signal_stories"

// Recorder implements repository.Metrics and the HTTP server metrics using Prometheus.
type Recorder struct {
	upstreamTotal    *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	rateLimitedTotal *prometheus.CounterVec
	cacheLookups     *prometheus.CounterVec
	droppedTotal     *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpInFlight *prometheus.GaugeVec
	httpSize     *prometheus.HistogramVec
}

// New registers the collectors with reg. Pass prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		upstreamTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_requests_total",
				Help:      "Outbound requests by upstream host and status code",
			},
			[]string{"host", "status"},
		),
		upstreamLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "Duration of outbound requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"host"},
		),
		rateLimitedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_rate_limited_total",
				Help:      "Provider responses that signalled throttling",
			},
			[]string{"provider"},
		),
		cacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Cache lookups by cache name and result",
			},
			[]string{"cache", "result"},
		),
		droppedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dropped_items_total",
				Help:      "Items omitted from a fan-out because their fetch failed",
			},
			[]string{"kind"},
		),
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		httpDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"route", "method", "class"},
		),
		httpInFlight: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "http_in_flight_requests",
				Help: "Current number of in-flight HTTP requests",
			},
			[]string{"route", "method"},
		),
		httpSize: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{200, 500, 1_000, 2_000, 5_000, 10_000, 50_000, 100_000},
			},
			[]string{"route", "method", "class"},
		),
	}
}

// RecordUpstream records one outbound call. status 0 means a transport error.
func (r *Recorder) RecordUpstream(host string, status int, seconds float64) {
	r.upstreamTotal.WithLabelValues(host, strconv.Itoa(status)).Inc()
	r.upstreamLatency.WithLabelValues(host).Observe(seconds)
}

func (r *Recorder) RecordRateLimited(provider string) {
	r.rateLimitedTotal.WithLabelValues(provider).Inc()
}

func (r *Recorder) RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(cache, result).Inc()
}

func (r *Recorder) RecordDropped(kind string) {
	r.droppedTotal.WithLabelValues(kind).Inc()
}

// RequestStarted increments the in-flight gauge; call the returned func when done.
func (r *Recorder) RequestStarted(route, method string) func() {
	g := r.httpInFlight.WithLabelValues(route, method)
	g.Inc()
	return g.Dec
}

// RecordRequest records a completed inbound request.
func (r *Recorder) RecordRequest(route, method string, status int, seconds float64, bytes int64) {
	class := StatusClass(status)
	r.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(route, method, class).Observe(seconds)
	r.httpSize.WithLabelValues(route, method, class).Observe(float64(bytes))
}

func StatusClass(code int) string {
	switch {
	case code >= 100 && code < 200:
		return "1xx"
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
