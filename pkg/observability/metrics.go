package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors and implements [PipelineHooks],
// [CacheHooks] and [HTTPHooks].
type Metrics struct {
	// Server metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Upstream API metrics
	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec
	UpstreamErrorsTotal     *prometheus.CounterVec

	// Pipeline metrics
	FetchTotal       *prometheus.CounterVec
	FetchDuration    *prometheus.HistogramVec
	AnalyzeTotal     *prometheus.CounterVec
	AnalyzeDuration  prometheus.Histogram
	ExtractionsTotal *prometheus.CounterVec
	DependenciesSeen *prometheus.CounterVec

	// Cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
	CacheWriteBytes  *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewMetrics creates all collectors and registers them with registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "repolens_http_requests_total",
				Help: "Total number of API requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "repolens_http_request_duration_seconds",
				Help:    "API request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		UpstreamRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "repolens_upstream_requests_total",
				Help: "Total number of requests sent to hosting APIs",
			},
			[]string{"host", "status"},
		),
		UpstreamRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "repolens_upstream_request_duration_seconds",
				Help:    "Hosting API request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"host"},
		),
		UpstreamErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "repolens_upstream_errors_total",
				Help: "Total number of failed hosting API requests",
			},
			[]string{"host"},
		),

		FetchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "repolens_fetch_total",
				Help: "Total number of repository snapshots taken",
			},
			[]string{"platform", "status"},
		),
		FetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "repolens_fetch_duration_seconds",
				Help:    "Repository snapshot duration in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"platform"},
		),
		AnalyzeTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "repolens_analyze_total",
				Help: "Total number of analyses by detected language",
			},
			[]string{"language", "status"},
		),
		AnalyzeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "repolens_analyze_duration_seconds",
				Help:    "Analysis duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
			},
		),
		ExtractionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "repolens_extractions_total",
				Help: "Total number of dependency files processed",
			},
			[]string{"file", "status"},
		),
		DependenciesSeen: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "repolens_dependencies_total",
				Help: "Total number of dependency records extracted",
			},
			[]string{"file"},
		),

		CacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "repolens_cache_hits_total",
				Help: "Total number of cache hits",
			},
			[]string{"kind"},
		),
		CacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "repolens_cache_misses_total",
				Help: "Total number of cache misses",
			},
			[]string{"kind"},
		),
		CacheWriteBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "repolens_cache_write_bytes",
				Help:    "Size of cache writes in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 6),
			},
			[]string{"kind"},
		),

		registry: registry,
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.UpstreamRequestsTotal,
		m.UpstreamRequestDuration,
		m.UpstreamErrorsTotal,
		m.FetchTotal,
		m.FetchDuration,
		m.AnalyzeTotal,
		m.AnalyzeDuration,
		m.ExtractionsTotal,
		m.DependenciesSeen,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.CacheWriteBytes,
	)
	return m
}

// Register installs m as the pipeline, cache and HTTP hooks.
func (m *Metrics) Register() {
	SetPipelineHooks(m)
	SetCacheHooks(m)
	SetHTTPHooks(m)
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) OnFetchStart(context.Context, string, string) {}

func (m *Metrics) OnFetchComplete(_ context.Context, platform, _ string, _ int, d time.Duration, err error) {
	m.FetchTotal.WithLabelValues(platform, status(err)).Inc()
	m.FetchDuration.WithLabelValues(platform).Observe(d.Seconds())
}

func (m *Metrics) OnAnalyzeStart(context.Context, int) {}

func (m *Metrics) OnAnalyzeComplete(_ context.Context, language string, _ int, d time.Duration, err error) {
	m.AnalyzeTotal.WithLabelValues(language, status(err)).Inc()
	m.AnalyzeDuration.Observe(d.Seconds())
}

func (m *Metrics) OnExtract(_ context.Context, file string, deps int, err error) {
	m.ExtractionsTotal.WithLabelValues(file, status(err)).Inc()
	m.DependenciesSeen.WithLabelValues(file).Add(float64(deps))
}

func (m *Metrics) OnCacheHit(_ context.Context, kind string) {
	m.CacheHitsTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, kind string) {
	m.CacheMissesTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, kind string, size int) {
	m.CacheWriteBytes.WithLabelValues(kind).Observe(float64(size))
}

func (m *Metrics) OnRequest(context.Context, string, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, _, host, _ string, code int, d time.Duration) {
	m.UpstreamRequestsTotal.WithLabelValues(host, strconv.Itoa(code)).Inc()
	m.UpstreamRequestDuration.WithLabelValues(host).Observe(d.Seconds())
}

func (m *Metrics) OnError(_ context.Context, _, host, _ string, _ error) {
	m.UpstreamErrorsTotal.WithLabelValues(host).Inc()
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware instruments API requests. route maps a request to a
// low-cardinality label such as the matched route pattern; it runs after
// the handler so routers can fill in their match.
func (m *Metrics) Middleware(route func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			label := route(r)
			if label == "" {
				label = "unmatched"
			}
			m.HTTPRequestsTotal.WithLabelValues(r.Method, label, strconv.Itoa(rw.statusCode)).Inc()
			m.HTTPRequestDuration.WithLabelValues(r.Method, label).Observe(time.Since(start).Seconds())
		})
	}
}
