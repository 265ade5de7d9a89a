package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"blog-api/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the blog's Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "blog",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blog",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "blog",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		},
		[]string{"method", "path"},
	)

	serviceOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blog",
			Subsystem: "service",
			Name:      "operations_total",
			Help:      "Service operations by outcome.",
		},
		[]string{"operation", "result"},
	)

	postViews = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "blog",
			Subsystem: "post",
			Name:      "views_total",
			Help:      "Post reads that incremented a view counter.",
		},
	)

	reportExports = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blog",
			Subsystem: "report",
			Name:      "exports_total",
			Help:      "Snapshot exports to the reporting database.",
		},
		[]string{"success"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		serviceOperations,
		postViews,
		reportExports,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// TrackInFlight increments the in-flight gauge and returns the matching
// decrement.
func TrackInFlight() func() {
	httpInFlight.Inc()
	return httpInFlight.Dec
}

// ObserveHTTP records one finished request. path should be the route
// template, not the raw URL, to keep label cardinality bounded.
func ObserveHTTP(method, path string, status int, duration time.Duration) {
	if path == "" {
		path = "unmatched"
	}
	method = strings.ToUpper(method)
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Result classifies an operation error for the result label.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case models.IsNotFound(err):
		return "not_found"
	case models.IsConflict(err):
		return "conflict"
	case models.IsValidation(err):
		return "invalid"
	default:
		return "error"
	}
}

// ObserveOperation counts a service call under its outcome.
func ObserveOperation(operation string, err error) {
	serviceOperations.WithLabelValues(operation, Result(err)).Inc()
}

func RecordView() {
	postViews.Inc()
}

func RecordExport(success bool) {
	reportExports.WithLabelValues(strconv.FormatBool(success)).Inc()
}

// StatisticsFunc yields fresh entity totals on every scrape.
type StatisticsFunc func() (models.Statistics, error)

type entityCollector struct {
	desc  *prometheus.Desc
	stats StatisticsFunc
}

// NewEntityCollector exposes blog_entities{type} computed from stats at
// collection time. Nothing is cached between scrapes.
func NewEntityCollector(stats StatisticsFunc) prometheus.Collector {
	return &entityCollector{
		desc: prometheus.NewDesc(
			"blog_entities",
			"Number of stored entities by type.",
			[]string{"type"},
			nil,
		),
		stats: stats,
	}
}

func (c *entityCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *entityCollector) Collect(ch chan<- prometheus.Metric) {
	s, err := c.stats()
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.desc, err)
		return
	}
	for typ, n := range map[string]float64{
		"users":           float64(s.TotalUsers),
		"posts":           float64(s.TotalPosts),
		"published_posts": float64(s.TotalPublishedPosts),
		"comments":        float64(s.TotalComments),
		"tags":            float64(s.TotalTags),
	} {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, n, typ)
	}
}

// RegisterEntityGauges adds the entity collector to Registry. Registering a
// second source replaces nothing and returns the registration error.
func RegisterEntityGauges(stats StatisticsFunc) error {
	return Registry.Register(NewEntityCollector(stats))
}
