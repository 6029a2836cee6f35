package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "volunteer_api",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "volunteer_api",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "volunteer_api",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	pointsAwarded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "volunteer_api",
			Subsystem: "points",
			Name:      "awarded_total",
			Help:      "Total points credited to volunteers by conclusions and confirmations.",
		},
	)

	pointsSpent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "volunteer_api",
			Subsystem: "points",
			Name:      "spent_total",
			Help:      "Total points debited by redemptions.",
		},
	)

	workflowOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "volunteer_api",
			Subsystem: "workflow",
			Name:      "outcomes_total",
			Help:      "Outcomes of transactional workflows.",
		},
		[]string{"workflow", "outcome"},
	)

	statsCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "volunteer_api",
			Subsystem: "partner_stats",
			Name:      "cache_lookups_total",
			Help:      "Partner stats cache lookups by result.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		pointsAwarded,
		pointsSpent,
		workflowOutcomes,
		statsCache,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps the provided handler with HTTP metrics collection.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		path := canonicalPath(r.URL.Path)
		method := strings.ToUpper(r.Method)

		httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	})
}

// AddPointsAwarded records points credited to volunteers.
func AddPointsAwarded(points int) {
	if points > 0 {
		pointsAwarded.Add(float64(points))
	}
}

// AddPointsSpent records points debited by redemptions.
func AddPointsSpent(points int) {
	if points > 0 {
		pointsSpent.Add(float64(points))
	}
}

// RecordOutcome counts a workflow result, e.g. ("conclusion", "conflict").
func RecordOutcome(workflow, outcome string) {
	workflowOutcomes.WithLabelValues(workflow, outcome).Inc()
}

// RecordStatsCache counts a partner stats cache hit or miss.
func RecordStatsCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	statsCache.WithLabelValues(result).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// canonicalPath collapses numeric path segments so ids do not explode label cardinality.
func canonicalPath(raw string) string {
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return "/"
	}
	parts := strings.Split(trimmed, "/")
	for i, part := range parts {
		if _, err := strconv.ParseInt(part, 10, 64); err == nil {
			parts[i] = ":id"
		}
	}
	return "/" + strings.Join(parts, "/")
}
