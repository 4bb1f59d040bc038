package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/model"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	reportsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "water_reports_created_total",
			Help: "Total number of submitted water issue reports",
		},
		[]string{"issue_type", "urgency"},
	)

	reportTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "water_report_transitions_total",
			Help: "Total number of report status changes",
		},
		[]string{"from", "to"},
	)

	rateLimitRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_rejections_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"action"},
	)

	dashboardCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_stats_cache_total",
			Help: "Dashboard statistics lookups by cache result",
		},
		[]string{"cache_hit"},
	)
)

// MetricsMiddleware collects request count, latency and in-flight gauges.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpRequestsInFlight.Inc()

		// route pattern, so /api/reports/RPT-001 is counted as /api/reports/:id
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}

		c.Next()

		httpRequestsInFlight.Dec()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(duration)
	}
}

func RecordReportCreated(issue model.IssueType, urgency model.Urgency) {
	reportsCreatedTotal.WithLabelValues(string(issue), string(urgency)).Inc()
}

func RecordTransition(from, to model.Status) {
	reportTransitionsTotal.WithLabelValues(string(from), string(to)).Inc()
}

func RecordRateLimited(action string) {
	rateLimitRejectionsTotal.WithLabelValues(action).Inc()
}

func RecordDashboardCache(hit bool) {
	dashboardCacheTotal.WithLabelValues(strconv.FormatBool(hit)).Inc()
}
