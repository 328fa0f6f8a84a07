// Package metrics provides Prometheus instrumentation for the application.
// This is part of the platform layer and contains no business logic.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	leadsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_created_total",
			Help: "Total number of leads inserted",
		},
	)

	hotLeadAlerts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hot_lead_alerts_total",
			Help: "Total number of hot-lead alert emails, by outcome",
		},
		[]string{"outcome"},
	)

	reportsExported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_exported_total",
			Help: "Total number of report exports, by format and destination",
		},
		[]string{"format", "destination"},
	)
)

// Middleware records request counts and latencies per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
	}
}

// Handler serves the Prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// RecordLeadCreated increments the lead insertion counter.
func RecordLeadCreated() {
	leadsCreated.Inc()
}

// RecordAlert records a hot-lead alert attempt ("success" or "failure").
func RecordAlert(outcome string) {
	hotLeadAlerts.WithLabelValues(outcome).Inc()
}

// RecordExport records a report export ("csv"/"xlsx", "download"/"email"/"upload").
func RecordExport(format, destination string) {
	reportsExported.WithLabelValues(format, destination).Inc()
}
