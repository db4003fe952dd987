// Package metrics exposes Prometheus collectors for portfolio health and the
// dashboard's HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Active projects per health tier, as of the last overview.
	ProjectsByTier = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "portfolio_projects",
			Help: "Active projects per health tier",
		},
		[]string{"tier"},
	)

	LateTasks = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "portfolio_late_tasks",
		Help: "Late tasks across active projects",
	})

	OpenGaps = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "portfolio_open_gaps",
		Help: "Open gap notes on active projects",
	})

	// HTTP request latency (seconds)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)
)

// RecordOverview sets the portfolio gauges.
func RecordOverview(healthy, attention, critical, late, gaps int) {
	ProjectsByTier.WithLabelValues("healthy").Set(float64(healthy))
	ProjectsByTier.WithLabelValues("attention").Set(float64(attention))
	ProjectsByTier.WithLabelValues("critical").Set(float64(critical))
	LateTasks.Set(float64(late))
	OpenGaps.Set(float64(gaps))
}

// RecordHTTPRequestDuration observes one request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// Middleware times every request. The route pattern is used as the path
// label so ids do not explode cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		RecordHTTPRequestDuration(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
