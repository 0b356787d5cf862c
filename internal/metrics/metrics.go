// Package metrics collects and exposes Prometheus request metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records HTTP request counts and latencies.
type Collector struct {
	requestsTotal  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "microblog_http_requests_total",
			Help: "Total HTTP requests by method, route and status code",
		}, []string{"method", "path", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "microblog_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
	reg.MustRegister(c.requestsTotal, c.requestLatency)
	return c
}

// Middleware returns an Echo middleware recording every request. Errors are
// dispatched to the error handler here so the recorded status is the one the
// client sees.
func (c *Collector) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			if err := next(ctx); err != nil {
				ctx.Error(err)
			}
			method := ctx.Request().Method
			path := ctx.Path()
			status := strconv.Itoa(ctx.Response().Status)
			c.requestsTotal.WithLabelValues(method, path, status).Inc()
			c.requestLatency.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

// Handler returns the /metrics exposition handler for reg.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
