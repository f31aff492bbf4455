package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "ledger_"

var (
	registerOnce sync.Once

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	entriesPosted    prometheus.Counter
	periodsClosed    prometheus.Counter
	matchesConfirmed prometheus.Counter
)

func initMetrics() {
	registerOnce.Do(func() {
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_latency_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		)

		entriesPosted = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "entries_posted_total",
				Help: "Total journal entries posted",
			},
		)
		periodsClosed = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "periods_closed_total",
				Help: "Total fiscal periods closed",
			},
		)
		matchesConfirmed = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "reconciliation_matches_total",
				Help: "Total reconciliation matches confirmed",
			},
		)

		prometheus.MustRegister(
			httpRequests,
			httpLatency,
			entriesPosted,
			periodsClosed,
			matchesConfirmed,
		)
	})
}

// PrometheusMiddleware records per-route request counts and latency.
func PrometheusMiddleware() gin.HandlerFunc {
	initMetrics()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		httpRequests.WithLabelValues(c.Request.Method, route, status).Inc()
		httpLatency.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// IncEntryPosted increments the posted entries counter.
func IncEntryPosted() {
	if entriesPosted != nil {
		entriesPosted.Inc()
	}
}

// IncPeriodClosed increments the closed periods counter.
func IncPeriodClosed() {
	if periodsClosed != nil {
		periodsClosed.Inc()
	}
}

// IncMatchConfirmed increments the confirmed matches counter.
func IncMatchConfirmed() {
	if matchesConfirmed != nil {
		matchesConfirmed.Inc()
	}
}
