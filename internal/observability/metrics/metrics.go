package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the application counters. A dedicated registry keeps tests
// free of duplicate-registration panics.
type Metrics struct {
	Registry *prometheus.Registry

	InvoicesIssued   prometheus.Counter
	ExpensesRecorded prometheus.Counter
	ReportsGenerated prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		InvoicesIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kahraba_invoices_issued_total",
			Help: "Invoices issued since process start.",
		}),
		ExpensesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kahraba_expenses_recorded_total",
			Help: "Expense ledger entries recorded since process start.",
		}),
		ReportsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kahraba_reports_generated_total",
			Help: "Period reports generated since process start.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kahraba_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kahraba_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registry.MustRegister(
		m.InvoicesIssued,
		m.ExpensesRecorded,
		m.ReportsGenerated,
		m.httpRequests,
		m.httpDuration,
	)

	return m
}

// GinMiddleware records request counts and latency per route.
func GinMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).
			Observe(time.Since(start).Seconds())
	}
}
