// Package metrics exposes Prometheus collectors for HTTP traffic and ticket activity.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rch"

type Metrics struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	ticketsTotal  *prometheus.CounterVec
	statusChanges *prometheus.CounterVec
	allocFailures prometheus.Counter
	attention     prometheus.Gauge
	rateLimited   *prometheus.CounterVec
	botRejected   *prometheus.CounterVec
	notifyFailed  *prometheus.CounterVec
}

// New registers every collector on a fresh registry together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ticketsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_created_total",
			Help:      "Support tickets created by priority and category.",
		}, []string{"priority", "category"}),
		statusChanges: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticket_status_changes_total",
			Help:      "Ticket status transitions by target status.",
		}, []string{"status"}),
		allocFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticket_number_allocation_failures_total",
			Help:      "Ticket number allocations that exhausted their attempts.",
		}),
		attention: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tickets_attention_required",
			Help:      "Tickets needing attention at the last digest run.",
		}),
		rateLimited: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter per action.",
		}, []string{"action"}),
		botRejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bot_rejections_total",
			Help:      "Form submissions rejected by bot protection.",
		}, []string{"reason"}),
		notifyFailed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_failures_total",
			Help:      "Best-effort notifications that failed.",
		}, []string{"kind"}),
	}
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) TicketCreated(priority, category string) {
	m.ticketsTotal.WithLabelValues(priority, category).Inc()
}

func (m *Metrics) TicketStatusChanged(status string) {
	m.statusChanges.WithLabelValues(status).Inc()
}

func (m *Metrics) AllocationFailed() {
	m.allocFailures.Inc()
}

func (m *Metrics) SetAttentionRequired(n int) {
	m.attention.Set(float64(n))
}

func (m *Metrics) RateLimited(action string) {
	m.rateLimited.WithLabelValues(action).Inc()
}

func (m *Metrics) BotRejected(reason string) {
	m.botRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) NotificationFailed(kind string) {
	m.notifyFailed.WithLabelValues(kind).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
