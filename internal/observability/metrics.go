package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "facectl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "facectl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	linkMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "facectl",
			Subsystem: "link",
			Name:      "messages_total",
			Help:      "Inbound phone-link messages by apply outcome.",
		},
		[]string{"node", "outcome"},
	)
	graphDecodes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "facectl",
			Subsystem: "graph",
			Name:      "decodes_total",
			Help:      "Graph payload decode attempts by result.",
		},
		[]string{"node", "result"},
	)
	linkReconnects = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "facectl",
			Subsystem: "link",
			Name:      "reconnects_total",
			Help:      "Phone-link reconnect attempts.",
		},
		[]string{"node"},
	)
)

// Apply outcomes for link message metrics.
const (
	OutcomeApplied = "applied"
	OutcomeIgnored = "ignored"
	OutcomeInvalid = "invalid"
)

// Graph decode results for graph metrics.
const (
	GraphAccepted    = "accepted"
	GraphShortHeader = "short_header"
	GraphTruncated   = "truncated"
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, linkMessages, graphDecodes, linkReconnects)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

func RecordLinkMessage(node, outcome string) {
	RegisterMetrics()
	linkMessages.WithLabelValues(node, outcome).Inc()
}

func RecordGraphDecode(node, result string) {
	RegisterMetrics()
	graphDecodes.WithLabelValues(node, result).Inc()
}

func RecordLinkReconnect(node string) {
	RegisterMetrics()
	linkReconnects.WithLabelValues(node).Inc()
}
