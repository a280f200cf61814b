package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsTotal,
			Help:      HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestDuration,
			Help:      HelpTextHTTPRequestDuration,
			Buckets:   HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsInFlight,
			Help:      HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventsPublished,
			Help:      HelpTextEventsPublished,
		},
		[]string{LabelEventType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventHandlerErrors,
			Help:      HelpTextEventHandlerErrors,
		},
		[]string{LabelEventType},
	)
)

// Ledger Metrics
var (
	Operations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameOperations,
			Help:      HelpTextOperations,
		},
		[]string{LabelOperation, LabelStatus},
	)

	RemoteFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameRemoteFailures,
			Help:      HelpTextRemoteFailures,
		},
		[]string{LabelStep},
	)

	Merges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameMerges,
			Help:      HelpTextMerges,
		},
		[]string{LabelKind, LabelResult},
	)

	Compensations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameCompensations,
			Help:      HelpTextCompensations,
		},
		[]string{LabelResult},
	)

	OpenSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameOpenSessions,
			Help:      HelpTextOpenSessions,
		},
	)
)

// RecordMerge counts one push notification merged into a mirror
func RecordMerge(kind string, applied bool) {
	result := ResultDuplicate
	if applied {
		result = ResultApplied
	}
	Merges.WithLabelValues(kind, result).Inc()
}

// SetOpenSessions reports the session manager's open count
func SetOpenSessions(n int) {
	OpenSessions.Set(float64(n))
}
