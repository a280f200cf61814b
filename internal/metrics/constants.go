package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Namespace prefixes every metric
const Namespace = "giftmarket"

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Ledger metric names
const (
	MetricNameOperations     = "operations_total"
	MetricNameRemoteFailures = "remote_failures_total"
	MetricNameMerges         = "merge_total"
	MetricNameCompensations  = "compensations_total"
	MetricNameOpenSessions   = "open_sessions"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Ledger metric help text
const (
	HelpTextOperations     = "Wallet and marketplace operations by outcome"
	HelpTextRemoteFailures = "Remote ledger steps that failed after the optimistic apply"
	HelpTextMerges         = "Push notifications merged into session mirrors, applied or duplicate"
	HelpTextCompensations  = "Compensating jobs run after partial failures"
	HelpTextOpenSessions   = "Currently open identity sessions"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelEventType = "event_type"
	LabelOperation = "operation"
	LabelStep      = "step"
	LabelKind      = "kind"
	LabelResult    = "result"
)

// Label values
const (
	StatusCompleted       = "completed"
	StatusPartiallyFailed = "partially_failed"

	ResultApplied   = "applied"
	ResultDuplicate = "duplicate"
	ResultSuccess   = "success"
	ResultFailure   = "failure"

	// operation labels match the economy package's operation names
	OperationDeposit     = "deposit"
	OperationPurchase    = "purchase"
	OperationSell        = "sell"
	OperationPublish     = "publish"
	OperationCardDeposit = "card_deposit"

	// PathUnmatched labels requests no route matched
	PathUnmatched = "unmatched"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadInvalid = "Event payload could not be decoded"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
