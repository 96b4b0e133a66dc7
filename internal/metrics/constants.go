package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP server metric names (stub backend)
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Outbound API metric names
const (
	MetricNameAPIRequestsTotal   = "burger_api_requests_total"
	MetricNameAPIRequestDuration = "burger_api_request_duration_seconds"
	MetricNameTokenRefreshes     = "burger_token_refreshes_total"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameOrdersPlaced       = "burger_orders_placed_total"
	MetricNameSessionTransitions = "burger_session_transitions_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextAPIRequestsTotal   = "Total number of requests sent to the burger backend"
	HelpTextAPIRequestDuration = "Burger backend request latency in seconds"
	HelpTextTokenRefreshes     = "Token refresh exchanges by result"

	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"

	HelpTextOrdersPlaced       = "Total number of orders accepted by the backend"
	HelpTextSessionTransitions = "Auth session transitions by target state"
)

// ============================================================================
// Metric Label Names and Values
// ============================================================================

const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelResult = "result"
	LabelState  = "state"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"

	// StatusTransportError labels requests that never produced a response
	StatusTransportError = "error"

	// PathNumberPlaceholder replaces numeric path segments such as order numbers
	PathNumberPlaceholder = "{number}"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for request duration in
// seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgMetricsRecorded    = "Metrics recorded for event"
	LogMsgPayloadDecodeError = "Event payload could not be decoded"
)
