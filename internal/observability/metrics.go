package observability

const (
	MUsecaseRequests         MetricKey = "usecase_requests_total"
	MUsecaseDuration         MetricKey = "usecase_duration_seconds"
	MHTTPRequests            MetricKey = "http_requests_total"
	MHTTPRequestDuration     MetricKey = "http_request_duration_seconds"
	MExternalRequests        MetricKey = "external_requests_total"
	MExternalRequestDuration MetricKey = "external_request_duration_seconds"
	MCartEvents              MetricKey = "cart_events_total"
	MEventsDispatched        MetricKey = "events_dispatched_total"
)

// MetricSpec describes how a MetricKey is registered with a metrics backend.
type MetricSpec struct {
	Key       MetricKey
	Help      string
	Labels    []string
	Histogram bool
}

// StandardMetrics lists every instrument the service emits.
func StandardMetrics() []MetricSpec {
	return []MetricSpec{
		{Key: MUsecaseRequests, Help: "Total number of use case invocations.", Labels: []string{"use_case", "outcome"}},
		{Key: MUsecaseDuration, Help: "Duration of use case execution in seconds.", Labels: []string{"use_case"}, Histogram: true},
		{Key: MHTTPRequests, Help: "Total number of HTTP requests.", Labels: []string{"method", "route", "status"}},
		{Key: MHTTPRequestDuration, Help: "Duration of HTTP requests in seconds.", Labels: []string{"method", "route", "status"}, Histogram: true},
		{Key: MExternalRequests, Help: "Total number of calls to external dependencies.", Labels: []string{"peer", "endpoint", "outcome"}},
		{Key: MExternalRequestDuration, Help: "Duration of calls to external dependencies in seconds.", Labels: []string{"peer", "endpoint"}, Histogram: true},
		{Key: MCartEvents, Help: "Cart events observed by the activity worker.", Labels: []string{"event", "code"}},
		{Key: MEventsDispatched, Help: "Events fanned out by the in-process bus.", Labels: []string{"event", "outcome"}},
	}
}
