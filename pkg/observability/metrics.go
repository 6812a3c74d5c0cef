package observability

import (
	"context"
	"sync"
	"time"

	"github.com/openmotif/motif/pkg/bridge"
	"github.com/openmotif/motif/pkg/domain"
	"github.com/openmotif/motif/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	bridgeRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "motif",
			Subsystem: "bridge",
			Name:      "requests_total",
			Help:      "Total bridge requests by method and outcome code.",
		},
		[]string{"method", "code"},
	)
	bridgeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "motif",
			Subsystem: "bridge",
			Name:      "request_duration_seconds",
			Help:      "Bridge request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
	mutationEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "motif",
			Subsystem: "bridge",
			Name:      "mutation_events_total",
			Help:      "Mutation events published to subscribers.",
		},
		[]string{"event"},
	)
)

// RegisterMetrics registers the bridge collectors with the default
// prometheus registry. Safe to call more than once.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(bridgeRequests, bridgeDuration, mutationEvents)
	})
}

// outcomeLabel is the code label on success, where no error code exists.
const outcomeLabel = "OK"

// Middleware wraps a request handler with prometheus instrumentation.
// Transports dispatch through the returned handler instead of the core one.
func Middleware(next ports.RequestHandler) ports.RequestHandler {
	return ports.RequestHandlerFunc(func(ctx context.Context, req bridge.Request) bridge.Response {
		start := time.Now()
		resp := next.HandleRequest(ctx, req)
		bridgeDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())

		code := resp.Code
		if resp.Success {
			code = outcomeLabel
		}
		bridgeRequests.WithLabelValues(req.Method, code).Inc()
		return resp
	})
}

// BridgeRequests exposes the request counter, mainly for assertions in tests.
func BridgeRequests() *prometheus.CounterVec {
	return bridgeRequests
}

// MutationEvents exposes the mutation counter, mainly for assertions in tests.
func MutationEvents() *prometheus.CounterVec {
	return mutationEvents
}

// CountEvent records one published mutation event.
func CountEvent(event string) {
	mutationEvents.WithLabelValues(event).Inc()
}

// EventCounter returns a subscriber that counts every published mutation
// event. The root facade attaches it to the dispatcher hub, so the counter
// tracks mutations even when no external observer is subscribed.
func EventCounter() bridge.Subscriber {
	return bridge.SubscriberFunc(func(_ context.Context, event domain.EventType, _ domain.MutationEvent) {
		CountEvent(string(event))
	})
}
