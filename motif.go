package motif

import (
	"context"
	"log/slog"

	"github.com/openmotif/motif/internal/logging"
	"github.com/openmotif/motif/pkg/bridge"
	"github.com/openmotif/motif/pkg/domain"
	"github.com/openmotif/motif/pkg/observability"
	"github.com/openmotif/motif/pkg/registry"
)

// Bridge is the high-level entry point for the motif library. It wires a
// registry, a dispatcher, and the mutation-event hub behind one explicit
// handle; there is no process-wide default instance.
type Bridge struct {
	reg        *registry.Registry
	dispatcher *bridge.Dispatcher
	logger     *slog.Logger
}

// Option defines a functional option for configuring the Bridge.
type Option func(*options)

type options struct {
	reg    *registry.Registry
	logger *slog.Logger
	subs   []bridge.Subscriber
}

// WithRegistry injects an existing registry instead of creating a fresh one.
func WithRegistry(reg *registry.Registry) Option {
	return func(o *options) {
		o.reg = reg
	}
}

// WithLogger sets a structured logger for the bridge and its dispatcher.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSubscriber attaches a mutation-event subscriber at construction time.
// May be given multiple times.
func WithSubscriber(sub bridge.Subscriber) Option {
	return func(o *options) {
		o.subs = append(o.subs, sub)
	}
}

// New initializes a Bridge.
func New(opts ...Option) *Bridge {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.reg == nil {
		o.reg = registry.New()
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}

	dispatcherOpts := []bridge.Option{
		bridge.WithLogger(o.logger),
		bridge.WithSubscriber(observability.EventCounter()),
	}
	for _, sub := range o.subs {
		dispatcherOpts = append(dispatcherOpts, bridge.WithSubscriber(sub))
	}

	return &Bridge{
		reg:        o.reg,
		dispatcher: bridge.NewDispatcher(o.reg, dispatcherOpts...),
		logger:     o.logger,
	}
}

// RegisterComponent stores root under name, overwriting any prior entry.
func (b *Bridge) RegisterComponent(name string, root *domain.PrimitiveNode) {
	b.reg.RegisterComponent(name, root)
}

// RegisterHandler stores fn under id, overwriting any prior entry.
func (b *Bridge) RegisterHandler(id string, fn registry.HandlerFunc) {
	b.reg.RegisterHandler(id, fn)
}

// Subscribe attaches a subscriber to the mutation stream and returns its
// unsubscribe function.
func (b *Bridge) Subscribe(sub bridge.Subscriber) func() {
	return b.dispatcher.Subscribe(sub)
}

// HandleRequest dispatches one request envelope and returns its response.
func (b *Bridge) HandleRequest(ctx context.Context, req bridge.Request) bridge.Response {
	return b.dispatcher.HandleRequest(ctx, req)
}

// Registry returns the underlying registry.
func (b *Bridge) Registry() *registry.Registry {
	return b.reg
}

// Dispatcher returns the underlying dispatcher, e.g. to wrap it in
// middleware before handing it to a transport.
func (b *Bridge) Dispatcher() *bridge.Dispatcher {
	return b.dispatcher
}
