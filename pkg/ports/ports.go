package ports

import (
	"context"

	"github.com/openmotif/motif/pkg/bridge"
)

// RequestHandler is the single entry point transports depend on. The core
// dispatcher implements it; middleware (metrics, logging) wraps it.
type RequestHandler interface {
	HandleRequest(ctx context.Context, req bridge.Request) bridge.Response
}

// RequestHandlerFunc adapts a function to the RequestHandler interface.
type RequestHandlerFunc func(ctx context.Context, req bridge.Request) bridge.Response

// HandleRequest implements RequestHandler.
func (f RequestHandlerFunc) HandleRequest(ctx context.Context, req bridge.Request) bridge.Response {
	return f(ctx, req)
}
