package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/openmotif/motif/pkg/domain"
)

// HandlerFunc is the signature for a registered interaction handler.
// Arguments are forwarded positionally; a handler that completes
// asynchronously simply blocks until its result settles, so the dispatcher
// awaits synchronous and asynchronous handlers through one contract.
type HandlerFunc func(ctx context.Context, args ...any) (any, error)

// Registry owns the two durable mappings of the bridge: component name to
// root node, and handler id to callable. Registration always overwrites;
// absence is only signaled at lookup time.
type Registry struct {
	mu         sync.RWMutex
	components map[string]*domain.PrimitiveNode
	handlers   map[string]HandlerFunc
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		components: make(map[string]*domain.PrimitiveNode),
		handlers:   make(map[string]HandlerFunc),
	}
}

// RegisterComponent stores root under name, overwriting any prior entry.
// The registry takes exclusive ownership of the tree.
func (r *Registry) RegisterComponent(name string, root *domain.PrimitiveNode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.components[name] = root
}

// UnregisterComponent drops the named component. Unknown names are a no-op.
func (r *Registry) UnregisterComponent(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.components, name)
}

// Component returns the root registered under name.
func (r *Registry) Component(name string) (*domain.PrimitiveNode, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	root, ok := r.components[name]
	return root, ok
}

// Components returns the names of all registered components.
// No ordering guarantee beyond "all present".
func (r *Registry) Components() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	return names
}

// RegisterHandler stores fn under id, overwriting any prior entry.
func (r *Registry) RegisterHandler(id string, fn HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[id] = fn
}

// Handlers returns the ids of all registered handlers.
func (r *Registry) Handlers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.handlers))
	for id := range r.handlers {
		ids = append(ids, id)
	}
	return ids
}

// InvokeHandler looks up a handler by id and calls it with args.
// Returns domain.ErrHandlerNotFound for unknown ids.
func (r *Registry) InvokeHandler(ctx context.Context, id string, args ...any) (any, error) {
	r.mu.RLock()
	fn, ok := r.handlers[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("handler %q: %w", id, domain.ErrHandlerNotFound)
	}
	return fn(ctx, args...)
}
