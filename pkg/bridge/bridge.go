package bridge

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/openmotif/motif/pkg/domain"
	"github.com/openmotif/motif/pkg/registry"
)

// Operation result payloads carried in the Data field of a success envelope.
type (
	// ModifyResult acknowledges an applied modification.
	ModifyResult struct {
		Modified bool `json:"modified"`
	}
	// InsertResult acknowledges an insertion and names the new subtree root.
	InsertResult struct {
		Inserted    bool   `json:"inserted"`
		PrimitiveID string `json:"primitiveId"`
	}
	// RemoveResult acknowledges a removal.
	RemoveResult struct {
		Removed bool `json:"removed"`
	}
	// InvokeResult wraps a handler's settled value.
	InvokeResult struct {
		Result any `json:"result"`
	}
)

// Dispatcher exposes the fixed bridge method set as a uniform
// request/response contract over a Registry. It is stateless per call: the
// Registry's two mappings and the live trees are the only durable state.
//
// The dispatcher provides no cross-call locking. A host sharing one Registry
// across genuinely concurrent mutators must serialize access itself.
type Dispatcher struct {
	reg    *registry.Registry
	hub    *Hub
	logger *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets a structured logger for the dispatcher.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithSubscriber attaches a mutation-event subscriber at construction time.
func WithSubscriber(sub Subscriber) Option {
	return func(d *Dispatcher) {
		d.hub.Subscribe(sub)
	}
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(reg *registry.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		reg: reg,
		hub: NewHub(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d
}

// Subscribe attaches a subscriber to the dispatcher's mutation stream and
// returns its unsubscribe function.
func (d *Dispatcher) Subscribe(sub Subscriber) func() {
	return d.hub.Subscribe(sub)
}

// HandleRequest validates, dispatches, and normalizes one request. Every
// failure is caught here and turned into an error envelope; nothing escapes.
// Mutations are atomic: either the declared change fully applies and a
// success envelope returns, or nothing mutates.
func (d *Dispatcher) HandleRequest(ctx context.Context, req Request) Response {
	d.logger.Debug("bridge: dispatching", "method", req.Method, "request_id", req.RequestID)

	params := req.Params
	if params == nil {
		params = map[string]any{}
	}

	switch req.Method {
	case MethodGetComponentTree:
		return d.getComponentTree(req.RequestID, params)
	case MethodGetComponentList:
		return ok(req.RequestID, d.reg.Components())
	case MethodModifyComponent:
		return d.modifyComponent(ctx, req.RequestID, params)
	case MethodInsertComponent:
		return d.insertComponent(ctx, req.RequestID, params)
	case MethodRemoveComponent:
		return d.removeComponent(ctx, req.RequestID, params)
	case MethodInvokeMotifHandler:
		return d.invokeMotifHandler(ctx, req.RequestID, params)
	default:
		return fail(req.RequestID, CodeUnknownMethod, fmt.Sprintf("unknown method: %s", req.Method))
	}
}

func (d *Dispatcher) getComponentTree(requestID string, params map[string]any) Response {
	var p treeParams
	if err := decodeParams(params, &p); err != nil {
		return fail(requestID, CodeInvalidParams, err.Error())
	}
	if p.Name == "" {
		return fail(requestID, CodeInvalidParams, "param \"name\" must be a non-empty string")
	}

	root, found := d.reg.Component(p.Name)
	if !found {
		return fail(requestID, CodeComponentNotFound, fmt.Sprintf("component %q not found", p.Name))
	}
	return ok(requestID, domain.Serialize(root))
}

func (d *Dispatcher) modifyComponent(ctx context.Context, requestID string, params map[string]any) Response {
	if err := requireKeys(params, "name", "path", "modifications"); err != nil {
		return fail(requestID, CodeInvalidParams, err.Error())
	}
	var p modifyParams
	if err := decodeParams(params, &p); err != nil {
		return fail(requestID, CodeInvalidParams, err.Error())
	}
	if p.Name == "" {
		return fail(requestID, CodeInvalidParams, "param \"name\" must be a non-empty string")
	}
	props, err := propsOf(p.Modifications)
	if err != nil {
		return fail(requestID, CodeInvalidParams, err.Error())
	}

	res, err := d.resolve(p.Name, p.Path)
	if err != nil {
		return fail(requestID, CodeModificationFailed, fmt.Sprintf("modify %q: %v", p.Name, err))
	}

	res.Node.MergeProps(props)
	d.hub.Publish(ctx, domain.EventComponentModified, domain.MutationEvent{
		ComponentName: p.Name,
		Path:          p.Path,
		Modifications: p.Modifications,
	})
	return ok(requestID, ModifyResult{Modified: true})
}

func (d *Dispatcher) insertComponent(ctx context.Context, requestID string, params map[string]any) Response {
	if err := requireKeys(params, "name", "parentPath", "primitive"); err != nil {
		return fail(requestID, CodeInvalidParams, err.Error())
	}
	var p insertParams
	if err := decodeParams(params, &p); err != nil {
		return fail(requestID, CodeInvalidParams, err.Error())
	}
	if p.Name == "" {
		return fail(requestID, CodeInvalidParams, "param \"name\" must be a non-empty string")
	}
	index, err := intParam(params, "index", -1)
	if err != nil {
		return fail(requestID, CodeInvalidParams, err.Error())
	}
	if err := p.Primitive.Validate(); err != nil {
		return fail(requestID, CodeInvalidParams, err.Error())
	}

	res, err := d.resolve(p.Name, p.ParentPath)
	if err != nil {
		return fail(requestID, CodeInsertionFailed, fmt.Sprintf("insert into %q: %v", p.Name, err))
	}

	subtree, err := p.Primitive.Instantiate()
	if err != nil {
		return fail(requestID, CodeInvalidParams, err.Error())
	}
	if index < 0 || index > len(res.Node.Children) {
		index = len(res.Node.Children)
	}
	res.Node.InsertChild(subtree, index)

	d.hub.Publish(ctx, domain.EventComponentInserted, domain.MutationEvent{
		ComponentName: p.Name,
		ParentPath:    p.ParentPath,
		PrimitiveID:   subtree.ID,
		Index:         &index,
	})
	return ok(requestID, InsertResult{Inserted: true, PrimitiveID: subtree.ID})
}

func (d *Dispatcher) removeComponent(ctx context.Context, requestID string, params map[string]any) Response {
	if err := requireKeys(params, "name", "path"); err != nil {
		return fail(requestID, CodeInvalidParams, err.Error())
	}
	var p removeParams
	if err := decodeParams(params, &p); err != nil {
		return fail(requestID, CodeInvalidParams, err.Error())
	}
	if p.Name == "" {
		return fail(requestID, CodeInvalidParams, "param \"name\" must be a non-empty string")
	}

	// An empty path targets the root, which a component must always retain.
	// This fails before any lookup, regardless of tree contents.
	if len(p.Path) == 0 {
		return fail(requestID, CodeRemovalFailed, fmt.Sprintf("remove from %q: %v", p.Name, domain.ErrRootRemoval))
	}

	res, err := d.resolve(p.Name, p.Path)
	if err != nil {
		return fail(requestID, CodeRemovalFailed, fmt.Sprintf("remove from %q: %v", p.Name, err))
	}
	if res.IsRoot() {
		return fail(requestID, CodeRemovalFailed, fmt.Sprintf("remove from %q: %v", p.Name, domain.ErrRootRemoval))
	}

	res.Parent.RemoveChild(res.Index)
	d.hub.Publish(ctx, domain.EventComponentRemoved, domain.MutationEvent{
		ComponentName: p.Name,
		Path:          p.Path,
	})
	return ok(requestID, RemoveResult{Removed: true})
}

func (d *Dispatcher) invokeMotifHandler(ctx context.Context, requestID string, params map[string]any) Response {
	if err := requireKeys(params, "handlerId"); err != nil {
		return fail(requestID, CodeInvalidParams, err.Error())
	}
	var p invokeParams
	if err := decodeParams(params, &p); err != nil {
		return fail(requestID, CodeInvalidParams, err.Error())
	}
	if p.HandlerID == "" {
		return fail(requestID, CodeInvalidParams, "param \"handlerId\" must be a non-empty string")
	}

	result, err := d.invoke(ctx, p.HandlerID, p.Args)
	if err != nil {
		d.logger.Warn("bridge: handler invocation failed", "handler_id", p.HandlerID, "err", err)
		return fail(requestID, CodeHandlerInvocationFailed, fmt.Sprintf("handler %q: %v", p.HandlerID, err))
	}
	return ok(requestID, InvokeResult{Result: result})
}

// invoke runs the handler, converting a panic into a plain error so that no
// failure mode escapes the dispatcher boundary.
func (d *Dispatcher) invoke(ctx context.Context, handlerID string, args []any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return d.reg.InvokeHandler(ctx, handlerID, args...)
}

// resolve looks up the component and walks the path. Unknown names and
// unresolvable paths collapse into one error here; the caller assigns the
// operation's failure code. Only get_component_tree distinguishes a missing
// component from a missing path.
func (d *Dispatcher) resolve(name string, path []string) (domain.Resolution, error) {
	root, found := d.reg.Component(name)
	if !found {
		return domain.Resolution{}, fmt.Errorf("%w: %q", domain.ErrComponentNotFound, name)
	}
	return domain.Resolve(root, path)
}

// propsOf extracts the props object from a modifications payload. The
// expected shape is {props: {...}}; a present but non-object props entry is a
// shape error caught before any tree access.
func propsOf(modifications map[string]any) (map[string]any, error) {
	raw, present := modifications["props"]
	if !present {
		return nil, nil
	}
	props, isMap := raw.(map[string]any)
	if !isMap {
		return nil, fmt.Errorf("param \"modifications.props\": expected object, got %T", raw)
	}
	return props, nil
}
