package motif_test

import (
	"context"
	"testing"

	"github.com/openmotif/motif"
	"github.com/openmotif/motif/pkg/bridge"
	"github.com/openmotif/motif/pkg/domain"
	"github.com/openmotif/motif/pkg/observability"
	"github.com/openmotif/motif/pkg/registry"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBridge_EndToEnd(t *testing.T) {
	b := motif.New()
	b.RegisterComponent("app", domain.NewPrimitiveNode("Container", map[string]any{"className": "original"}, ""))
	b.RegisterHandler("echo", func(ctx context.Context, args ...any) (any, error) {
		return args[0], nil
	})

	ctx := context.Background()

	list := b.HandleRequest(ctx, bridge.Request{Method: "get_component_list"})
	require.True(t, list.Success)
	assert.Equal(t, []string{"app"}, list.Data)

	invoked := b.HandleRequest(ctx, bridge.Request{
		Method: "invoke_motif_handler",
		Params: map[string]any{"handlerId": "echo", "args": []any{"ping"}},
	})
	require.True(t, invoked.Success)
	assert.Equal(t, bridge.InvokeResult{Result: "ping"}, invoked.Data)
}

func TestNew_WithInjectedRegistry(t *testing.T) {
	reg := registry.New()
	reg.RegisterComponent("shared", domain.NewPrimitiveNode("Panel", nil, ""))

	b := motif.New(motif.WithRegistry(reg))

	resp := b.HandleRequest(context.Background(), bridge.Request{
		Method: "get_component_tree",
		Params: map[string]any{"name": "shared"},
	})
	assert.True(t, resp.Success)
	assert.Same(t, reg, b.Registry())
}

func TestNew_WithSubscriber(t *testing.T) {
	var seen []domain.EventType
	b := motif.New(motif.WithSubscriber(bridge.SubscriberFunc(
		func(ctx context.Context, event domain.EventType, payload domain.MutationEvent) {
			seen = append(seen, event)
		})))
	b.RegisterComponent("app", domain.NewPrimitiveNode("Container", nil, ""))

	resp := b.HandleRequest(context.Background(), bridge.Request{
		Method: "insert_component",
		Params: map[string]any{
			"name":       "app",
			"parentPath": []any{},
			"primitive":  map[string]any{"type": "Label"},
		},
	})
	require.True(t, resp.Success, resp.Error)
	assert.Equal(t, []domain.EventType{domain.EventComponentInserted}, seen)
}

func TestNew_CountsMutationEvents(t *testing.T) {
	counter := observability.MutationEvents().WithLabelValues(string(domain.EventComponentInserted))
	before := testutil.ToFloat64(counter)

	b := motif.New()
	b.RegisterComponent("app", domain.NewPrimitiveNode("Container", nil, ""))

	resp := b.HandleRequest(context.Background(), bridge.Request{
		Method: "insert_component",
		Params: map[string]any{
			"name":       "app",
			"parentPath": []any{},
			"primitive":  map[string]any{"type": "Label"},
		},
	})
	require.True(t, resp.Success, resp.Error)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))

	removed := observability.MutationEvents().WithLabelValues(string(domain.EventComponentRemoved))
	removedBefore := testutil.ToFloat64(removed)
	failed := b.HandleRequest(context.Background(), bridge.Request{
		Method: "remove_component",
		Params: map[string]any{"name": "app", "path": []any{}},
	})
	require.False(t, failed.Success)
	assert.Equal(t, removedBefore, testutil.ToFloat64(removed))
}
