package registry_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/openmotif/motif/pkg/domain"
	"github.com/openmotif/motif/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterComponent_Overwrites(t *testing.T) {
	reg := registry.New()
	first := domain.NewPrimitiveNode("Container", nil, "")
	second := domain.NewPrimitiveNode("Panel", nil, "")

	reg.RegisterComponent("app", first)
	reg.RegisterComponent("app", second)

	got, ok := reg.Component("app")
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestComponent_AbsenceIsNotAnError(t *testing.T) {
	reg := registry.New()

	got, ok := reg.Component("missing")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestComponents_ListsAll(t *testing.T) {
	reg := registry.New()
	reg.RegisterComponent("sidebar", domain.NewPrimitiveNode("Container", nil, ""))
	reg.RegisterComponent("toolbar", domain.NewPrimitiveNode("Container", nil, ""))

	names := reg.Components()
	assert.ElementsMatch(t, []string{"sidebar", "toolbar"}, names)
}

func TestUnregisterComponent(t *testing.T) {
	reg := registry.New()
	reg.RegisterComponent("app", domain.NewPrimitiveNode("Container", nil, ""))

	reg.UnregisterComponent("app")
	reg.UnregisterComponent("never-existed")

	_, ok := reg.Component("app")
	assert.False(t, ok)
}

func TestInvokeHandler_ForwardsArgsPositionally(t *testing.T) {
	reg := registry.New()
	reg.RegisterHandler("concat", func(ctx context.Context, args ...any) (any, error) {
		return fmt.Sprint(args...), nil
	})

	result, err := reg.InvokeHandler(context.Background(), "concat", "a", 1, true)
	require.NoError(t, err)
	assert.Equal(t, "a1 true", result)
}

func TestInvokeHandler_NoArgsMeansNoArgs(t *testing.T) {
	reg := registry.New()
	reg.RegisterHandler("count", func(ctx context.Context, args ...any) (any, error) {
		return len(args), nil
	})

	result, err := reg.InvokeHandler(context.Background(), "count")
	require.NoError(t, err)
	assert.Equal(t, 0, result)
}

func TestInvokeHandler_Unknown(t *testing.T) {
	reg := registry.New()

	_, err := reg.InvokeHandler(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrHandlerNotFound)
}

func TestInvokeHandler_AwaitsAsynchronousCompletion(t *testing.T) {
	reg := registry.New()
	reg.RegisterHandler("deferred", func(ctx context.Context, args ...any) (any, error) {
		done := make(chan string, 1)
		go func() {
			time.Sleep(10 * time.Millisecond)
			done <- "settled"
		}()
		select {
		case v := <-done:
			return v, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})

	result, err := reg.InvokeHandler(context.Background(), "deferred")
	require.NoError(t, err)
	assert.Equal(t, "settled", result)
}
