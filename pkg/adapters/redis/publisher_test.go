package redis_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/openmotif/motif"
	"github.com/openmotif/motif/pkg/adapters/redis"
	"github.com/openmotif/motif/pkg/bridge"
	"github.com/openmotif/motif/pkg/domain"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPublisher(t *testing.T, opts ...redis.PublisherOption) (*miniredis.Miniredis, *redis.Publisher) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return mr, redis.NewPublisher(client, opts...)
}

func TestNotify_WritesHistory(t *testing.T) {
	_, pub := newPublisher(t)
	ctx := context.Background()

	pub.Notify(ctx, domain.EventComponentModified, domain.MutationEvent{
		ComponentName: "app",
		Path:          []string{"Container"},
	})
	pub.Notify(ctx, domain.EventComponentRemoved, domain.MutationEvent{
		ComponentName: "app",
		Path:          []string{"Container", "Button"},
	})

	payloads, events, err := pub.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, payloads, 2)
	assert.Equal(t, domain.EventComponentModified, events[0])
	assert.Equal(t, domain.EventComponentRemoved, events[1])
	assert.Equal(t, []string{"Container", "Button"}, payloads[1].Path)
}

func TestNotify_HistoryIsCapped(t *testing.T) {
	_, pub := newPublisher(t, redis.WithHistory("custom:events", 3))
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		pub.Notify(ctx, domain.EventComponentModified, domain.MutationEvent{
			ComponentName: fmt.Sprintf("component-%d", i),
		})
	}

	payloads, _, err := pub.History(ctx, 100)
	require.NoError(t, err)
	require.Len(t, payloads, 3)
	assert.Equal(t, "component-7", payloads[0].ComponentName, "oldest entries trimmed")
	assert.Equal(t, "component-9", payloads[2].ComponentName)
}

func TestPublisher_AsBridgeSubscriber(t *testing.T) {
	mr, pub := newPublisher(t, redis.WithChannel("custom:channel"))

	b := motif.New(motif.WithSubscriber(pub))
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

	payloads, events, err := pub.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, payloads, 1)
	assert.Equal(t, domain.EventComponentInserted, events[0])
	assert.Equal(t, "app", payloads[0].ComponentName)
	assert.NotEmpty(t, payloads[0].PrimitiveID)

	// The raw key exists under the default history name in redis itself.
	assert.True(t, mr.Exists("motif:events:history"))
}
