package ws_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/openmotif/motif"
	"github.com/openmotif/motif/pkg/adapters/ws"
	"github.com/openmotif/motif/pkg/bridge"
	"github.com/openmotif/motif/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T) *websocket.Conn {
	t.Helper()
	b := motif.New()
	b.RegisterComponent("app", domain.NewPrimitiveNode("Container", map[string]any{"className": "original"}, ""))

	srv := httptest.NewServer(ws.NewServer(b, b))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) ws.Message {
	t.Helper()
	var msg ws.Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestRoundTrip(t *testing.T) {
	conn := dial(t)

	require.NoError(t, conn.WriteJSON(bridge.Request{
		Method:    "get_component_tree",
		Params:    map[string]any{"name": "app"},
		RequestID: "ws-1",
	}))

	msg := readMessage(t, conn)
	assert.Equal(t, ws.KindResponse, msg.Kind)
	require.NotNil(t, msg.Response)
	require.True(t, msg.Response.Success, msg.Response.Error)
	assert.Equal(t, "ws-1", msg.Response.RequestID)

	tree, isMap := msg.Response.Data.(map[string]any)
	require.True(t, isMap)
	assert.Equal(t, "Container", tree["type"])
}

func TestMutationPushesEvent(t *testing.T) {
	conn := dial(t)

	require.NoError(t, conn.WriteJSON(bridge.Request{
		Method: "remove_component",
		Params: map[string]any{"name": "app", "path": []any{"Container"}},
	}))
	// Root removal fails: response only, no event.
	msg := readMessage(t, conn)
	require.Equal(t, ws.KindResponse, msg.Kind)
	assert.Equal(t, bridge.CodeRemovalFailed, msg.Response.Code)

	require.NoError(t, conn.WriteJSON(bridge.Request{
		Method: "modify_component",
		Params: map[string]any{
			"name":          "app",
			"path":          []any{"Container"},
			"modifications": map[string]any{"props": map[string]any{"className": "pushed"}},
		},
	}))

	// The success response and the pushed event arrive in either order.
	var sawResponse, sawEvent bool
	for i := 0; i < 2; i++ {
		msg := readMessage(t, conn)
		switch msg.Kind {
		case ws.KindResponse:
			sawResponse = true
			assert.True(t, msg.Response.Success)
		case ws.KindEvent:
			sawEvent = true
			assert.Equal(t, domain.EventComponentModified, msg.Event)
			require.NotNil(t, msg.Payload)
			assert.Equal(t, "app", msg.Payload.ComponentName)
		}
	}
	assert.True(t, sawResponse)
	assert.True(t, sawEvent)
}

func TestMalformedEnvelope(t *testing.T) {
	conn := dial(t)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))

	msg := readMessage(t, conn)
	require.Equal(t, ws.KindResponse, msg.Kind)
	assert.False(t, msg.Response.Success)
	assert.Equal(t, bridge.CodeInvalidParams, msg.Response.Code)
}
