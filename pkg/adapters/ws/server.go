package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/openmotif/motif/pkg/bridge"
	"github.com/openmotif/motif/pkg/domain"
	"github.com/openmotif/motif/pkg/ports"
)

// Message kinds on the wire. Responses answer a request the client sent;
// events are pushed after any successful mutation, whichever connection
// caused it.
const (
	KindResponse = "response"
	KindEvent    = "event"
)

// Message is one websocket frame from server to client.
type Message struct {
	Kind     string                `json:"kind"`
	Response *bridge.Response      `json:"response,omitempty"`
	Event    domain.EventType      `json:"event,omitempty"`
	Payload  *domain.MutationEvent `json:"payload,omitempty"`
}

// EventSource is the slice of the bridge the event push needs.
type EventSource interface {
	Subscribe(sub bridge.Subscriber) func()
}

// Server carries request/response envelopes over a websocket and pushes the
// mutation-event stream on the same connection.
type Server struct {
	handler  ports.RequestHandler
	events   EventSource
	upgrader websocket.Upgrader
}

// NewServer creates a websocket transport over the given handler.
func NewServer(handler ports.RequestHandler, events EventSource) *Server {
	return &Server{
		handler: handler,
		events:  events,
		upgrader: websocket.Upgrader{
			// The bridge performs no transport-level auth; origin policy is
			// the embedding host's concern.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and runs the session until the client
// disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws: upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	// All writes go through one channel so responses and pushed events never
	// interleave on the wire.
	outbound := make(chan Message, 32)
	done := make(chan struct{})       // closed when the session ends
	writerDone := make(chan struct{}) // closed when the writer exits

	unsubscribe := s.events.Subscribe(bridge.SubscriberFunc(
		func(ctx context.Context, event domain.EventType, payload domain.MutationEvent) {
			msg := Message{Kind: KindEvent, Event: event, Payload: &payload}
			select {
			case outbound <- msg:
			default:
				slog.Warn("ws: client buffer full, dropping event", "event", event)
			}
		}))
	defer unsubscribe()

	go func() {
		defer close(writerDone)
		for {
			select {
			case msg := <-outbound:
				if err := conn.WriteJSON(msg); err != nil {
					slog.Debug("ws: write failed", "err", err)
					return
				}
			case <-done:
				return
			}
		}
	}()
	defer close(done)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			slog.Debug("ws: client disconnected", "err", err)
			return
		}

		var msg Message
		var req bridge.Request
		if err := json.Unmarshal(data, &req); err != nil {
			resp := bridge.Response{
				Success: false,
				Error:   "invalid request envelope: " + err.Error(),
				Code:    bridge.CodeInvalidParams,
			}
			msg = Message{Kind: KindResponse, Response: &resp}
		} else {
			resp := s.handler.HandleRequest(r.Context(), req)
			msg = Message{Kind: KindResponse, Response: &resp}
		}

		select {
		case outbound <- msg:
		case <-writerDone:
			return
		}
	}
}
