package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/openmotif/motif/pkg/bridge"
	"github.com/openmotif/motif/pkg/domain"
	"github.com/openmotif/motif/pkg/ports"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EventSource is the slice of the bridge the event stream needs: the ability
// to attach a mutation-event subscriber.
type EventSource interface {
	Subscribe(sub bridge.Subscriber) func()
}

// Server exposes the bridge protocol over HTTP: the envelope endpoint,
// read-only convenience routes, and an SSE mutation-event stream.
type Server struct {
	handler ports.RequestHandler
	events  EventSource
}

// NewHandler creates the HTTP handler for the bridge.
func NewHandler(handler ports.RequestHandler, events EventSource) http.Handler {
	s := &Server{handler: handler, events: events}

	r := chi.NewRouter()
	r.Post("/rpc", s.rpc)
	r.Get("/components", s.listComponents)
	r.Get("/components/{name}", s.getComponent)
	r.Get("/events", s.subscribeEvents)
	r.Get("/healthz", s.healthz)
	r.Handle("/metrics", promhttp.Handler())

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// rpc handles POST /rpc: one request envelope in, one response envelope out.
// Transport-level failures (unreadable body) are the only HTTP errors; every
// protocol-level failure travels inside a 200 envelope so that callers see a
// single error surface.
func (s *Server) rpc(w http.ResponseWriter, r *http.Request) {
	var req bridge.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		slog.Warn("rpc: invalid request body", "err", err)
		return
	}

	resp := s.handler.HandleRequest(r.Context(), req)
	writeJSON(w, http.StatusOK, resp)
}

// listComponents handles GET /components.
func (s *Server) listComponents(w http.ResponseWriter, r *http.Request) {
	resp := s.handler.HandleRequest(r.Context(), bridge.Request{
		Method: bridge.MethodGetComponentList,
		Params: map[string]any{},
	})
	writeJSON(w, http.StatusOK, resp)
}

// getComponent handles GET /components/{name}.
func (s *Server) getComponent(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	resp := s.handler.HandleRequest(r.Context(), bridge.Request{
		Method: bridge.MethodGetComponentTree,
		Params: map[string]any{"name": name},
	})

	status := http.StatusOK
	if !resp.Success && resp.Code == bridge.CodeComponentNotFound {
		status = http.StatusNotFound
	}
	writeJSON(w, status, resp)
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// eventFrame is the JSON shape of one SSE data line.
type eventFrame struct {
	Event   domain.EventType     `json:"event"`
	Payload domain.MutationEvent `json:"payload"`
}

// subscribeEvents handles GET /events: a server-sent-event stream of
// mutation events. Slow clients have messages dropped rather than blocking
// the dispatcher.
func (s *Server) subscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		slog.Error("subscribeEvents: streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	frames := make(chan eventFrame, 16)
	unsubscribe := s.events.Subscribe(bridge.SubscriberFunc(
		func(ctx context.Context, event domain.EventType, payload domain.MutationEvent) {
			select {
			case frames <- eventFrame{Event: event, Payload: payload}:
			default:
				slog.Warn("sse: client buffer full, dropping event", "event", event)
			}
		}))
	defer unsubscribe()

	writeSSE(w, "ping", []byte("connected"))
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			slog.Debug("sse: client disconnected")
			return
		case frame := <-frames:
			data, err := json.Marshal(frame)
			if err != nil {
				slog.Error("sse: event encode failed", "err", err)
				continue
			}
			writeSSE(w, "", data)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, event string, data []byte) {
	if event != "" {
		w.Write([]byte("event: " + event + "\n"))
	}
	w.Write([]byte("data: "))
	w.Write(data)
	w.Write([]byte("\n\n"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}
