package redis

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/openmotif/motif/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

const (
	defaultChannel = "motif:events"
	defaultHistory = "motif:events:history"
	defaultCap     = 256
)

// Publisher fans mutation events out of the process over redis. Each event is
// PUBLISHed to a channel for live consumers and RPUSHed to a capped history
// list so late-joining observers can catch up.
//
// Publisher implements the bridge Subscriber contract; delivery is
// best-effort and never fails the originating mutation.
type Publisher struct {
	client  *backend.Client
	channel string
	history string
	cap     int64
	logger  *slog.Logger
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithChannel overrides the pub/sub channel name.
func WithChannel(channel string) PublisherOption {
	return func(p *Publisher) {
		p.channel = channel
	}
}

// WithHistory overrides the history list key and its cap.
func WithHistory(key string, max int64) PublisherOption {
	return func(p *Publisher) {
		p.history = key
		p.cap = max
	}
}

// WithLogger sets a structured logger for delivery failures.
func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// NewPublisher creates a publisher over an existing redis client.
func NewPublisher(client *backend.Client, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		client:  client,
		channel: defaultChannel,
		history: defaultHistory,
		cap:     defaultCap,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// envelope is the JSON shape written to redis.
type envelope struct {
	Event   domain.EventType     `json:"event"`
	Payload domain.MutationEvent `json:"payload"`
}

// Notify implements the subscriber contract.
func (p *Publisher) Notify(ctx context.Context, event domain.EventType, payload domain.MutationEvent) {
	data, err := json.Marshal(envelope{Event: event, Payload: payload})
	if err != nil {
		p.logger.Error("redis publisher: event encode failed", "event", event, "err", err)
		return
	}

	pipe := p.client.Pipeline()
	pipe.Publish(ctx, p.channel, data)
	pipe.RPush(ctx, p.history, data)
	pipe.LTrim(ctx, p.history, -p.cap, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		p.logger.Warn("redis publisher: delivery failed", "event", event, "err", err)
	}
}

// History returns up to the last n published events, oldest first.
func (p *Publisher) History(ctx context.Context, n int64) ([]domain.MutationEvent, []domain.EventType, error) {
	raw, err := p.client.LRange(ctx, p.history, -n, -1).Result()
	if err != nil {
		return nil, nil, err
	}
	payloads := make([]domain.MutationEvent, 0, len(raw))
	events := make([]domain.EventType, 0, len(raw))
	for _, item := range raw {
		var e envelope
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, nil, err
		}
		payloads = append(payloads, e.Payload)
		events = append(events, e.Event)
	}
	return payloads, events, nil
}
