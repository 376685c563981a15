package audit

import (
	"context"
	"log/slog"

	id "bloodhound/pkg/domain"
	"bloodhound/pkg/requestcontext"
)

// Sink forwards events to an external pipeline (e.g. Kafka) after local
// persistence. Delivery is best-effort; the store is the source of truth.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Publisher captures structured audit events. It is append-only and uses the
// store for persistence so tests can swap sinks easily.
type Publisher struct {
	store  Store
	sink   Sink
	logger *slog.Logger
}

// PublisherOption configures optional publisher wiring.
type PublisherOption func(*Publisher)

// WithSink attaches an external sink behind the store.
func WithSink(sink Sink) PublisherOption {
	return func(p *Publisher) { p.sink = sink }
}

// WithLogger attaches a logger for sink delivery failures.
func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) { p.logger = logger }
}

func NewPublisher(store Store, opts ...PublisherOption) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Record stamps the event with request-scoped metadata and appends it to the
// trail. Missing identity fields are filled from the context; explicit values
// on the event win.
func (p *Publisher) Record(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.UserID == (id.UserID{}) {
		event.UserID = requestcontext.UserID(ctx)
	}
	if event.EntityID == (id.EntityID{}) {
		event.EntityID = requestcontext.EntityID(ctx)
	}
	if event.IP == "" {
		event.IP = requestcontext.ClientIP(ctx)
	}
	if event.UserAgent == "" {
		event.UserAgent = requestcontext.UserAgent(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}

	if err := p.store.Append(ctx, event); err != nil {
		return err
	}

	if p.sink != nil {
		if err := p.sink.Publish(ctx, event); err != nil && p.logger != nil {
			p.logger.WarnContext(ctx, "audit sink publish failed",
				"request_id", event.RequestID,
				"action", string(event.Action),
				"error", err,
			)
		}
	}
	return nil
}

// List returns the audit trail for one entity.
func (p *Publisher) List(ctx context.Context, entityID id.EntityID) ([]Event, error) {
	return p.store.ListByEntity(ctx, entityID)
}
