// Package publisher is the single entry point gate services use to emit
// audit events.
//
// In sync mode events are appended straight to the store. With an async
// buffer, Emit only enqueues and a worker.Worker exports the buffer in
// batches, so a slow or broken sink never delays a gate decision.
package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	audit "estategate/pkg/platform/audit"
	"estategate/pkg/platform/audit/buffer"
)

// Publisher emits audit events to a store or an export buffer.
type Publisher struct {
	store  audit.Store
	buffer *buffer.RingBuffer
	logger *slog.Logger
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to async mode. Events go to buf
// and must be drained by a worker.
func WithAsyncBuffer(buf *buffer.RingBuffer) Option {
	return func(p *Publisher) {
		p.buffer = buf
	}
}

// WithLogger sets a logger for overflow and store failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// NewPublisher creates a publisher writing to store.
func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit records an event. A zero timestamp is set to now and a missing
// category is derived from the action.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Category == "" {
		event.Category = event.Action.Category()
	}

	if p.buffer != nil {
		if dropped := p.buffer.Enqueue(event); dropped && p.logger != nil {
			p.logger.WarnContext(ctx, "audit buffer full, oldest event dropped",
				"action", event.Action,
				"dropped_total", p.buffer.Dropped(),
			)
		}
		return nil
	}

	if err := p.store.Append(ctx, event); err != nil {
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "failed to append audit event",
				"action", event.Action,
				"error", err,
			)
		}
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

// Async reports whether events are buffered for a worker.
func (p *Publisher) Async() bool {
	return p.buffer != nil
}
