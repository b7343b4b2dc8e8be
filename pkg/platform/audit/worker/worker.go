// Package worker drains the audit export buffer into a sink.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	audit "estategate/pkg/platform/audit"
	"estategate/pkg/platform/audit/buffer"
)

const (
	defaultBatchSize     = 100
	defaultFlushInterval = time.Second
	drainTimeout         = 5 * time.Second
)

// Worker periodically moves buffered events to the sink in batches. A
// failed batch is dropped and counted; gate operations never wait on it.
type Worker struct {
	buffer   *buffer.RingBuffer
	sink     audit.Store
	breaker  *CircuitBreaker
	batch    int
	interval time.Duration
	logger   *slog.Logger
	metrics  *Metrics
}

// Option configures the Worker.
type Option func(*Worker)

func WithBatchSize(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.batch = n
		}
	}
}

func WithFlushInterval(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.interval = d
		}
	}
}

func WithCircuitBreaker(cb *CircuitBreaker) Option {
	return func(w *Worker) {
		if cb != nil {
			w.breaker = cb
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(w *Worker) {
		w.metrics = m
	}
}

func New(buf *buffer.RingBuffer, sink audit.Store, opts ...Option) *Worker {
	w := &Worker{
		buffer:   buf,
		sink:     sink,
		breaker:  NewCircuitBreaker(5, 30*time.Second),
		batch:    defaultBatchSize,
		interval: defaultFlushInterval,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run flushes on every tick until ctx is done, then makes a final bounded
// drain so events emitted during shutdown still reach the sink.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
			n := w.Flush(drainCtx)
			cancel()
			w.logger.Info("audit worker stopped", "drained", n, "remaining", w.buffer.Len())
			return nil
		case <-ticker.C:
			w.Flush(ctx)
		}
	}
}

// Flush exports buffered events until the buffer is empty or a batch
// fails. It returns the number of events delivered.
func (w *Worker) Flush(ctx context.Context) int {
	exported := 0
	defer func() {
		w.metrics.SetBuffer(w.buffer.Len(), w.buffer.Dropped())
		w.metrics.SetCircuitBreakerState(w.breaker.IsOpen())
	}()

	for {
		batch := w.buffer.DequeueBatch(w.batch)
		if len(batch) == 0 {
			return exported
		}

		if !w.breaker.Allow() {
			w.metrics.AddCircuitBreakerDropped(len(batch))
			continue
		}

		if err := w.export(ctx, batch); err != nil {
			w.breaker.RecordFailure()
			w.metrics.IncExportFailures()
			w.logger.ErrorContext(ctx, "audit export failed",
				"batch_size", len(batch),
				"circuit_state", w.breaker.State(),
				"error", err,
			)
			return exported
		}

		w.breaker.RecordSuccess()
		w.metrics.AddExported(len(batch))
		exported += len(batch)
	}
}

func (w *Worker) export(ctx context.Context, batch []audit.Event) error {
	if bs, ok := w.sink.(audit.BatchStore); ok {
		return bs.AppendBatch(ctx, batch)
	}
	for _, e := range batch {
		if err := w.sink.Append(ctx, e); err != nil {
			return fmt.Errorf("append %s: %w", e.Action, err)
		}
	}
	return nil
}
