package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "estategate/pkg/platform/audit"
	"estategate/pkg/platform/audit/buffer"
	"estategate/pkg/platform/audit/store/memory"
)

// flakySink fails the first n appends.
type flakySink struct {
	mu       sync.Mutex
	failures int
	events   []audit.Event
}

func (s *flakySink) Append(_ context.Context, e audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failures > 0 {
		s.failures--
		return errors.New("broker unreachable")
	}
	s.events = append(s.events, e)
	return nil
}

func (s *flakySink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func fill(buf *buffer.RingBuffer, n int) {
	for range n {
		buf.Enqueue(audit.Event{Action: audit.EventVisitorVerified})
	}
}

func TestWorker_FlushDeliversInBatches(t *testing.T) {
	buf := buffer.NewRingBuffer(100)
	sink := memory.NewInMemoryStore()
	m := NewMetrics(prometheus.NewRegistry())
	w := New(buf, sink, WithBatchSize(3), WithMetrics(m))

	fill(buf, 7)
	n := w.Flush(context.Background())

	assert.Equal(t, 7, n)
	assert.Equal(t, 0, buf.Len())
	events, err := sink.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, events, 7)
	assert.InDelta(t, 7, testutil.ToFloat64(m.Exported), 0)
}

func TestWorker_FailureStopsFlushAndCounts(t *testing.T) {
	buf := buffer.NewRingBuffer(100)
	sink := &flakySink{failures: 1}
	m := NewMetrics(prometheus.NewRegistry())
	w := New(buf, sink, WithBatchSize(2), WithMetrics(m))

	fill(buf, 4)
	n := w.Flush(context.Background())

	assert.Equal(t, 0, n)
	assert.Equal(t, 2, buf.Len(), "second batch stays buffered for the next tick")
	assert.InDelta(t, 1, testutil.ToFloat64(m.ExportFailures), 0)

	n = w.Flush(context.Background())
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, sink.count())
}

func TestWorker_OpenCircuitDropsWithoutCallingSink(t *testing.T) {
	buf := buffer.NewRingBuffer(100)
	sink := &flakySink{}
	cb := NewCircuitBreaker(1, time.Hour)
	cb.RecordFailure()
	m := NewMetrics(prometheus.NewRegistry())
	w := New(buf, sink, WithCircuitBreaker(cb), WithMetrics(m))

	fill(buf, 5)
	n := w.Flush(context.Background())

	assert.Equal(t, 0, n)
	assert.Equal(t, 0, sink.count())
	assert.Equal(t, 0, buf.Len())
	assert.InDelta(t, 5, testutil.ToFloat64(m.CircuitBreakerDropped), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CircuitBreakerState), 0)
}

func TestWorker_RunDrainsOnShutdown(t *testing.T) {
	buf := buffer.NewRingBuffer(100)
	sink := memory.NewInMemoryStore()
	w := New(buf, sink, WithFlushInterval(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	fill(buf, 10)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}

	events, err := sink.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, events, 10, "all events should be drained on shutdown")
}

func TestWorker_NilMetricsAreSafe(t *testing.T) {
	buf := buffer.NewRingBuffer(10)
	w := New(buf, memory.NewInMemoryStore())
	fill(buf, 1)
	assert.Equal(t, 1, w.Flush(context.Background()))
}

func TestCircuitBreaker(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(2, time.Minute)
	cb.now = func() time.Time { return now }

	assert.True(t, cb.Allow())
	cb.RecordFailure()
	assert.False(t, cb.IsOpen())
	cb.RecordFailure()
	assert.True(t, cb.IsOpen())
	assert.False(t, cb.Allow())

	now = now.Add(2 * time.Minute)
	assert.True(t, cb.Allow(), "half-open after cooldown")
	assert.Equal(t, BreakerHalfOpen, cb.State())

	cb.RecordFailure()
	assert.True(t, cb.IsOpen(), "one failure while half-open reopens")

	cb.Reset()
	assert.False(t, cb.IsOpen())

	cb.RecordFailure()
	cb.RecordSuccess()
	cb.RecordFailure()
	assert.False(t, cb.IsOpen(), "success resets the failure count")
}
