// Package ratelimit throttles verification attempts per client so visitor
// codes cannot be brute-forced from one console or script.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Result is the outcome of one Allow call.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter int // seconds, set when Allowed is false
}

// SlidingWindow is an in-memory sliding window limiter keyed by caller.
// It is per process, like the rest of the gate state. Keys whose requests
// have all slid out of the window are dropped at most once per window.
type SlidingWindow struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	buckets   map[string][]time.Time
	nextSweep time.Time
	now       func() time.Time
}

// NewSlidingWindow allows limit requests per key in any window-long span.
func NewSlidingWindow(limit int, window time.Duration) *SlidingWindow {
	if limit <= 0 {
		limit = 30
	}
	if window <= 0 {
		window = time.Minute
	}
	return &SlidingWindow{
		limit:   limit,
		window:  window,
		buckets: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// Allow records one request for key if it fits in the window.
func (s *SlidingWindow) Allow(_ context.Context, key string) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cutoff := now.Add(-s.window)
	if !now.Before(s.nextSweep) {
		s.sweepLocked(cutoff)
		s.nextSweep = now.Add(s.window)
	}
	stamps := prune(s.buckets[key], cutoff)

	if len(stamps) >= s.limit {
		s.buckets[key] = stamps
		resetAt := stamps[0].Add(s.window)
		return &Result{
			Allowed:    false,
			Limit:      s.limit,
			Remaining:  0,
			ResetAt:    resetAt,
			RetryAfter: retryAfterSeconds(resetAt.Sub(now)),
		}, nil
	}

	stamps = append(stamps, now)
	s.buckets[key] = stamps
	return &Result{
		Allowed:   true,
		Limit:     s.limit,
		Remaining: s.limit - len(stamps),
		ResetAt:   stamps[0].Add(s.window),
	}, nil
}

// Reset forgets all requests recorded for key.
func (s *SlidingWindow) Reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, key)
}

func (s *SlidingWindow) sweepLocked(cutoff time.Time) {
	for key, stamps := range s.buckets {
		if len(prune(stamps, cutoff)) == 0 {
			delete(s.buckets, key)
		}
	}
}

// prune drops timestamps at or before cutoff. stamps is sorted ascending.
func prune(stamps []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for ; i < len(stamps); i++ {
		if stamps[i].After(cutoff) {
			break
		}
	}
	return stamps[i:]
}

func retryAfterSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
