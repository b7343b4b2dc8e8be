// Package store holds the gate state: the visitor directory, the security
// log, the alert feed and the announcement store.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"estategate/internal/gate/models"
	"estategate/pkg/platform/sentinel"
)

// InMemory owns all four gate stores behind one lock. Paired writes
// (visitor + entry log, alert + incident log, alert + announcement) happen
// in a single critical section and are never observed half-applied.
//
// Visitors, log entries and alerts are kept in insertion order; every read
// returns copies, newest first.
type InMemory struct {
	mu sync.RWMutex

	visitors      []*models.VisitorRecord
	visitorIndex  map[string]int
	log           []models.SecurityLogEntry
	alerts        []models.AlertEntry
	announcements []*models.Announcement

	logSeq   int64
	alertSeq int64
}

func NewInMemory() *InMemory {
	return &InMemory{visitorIndex: make(map[string]int)}
}

// RecordGrant inserts a newly admitted visitor and its entry log atomically.
// The log entry's Seq is assigned in place.
func (s *InMemory) RecordGrant(_ context.Context, v *models.VisitorRecord, entry *models.SecurityLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.visitorIndex[v.ID]; exists {
		return fmt.Errorf("visitor %s: %w", v.ID, sentinel.ErrConflict)
	}
	s.visitorIndex[v.ID] = len(s.visitors)
	s.visitors = append(s.visitors, v.Clone())
	s.appendLogLocked(entry)
	return nil
}

// RecordDenial appends a blacklist alert, its incident log and the mirrored
// announcement atomically.
func (s *InMemory) RecordDenial(_ context.Context, alert *models.AlertEntry, entry *models.SecurityLogEntry, announcement *models.Announcement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.appendAlertLocked(alert)
	s.appendLogLocked(entry)
	a := *announcement
	s.announcements = append(s.announcements, &a)
	return nil
}

// UpdateVisitor runs fn against a copy of the visitor under the lock. If fn
// fails nothing changes. Otherwise the copy replaces the stored record and
// the log entry fn returns, if any, is appended in the same step.
func (s *InMemory) UpdateVisitor(_ context.Context, id string, fn func(v *models.VisitorRecord) (*models.SecurityLogEntry, error)) (*models.VisitorRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.visitorIndex[id]
	if !ok {
		return nil, fmt.Errorf("visitor %s: %w", id, sentinel.ErrNotFound)
	}

	working := s.visitors[idx].Clone()
	entry, err := fn(working)
	if err != nil {
		return nil, err
	}
	if working.ID != id {
		return nil, fmt.Errorf("visitor id is immutable: %w", sentinel.ErrInvalidState)
	}

	s.visitors[idx] = working
	if entry != nil {
		s.appendLogLocked(entry)
	}
	return working.Clone(), nil
}

// RecordEmergency appends an emergency alert and its mirrored announcement atomically.
func (s *InMemory) RecordEmergency(_ context.Context, alert *models.AlertEntry, announcement *models.Announcement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.appendAlertLocked(alert)
	a := *announcement
	s.announcements = append(s.announcements, &a)
	return nil
}

func (s *InMemory) AppendAnnouncement(_ context.Context, announcement *models.Announcement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := *announcement
	s.announcements = append(s.announcements, &a)
	return nil
}

// MarkAnnouncementRead sets the read flag. It is the only mutation an
// announcement ever sees.
func (s *InMemory) MarkAnnouncementRead(_ context.Context, id string) (*models.Announcement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.announcements {
		if a.ID == id {
			a.Read = true
			out := *a
			return &out, nil
		}
	}
	return nil, fmt.Errorf("announcement %s: %w", id, sentinel.ErrNotFound)
}

func (s *InMemory) FindVisitor(_ context.Context, id string) (*models.VisitorRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.visitorIndex[id]
	if !ok {
		return nil, fmt.Errorf("visitor %s: %w", id, sentinel.ErrNotFound)
	}
	return s.visitors[idx].Clone(), nil
}

// ListVisitors returns every visitor ever admitted, most recently verified first.
func (s *InMemory) ListVisitors(_ context.Context) ([]*models.VisitorRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visitorsLocked(false), nil
}

// ListActiveVisitors returns exactly the visitors whose status is active,
// in directory order.
func (s *InMemory) ListActiveVisitors(_ context.Context) ([]*models.VisitorRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visitorsLocked(true), nil
}

func (s *InMemory) ListSecurityLog(_ context.Context, filter models.LogFilter) ([]*models.SecurityLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logLocked(filter), nil
}

func (s *InMemory) ListAlerts(_ context.Context, filter models.AlertFilter) ([]*models.AlertEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.AlertEntry, 0, len(s.alerts))
	for i := len(s.alerts) - 1; i >= 0; i-- {
		if filter.Type != "" && s.alerts[i].Type != filter.Type {
			continue
		}
		a := s.alerts[i]
		out = append(out, &a)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (s *InMemory) ListAnnouncements(_ context.Context) ([]*models.Announcement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Announcement, 0, len(s.announcements))
	for i := len(s.announcements) - 1; i >= 0; i-- {
		a := *s.announcements[i]
		out = append(out, &a)
	}
	return out, nil
}

// DaySummary derives today's counters from a consistent snapshot of the
// log and the directory.
func (s *InMemory) DaySummary(_ context.Context, now time.Time) (models.DaySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.SummarizeDay(s.logLocked(models.LogFilter{}), s.visitorsLocked(false), now), nil
}

func (s *InMemory) appendLogLocked(entry *models.SecurityLogEntry) {
	s.logSeq++
	entry.Seq = s.logSeq
	s.log = append(s.log, *entry)
}

func (s *InMemory) appendAlertLocked(alert *models.AlertEntry) {
	s.alertSeq++
	alert.Seq = s.alertSeq
	s.alerts = append(s.alerts, *alert)
}

func (s *InMemory) visitorsLocked(activeOnly bool) []*models.VisitorRecord {
	out := make([]*models.VisitorRecord, 0, len(s.visitors))
	for i := len(s.visitors) - 1; i >= 0; i-- {
		v := s.visitors[i]
		if activeOnly && !v.IsActive() {
			continue
		}
		out = append(out, v.Clone())
	}
	return out
}

func (s *InMemory) logLocked(filter models.LogFilter) []*models.SecurityLogEntry {
	out := make([]*models.SecurityLogEntry, 0, len(s.log))
	for i := len(s.log) - 1; i >= 0; i-- {
		if filter.Type != "" && s.log[i].Type != filter.Type {
			continue
		}
		e := s.log[i]
		out = append(out, &e)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out
}
