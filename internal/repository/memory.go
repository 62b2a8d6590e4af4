package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/Shivanand-hulikatti/event-organizer/internal/model"
)

// MemoryEventStore keeps events in process memory for the lifetime of the
// process. It is the default system of record.
type MemoryEventStore struct {
	mu     sync.RWMutex
	events map[string]*model.OrganizerEvent
}

// NewMemoryEventStore creates a store pre-populated with seed events.
func NewMemoryEventStore(seed ...model.OrganizerEvent) *MemoryEventStore {
	s := &MemoryEventStore{events: make(map[string]*model.OrganizerEvent, len(seed))}
	for i := range seed {
		s.events[seed[i].ID] = seed[i].Clone()
	}
	return s
}

// Insert stores a new event.
func (s *MemoryEventStore) Insert(ctx context.Context, event *model.OrganizerEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.events[event.ID]; exists {
		return ErrDuplicateID
	}
	s.events[event.ID] = event.Clone()
	return nil
}

// Get returns a copy of the event or ErrNotFound.
func (s *MemoryEventStore) Get(ctx context.Context, id string) (*model.OrganizerEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return event.Clone(), nil
}

// ListByOrganizer returns copies of the organizer's events ordered by
// UpdatedAt descending.
func (s *MemoryEventStore) ListByOrganizer(ctx context.Context, organizerID string) ([]model.OrganizerEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]model.OrganizerEvent, 0, len(s.events))
	for _, e := range s.events {
		if e.OrganizerID == organizerID {
			events = append(events, *e.Clone())
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].UpdatedAt.Equal(events[j].UpdatedAt) {
			return events[i].ID < events[j].ID
		}
		return events[i].UpdatedAt.After(events[j].UpdatedAt)
	})
	return events, nil
}

// Update replaces the stored event with the given one.
func (s *MemoryEventStore) Update(ctx context.Context, event *model.OrganizerEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[event.ID]; !ok {
		return ErrNotFound
	}
	s.events[event.ID] = event.Clone()
	return nil
}

// Delete removes the event and everything it owns.
func (s *MemoryEventStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return ErrNotFound
	}
	delete(s.events, id)
	return nil
}

// MemoryActivityLog is an in-memory ActivityLog.
type MemoryActivityLog struct {
	mu      sync.RWMutex
	entries []model.RecentActivity
}

// NewMemoryActivityLog creates an empty activity log.
func NewMemoryActivityLog() *MemoryActivityLog {
	return &MemoryActivityLog{}
}

// Append records an entry.
func (l *MemoryActivityLog) Append(ctx context.Context, entry model.RecentActivity) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)
	return nil
}

// Recent returns the newest entries for the organizer.
func (l *MemoryActivityLog) Recent(ctx context.Context, organizerID string, limit int) ([]model.RecentActivity, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.RecentActivity, 0)
	// Walk backwards so entries sharing a timestamp stay newest-first.
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].OrganizerID == organizerID {
			out = append(out, l.entries[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
