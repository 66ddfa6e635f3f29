package events

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// MemoryStore keeps every session's events in one in-memory log. Subscribers
// are called synchronously, outside the lock, after the event is stored.
type MemoryStore struct {
	mutex       sync.RWMutex
	log         []Record
	sessions    map[string][]int
	subscribers map[string][]Handler
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions:    make(map[string][]int),
		subscribers: make(map[string][]Handler),
	}
}

var _ Store = (*MemoryStore)(nil)

// Append stores event as the next version of sessionID's stream and returns
// subscriber errors joined. The event is kept even when a subscriber fails.
func (s *MemoryStore) Append(sessionID string, event Event) error {
	if sessionID == "" {
		return fmt.Errorf("session id cannot be empty")
	}

	s.mutex.Lock()
	record := Record{
		Kind:    event.Type(),
		Session: sessionID,
		Payload: event.Data(),
		At:      event.Timestamp(),
		Seq:     len(s.sessions[sessionID]) + 1,
	}
	s.sessions[sessionID] = append(s.sessions[sessionID], len(s.log))
	s.log = append(s.log, record)
	handlers := slices.Clone(s.subscribers[record.Kind])
	s.mutex.Unlock()

	return notify(handlers, record)
}

// Stream returns sessionID's events from version fromVersion on. Versions
// start at 1.
func (s *MemoryStore) Stream(sessionID string, fromVersion int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	positions := s.sessions[sessionID]
	start := max(fromVersion, 1) - 1
	if start >= len(positions) {
		return []Event{}, nil
	}

	out := make([]Event, 0, len(positions)-start)
	for _, p := range positions[start:] {
		out = append(out, s.log[p])
	}
	return out, nil
}

// All returns every stored event from log position fromPosition on, in
// append order across sessions
func (s *MemoryStore) All(fromPosition int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	start := max(fromPosition, 0)
	if start >= len(s.log) {
		return []Event{}, nil
	}

	out := make([]Event, 0, len(s.log)-start)
	for _, r := range s.log[start:] {
		out = append(out, r)
	}
	return out, nil
}

// Subscribe registers handler for eventTypes
func (s *MemoryStore) Subscribe(eventTypes []string, handler Handler) error {
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, eventType := range eventTypes {
		s.subscribers[eventType] = append(s.subscribers[eventType], handler)
	}
	return nil
}

// Unsubscribe removes handler from every event type. Handlers are compared by
// identity, so they must be comparable values such as pointers.
func (s *MemoryStore) Unsubscribe(handler Handler) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for eventType, handlers := range s.subscribers {
		s.subscribers[eventType] = slices.DeleteFunc(handlers, func(h Handler) bool {
			return h == handler
		})
	}
	return nil
}

func notify(handlers []Handler, event Event) error {
	var errs []error
	for _, handler := range handlers {
		if !handler.CanHandle(event.Type()) {
			continue
		}
		if err := handler.Handle(event); err != nil {
			errs = append(errs, fmt.Errorf("handling event %s: %w", event.Type(), err))
		}
	}
	return errors.Join(errs...)
}
