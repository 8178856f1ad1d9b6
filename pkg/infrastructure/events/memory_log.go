package events

import (
	"errors"
	"sync"
)

// InMemoryEventLog keeps session events for the life of the process. Handlers
// run synchronously on the appending goroutine, after the lock is released.
type InMemoryEventLog struct {
	mu          sync.RWMutex
	all         []Event
	bySubject   map[string][]Event
	subscribers map[string][]EventHandler
}

// NewInMemoryEventLog creates an empty event log
func NewInMemoryEventLog() *InMemoryEventLog {
	return &InMemoryEventLog{
		all:         make([]Event, 0),
		bySubject:   make(map[string][]Event),
		subscribers: make(map[string][]EventHandler),
	}
}

var _ EventLog = (*InMemoryEventLog)(nil)

// Append records the event under subject and notifies subscribers. Handler
// errors are joined and returned after every handler has run.
func (l *InMemoryEventLog) Append(subject string, event Event) (Event, error) {
	l.mu.Lock()
	recorded := baseEvent{
		eventType: event.Type(),
		subject:   subject,
		data:      event.Data(),
		time:      event.Timestamp(),
		sequence:  len(l.all) + 1,
	}
	l.all = append(l.all, recorded)
	l.bySubject[subject] = append(l.bySubject[subject], recorded)
	handlers := append([]EventHandler(nil), l.subscribers[recorded.eventType]...)
	l.mu.Unlock()

	var errs []error
	for _, h := range handlers {
		if h.CanHandle(recorded.eventType) {
			if err := h.Handle(recorded); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return recorded, errors.Join(errs...)
}

// ReadAll returns events from the given zero-based position onwards
func (l *InMemoryEventLog) ReadAll(fromPosition int) ([]Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if fromPosition < 0 {
		fromPosition = 0
	}
	if fromPosition >= len(l.all) {
		return []Event{}, nil
	}

	out := make([]Event, len(l.all)-fromPosition)
	copy(out, l.all[fromPosition:])
	return out, nil
}

// ReadSubject returns every event recorded for one subject
func (l *InMemoryEventLog) ReadSubject(subject string) ([]Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Event, len(l.bySubject[subject]))
	copy(out, l.bySubject[subject])
	return out, nil
}

// Subscribe registers handler for the given event types
func (l *InMemoryEventLog) Subscribe(eventTypes []string, handler EventHandler) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, t := range eventTypes {
		l.subscribers[t] = append(l.subscribers[t], handler)
	}
	return nil
}

// Len returns the number of recorded events
func (l *InMemoryEventLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.all)
}
