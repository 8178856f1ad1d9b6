package events

import (
	"time"
)

// Event is one recorded change to a sizing session
type Event interface {
	Type() string
	Subject() string
	Data() interface{}
	Timestamp() time.Time
	Sequence() int
}

// EventHandler reacts to appended events
type EventHandler interface {
	Handle(event Event) error
	CanHandle(eventType string) bool
}

// EventLog is an append-only record of session changes
type EventLog interface {
	Append(subject string, event Event) (Event, error)
	ReadAll(fromPosition int) ([]Event, error)
	ReadSubject(subject string) ([]Event, error)
	Subscribe(eventTypes []string, handler EventHandler) error
}

type baseEvent struct {
	eventType string
	subject   string
	data      interface{}
	time      time.Time
	sequence  int
}

func (e baseEvent) Type() string         { return e.eventType }
func (e baseEvent) Subject() string      { return e.subject }
func (e baseEvent) Data() interface{}    { return e.data }
func (e baseEvent) Timestamp() time.Time { return e.time }
func (e baseEvent) Sequence() int        { return e.sequence }

// NewEvent creates an unsequenced event; the log assigns its sequence on append
func NewEvent(eventType, subject string, data interface{}) Event {
	return baseEvent{
		eventType: eventType,
		subject:   subject,
		data:      data,
		time:      time.Now(),
	}
}

// HandlerFunc adapts a function to EventHandler for a fixed set of types
type HandlerFunc struct {
	Types []string
	Fn    func(Event) error
}

func (h *HandlerFunc) Handle(event Event) error {
	return h.Fn(event)
}

func (h *HandlerFunc) CanHandle(eventType string) bool {
	for _, t := range h.Types {
		if t == eventType {
			return true
		}
	}
	return false
}
