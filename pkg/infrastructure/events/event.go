// Package events keeps an append-only log of what happens in configuration
// sessions, one stream per session.
package events

import (
	"time"
)

// Event is one entry of a session stream
type Event interface {
	Type() string
	SessionID() string
	Data() any
	Timestamp() time.Time
	Version() int
}

// Handler is notified of stored events of the types it accepts
type Handler interface {
	Handle(event Event) error
	CanHandle(eventType string) bool
}

// Store is an append-only session event log
type Store interface {
	Append(sessionID string, event Event) error
	Stream(sessionID string, fromVersion int) ([]Event, error)
	All(fromPosition int) ([]Event, error)
	Subscribe(eventTypes []string, handler Handler) error
	Unsubscribe(handler Handler) error
}

// Record is the stored form of an event. Seq is assigned by the store.
type Record struct {
	Kind    string    `json:"type"`
	Session string    `json:"session"`
	Payload any       `json:"data"`
	At      time.Time `json:"time"`
	Seq     int       `json:"version"`
}

func (r Record) Type() string         { return r.Kind }
func (r Record) SessionID() string    { return r.Session }
func (r Record) Data() any            { return r.Payload }
func (r Record) Timestamp() time.Time { return r.At }
func (r Record) Version() int         { return r.Seq }

// New creates an unstored event stamped with the current time
func New(eventType, sessionID string, data any) Event {
	return Record{
		Kind:    eventType,
		Session: sessionID,
		Payload: data,
		At:      time.Now(),
	}
}
