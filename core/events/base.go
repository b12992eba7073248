package events

import "time"

// Kind names an event type; values are namespaced strings such as
// "message.confirmed" (doc.go lists the full catalog).
type Kind string

// Event is implemented by everything the conversation controller emits.
// Timestamp is assigned at emission and orders events from concurrent
// sources (backend confirmations, recognition callbacks, synthesis
// playback) onto one timeline.
type Event interface {
	Kind() Kind
	Timestamp() time.Time
}

// Base carries the kind and emission time shared by all events; concrete
// event types embed it and add their payload fields.
type Base struct {
	kind      Kind
	timestamp time.Time
}

func NewBase(kind Kind) Base {
	return Base{kind: kind, timestamp: time.Now()}
}

func (b Base) Kind() Kind { return b.kind }

func (b Base) Timestamp() time.Time { return b.timestamp }
