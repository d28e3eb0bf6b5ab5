package events

import "time"

// Kind is the namespaced identifier of an event type.
type Kind string

// Event is implemented by every turn event.
type Event interface {
	Kind() Kind
	Timestamp() time.Time
}

// Base carries the kind and emission timestamp shared by all events.
type Base struct {
	kind      Kind
	timestamp time.Time
}

// NewBase stamps a base with the given kind at the current time.
func NewBase(kind Kind) Base {
	return Base{kind: kind, timestamp: time.Now()}
}

func (b Base) Kind() Kind { return b.kind }

func (b Base) Timestamp() time.Time { return b.timestamp }
