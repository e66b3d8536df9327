// Package telemetry provides frame statistics, performance timing and CSV output.
package telemetry

import "github.com/pthm-cable/tinsel/store"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventModeChange EventType = iota
	EventPhotoAdded
	EventRejected
	EventGestureTick
	EventGestureError
)

// Event represents a single telemetry event.
type Event struct {
	Type EventType
	Mode store.Mode // for mode changes
	ID   string     // photo ID for photo events
}

// NewModeChangeEvent creates a mode change event.
func NewModeChangeEvent(mode store.Mode) Event {
	return Event{Type: EventModeChange, Mode: mode}
}

// NewPhotoAddedEvent creates a photo event.
func NewPhotoAddedEvent(id string) Event {
	return Event{Type: EventPhotoAdded, ID: id}
}
