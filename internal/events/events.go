package events

import (
	"sync"
	"time"
)

type Type string

const (
	// TypeThermalThreshold is raised when the WARN or HIGH latch changes
	TypeThermalThreshold Type = "THERMAL_THRESHOLD"
	// TypeThermalShutdown is raised when the HALT latch changes
	TypeThermalShutdown Type = "THERMAL_SHUTDOWN"
	// TypeSensorFailure is raised on every tick without a single readable sensor
	TypeSensorFailure Type = "SENSOR_FAILURE"
)

// NoSensor is used for events that do not refer to a single sensor
const NoSensor = -1

type Event struct {
	Time      time.Time `json:"time"`
	Type      Type      `json:"type"`
	Threshold string    `json:"threshold,omitempty"`
	Active    bool      `json:"active"`
	Sensor    int       `json:"sensor"`
	Message   string    `json:"message"`
}

// Sink receives host events, Publish must not block the caller
type Sink interface {
	Publish(event Event)
}

// Ring keeps the most recent events in memory
type Ring struct {
	mu     sync.Mutex
	events []Event
	next   int
	full   bool
}

func NewRing(size int) *Ring {
	if size <= 0 {
		size = 1
	}
	return &Ring{events: make([]Event, size)}
}

func (r *Ring) Publish(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[r.next] = event
	r.next = (r.next + 1) % len(r.events)
	if r.next == 0 {
		r.full = true
	}
}

// List returns all buffered events, oldest first
func (r *Ring) List() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.full {
		return append([]Event{}, r.events[:r.next]...)
	}
	result := make([]Event, 0, len(r.events))
	result = append(result, r.events[r.next:]...)
	result = append(result, r.events[:r.next]...)
	return result
}

// Multi publishes every event to all of its sinks
type Multi []Sink

func (m Multi) Publish(event Event) {
	for _, sink := range m {
		sink.Publish(event)
	}
}
