package storage

import "time"

// Event represents a single processed interaction in the audit log.
// It is intentionally simple to allow future DB implementations.
// Events are expected to be appended in chronological order.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	Query     string    `json:"query"`
	Category  string    `json:"category"`
	Route     string    `json:"route"`
	Response  string    `json:"response"`
	Fallback  bool      `json:"fallback"`
}

// Recorder abstracts persistence of interaction events.
// Implementations can be file-based, database, etc.
// LoadInteractions should return events in chronological order.
// AppendInteraction should atomically append a new event.
// Implementations must be safe for concurrent use.
type Recorder interface {
	AppendInteraction(event Event) error
	LoadInteractions() ([]Event, error)
}
