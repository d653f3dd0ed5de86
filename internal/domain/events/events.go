// Package events defines the analytics payloads posted by the frontend.
package events

import "time"

// Session event types accepted by the analytics endpoint.
const (
	EventGameStart     = "game-start"
	EventGameEnd       = "game-end"
	EventEducationView = "education-view"
	EventCasinoClick   = "casino-click"
)

// SessionEvent is one tracked interaction for a visitor session.
type SessionEvent struct {
	SessionID string         `json:"sessionId"`
	Type      string         `json:"type"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Valid reports whether the event carries the required fields.
func (e *SessionEvent) Valid() bool {
	return e.SessionID != "" && e.Type != "" && !e.Timestamp.IsZero()
}

// ExperimentEvent is one tracked A/B-test interaction.
type ExperimentEvent struct {
	ExperimentID string         `json:"experimentId"`
	VariantID    string         `json:"variantId"`
	EventType    string         `json:"eventType"`
	EventData    map[string]any `json:"eventData,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
}

// Valid reports whether the experiment event carries the required fields.
func (e *ExperimentEvent) Valid() bool {
	return e.ExperimentID != "" && e.VariantID != "" && e.EventType != ""
}
