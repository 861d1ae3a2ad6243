package model

import (
	"time"
)

// EventType represents the type of escalation event.
type EventType string

const (
	EventTypeUnresolved EventType = "unresolved"
	EventTypeRenotify   EventType = "renotify"
	EventTypeFeedback   EventType = "feedback"
)

// EscalationPayload is the structured payload delivered to moderators and
// broadcast to real-time listeners when a message goes unresolved.
type EscalationPayload struct {
	Message  string   `json:"message"`
	Category Category `json:"category"`
	Keywords []string `json:"keywords"`
}

// EscalationEvent is a domain event on the escalation stream.
type EscalationEvent struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	Payload   EscalationPayload `json:"payload"`
	CreatedAt time.Time         `json:"created_at"`
	Sequence  uint64            `json:"sequence,omitempty"`
}
