package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/capitalize-ai/response-engine/internal/model"
)

const (
	// StreamName is the name of the durable escalation stream.
	StreamName = "ESCALATIONS"

	// SubjectPrefix is the prefix for all escalation subjects.
	SubjectPrefix = "escalation"

	// BroadcastSubject carries domain events for real-time listeners.
	BroadcastSubject = "escalation.event"
)

// Escalations publishes escalation notifications to moderators and broadcasts
// the matching domain event.
type Escalations struct {
	client *Client
}

// NewEscalations creates an escalation publisher.
func NewEscalations(client *Client) *Escalations {
	return &Escalations{client: client}
}

// EnsureStream ensures the escalation stream exists with proper
// configuration. The stream is the durable audit trail of escalation events.
func (e *Escalations) EnsureStream(ctx context.Context) error {
	js := e.client.JetStream()

	// Check if stream exists
	_, err := js.Stream(ctx, StreamName)
	if err == nil {
		return nil // Stream already exists
	}

	// Create stream
	_, err = js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{fmt.Sprintf("%s.>", SubjectPrefix)},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      90 * 24 * time.Hour,
		Storage:     jetstream.FileStorage,
		Replicas:    1,
		Compression: jetstream.S2Compression,
		Description: "Escalation notifications and domain events",
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	return nil
}

// NotifySubject returns the notification subject for one recipient.
func NotifySubject(recipient string) string {
	return fmt.Sprintf("%s.notify.%s", SubjectPrefix, recipient)
}

// Notify delivers the structured escalation payload to each recipient's
// notification subject.
func (e *Escalations) Notify(ctx context.Context, recipients []string, payload model.EscalationPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	for _, r := range recipients {
		if _, err := e.client.JetStream().Publish(ctx, NotifySubject(r), data); err != nil {
			return fmt.Errorf("failed to notify %s: %w", r, err)
		}
	}
	return nil
}

// Broadcast publishes the domain event for real-time listeners.
func (e *Escalations) Broadcast(ctx context.Context, event *model.EscalationEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ack, err := e.client.JetStream().Publish(ctx, BroadcastSubject, data)
	if err != nil {
		return fmt.Errorf("failed to broadcast event: %w", err)
	}
	event.Sequence = ack.Sequence

	return nil
}
