// Package learning turns unresolved messages into training entries, applies
// feedback to the corpus, and escalates to human reviewers. All of it is
// fire-and-forget relative to the reply already computed: failures are
// logged, never propagated to the message sender.
package learning

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/capitalize-ai/response-engine/internal/cache"
	"github.com/capitalize-ai/response-engine/internal/corpus"
	"github.com/capitalize-ai/response-engine/internal/lexicon"
	"github.com/capitalize-ai/response-engine/internal/model"
	"github.com/capitalize-ai/response-engine/pkg/logger"
	"github.com/capitalize-ai/response-engine/pkg/metrics"
)

// Notifier is the notification sink collaborator.
type Notifier interface {
	// Notify delivers the escalation payload to each recipient.
	Notify(ctx context.Context, recipients []string, payload model.EscalationPayload) error

	// Broadcast publishes the matching domain event for real-time listeners.
	Broadcast(ctx context.Context, event *model.EscalationEvent) error
}

// Manager coordinates the learning and escalation workflow.
type Manager struct {
	repo       corpus.Repository
	cache      cache.Cache
	notifier   Notifier
	recipients []string
	logger     *logger.Logger
}

// NewManager creates a learning manager. Recipients are the moderator and
// admin identities that receive escalations.
func NewManager(repo corpus.Repository, c cache.Cache, notifier Notifier, recipients []string, log *logger.Logger) *Manager {
	return &Manager{
		repo:       repo,
		cache:      c,
		notifier:   notifier,
		recipients: recipients,
		logger:     log,
	}
}

// RecordUnresolved registers a message no resolver could answer. An existing
// unanswered entry for the same question triggers a fresh notification every
// time; otherwise a new review entry is created. Re-notification is
// deliberately at-least-once: as long as the question stays unanswered, every
// duplicate escalates again.
func (m *Manager) RecordUnresolved(ctx context.Context, message string, category model.Category) error {
	analysis := lexicon.Analyze(message)
	payload := model.EscalationPayload{
		Message:  message,
		Category: category,
		Keywords: analysis.Keywords,
	}

	existing, err := m.repo.FindUnresolved(ctx, message, category)
	if err == nil && existing != nil {
		metrics.RecordEscalation(string(category), "renotify")
		m.escalate(ctx, model.EventTypeRenotify, payload)
		return nil
	}
	if err != nil && !errors.Is(err, corpus.ErrNotFound) {
		return err
	}

	entry := &model.TrainingEntry{
		ID:          uuid.New().String(),
		Trigger:     strings.ToLower(strings.TrimSpace(message)),
		Response:    "",
		Category:    category,
		Keywords:    analysis.Keywords,
		Active:      false,
		NeedsReview: true,
	}
	if err := m.repo.Create(ctx, entry); err != nil {
		return err
	}

	m.InvalidateCaches(ctx, message)
	metrics.RecordEscalation(string(category), "created")
	m.escalate(ctx, model.EventTypeUnresolved, payload)
	return nil
}

// escalate runs the notification path: moderator delivery plus the domain
// event broadcast. Failures are logged only.
func (m *Manager) escalate(ctx context.Context, eventType model.EventType, payload model.EscalationPayload) {
	if m.notifier == nil {
		return
	}

	if err := m.notifier.Notify(ctx, m.recipients, payload); err != nil {
		m.logger.Error("failed to notify moderators", zap.Error(err))
	}

	event := &model.EscalationEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
	if err := m.notifier.Broadcast(ctx, event); err != nil {
		m.logger.Error("failed to broadcast escalation event", zap.Error(err))
	}
}

// RecordFeedback applies feedback to the entry behind a served interaction.
// Unhelpful feedback flags the entry for review; helpful feedback bumps the
// usage counter and recomputes the success rate.
func (m *Manager) RecordFeedback(ctx context.Context, interactionID string, wasHelpful bool, note string) error {
	in, err := m.repo.FindInteraction(ctx, interactionID)
	if err != nil {
		return err
	}

	in.WasHelpful = &wasHelpful
	in.Note = note
	if err := m.repo.UpdateInteraction(ctx, in); err != nil {
		return err
	}

	entry, err := m.repo.FindByID(ctx, in.EntryID)
	if err != nil {
		return err
	}

	if !wasHelpful {
		entry.NeedsReview = true
		if err := m.repo.Update(ctx, entry); err != nil {
			return err
		}
		m.InvalidateCaches(ctx, entry.Trigger)
		return nil
	}

	count, err := m.repo.IncrementUsage(ctx, entry.ID)
	if err != nil {
		return err
	}
	helpful, err := m.repo.CountHelpful(ctx, entry.ID)
	if err != nil {
		return err
	}

	entry.UsageCount = count
	entry.SuccessRate = float64(helpful) / float64(count) * 100
	if err := m.repo.Update(ctx, entry); err != nil {
		return err
	}

	m.InvalidateCaches(ctx, entry.Trigger)
	return nil
}

// InvalidateCaches drops the corpus snapshot and the learned-response entry
// for the given text. Cache failures are soft.
func (m *Manager) InvalidateCaches(ctx context.Context, text string) {
	if err := m.cache.Forget(ctx, cache.KeyCorpus); err != nil {
		m.logger.Debug("failed to invalidate corpus cache", zap.Error(err))
	}
	key := cache.LearnedPrefix + strings.ToLower(strings.TrimSpace(text))
	if err := m.cache.Forget(ctx, key); err != nil {
		m.logger.Debug("failed to invalidate learned cache", zap.Error(err))
	}
}
