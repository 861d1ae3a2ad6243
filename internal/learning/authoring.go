package learning

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/capitalize-ai/response-engine/internal/cache"
	"github.com/capitalize-ai/response-engine/internal/lexicon"
	"github.com/capitalize-ai/response-engine/internal/model"
)

// CreateEntry authors a training entry by hand. Human-authored entries are
// active immediately and do not need review.
func (m *Manager) CreateEntry(ctx context.Context, req *model.CreateTrainingRequest, createdBy string) (*model.TrainingEntry, error) {
	keywords := req.Keywords
	if len(keywords) == 0 {
		keywords = lexicon.Analyze(req.Trigger).Keywords
	}

	entry := &model.TrainingEntry{
		ID:          uuid.New().String(),
		Trigger:     strings.ToLower(strings.TrimSpace(req.Trigger)),
		Response:    strings.TrimSpace(req.Response),
		Category:    req.Category,
		Keywords:    keywords,
		Active:      true,
		NeedsReview: false,
		CreatedBy:   createdBy,
	}
	if err := m.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	m.refreshLearned(ctx, entry)
	return entry, nil
}

// UpdateEntry applies a moderation update. Providing a servable response
// resolves the review flag and activates the entry unless the request says
// otherwise.
func (m *Manager) UpdateEntry(ctx context.Context, id string, req *model.UpdateTrainingRequest) (*model.TrainingEntry, error) {
	entry, err := m.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Response != nil {
		entry.Response = strings.TrimSpace(*req.Response)
		if entry.Servable() {
			entry.NeedsReview = false
			entry.Active = true
		}
	}
	if req.Active != nil {
		entry.Active = *req.Active
	}
	if req.NeedsReview != nil {
		entry.NeedsReview = *req.NeedsReview
	}

	if err := m.repo.Update(ctx, entry); err != nil {
		return nil, err
	}

	m.refreshLearned(ctx, entry)
	return entry, nil
}

// refreshLearned invalidates the caches for the entry and, when the entry is
// live, repopulates the learned-response key so exact repeats of the trigger
// are answered without scoring.
func (m *Manager) refreshLearned(ctx context.Context, entry *model.TrainingEntry) {
	m.InvalidateCaches(ctx, entry.Trigger)

	if entry.Active && entry.Servable() {
		key := cache.LearnedPrefix + entry.Trigger
		if err := m.cache.Put(ctx, key, entry.Response, 0); err != nil {
			m.logger.Debug("failed to populate learned cache", zap.Error(err))
		}
	}
}
