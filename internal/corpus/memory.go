package corpus

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/capitalize-ai/response-engine/internal/model"
)

// MemoryRepository is an in-process Repository used for development and
// tests. Entries keep insertion order so scorer tie-breaks stay stable.
type MemoryRepository struct {
	mu           sync.RWMutex
	entries      []*model.TrainingEntry
	interactions map[string]*model.Interaction
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		interactions: make(map[string]*model.Interaction),
	}
}

func (r *MemoryRepository) FindActive(_ context.Context) ([]model.TrainingEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.TrainingEntry
	for _, e := range r.entries {
		if e.Active {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *MemoryRepository) List(_ context.Context, needsReview *bool) ([]model.TrainingEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.TrainingEntry
	for _, e := range r.entries {
		if needsReview != nil && e.NeedsReview != *needsReview {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*model.TrainingEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) FindUnresolved(_ context.Context, message string, category model.Category) (*model.TrainingEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(message))
	for _, e := range r.entries {
		if !e.NeedsReview || strings.TrimSpace(e.Response) != "" {
			continue
		}
		if e.Category != category {
			continue
		}
		if strings.Contains(strings.ToLower(e.Trigger), needle) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) Create(_ context.Context, entry *model.TrainingEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now

	cp := *entry
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, entry *model.TrainingEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e.ID == entry.ID {
			entry.UpdatedAt = time.Now()
			cp := *entry
			cp.CreatedAt = e.CreatedAt
			r.entries[i] = &cp
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepository) IncrementUsage(_ context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.ID == id {
			e.UsageCount++
			e.UpdatedAt = time.Now()
			return e.UsageCount, nil
		}
	}
	return 0, ErrNotFound
}

func (r *MemoryRepository) RecordInteraction(_ context.Context, in *model.Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now()
	}
	cp := *in
	r.interactions[in.ID] = &cp
	return nil
}

func (r *MemoryRepository) FindInteraction(_ context.Context, id string) (*model.Interaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	in, ok := r.interactions[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *in
	return &cp, nil
}

func (r *MemoryRepository) UpdateInteraction(_ context.Context, in *model.Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.interactions[in.ID]; !ok {
		return ErrNotFound
	}
	cp := *in
	r.interactions[in.ID] = &cp
	return nil
}

func (r *MemoryRepository) CountHelpful(_ context.Context, entryID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, in := range r.interactions {
		if in.EntryID == entryID && in.WasHelpful != nil && *in.WasHelpful {
			count++
		}
	}
	return count, nil
}

func (r *MemoryRepository) Close() error {
	return nil
}
