package corpus

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/capitalize-ai/response-engine/internal/cache"
	"github.com/capitalize-ai/response-engine/internal/lexicon"
	"github.com/capitalize-ai/response-engine/internal/model"
	"github.com/capitalize-ai/response-engine/pkg/logger"
	"github.com/capitalize-ai/response-engine/pkg/metrics"
)

// Scoring weights: keyword overlap counts double, a category match adds a
// flat bonus.
const (
	overlapWeight = 2
	categoryBonus = 3
)

// Match is a scored corpus hit.
type Match struct {
	Entry model.TrainingEntry
	Score int
}

// Scorer ranks active training entries against incoming messages. The active
// corpus is read through the cache with a short TTL; writers invalidate it.
type Scorer struct {
	repo   Repository
	cache  cache.Cache
	logger *logger.Logger
}

// NewScorer creates a scorer.
func NewScorer(repo Repository, c cache.Cache, log *logger.Logger) *Scorer {
	return &Scorer{repo: repo, cache: c, logger: log}
}

// FindBestMatch returns the highest-scoring active entry for the message, or
// nil when nothing scores above zero or the winner's response is too short to
// serve. Ties break toward the first-seen entry.
func (s *Scorer) FindBestMatch(ctx context.Context, message string) (*Match, error) {
	entries, err := s.activeEntries(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	tokens := lexicon.Tokenize(message)
	categories := lexicon.DetectCategories(strings.ToLower(message))

	var best *Match
	for i := range entries {
		score := scoreEntry(&entries[i], tokens, categories)
		if score <= 0 {
			continue
		}
		if best == nil || score > best.Score {
			best = &Match{Entry: entries[i], Score: score}
		}
	}

	if best == nil {
		return nil, nil
	}
	if !best.Entry.Servable() {
		// The winner is not demoted to a runner-up; a too-short response
		// means no corpus match at all.
		return nil, nil
	}
	return best, nil
}

// scoreEntry counts how many message tokens appear among the entry's trigger
// tokens, keywords, and category label, doubles that, and adds a bonus when
// the entry's category was detected in the message.
func scoreEntry(e *model.TrainingEntry, tokens []string, categories []model.Category) int {
	candidate := make(map[string]struct{})
	for _, t := range lexicon.Tokenize(e.Trigger) {
		candidate[t] = struct{}{}
	}
	for _, kw := range e.Keywords {
		candidate[strings.ToLower(kw)] = struct{}{}
	}
	if e.Category != model.CategoryNone {
		candidate[string(e.Category)] = struct{}{}
	}

	overlap := 0
	for _, t := range tokens {
		if _, ok := candidate[t]; ok {
			overlap++
		}
	}

	score := overlapWeight * overlap
	if e.Category != model.CategoryNone {
		for _, c := range categories {
			if c == e.Category {
				score += categoryBonus
				break
			}
		}
	}
	return score
}

// activeEntries reads the active corpus through the cache. Cache failures are
// soft: the repository is always the fallback.
func (s *Scorer) activeEntries(ctx context.Context) ([]model.TrainingEntry, error) {
	if raw, err := s.cache.Get(ctx, cache.KeyCorpus); err == nil {
		var entries []model.TrainingEntry
		if jsonErr := json.Unmarshal([]byte(raw), &entries); jsonErr == nil {
			metrics.CacheHits.WithLabelValues("corpus").Inc()
			return entries, nil
		}
	}
	metrics.CacheMisses.WithLabelValues("corpus").Inc()

	entries, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(entries); err == nil {
		if putErr := s.cache.Put(ctx, cache.KeyCorpus, string(raw), cache.CorpusTTL); putErr != nil {
			s.logger.Debug("failed to cache corpus snapshot", zap.Error(putErr))
		}
	}
	return entries, nil
}
