package corpus

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitalize-ai/response-engine/internal/cache"
	"github.com/capitalize-ai/response-engine/internal/model"
	"github.com/capitalize-ai/response-engine/pkg/logger"
)

func newTestScorer(t *testing.T, entries ...model.TrainingEntry) (*Scorer, *MemoryRepository) {
	t.Helper()

	repo := NewMemoryRepository()
	for i := range entries {
		require.NoError(t, repo.Create(context.Background(), &entries[i]))
	}
	return NewScorer(repo, cache.NewMemory(), logger.NewNop()), repo
}

func TestScorer_OverlapBeatsCategoryBonus(t *testing.T) {
	// One shared token plus a category match scores 2+3=5; three shared
	// tokens score 6 and win without any category at all.
	s, _ := newTestScorer(t,
		model.TrainingEntry{
			ID:       "bonus",
			Trigger:  "printer",
			Keywords: []string{"sync"},
			Category: model.CategoryTechnical,
			Response: "Category-boosted answer.",
			Active:   true,
		},
		model.TrainingEntry{
			ID:       "overlap",
			Trigger:  "sync failing upload",
			Response: "Overlap-heavy answer.",
			Active:   true,
		},
	)

	match, err := s.FindBestMatch(context.Background(), "sync keeps failing on upload")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "overlap", match.Entry.ID)
	assert.Equal(t, 6, match.Score)
}

func TestScorer_KeywordsAndCategoryToken(t *testing.T) {
	s, _ := newTestScorer(t, model.TrainingEntry{
		ID:       "e1",
		Trigger:  "billing question",
		Keywords: []string{"Invoice"},
		Category: model.CategoryPayment,
		Response: "Invoices live under Settings > Billing.",
		Active:   true,
	})

	// "invoice" overlaps a keyword (case-insensitive), "billing" a trigger
	// token; the payment category is detected in the message too.
	match, err := s.FindBestMatch(context.Background(), "where is my billing invoice")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, 2*2+3, match.Score)
}

func TestScorer_TieBreaksFirstSeen(t *testing.T) {
	s, _ := newTestScorer(t,
		model.TrainingEntry{
			ID: "first", Trigger: "export data", Response: "First answer wins.", Active: true,
		},
		model.TrainingEntry{
			ID: "second", Trigger: "export data", Response: "Second answer loses.", Active: true,
		},
	)

	match, err := s.FindBestMatch(context.Background(), "how do I export data")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "first", match.Entry.ID)
}

func TestScorer_ShortResponseWinnerIsRejected(t *testing.T) {
	// The winner's response is too short to serve; the runner-up is not
	// promoted in its place.
	s, _ := newTestScorer(t,
		model.TrainingEntry{
			ID: "winner", Trigger: "export data backup", Response: "  ok  ", Active: true,
		},
		model.TrainingEntry{
			ID: "runnerup", Trigger: "export", Response: "A perfectly servable answer.", Active: true,
		},
	)

	match, err := s.FindBestMatch(context.Background(), "export data backup")
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestScorer_IgnoresInactiveAndZeroScores(t *testing.T) {
	s, _ := newTestScorer(t,
		model.TrainingEntry{
			ID: "inactive", Trigger: "export data", Response: "Should not be seen.", Active: false,
		},
		model.TrainingEntry{
			ID: "unrelated", Trigger: "printer jam", Response: "Also unrelated.", Active: true,
		},
	)

	match, err := s.FindBestMatch(context.Background(), "how do I export data")
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestScorer_EmptyCorpus(t *testing.T) {
	s, _ := newTestScorer(t)

	match, err := s.FindBestMatch(context.Background(), "anything at all")
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestScorer_ReadsThroughCache(t *testing.T) {
	repo := NewMemoryRepository()
	c := cache.NewMemory()
	s := NewScorer(repo, c, logger.NewNop())
	ctx := context.Background()

	// A cached snapshot is served even when the repository disagrees.
	snapshot, err := json.Marshal([]model.TrainingEntry{{
		ID: "cached", Trigger: "export data", Response: "Cached answer here.", Active: true,
	}})
	require.NoError(t, err)
	require.NoError(t, c.Put(ctx, cache.KeyCorpus, string(snapshot), cache.CorpusTTL))

	match, err := s.FindBestMatch(ctx, "export data")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "cached", match.Entry.ID)

	// After invalidation the repository is read and the snapshot refilled.
	require.NoError(t, c.Forget(ctx, cache.KeyCorpus))
	require.NoError(t, repo.Create(ctx, &model.TrainingEntry{
		ID: "stored", Trigger: "export data", Response: "Stored answer here.", Active: true,
	}))

	match, err = s.FindBestMatch(ctx, "export data")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "stored", match.Entry.ID)

	_, err = c.Get(ctx, cache.KeyCorpus)
	assert.NoError(t, err)
}

func TestScorer_CorruptCacheFallsBackToRepository(t *testing.T) {
	repo := NewMemoryRepository()
	c := cache.NewMemory()
	s := NewScorer(repo, c, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.TrainingEntry{
		ID: "stored", Trigger: "export data", Response: "Stored answer here.", Active: true,
	}))
	require.NoError(t, c.Put(ctx, cache.KeyCorpus, "not json", cache.CorpusTTL))

	match, err := s.FindBestMatch(ctx, "export data")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "stored", match.Entry.ID)
}
