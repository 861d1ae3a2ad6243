package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitalize-ai/response-engine/internal/cache"
	"github.com/capitalize-ai/response-engine/internal/corpus"
	"github.com/capitalize-ai/response-engine/internal/learning"
	"github.com/capitalize-ai/response-engine/internal/model"
	"github.com/capitalize-ai/response-engine/pkg/logger"
)

func newTrainingRouter(t *testing.T) (http.Handler, *corpus.MemoryRepository) {
	t.Helper()

	log := logger.NewNop()
	repo := corpus.NewMemoryRepository()
	manager := learning.NewManager(repo, cache.NewMemory(), nil, nil, log)
	h := NewTrainingHandler(repo, manager, log)

	r := chi.NewRouter()
	r.Get("/training", h.List)
	r.Post("/training", h.Create)
	r.Put("/training/{id}", h.Update)
	return r, repo
}

func TestTrainingHandler_List(t *testing.T) {
	router, repo := newTrainingRouter(t)

	require.NoError(t, repo.Create(context.Background(), &model.TrainingEntry{ID: "pending", NeedsReview: true}))
	require.NoError(t, repo.Create(context.Background(), &model.TrainingEntry{ID: "done"}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/training", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.ListTrainingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/training?needs_review=true", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "pending", resp.Entries[0].ID)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/training?needs_review=banana", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrainingHandler_Create(t *testing.T) {
	router, repo := newTrainingRouter(t)

	body := `{"trigger":"How do I bulk export?","response":"Use the export button under Settings.","category":"technical"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/training", bytes.NewBufferString(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var entry model.TrainingEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, "how do i bulk export?", entry.Trigger)
	assert.True(t, entry.Active)

	stored, err := repo.FindByID(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryTechnical, stored.Category)
}

func TestTrainingHandler_CreateRejectsBadInput(t *testing.T) {
	router, _ := newTrainingRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing trigger", `{"response":"A long enough response."}`},
		{"short response", `{"trigger":"q","response":"ok"}`},
		{"invalid json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/training", bytes.NewBufferString(tt.body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestTrainingHandler_Update(t *testing.T) {
	router, repo := newTrainingRouter(t)

	require.NoError(t, repo.Create(context.Background(), &model.TrainingEntry{
		ID: "e1", Trigger: "bulk export", NeedsReview: true,
	}))

	body := `{"response":"Use the export button under Settings."}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/training/e1", bytes.NewBufferString(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var entry model.TrainingEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.True(t, entry.Active)
	assert.False(t, entry.NeedsReview)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/training/missing", bytes.NewBufferString(body)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFeedbackHandler_Submit(t *testing.T) {
	log := logger.NewNop()
	repo := corpus.NewMemoryRepository()
	manager := learning.NewManager(repo, cache.NewMemory(), nil, nil, log)
	h := NewFeedbackHandler(manager, log)

	require.NoError(t, repo.Create(context.Background(), &model.TrainingEntry{
		ID: "e1", Trigger: "bulk export", Response: "Use the export button.", Active: true,
	}))
	require.NoError(t, repo.RecordInteraction(context.Background(), &model.Interaction{ID: "i1", EntryID: "e1"}))

	rec := postJSON(t, h.Submit, "/api/v1/feedback", `{"interaction_id":"i1","was_helpful":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	entry, err := repo.FindByID(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, 1, entry.UsageCount)

	rec = postJSON(t, h.Submit, "/api/v1/feedback", `{"interaction_id":"missing","was_helpful":true}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = postJSON(t, h.Submit, "/api/v1/feedback", `{"was_helpful":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
