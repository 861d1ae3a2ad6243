package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/capitalize-ai/response-engine/internal/corpus"
	"github.com/capitalize-ai/response-engine/internal/learning"
	"github.com/capitalize-ai/response-engine/internal/middleware"
	"github.com/capitalize-ai/response-engine/internal/model"
	"github.com/capitalize-ai/response-engine/pkg/logger"
)

// TrainingHandler handles corpus moderation endpoints.
type TrainingHandler struct {
	repo    corpus.Repository
	manager *learning.Manager
	logger  *logger.Logger
}

// NewTrainingHandler creates a new training handler.
func NewTrainingHandler(repo corpus.Repository, manager *learning.Manager, log *logger.Logger) *TrainingHandler {
	return &TrainingHandler{repo: repo, manager: manager, logger: log}
}

// List handles GET /api/v1/training
func (h *TrainingHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var needsReview *bool
	if v := r.URL.Query().Get("needs_review"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid needs_review value")
			return
		}
		needsReview = &parsed
	}

	entries, err := h.repo.List(ctx, needsReview)
	if err != nil {
		h.logger.Error("failed to list training entries", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list training entries")
		return
	}

	writeJSON(w, http.StatusOK, &model.ListTrainingResponse{
		Entries: entries,
		Total:   len(entries),
	})
}

// Create handles POST /api/v1/training
func (h *TrainingHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.CreateTrainingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Trigger) == "" {
		writeError(w, http.StatusBadRequest, "trigger is required")
		return
	}
	if len(strings.TrimSpace(req.Response)) <= model.MinResponseLength {
		writeError(w, http.StatusBadRequest, "response is too short")
		return
	}

	entry, err := h.manager.CreateEntry(ctx, &req, middleware.GetUserID(ctx))
	if err != nil {
		h.logger.Error("failed to create training entry", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create training entry")
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// Update handles PUT /api/v1/training/{id}
func (h *TrainingHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req model.UpdateTrainingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.manager.UpdateEntry(ctx, id, &req)
	if errors.Is(err, corpus.ErrNotFound) {
		writeError(w, http.StatusNotFound, "training entry not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to update training entry", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to update training entry")
		return
	}

	writeJSON(w, http.StatusOK, entry)
}
