package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/capitalize-ai/response-engine/internal/corpus"
	"github.com/capitalize-ai/response-engine/internal/learning"
	"github.com/capitalize-ai/response-engine/internal/model"
	"github.com/capitalize-ai/response-engine/pkg/logger"
)

// FeedbackHandler handles reply feedback.
type FeedbackHandler struct {
	manager *learning.Manager
	logger  *logger.Logger
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(manager *learning.Manager, log *logger.Logger) *FeedbackHandler {
	return &FeedbackHandler{manager: manager, logger: log}
}

// Submit handles POST /api/v1/feedback
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.InteractionID == "" {
		writeError(w, http.StatusBadRequest, "interaction_id is required")
		return
	}

	err := h.manager.RecordFeedback(ctx, req.InteractionID, req.WasHelpful, req.Note)
	if errors.Is(err, corpus.ErrNotFound) {
		writeError(w, http.StatusNotFound, "interaction not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to record feedback", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to record feedback")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}
