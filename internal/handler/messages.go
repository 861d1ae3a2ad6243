// Package handler implements the HTTP endpoints of the response engine.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/capitalize-ai/response-engine/internal/middleware"
	"github.com/capitalize-ai/response-engine/internal/model"
	"github.com/capitalize-ai/response-engine/internal/responder"
	"github.com/capitalize-ai/response-engine/pkg/logger"
)

// MessageHandler handles the message resolution endpoint.
type MessageHandler struct {
	pipeline *responder.Pipeline
	logger   *logger.Logger
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(pipeline *responder.Pipeline, log *logger.Logger) *MessageHandler {
	return &MessageHandler{pipeline: pipeline, logger: log}
}

// Handle handles POST /api/v1/messages
func (h *MessageHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.HandleMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateMessageContent(req.Message); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := middleware.ValidateConversationID(req.ConversationID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.pipeline.Resolve(ctx, req.Message, req.ConversationID)
	if err != nil {
		if errors.Is(err, responder.ErrEmptyMessage) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to resolve message", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to resolve message")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
