package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/capitalize-ai/response-engine/internal/export"
	"github.com/capitalize-ai/response-engine/pkg/logger"
)

// ExportHandler handles knowledge export triggers.
type ExportHandler struct {
	exporter *export.Exporter
	logger   *logger.Logger
}

// NewExportHandler creates a new export handler.
func NewExportHandler(exporter *export.Exporter, log *logger.Logger) *ExportHandler {
	return &ExportHandler{exporter: exporter, logger: log}
}

// Trigger handles POST /api/v1/knowledge/export. Export failures are logged
// and reported, but the engine itself keeps serving.
func (h *ExportHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	result, err := h.exporter.Run(r.Context())
	if err != nil {
		h.logger.Error("knowledge export failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
