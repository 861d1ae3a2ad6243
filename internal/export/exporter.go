// Package export serializes the answered corpus for the external prediction
// service's indexing process.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/capitalize-ai/response-engine/internal/corpus"
	"github.com/capitalize-ai/response-engine/internal/model"
	"github.com/capitalize-ai/response-engine/pkg/logger"
	"github.com/capitalize-ai/response-engine/pkg/metrics"
)

// Source tags every exported record.
const Source = "trained_data"

// Exporter writes knowledge snapshots to a location the prediction service
// consumes.
type Exporter struct {
	repo   corpus.Repository
	path   string
	logger *logger.Logger
}

// NewExporter creates an exporter writing to the given file path.
func NewExporter(repo corpus.Repository, path string, log *logger.Logger) *Exporter {
	return &Exporter{repo: repo, path: path, logger: log}
}

// Run exports all active entries with non-empty responses. The write is
// atomic: a temp file renamed into place.
func (e *Exporter) Run(ctx context.Context) (*model.ExportResult, error) {
	entries, err := e.repo.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}

	var records []model.KnowledgeRecord
	for _, entry := range entries {
		if strings.TrimSpace(entry.Response) == "" {
			continue
		}
		records = append(records, model.KnowledgeRecord{
			Text:   fmt.Sprintf("Question: %s\nAnswer: %s", entry.Trigger, entry.Response),
			Source: Source,
		})
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode records: %w", err)
	}

	tmp := e.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(e.path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write export: %w", err)
	}
	if err := os.Rename(tmp, e.path); err != nil {
		return nil, fmt.Errorf("failed to finalize export: %w", err)
	}

	metrics.ExportedRecords.Set(float64(len(records)))

	return &model.ExportResult{
		Records:    len(records),
		ExportedAt: time.Now(),
	}, nil
}

// Start runs the export on a fixed interval until the context is canceled.
// Failures are logged and the ticker keeps going.
func (e *Exporter) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if result, err := e.Run(ctx); err != nil {
					e.logger.Error("knowledge export failed", zap.Error(err))
				} else {
					e.logger.Info("knowledge export completed",
						zap.Int("records", result.Records))
				}
			}
		}
	}()
}
