package predict

import (
	"context"
	"errors"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/capitalize-ai/response-engine/internal/model"
	"github.com/capitalize-ai/response-engine/pkg/logger"
	"github.com/capitalize-ai/response-engine/pkg/metrics"
)

// AnthropicPredictor answers questions with an Anthropic message completion.
type AnthropicPredictor struct {
	client *anthropic.Client
	model  string
	logger *logger.Logger
}

// NewAnthropicPredictor creates an Anthropic-backed predictor.
func NewAnthropicPredictor(apiKey, modelName string, log *logger.Logger) (*AnthropicPredictor, error) {
	if apiKey == "" {
		return nil, errors.New("Anthropic API key is required")
	}
	if modelName == "" {
		modelName = "claude-3-5-haiku-20241022"
	}

	return &AnthropicPredictor{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  modelName,
		logger: log,
	}, nil
}

// Name returns the provider name.
func (p *AnthropicPredictor) Name() string {
	return "anthropic"
}

// Predict sends the question as a single-turn message.
func (p *AnthropicPredictor) Predict(ctx context.Context, question string) *model.Prediction {
	start := time.Now()

	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.F(p.model),
		MaxTokens: anthropic.F(int64(512)),
		System: anthropic.F([]anthropic.TextBlockParam{{
			Type: anthropic.F(anthropic.TextBlockParamTypeText),
			Text: anthropic.F(predictSystemPrompt),
		}}),
		Messages: anthropic.F([]anthropic.MessageParam{{
			Role: anthropic.F(anthropic.MessageParamRoleUser),
			Content: anthropic.F([]anthropic.ContentBlockParamUnion{
				anthropic.TextBlockParam{
					Type: anthropic.F(anthropic.TextBlockParamTypeText),
					Text: anthropic.F(question),
				},
			}),
		}}),
	})
	if err != nil {
		p.logger.Warn("anthropic prediction failed", zap.Error(err))
		metrics.RecordPrediction(p.Name(), "failure", time.Since(start).Seconds())
		return &model.Prediction{Success: false}
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == anthropic.ContentBlockTypeText {
			content += block.Text
		}
	}
	if content == "" {
		metrics.RecordPrediction(p.Name(), "failure", time.Since(start).Seconds())
		return &model.Prediction{Success: false}
	}

	metrics.RecordPrediction(p.Name(), "success", time.Since(start).Seconds())
	return &model.Prediction{
		Answer:     content,
		Confidence: confidenceForStop(string(resp.StopReason)),
		Success:    true,
	}
}
