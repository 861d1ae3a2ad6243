package predict

import (
	"context"
	"errors"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/capitalize-ai/response-engine/internal/model"
	"github.com/capitalize-ai/response-engine/pkg/logger"
	"github.com/capitalize-ai/response-engine/pkg/metrics"
)

const predictSystemPrompt = "You are a support assistant. Answer the user's question concisely. If you do not know the answer, reply with an empty message."

// OpenAIPredictor answers questions with an OpenAI chat completion. Because
// the model does not report a calibrated confidence, one is derived from the
// stop reason.
type OpenAIPredictor struct {
	client *openai.Client
	model  string
	logger *logger.Logger
}

// NewOpenAIPredictor creates an OpenAI-backed predictor.
func NewOpenAIPredictor(apiKey, modelName string, log *logger.Logger) (*OpenAIPredictor, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}

	return &OpenAIPredictor{
		client: openai.NewClient(apiKey),
		model:  modelName,
		logger: log,
	}, nil
}

// Name returns the provider name.
func (p *OpenAIPredictor) Name() string {
	return "openai"
}

// Predict sends the question as a single-turn chat completion.
func (p *OpenAIPredictor) Predict(ctx context.Context, question string) *model.Prediction {
	start := time.Now()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: predictSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
		MaxTokens:   512,
		Temperature: 0.2,
	})
	if err != nil {
		p.logger.Warn("openai prediction failed", zap.Error(err))
		metrics.RecordPrediction(p.Name(), "failure", time.Since(start).Seconds())
		return &model.Prediction{Success: false}
	}

	var content string
	var stopReason string
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
		stopReason = string(resp.Choices[0].FinishReason)
	}
	if content == "" {
		metrics.RecordPrediction(p.Name(), "failure", time.Since(start).Seconds())
		return &model.Prediction{Success: false}
	}

	metrics.RecordPrediction(p.Name(), "success", time.Since(start).Seconds())
	return &model.Prediction{
		Answer:     content,
		Confidence: confidenceForStop(stopReason),
		Success:    true,
	}
}

// confidenceForStop maps a completion stop reason to a coarse confidence. A
// truncated answer is not trusted past the pipeline's gate.
func confidenceForStop(stopReason string) float64 {
	switch stopReason {
	case "stop", "end_turn", "stop_sequence":
		return 0.85
	default:
		return 0.4
	}
}
