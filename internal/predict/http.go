package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/capitalize-ai/response-engine/internal/model"
	"github.com/capitalize-ai/response-engine/pkg/logger"
	"github.com/capitalize-ai/response-engine/pkg/metrics"
)

type predictRequest struct {
	Question string `json:"question"`
}

type predictResponse struct {
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
	Fallback   bool    `json:"fallback"`
}

// HTTPPredictor calls the externally-hosted prediction service. It carries
// two retry layers: the outer policy retries whole attempts (status or
// answer failures included), the inner policy retries transport errors only.
type HTTPPredictor struct {
	endpoint  string
	client    *http.Client
	retry     RetryPolicy
	transport RetryPolicy
	logger    *logger.Logger
}

// NewHTTPPredictor creates a predictor for the given endpoint with default
// timeouts and retry policies.
func NewHTTPPredictor(endpoint string, log *logger.Logger) *HTTPPredictor {
	return &HTTPPredictor{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: DefaultConnectTimeout,
				}).DialContext,
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: DefaultConnectTimeout,
			},
		},
		retry:     RetryPolicy{MaxAttempts: DefaultAttempts, Delay: DefaultAttemptDelay},
		transport: RetryPolicy{MaxAttempts: DefaultTransportAttempts, Delay: DefaultTransportDelay},
		logger:    log,
	}
}

// Name returns the provider name.
func (p *HTTPPredictor) Name() string {
	return "http"
}

// Predict asks the external service for an answer. All attempts failing or
// returning an empty answer yields an unsuccessful Prediction with zero
// confidence.
func (p *HTTPPredictor) Predict(ctx context.Context, question string) *model.Prediction {
	start := time.Now()

	var result *model.Prediction
	err := p.retry.Do(ctx, func(ctx context.Context) error {
		pred, err := p.attempt(ctx, question)
		if err != nil {
			return err
		}
		result = pred
		return nil
	})
	if err != nil {
		p.logger.Warn("prediction attempts exhausted", zap.Error(err))
		metrics.RecordPrediction(p.Name(), "failure", time.Since(start).Seconds())
		return &model.Prediction{Success: false}
	}

	metrics.RecordPrediction(p.Name(), "success", time.Since(start).Seconds())
	return result
}

// attempt performs one application-level attempt: a request (with transport
// retry), a 2xx status check, and a non-empty answer check.
func (p *HTTPPredictor) attempt(ctx context.Context, question string) (*model.Prediction, error) {
	body, err := json.Marshal(predictRequest{Question: question})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	var resp *http.Response
	err = p.transport.Do(ctx, func(ctx context.Context) error {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
		if reqErr != nil {
			return reqErr
		}
		req.Header.Set("Content-Type", "application/json")

		r, doErr := p.client.Do(req)
		if doErr != nil {
			return doErr
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	// Drain before closing so the keep-alive connection can be reused by
	// the retry that usually follows a failed attempt.
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if out.Answer == "" {
		return nil, fmt.Errorf("empty answer")
	}

	return &model.Prediction{
		Answer:     out.Answer,
		Confidence: out.Confidence,
		Fallback:   out.Fallback,
		Success:    true,
	}, nil
}
