package predict

import (
	"fmt"

	"github.com/capitalize-ai/response-engine/pkg/logger"
)

// Provider is the type of prediction provider.
type Provider string

const (
	ProviderHTTP      Provider = "http"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// Options configures the provider factory.
type Options struct {
	Endpoint        string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	Model           string
}

// New creates a predictor for the given provider. The HTTP collaborator is
// the default.
func New(provider Provider, opts Options, log *logger.Logger) (Predictor, error) {
	switch provider {
	case ProviderOpenAI:
		p, err := NewOpenAIPredictor(opts.OpenAIAPIKey, opts.Model, log)
		if err != nil {
			return nil, err
		}
		return p, nil
	case ProviderAnthropic:
		p, err := NewAnthropicPredictor(opts.AnthropicAPIKey, opts.Model, log)
		if err != nil {
			return nil, err
		}
		return p, nil
	case ProviderHTTP, "":
		if opts.Endpoint == "" {
			return nil, fmt.Errorf("prediction endpoint is required")
		}
		return NewHTTPPredictor(opts.Endpoint, log), nil
	default:
		return nil, fmt.Errorf("unknown prediction provider %q", provider)
	}
}
