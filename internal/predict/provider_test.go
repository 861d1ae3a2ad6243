package predict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitalize-ai/response-engine/pkg/logger"
)

func TestNewProvider(t *testing.T) {
	log := logger.NewNop()

	t.Run("http default", func(t *testing.T) {
		p, err := New("", Options{Endpoint: "http://localhost:9000/predict"}, log)
		require.NoError(t, err)
		assert.IsType(t, &HTTPPredictor{}, p)
	})

	t.Run("http requires endpoint", func(t *testing.T) {
		_, err := New(ProviderHTTP, Options{}, log)
		assert.Error(t, err)
	})

	t.Run("openai with key", func(t *testing.T) {
		p, err := New(ProviderOpenAI, Options{OpenAIAPIKey: "sk-test"}, log)
		require.NoError(t, err)
		assert.IsType(t, &OpenAIPredictor{}, p)
	})

	t.Run("anthropic with key", func(t *testing.T) {
		p, err := New(ProviderAnthropic, Options{AnthropicAPIKey: "sk-ant-test"}, log)
		require.NoError(t, err)
		assert.IsType(t, &AnthropicPredictor{}, p)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := New("oracle", Options{}, log)
		assert.Error(t, err)
	})
}

// Callers check the returned interface against nil before use, so a failed
// construction must yield a true nil interface rather than an interface
// wrapping a nil concrete pointer.
func TestNewProviderMissingKeyReturnsNilInterface(t *testing.T) {
	log := logger.NewNop()

	for _, provider := range []Provider{ProviderOpenAI, ProviderAnthropic} {
		t.Run(string(provider), func(t *testing.T) {
			p, err := New(provider, Options{}, log)
			require.Error(t, err)
			if p != nil {
				t.Fatalf("expected nil Predictor, got %T", p)
			}
		})
	}
}
