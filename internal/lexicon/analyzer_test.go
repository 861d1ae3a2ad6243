package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitalize-ai/response-engine/internal/model"
)

func TestAnalyze_Keywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "drops stop words",
			text: "I need to reset my password",
			want: []string{"reset", "password"},
		},
		{
			name: "deduplicates",
			text: "password password PASSWORD",
			want: []string{"password"},
		},
		{
			name: "strips surrounding punctuation",
			text: "refund, now!",
			want: []string{"refund"},
		},
		{
			name: "empty message",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.text)
			if tt.want == nil {
				assert.Empty(t, got.Keywords)
				return
			}
			assert.Equal(t, tt.want, got.Keywords)
		})
	}
}

func TestAnalyze_SentimentLastMatchWins(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.Sentiment
	}{
		{"neutral", "where is the invoice", model.SentimentNeutral},
		{"positive", "this is great", model.SentimentPositive},
		{"negative", "this is terrible", model.SentimentNegative},
		{"negative after positive", "great app but the sync is broken", model.SentimentNegative},
		{"positive after negative", "it was broken before but now it works great", model.SentimentPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Analyze(tt.text).Sentiment)
		})
	}
}

func TestAnalyze_Categories(t *testing.T) {
	got := Analyze("My payment failed with an error on my account")

	// Scan order follows the vocabulary table: account before payment before
	// technical.
	require.GreaterOrEqual(t, len(got.Categories), 3)
	assert.Equal(t, model.CategoryAccount, got.Categories[0])
	assert.Equal(t, model.CategoryPayment, got.Categories[1])
	assert.Equal(t, model.CategoryTechnical, got.Categories[2])
}

func TestAnalyze_CategoriesReportedOnce(t *testing.T) {
	got := Analyze("error after error after error")

	count := 0
	for _, c := range got.Categories {
		if c == model.CategoryTechnical {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "splits on non-alphanumeric",
			text: "can't sync: data-loss?",
			want: []string{"t", "sync", "data", "loss"},
		},
		{
			name: "keeps words the full stop list would drop",
			text: "how do I get help",
			want: []string{"get", "help"},
		},
		{
			name: "deduplicates",
			text: "sync sync sync",
			want: []string{"sync"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.text))
		})
	}
}

func TestPrimaryCategory(t *testing.T) {
	assert.Equal(t, model.CategoryPayment, Analyze("refund please").PrimaryCategory())
	assert.Equal(t, model.CategoryGeneral, Analyze("xyzzy").PrimaryCategory())
}
