package model

// Sentiment is the coarse emotional polarity of a message.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Analysis is the transient result of running the lexical analyzer over a
// message. It is never persisted.
type Analysis struct {
	Keywords   []string   `json:"keywords"`
	Sentiment  Sentiment  `json:"sentiment"`
	Categories []Category `json:"categories"`
}

// PrimaryCategory returns the first detected category, or general when the
// scan found nothing.
func (a *Analysis) PrimaryCategory() Category {
	if len(a.Categories) > 0 {
		return a.Categories[0]
	}
	return CategoryGeneral
}

// HasCategory reports whether the scan detected the given category.
func (a *Analysis) HasCategory(c Category) bool {
	for _, got := range a.Categories {
		if got == c {
			return true
		}
	}
	return false
}

// Prediction is the normalized result of one external prediction call.
type Prediction struct {
	Answer     string  `json:"answer,omitempty"`
	Confidence float64 `json:"confidence"`
	Fallback   bool    `json:"fallback"`
	Success    bool    `json:"success"`
}
