// Package lexicon provides the lexical analysis step of the response engine:
// tokenization, stop-word filtering, sentiment, and category detection.
// All functions are pure; the word tables are built once at process start.
package lexicon

import (
	"strings"
	"unicode"

	"github.com/capitalize-ai/response-engine/internal/model"
)

// Analyze runs the full lexical pass over a message: keyword extraction,
// sentiment, and category detection.
func Analyze(text string) *model.Analysis {
	lower := strings.ToLower(text)

	keywords := extractKeywords(lower)

	return &model.Analysis{
		Keywords:   keywords,
		Sentiment:  detectSentiment(keywords),
		Categories: DetectCategories(lower),
	}
}

// Tokenize is the lightweight tokenizer used for corpus scoring. It splits on
// non-alphanumeric boundaries and applies a smaller stop-word list than
// Analyze, so more of the overlap signal survives.
func Tokenize(text string) []string {
	parts := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(parts))
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if _, stop := scoringStopWords[p]; stop {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		tokens = append(tokens, p)
	}
	return tokens
}

// extractKeywords splits the lower-cased message on whitespace, strips
// surrounding punctuation, and drops stop-words and duplicates.
func extractKeywords(lower string) []string {
	parts := strings.Fields(lower)

	seen := make(map[string]struct{}, len(parts))
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		word := strings.TrimFunc(p, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if word == "" {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
	}
	return keywords
}

// detectSentiment scans the filtered keywords against the sentiment word
// lists. The last matching keyword wins: a negative word after a positive one
// resolves the whole message negative, and vice versa.
func detectSentiment(keywords []string) model.Sentiment {
	sentiment := model.SentimentNeutral
	for _, kw := range keywords {
		if _, ok := positiveWords[kw]; ok {
			sentiment = model.SentimentPositive
		}
		if _, ok := negativeWords[kw]; ok {
			sentiment = model.SentimentNegative
		}
	}
	return sentiment
}

// DetectCategories scans the raw lower-cased message for substring matches
// against the static category vocabulary. Results follow vocabulary scan
// order, with each category reported at most once.
func DetectCategories(lower string) []model.Category {
	var categories []model.Category
	for _, group := range categoryVocab {
		for _, term := range group.Terms {
			if strings.Contains(lower, term) {
				categories = append(categories, group.Category)
				break
			}
		}
	}
	return categories
}
