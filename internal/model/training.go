// Package model defines data structures for the response engine.
package model

import (
	"strings"
	"time"
)

// Category is a coarse topical label for messages and training entries.
type Category string

const (
	CategoryAccount   Category = "account"
	CategoryPayment   Category = "payment"
	CategoryTechnical Category = "technical"
	CategoryFeature   Category = "feature"
	CategoryGeneral   Category = "general"
	CategoryNone      Category = ""
)

// MinResponseLength is the minimum trimmed response length a training entry
// must have before it is ever served.
const MinResponseLength = 5

// TrainingEntry is one learned stimulus-response pair.
type TrainingEntry struct {
	ID          string    `json:"id"`
	Trigger     string    `json:"trigger"`
	Response    string    `json:"response"`
	Category    Category  `json:"category,omitempty"`
	Keywords    []string  `json:"keywords,omitempty"`
	Active      bool      `json:"active"`
	NeedsReview bool      `json:"needs_review"`
	UsageCount  int       `json:"usage_count"`
	SuccessRate float64   `json:"success_rate"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Servable reports whether the entry's response may be returned to a user.
// Empty or near-empty responses are never served.
func (e *TrainingEntry) Servable() bool {
	return len(strings.TrimSpace(e.Response)) > MinResponseLength
}

// Interaction records one corpus-served reply so later feedback can be
// resolved back to the entry that produced it.
type Interaction struct {
	ID             string    `json:"id"`
	EntryID        string    `json:"entry_id"`
	ConversationID string    `json:"conversation_id"`
	Message        string    `json:"message"`
	WasHelpful     *bool     `json:"was_helpful,omitempty"`
	Note           string    `json:"note,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// UpdateTrainingRequest is the moderation request to update an entry.
type UpdateTrainingRequest struct {
	Response    *string `json:"response,omitempty"`
	Active      *bool   `json:"active,omitempty"`
	NeedsReview *bool   `json:"needs_review,omitempty"`
}

// CreateTrainingRequest is the request to author a new entry by hand.
type CreateTrainingRequest struct {
	Trigger  string   `json:"trigger"`
	Response string   `json:"response"`
	Category Category `json:"category,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// ListTrainingResponse is the response for listing training entries.
type ListTrainingResponse struct {
	Entries []TrainingEntry `json:"entries"`
	Total   int             `json:"total"`
}
