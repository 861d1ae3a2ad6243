package model

import (
	"time"
)

// HandleMessageRequest is the request to resolve an inbound message.
type HandleMessageRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// HandleMessageResponse is the resolved reply for an inbound message.
type HandleMessageResponse struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id"`
	InteractionID  string `json:"interaction_id,omitempty"`
}

// FeedbackRequest reports whether a previously served reply was helpful.
type FeedbackRequest struct {
	InteractionID string `json:"interaction_id"`
	WasHelpful    bool   `json:"was_helpful"`
	Note          string `json:"note,omitempty"`
}

// KnowledgeRecord is one exported question/answer pair consumed by the
// external prediction service's indexing process.
type KnowledgeRecord struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// ExportResult summarizes one knowledge export run.
type ExportResult struct {
	Records    int       `json:"records"`
	ExportedAt time.Time `json:"exported_at"`
}
