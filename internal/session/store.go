// Package session holds short-lived per-conversation state: a bounded message
// history, the inferred topic, and the decision-tree cursor. Sessions expire
// lazily after a period of inactivity.
package session

import (
	"strings"
	"sync"
	"time"

	"github.com/capitalize-ai/response-engine/internal/model"
)

const (
	// MaxHistory is the maximum number of messages kept per conversation.
	MaxHistory = 10

	// DefaultTTL is how long an idle session survives before a sweep
	// purges it.
	DefaultTTL = 30 * time.Minute

	// NoNode is the decision-tree cursor value for "not in a flow".
	NoNode = "none"
)

// session is the per-conversation mutable state. A session is only mutated by
// the request currently handling its conversation id.
type session struct {
	history    []string
	topic      model.Category
	treeNode   string
	lastActive time.Time
}

// Store is an in-memory session store shared across conversations. Access is
// keyed by conversation id; the lock is only held for map and field updates,
// never across blocking work.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a session store with the given idle TTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Touch appends a message to the conversation's history (lower-cased),
// updates the last-active timestamp, and truncates to the newest MaxHistory
// entries. The session is created if it does not exist.
func (s *Store) Touch(conversationID, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[conversationID]
	if !ok {
		sess = &session{treeNode: NoNode}
		s.sessions[conversationID] = sess
	}

	sess.history = append(sess.history, strings.ToLower(message))
	if len(sess.history) > MaxHistory {
		sess.history = sess.history[len(sess.history)-MaxHistory:]
	}
	sess.lastActive = s.now()
}

// Sweep purges the session if it has been idle longer than the TTL. It is
// called at the start of every message-handling pass for the conversation;
// there is no background timer.
func (s *Store) Sweep(conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[conversationID]
	if !ok {
		return
	}
	if s.now().Sub(sess.lastActive) > s.ttl {
		delete(s.sessions, conversationID)
	}
}

// Context returns the conversation's inferred topic, or CategoryNone.
func (s *Store) Context(conversationID string) model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sess, ok := s.sessions[conversationID]; ok {
		return sess.topic
	}
	return model.CategoryNone
}

// SetContext records the conversation's inferred topic.
func (s *Store) SetContext(conversationID string, topic model.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[conversationID]; ok {
		sess.topic = topic
	}
}

// TreeNode returns the decision-tree cursor for the conversation, or NoNode.
func (s *Store) TreeNode(conversationID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sess, ok := s.sessions[conversationID]; ok && sess.treeNode != "" {
		return sess.treeNode
	}
	return NoNode
}

// SetTreeNode records the decision-tree cursor for the conversation.
func (s *Store) SetTreeNode(conversationID, node string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[conversationID]; ok {
		sess.treeNode = node
	}
}

// Recent returns up to n of the newest history entries, oldest first.
func (s *Store) Recent(conversationID string, n int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[conversationID]
	if !ok || n <= 0 {
		return nil
	}

	start := len(sess.history) - n
	if start < 0 {
		start = 0
	}
	out := make([]string, len(sess.history)-start)
	copy(out, sess.history[start:])
	return out
}

// History returns a copy of the full bounded history, oldest first.
func (s *Store) History(conversationID string) []string {
	return s.Recent(conversationID, MaxHistory)
}

// Len returns the number of live sessions. Used by the session gauge.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
