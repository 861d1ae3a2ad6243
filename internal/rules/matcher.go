// Package rules implements the static keyword intent rules: a fixed,
// priority-ordered rule list for common intents. Unlike the corpus scorer
// this is not a scored match; the first rule whose keyword set intersects the
// message keywords wins outright.
package rules

import (
	"sort"
)

// Rule is one static intent rule.
type Rule struct {
	Name     string
	Keywords []string
	Response string
	Priority int
}

// Matcher evaluates rules in descending priority order.
type Matcher struct {
	rules []Rule
}

// NewMatcher creates a matcher over the given rules, sorted once by
// descending priority. Sorting is stable so equal priorities keep their
// declaration order.
func NewMatcher(rules []Rule) *Matcher {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})
	return &Matcher{rules: sorted}
}

// Match returns the response of the first rule intersecting the keywords.
func (m *Matcher) Match(keywords []string) (string, bool) {
	set := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		set[kw] = struct{}{}
	}

	for _, r := range m.rules {
		for _, kw := range r.Keywords {
			if _, ok := set[kw]; ok {
				return r.Response, true
			}
		}
	}
	return "", false
}

// DefaultRules is the built-in intent rule set.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "greeting",
			Keywords: []string{"hello", "hi", "hey", "greetings", "howdy"},
			Response: "Hello! How can I help you today?",
			Priority: 100,
		},
		{
			Name:     "thanks",
			Keywords: []string{"thanks", "thank", "thx", "appreciated"},
			Response: "You're welcome! Is there anything else I can help with?",
			Priority: 90,
		},
		{
			// Deliberately narrow: "account" and "password" alone belong to
			// the guided account flow, which runs after these rules.
			Name:     "account",
			Keywords: []string{"login", "signin", "username", "credentials"},
			Response: "It sounds like an account question. You can manage your account from Settings, or tell me more about what's going on.",
			Priority: 50,
		},
		{
			Name:     "payment",
			Keywords: []string{"payment", "billing", "invoice", "refund", "subscription"},
			Response: "For billing questions, check Settings > Billing. If something looks wrong with a charge, tell me the details and I'll do my best to help.",
			Priority: 40,
		},
		{
			Name:     "technical",
			Keywords: []string{"error", "bug", "crash", "broken"},
			Response: "Sorry you're hitting a technical problem. Could you describe what you were doing when it happened?",
			Priority: 30,
		},
	}
}
