package responder

import (
	"fmt"
	"strings"

	"github.com/capitalize-ai/response-engine/internal/model"
)

// ConfidenceGate is the threshold above which an external prediction is
// trusted without triggering learning.
const ConfidenceGate = 0.6

// MachineSuffix marks replies that came from the external prediction service.
const MachineSuffix = " 🤖"

// EmpathyReply is returned for any message with negative sentiment, ahead of
// every other resolver past the static tables.
const EmpathyReply = "I'm really sorry you're having a frustrating experience. Tell me what's going wrong and I'll do everything I can to fix it."

// greetingTable maps exact trimmed lower-cased messages to fixed replies.
var greetingTable = map[string]string{
	"hello":          "Hello! How can I help you today?",
	"hi":             "Hi there! What can I do for you?",
	"hey":            "Hey! What can I help you with?",
	"good morning":   "Good morning! How can I help?",
	"good afternoon": "Good afternoon! How can I help?",
	"good evening":   "Good evening! How can I help?",
	"help": "I can answer questions about your account, payments, and technical issues. Just describe what you need in your own words.",
	"bye":     "Goodbye! Feel free to come back any time.",
	"goodbye": "Goodbye! Feel free to come back any time.",
}

// contextTriggers maps session topics to the trigger words scanned over the
// last few messages of a conversation.
var contextTriggers = []struct {
	Topic    model.Category
	Triggers []string
}{
	{model.CategoryAccount, []string{"account", "login", "password", "email", "profile"}},
	{model.CategoryPayment, []string{"payment", "billing", "invoice", "refund", "charge"}},
	{model.CategoryTechnical, []string{"error", "bug", "crash", "broken", "issue"}},
}

// contextualReply returns the canned reply for a topic the conversation has
// settled on. Sub-rules refine the wording from the current message.
func contextualReply(topic model.Category, lowerMessage string) string {
	switch topic {
	case model.CategoryAccount:
		if strings.Contains(lowerMessage, "password") {
			return "Since we've been talking about your account: you can reset your password from Settings > Security, and we'll email you a reset link."
		}
		if strings.Contains(lowerMessage, "email") {
			return "Since we've been talking about your account: you can change your email address from Settings > Profile. We'll ask you to confirm the new address."
		}
		return "It looks like we're still on your account. You can manage everything account-related from Settings, or tell me more and I'll point you to the right place."
	case model.CategoryPayment:
		if strings.Contains(lowerMessage, "refund") {
			return "About the billing issue: refunds are issued to the original payment method within 5-7 business days of approval."
		}
		return "It looks like we're still on billing. You can review charges and invoices under Settings > Billing, or give me the details and I'll help."
	case model.CategoryTechnical:
		return "It sounds like the technical issue is still bothering you. Could you share the exact error message or what you were doing when it happened?"
	default:
		return ""
	}
}

// holdingReply is returned when no resolver was confident, naming the
// category the escalation was filed under.
func holdingReply(category model.Category) string {
	return fmt.Sprintf("I don't have a good answer for that %s question yet, but I've forwarded it to our team. We'll get back to you soon!", category)
}

// topicFor narrows detected categories to the session topic enum.
func topicFor(categories []model.Category) model.Category {
	for _, c := range categories {
		switch c {
		case model.CategoryAccount, model.CategoryPayment, model.CategoryTechnical, model.CategoryFeature:
			return c
		}
	}
	return model.CategoryNone
}
