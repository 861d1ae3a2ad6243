package flow

import (
	"regexp"
)

// AccountFlow is the built-in guided flow for account management.
func AccountFlow() *Flow {
	return &Flow{
		Name:  "account",
		Entry: regexp.MustCompile(`\b(account|profile)\b`),
		Root:  "start",
		Nodes: map[string]*Node{
			"start": {
				Reply: "I can help with your account. Would you like to update your info, reset your password, or delete your account?",
				Transitions: []Transition{
					{Keyword: "update", Next: "update_info"},
					{Keyword: "info", Next: "update_info"},
					{Keyword: "reset", Next: "reset_password"},
					{Keyword: "password", Next: "reset_password"},
					{Keyword: "delete", Next: "delete_account"},
					{Keyword: "close", Next: "delete_account"},
				},
			},
			"update_info": {
				Reply: "You can update your information from Settings > Profile. Changes take effect immediately.",
			},
			"reset_password": {
				Reply: "To reset your password, go to Settings > Security and choose \"Reset password\". We'll email you a reset link.",
			},
			"delete_account": {
				Reply: "Deleting your account is permanent. Go to Settings > Account > Delete account to confirm. Your data is removed within 30 days.",
			},
		},
	}
}
