package session

import (
	"warbler/internal/models"
)

// Action is an operation gated by session identity.
type Action int

const (
	ActionCreateMessage Action = iota
	ActionDeleteMessage
)

// Decision is the outcome of an authorization check. Denials are
// values, not errors, and every denial looks the same to the caller:
// the response never reveals whether the session was anonymous or the
// wrong owner.
type Decision int

const (
	Denied Decision = iota
	Allowed
)

// Authorize decides whether the state may perform action. For
// ActionDeleteMessage, message must be the target; ownership is
// checked here rather than in the domain model, which stays
// owner-agnostic.
func Authorize(state State, action Action, message *models.Message) Decision {
	if !state.Authenticated() {
		return Denied
	}
	switch action {
	case ActionCreateMessage:
		return Allowed
	case ActionDeleteMessage:
		if message == nil || message.UserID != state.User.ID {
			return Denied
		}
		return Allowed
	}
	return Denied
}
