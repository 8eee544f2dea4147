package audit

import "time"

// Action identifies what happened. Values are dotted so downstream consumers
// can filter by prefix.
type Action string

const (
	ActionQuoteCreated     Action = "quote.created"
	ActionQuoteActivated   Action = "quote.activated"
	ActionQuoteDeleted     Action = "quote.deleted"
	ActionPaymentSucceeded Action = "payment.succeeded"
	ActionPaymentFailed    Action = "payment.failed"
	ActionUserLoggedIn     Action = "user.login"
	ActionUserLoggedOut    Action = "user.logout"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"user_id,omitempty"`
	Action    Action    `json:"action"`
	Product   string    `json:"product,omitempty"`
	QuoteID   string    `json:"quote_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
}
