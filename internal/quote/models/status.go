package models

// Status is the lifecycle state of a quote.
//
// Transitions: pending -> active only. There is no cancelled or expired
// status; expiry is a display concern derived from CreatedAt, and unwanted
// quotes are deleted outright.
type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusActive
}

// CanTransitionTo reports whether the transition is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	return s == StatusPending && target == StatusActive
}
