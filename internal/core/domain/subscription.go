package domain

import "time"

// SubscriptionState is the lifecycle state of a managed pipeline.
type SubscriptionState int

const (
	// StateUnsubscribed is a bound blueprint that has not been activated.
	StateUnsubscribed SubscriptionState = iota
	// StateActive is a live subscription that may still deliver.
	StateActive
	// StateCancelled is terminal. A cancelled subscription is never reused.
	StateCancelled
	// StateCompleted is terminal. The stream finished on its own.
	StateCompleted
)

// String returns the string representation of the state.
func (s SubscriptionState) String() string {
	switch s {
	case StateUnsubscribed:
		return "unsubscribed"
	case StateActive:
		return "active"
	case StateCancelled:
		return "cancelled"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Terminal returns true if the state can never deliver again.
func (s SubscriptionState) Terminal() bool {
	return s == StateCancelled || s == StateCompleted
}

// Diagnostic records a terminal pipeline failure.
type Diagnostic struct {
	// ID uniquely identifies the record.
	ID string

	// Pipeline is the output slot of the failing pipeline.
	Pipeline string

	// SubscriptionID identifies the subscription that failed.
	SubscriptionID string

	// Error is the error message.
	Error string

	// OccurredAt is when the failure was caught.
	OccurredAt time.Time
}
