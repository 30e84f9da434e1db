// Package domain defines core business entities and value objects for the
// intent shell.
//
// The domain layer is independent of infrastructure concerns and represents
// pure data structures shared across the matching, safety and planning
// components.
package domain

// Trigger is an immutable (pattern, action, handler, weight) tuple registered
// by a handler at startup and scored against user input.
type Trigger struct {
	// Pattern is the normalized phrase the matcher scores input against.
	Pattern string `yaml:"pattern"`

	// ActionID is an opaque identifier, globally unique across handlers.
	ActionID string `yaml:"action_id"`

	// HandlerID names the handler that owns and executes the action.
	HandlerID string `yaml:"handler_id"`

	// BaseWeight multiplies the final score. Zero means 1.0.
	BaseWeight float64 `yaml:"base_weight"`
}

// Weight returns the effective multiplier, defaulting to 1.0.
func (t Trigger) Weight() float64 {
	if t.BaseWeight == 0 {
		return 1.0
	}
	return t.BaseWeight
}

// Key returns the circuit-breaker key for the trigger's action.
func (t Trigger) Key() string {
	return t.HandlerID + ":" + t.ActionID
}

// ScoredCandidate is one ranked result of scoring input against the catalog.
// Produced fresh per parse call and discarded once the resolver consumes it.
type ScoredCandidate struct {
	ActionID       string
	HandlerID      string
	Confidence     float64
	MatchedPattern string
}

// Key returns the circuit-breaker key for the candidate's action.
func (c ScoredCandidate) Key() string {
	return c.HandlerID + ":" + c.ActionID
}
