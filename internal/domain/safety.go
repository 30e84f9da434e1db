package domain

// SafetyTier classifies the risk of an action and governs confirmation policy.
type SafetyTier string

const (
	// TierReadOnly actions never require confirmation.
	TierReadOnly SafetyTier = "read_only"
	// TierStateChanging actions require confirmation only when the
	// immediately preceding action in the session failed.
	TierStateChanging SafetyTier = "state_changing"
	// TierDestructive actions always require confirmation and are always
	// recorded to the audit sink, confirmed or not.
	TierDestructive SafetyTier = "destructive"
)

// Known reports whether the tier is one of the three defined values.
func (t SafetyTier) Known() bool {
	switch t {
	case TierReadOnly, TierStateChanging, TierDestructive:
		return true
	default:
		return false
	}
}
