package parser

import "github.com/doeshing/intentshell/internal/domain"

// Ambiguity thresholds. The [SuggestThreshold, ExecuteThreshold) window is
// "plausible but not safe to auto-execute": the resolver asks for
// disambiguation there instead of silently running a low-confidence guess.
// Boundary values are exact: 0.80 executes, 0.60 suggests.
const (
	ExecuteThreshold = 0.8
	SuggestThreshold = 0.6

	maxSuggestions = 3
)

// Resolve inspects ranked candidates and decides whether to execute the top
// match, ask for disambiguation, or reject. A Reject signals the caller to
// offer the input to the external reasoner, if one is available, before
// giving up.
func Resolve(candidates []domain.ScoredCandidate) domain.Decision {
	if len(candidates) == 0 {
		return domain.Decision{Kind: domain.DecisionReject}
	}

	top := candidates[0]
	switch {
	case top.Confidence >= ExecuteThreshold:
		return domain.Decision{Kind: domain.DecisionExecute, Top: top}
	case top.Confidence >= SuggestThreshold:
		suggestions := make([]domain.ScoredCandidate, 0, maxSuggestions)
		for _, c := range candidates {
			if c.Confidence < SuggestThreshold {
				break
			}
			suggestions = append(suggestions, c)
			if len(suggestions) == maxSuggestions {
				break
			}
		}
		return domain.Decision{Kind: domain.DecisionSuggest, Top: top, Suggestions: suggestions}
	default:
		return domain.Decision{Kind: domain.DecisionReject}
	}
}
