package domain

// DecisionKind is the resolver's verdict over a ranked candidate list.
type DecisionKind string

const (
	// DecisionExecute means the top candidate is confident enough to run.
	DecisionExecute DecisionKind = "execute"
	// DecisionSuggest means the match is plausible but not safe to
	// auto-execute; the caller should disambiguate.
	DecisionSuggest DecisionKind = "suggest"
	// DecisionReject means no candidate cleared the minimum threshold.
	DecisionReject DecisionKind = "reject"
)

// Decision is the outcome of ambiguity resolution. Execute carries exactly the
// top candidate; Suggest carries the capped suggestion list; Reject carries
// neither.
type Decision struct {
	Kind        DecisionKind
	Top         ScoredCandidate
	Suggestions []ScoredCandidate
}
