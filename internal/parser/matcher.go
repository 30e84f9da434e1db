// Package parser holds the algorithmic core: the semantic matcher, the entity
// extractor and the ambiguity resolver. Everything here is a pure function of
// its inputs so that resolving the same input against an unchanged catalog is
// idempotent.
package parser

import (
	"sort"
	"strings"
	"unicode"

	"github.com/doeshing/intentshell/internal/domain"
)

// Scoring weights for the two-term heuristic.
const (
	tokenOverlapWeight = 0.6
	sequenceSimWeight  = 0.4
	approxTokenRatio   = 0.72 // per-token similarity needed for half credit
	approxTokenCredit  = 0.5
)

// Normalize lowercases, trims and strips punctuation except path separators.
// Punctuation runes are replaced by spaces so surrounding tokens stay split.
func Normalize(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range strings.ToLower(input) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '/' || r == '\\':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Score ranks every trigger against the input. Candidates are sorted by
// confidence descending; exact ties preserve catalog registration order.
// Empty input or an empty catalog yields an empty result, not an error.
func Score(input string, triggers []domain.Trigger) []domain.ScoredCandidate {
	norm := Normalize(input)
	if norm == "" || len(triggers) == 0 {
		return nil
	}
	inputTokens := strings.Fields(norm)
	inputMask := charMask(norm)

	candidates := make([]domain.ScoredCandidate, 0, len(triggers))
	for _, trig := range triggers {
		pattern := Normalize(trig.Pattern)
		if pattern == "" {
			continue
		}
		// A trigger sharing no characters with the input can only score
		// zero, and zero-confidence candidates are never emitted, so
		// skipping here cannot change the ranked outcome.
		if charMask(pattern)&inputMask == 0 {
			continue
		}
		raw := rawScore(norm, inputTokens, pattern)
		confidence := clamp01(raw * trig.Weight())
		if confidence <= 0 {
			continue
		}
		candidates = append(candidates, domain.ScoredCandidate{
			ActionID:       trig.ActionID,
			HandlerID:      trig.HandlerID,
			Confidence:     confidence,
			MatchedPattern: trig.Pattern,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
	return candidates
}

// rawScore computes the unweighted confidence for one trigger pattern.
func rawScore(input string, inputTokens []string, pattern string) float64 {
	// Literal substring relation, either direction, counts as a full match.
	if strings.Contains(input, pattern) || strings.Contains(pattern, input) {
		return 1.0
	}
	overlap := tokenOverlap(inputTokens, strings.Fields(pattern))
	seq := sequenceRatio(input, pattern)
	return tokenOverlapWeight*overlap + sequenceSimWeight*seq
}

// tokenOverlap measures how much of the pattern the input covers. An exact
// token match earns full credit; an approximate match (per-token sequence
// ratio at or above approxTokenRatio) earns half credit, which is what lets
// typo-bearing inputs like "opn desktp" land in the suggestion window instead
// of being rejected outright.
func tokenOverlap(inputTokens, patternTokens []string) float64 {
	if len(patternTokens) == 0 {
		return 0.0
	}
	var credit float64
	for _, pt := range patternTokens {
		best := 0.0
		for _, it := range inputTokens {
			if it == pt {
				best = 1.0
				break
			}
			if r := sequenceRatio(it, pt); r >= approxTokenRatio && approxTokenCredit > best {
				best = approxTokenCredit
			}
		}
		credit += best
	}
	return credit / float64(len(patternTokens))
}

// charMask builds a bitmask over [a-z0-9] for the cheap prefilter. Any other
// non-space rune sets a shared catch-all bit: normalization keeps letters of
// every script, so two non-ASCII strings must still collide here rather than
// filter each other out.
func charMask(s string) uint64 {
	var mask uint64
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			mask |= 1 << uint(r-'a')
		case r >= '0' && r <= '9':
			mask |= 1 << uint(26+r-'0')
		case r != ' ':
			mask |= 1 << 36
		}
	}
	return mask
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
