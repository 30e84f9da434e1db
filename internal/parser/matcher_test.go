package parser

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/intentshell/internal/domain"
)

func catalog() []domain.Trigger {
	return []domain.Trigger{
		{Pattern: "open desktop", ActionID: "open_desktop", HandlerID: "filesystem"},
		{Pattern: "open downloads", ActionID: "open_downloads", HandlerID: "filesystem"},
		{Pattern: "list files", ActionID: "list_files", HandlerID: "filesystem"},
		{Pattern: "kill process", ActionID: "kill_process", HandlerID: "system"},
	}
}

func TestScoreExactPatternScoresFullWeight(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		want   float64
	}{
		{name: "default weight", weight: 0, want: 1.0},
		{name: "reduced weight", weight: 0.9, want: 0.9},
		{name: "clamped above one", weight: 1.5, want: 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			triggers := []domain.Trigger{{
				Pattern:    "open desktop",
				ActionID:   "open_desktop",
				HandlerID:  "filesystem",
				BaseWeight: tt.weight,
			}}
			got := Score("open desktop", triggers)
			if len(got) != 1 {
				t.Fatalf("Score() returned %d candidates, want 1", len(got))
			}
			if math.Abs(got[0].Confidence-tt.want) > 1e-9 {
				t.Errorf("confidence = %v, want %v", got[0].Confidence, tt.want)
			}
		})
	}
}

func TestScoreConfidenceStaysInRange(t *testing.T) {
	inputs := []string{
		"open desktop",
		"open the desktop folder please",
		"opn desktp",
		"kill process 1234",
		"completely unrelated gibberish",
		"ls",
	}
	for _, input := range inputs {
		for _, c := range Score(input, catalog()) {
			if c.Confidence < 0.0 || c.Confidence > 1.0 {
				t.Errorf("Score(%q): confidence %v out of [0,1] for %s", input, c.Confidence, c.ActionID)
			}
		}
	}
}

func TestScoreTypoLandsInSuggestionWindow(t *testing.T) {
	got := Score("opn desktp", catalog())
	if len(got) == 0 {
		t.Fatal("Score() returned no candidates")
	}
	top := got[0]
	if top.ActionID != "open_desktop" {
		t.Fatalf("top candidate = %s, want open_desktop", top.ActionID)
	}
	if top.Confidence < SuggestThreshold || top.Confidence >= ExecuteThreshold {
		t.Errorf("confidence = %v, want within [%v, %v)", top.Confidence, SuggestThreshold, ExecuteThreshold)
	}
	if d := Resolve(got); d.Kind != domain.DecisionSuggest {
		t.Errorf("Resolve() = %s, want suggest", d.Kind)
	}
}

func TestScoreSubstringRelationIsFullMatch(t *testing.T) {
	got := Score("please open desktop now", catalog())
	if len(got) == 0 {
		t.Fatal("Score() returned no candidates")
	}
	if got[0].ActionID != "open_desktop" || got[0].Confidence != 1.0 {
		t.Errorf("top = %s@%v, want open_desktop@1.0", got[0].ActionID, got[0].Confidence)
	}
}

func TestScoreTieKeepsCatalogOrder(t *testing.T) {
	triggers := []domain.Trigger{
		{Pattern: "show status", ActionID: "status_a", HandlerID: "first"},
		{Pattern: "show status", ActionID: "status_b", HandlerID: "second"},
	}
	got := Score("show status", triggers)
	want := []domain.ScoredCandidate{
		{ActionID: "status_a", HandlerID: "first", Confidence: 1.0, MatchedPattern: "show status"},
		{ActionID: "status_b", HandlerID: "second", Confidence: 1.0, MatchedPattern: "show status"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Score() mismatch (-want +got):\n%s", diff)
	}
}

func TestScoreIsIdempotent(t *testing.T) {
	first := Score("opn desktp", catalog())
	second := Score("opn desktp", catalog())
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated Score() differs (-first +second):\n%s", diff)
	}
}

func TestScoreEmptyInputAndCatalog(t *testing.T) {
	if got := Score("", catalog()); len(got) != 0 {
		t.Errorf("Score(empty input) = %v, want empty", got)
	}
	if got := Score("open desktop", nil); len(got) != 0 {
		t.Errorf("Score(empty catalog) = %v, want empty", got)
	}
	if got := Score("   ", catalog()); len(got) != 0 {
		t.Errorf("Score(blank input) = %v, want empty", got)
	}
}

func TestScoreSkipsTriggersWithNoSharedCharacters(t *testing.T) {
	// "xyz" shares no characters with any pattern; the prefilter drops the
	// whole catalog and the full scorer would produce zero confidence for
	// each anyway.
	if got := Score("xyz", catalog()); len(got) != 0 {
		t.Errorf("Score() = %v, want empty", got)
	}
}

func TestScoreNonASCIIExactMatchIsFullConfidence(t *testing.T) {
	// Normalization keeps letters of every script, so the prefilter must not
	// drop a trigger whose pattern is written outside [a-z0-9].
	triggers := []domain.Trigger{
		{Pattern: "打开桌面", ActionID: "open_desktop", HandlerID: "filesystem"},
	}
	got := Score("打开桌面", triggers)
	if len(got) != 1 {
		t.Fatalf("Score() = %v, want one candidate", got)
	}
	if got[0].Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0", got[0].Confidence)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  Open Desktop!  ", want: "open desktop"},
		{in: "open ~/docs/notes", want: "open /docs/notes"},
		{in: "what's   up?", want: "what s up"},
		{in: `open C:\Users\me`, want: `open c \users\me`},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
