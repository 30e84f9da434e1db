package parser

import (
	"math"
	"testing"
)

func TestSequenceRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"open desktop", "open desktop", 1.0},
		{"", "", 1.0},
		{"open", "", 0.0},
		{"", "open", 0.0},
		{"opn", "open", 6.0 / 7.0},
		{"desktp", "desktop", 12.0 / 13.0},
	}
	for _, tt := range tests {
		if got := sequenceRatio(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("sequenceRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSequenceRatioIsSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"opn desktp", "open desktop"},
		{"hello", "world"},
		{"kill process", "list process"},
	}
	for _, p := range pairs {
		if ab, ba := sequenceRatio(p[0], p[1]), sequenceRatio(p[1], p[0]); math.Abs(ab-ba) > 1e-9 {
			t.Errorf("sequenceRatio not symmetric for %q/%q: %v vs %v", p[0], p[1], ab, ba)
		}
	}
}
