package parser

// sequenceRatio computes a normalized edit-similarity ratio in [0,1] over two
// strings, in the style of difflib's SequenceMatcher.ratio: twice the length
// of the longest common subsequence divided by the total length.
func sequenceRatio(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	ar := []rune(a)
	br := []rune(b)
	total := len(ar) + len(br)
	return (2.0 * float64(lcsLength(ar, br))) / float64(total)
}

// lcsLength is the classic DP longest-common-subsequence length with the
// two-row space optimization.
func lcsLength(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
