package classifier

import "sort"

// ArgMax returns the class with the highest confidence. Ties resolve to
// the lexicographically smallest label. The second return is false for an
// empty score mapping.
func ArgMax(s Scores) (string, bool) {
	best, found := "", false
	for label, score := range s {
		if !found || score > s[best] || (score == s[best] && label < best) {
			best, found = label, true
		}
	}
	return best, found
}

// Threshold returns the labels whose confidence is at least t, sorted for
// deterministic output. It implements a multi-label decision over the soft
// evidence.
func Threshold(s Scores, t float64) []string {
	out := make([]string, 0, len(s))
	for label, score := range s {
		if score >= t {
			out = append(out, label)
		}
	}
	sort.Strings(out)
	return out
}
