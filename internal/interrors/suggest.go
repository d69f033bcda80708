package interrors

import (
	"fmt"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Suggest picks the closest candidate to name (by Levenshtein distance via
// fuzzy.LevenshteinDistance; the first of equally close candidates wins)
// and formats it as a "did you mean" suffix, or "" when nothing is close
// enough. Used for NameError/AttributeError/
// UnboundLocalError where the caller has a candidate name list (typically
// object.Environment.VisibleNames or a class's attribute set).
func Suggest(name string, candidates []string) string {
	best, bestDist := "", maxSuggestDistance(name)+1
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf("Did you mean: '%s'?", best)
}

// maxSuggestDistance scales the acceptable edit distance with name length so
// short names don't match unrelated short candidates.
func maxSuggestDistance(name string) int {
	n := len(name)
	switch {
	case n <= 2:
		return 1
	case n <= 5:
		return 2
	default:
		return 3
	}
}

// WithSuggestion attaches a "did you mean" suffix computed from candidates
// and returns the same error for chaining at the raise site.
func (e *CompilerError) WithSuggestion(name string, candidates []string) *CompilerError {
	e.Suggestion = Suggest(name, candidates)
	return e
}
