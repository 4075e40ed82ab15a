// Package scoring rates candidate labels against the user's query.
package scoring

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// MatchThreshold is the score a candidate must exceed (strictly) to be
// flagged as a confident match.
const MatchThreshold = 95

// TokenSortRatio computes an order-insensitive fuzzy similarity between two
// strings on a 0-100 scale. Both sides are lowercased, split into whitespace
// tokens, sorted, rejoined, and compared by normalized edit distance, so
// "Twain, Mark" and "Mark Twain," score the same regardless of word order.
func TokenSortRatio(a, b string) int {
	sa := tokenSort(a)
	sb := tokenSort(b)
	if sa == "" || sb == "" {
		return 0
	}
	return int(levenshtein.Similarity(sa, sb, nil)*100 + 0.5)
}

// Score rates a candidate label against the query. The match flag is set only
// when the score strictly exceeds 95; exact-but-reordered headings clear it,
// near misses do not. Empty inputs score zero.
func Score(query, label string) (int, bool) {
	score := TokenSortRatio(query, label)
	return score, score > MatchThreshold
}

func tokenSort(s string) string {
	tokens := strings.Fields(strings.ToLower(s))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
