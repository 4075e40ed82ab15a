package reconcile

import "sort"

// MaxResults caps each result list. Common names can pull hundreds of
// suggest2 hits; OpenRefine only shows a handful.
const MaxResults = 20

// Rank sorts candidates by descending score and truncates to MaxResults.
// The sort is stable: equal scores keep upstream relevance order.
func Rank(candidates []Candidate) []Candidate {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if len(candidates) > MaxResults {
		candidates = candidates[:MaxResults]
	}
	return candidates
}
