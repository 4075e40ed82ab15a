package reconcile

import (
	"fmt"
	"testing"
)

func TestRank(t *testing.T) {
	candidates := []Candidate{
		{ID: "a", Score: 40},
		{ID: "b", Score: 90},
		{ID: "c", Score: 90},
		{ID: "d", Score: 100},
		{ID: "e", Score: 40},
	}

	ranked := Rank(candidates)

	wantOrder := []string{"d", "b", "c", "a", "e"}
	for i, id := range wantOrder {
		if ranked[i].ID != id {
			t.Errorf("ranked[%d].ID = %s, want %s", i, ranked[i].ID, id)
		}
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Errorf("Scores not non-increasing at %d", i)
		}
	}
}

func TestRankStableForEqualScores(t *testing.T) {
	// Upstream orders by its own relevance heuristic; ties must preserve it.
	candidates := make([]Candidate, 10)
	for i := range candidates {
		candidates[i] = Candidate{ID: fmt.Sprintf("hit-%d", i), Score: 50}
	}

	ranked := Rank(candidates)
	for i, c := range ranked {
		if c.ID != fmt.Sprintf("hit-%d", i) {
			t.Errorf("Equal-score order changed at %d: %s", i, c.ID)
		}
	}
}

func TestRankCapsAtMaxResults(t *testing.T) {
	candidates := make([]Candidate, 75)
	for i := range candidates {
		candidates[i] = Candidate{ID: fmt.Sprintf("hit-%d", i), Score: i % 100}
	}

	ranked := Rank(candidates)
	if len(ranked) != MaxResults {
		t.Errorf("Expected %d results, got %d", MaxResults, len(ranked))
	}
}

func TestRankEmpty(t *testing.T) {
	ranked := Rank([]Candidate{})
	if len(ranked) != 0 {
		t.Errorf("Expected empty output, got %d", len(ranked))
	}
}
