// Package reconcile implements the OpenRefine reconciliation pipeline for
// the id.loc.gov suggest2 API.
package reconcile

import (
	"context"
	"log/slog"
	"sync"

	"github.com/timothy-mendenhall/lc-reconcile-extended/internal/scoring"
	"github.com/timothy-mendenhall/lc-reconcile-extended/internal/suggest"
	"github.com/timothy-mendenhall/lc-reconcile-extended/internal/textnorm"
	"github.com/timothy-mendenhall/lc-reconcile-extended/internal/vocab"
)

// Suggester fetches candidate hits for one vocabulary and query. Satisfied
// by *suggest.Client.
type Suggester interface {
	Suggest(ctx context.Context, v vocab.Type, query string) ([]suggest.Hit, error)
}

// Service orchestrates a reconciliation batch: type resolution, upstream
// lookup, scoring, and ranking. It holds no per-request state; one Service
// serves all requests.
type Service struct {
	registry  *vocab.Registry
	suggester Suggester
	normalize func(string) string
}

// NewService wires the reconciliation pipeline. A nil normalize falls back
// to textnorm.Normalize.
func NewService(registry *vocab.Registry, suggester Suggester, normalize func(string) string) *Service {
	if normalize == nil {
		normalize = textnorm.Normalize
	}
	return &Service{
		registry:  registry,
		suggester: suggester,
		normalize: normalize,
	}
}

// Metadata returns the static service description: name, the advertised
// types, and the view URL template.
func (s *Service) Metadata() Metadata {
	return Metadata{
		Name:            "LoC Reconciliation Service",
		DefaultTypes:    s.registry.ListAll(),
		IdentifierSpace: "http://localhost/identifier",
		SchemaSpace:     "http://localhost/schema",
		View:            View{URL: "{{id}}"},
	}
}

// Reconcile runs a batch of keyed queries. The second return value is false
// when any entry omits its type; callers should answer with Metadata()
// instead of a partial batch. Individual upstream failures degrade to an
// empty result list for that slot only.
func (s *Service) Reconcile(ctx context.Context, batch map[string]Query) (map[string]Result, bool) {
	for key, q := range batch {
		if q.Type == nil {
			slog.Info("Batch entry missing type, answering with metadata", "key", key)
			return nil, false
		}
	}

	results := make(map[string]Result, len(batch))

	// Queries are independent, so upstream calls run concurrently. Results
	// are keyed under the mutex; a slow or failing query never touches
	// another slot.
	var mu sync.Mutex
	var wg sync.WaitGroup
	for key, q := range batch {
		wg.Add(1)
		go func(key string, q Query) {
			defer wg.Done()
			candidates := s.search(ctx, q.Query, *q.Type)
			mu.Lock()
			results[key] = Result{Result: candidates}
			mu.Unlock()
		}(key, q)
	}
	wg.Wait()

	return results, true
}

// search runs one query through the full pipeline and returns the ranked,
// capped candidate list. Failures yield an empty list, never an error.
func (s *Service) search(ctx context.Context, rawQuery, typeID string) []Candidate {
	query := s.normalize(rawQuery)
	vt := s.registry.Resolve(typeID)

	hits, err := s.suggester.Suggest(ctx, vt, query)
	if err != nil {
		slog.Warn("Suggest query failed", "type", vt.ID, "query", query, "err", err)
		return []Candidate{}
	}

	candidates := make([]Candidate, 0, len(hits))
	for _, hit := range hits {
		if hit.Label == "" {
			// A hit without a label cannot be scored or shown.
			continue
		}
		score, match := scoring.Score(query, hit.Label)
		slog.Debug("Scored candidate", "label", hit.Label, "score", score, "uri", hit.URI)
		candidates = append(candidates, Candidate{
			ID:    hit.URI,
			Name:  hit.Label,
			Score: score,
			Match: match,
			Type:  vt,
		})
	}

	return Rank(candidates)
}
