package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/timothy-mendenhall/lc-reconcile-extended/internal/reconcile"
	"github.com/timothy-mendenhall/lc-reconcile-extended/internal/suggest"
	"github.com/timothy-mendenhall/lc-reconcile-extended/internal/vocab"
)

type fakeSuggester struct {
	hits map[string][]suggest.Hit
}

func (f *fakeSuggester) Suggest(ctx context.Context, v vocab.Type, query string) ([]suggest.Hit, error) {
	return f.hits[query], nil
}

func newTestHandler() *Handler {
	suggester := &fakeSuggester{
		hits: map[string][]suggest.Hit{
			"Paris": {
				{URI: "http://id.loc.gov/authorities/names/n79076241", Label: "Paris (France)"},
			},
		},
	}
	return New(reconcile.NewService(vocab.NewRegistry(), suggester, nil))
}

func TestHandleReconcileMetadata(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	handler.HandleReconcile(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %s", ct)
	}

	var meta reconcile.Metadata
	if err := json.Unmarshal(rec.Body.Bytes(), &meta); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if meta.Name != "LoC Reconciliation Service" {
		t.Errorf("Unexpected service name %q", meta.Name)
	}
	if len(meta.DefaultTypes) == 0 {
		t.Error("Expected defaultTypes in metadata")
	}
}

func TestHandleReconcileBatch(t *testing.T) {
	handler := newTestHandler()

	form := url.Values{}
	form.Set("queries", `{"q0": {"query": "Paris", "type": "Names--Geographic"}}`)
	req := httptest.NewRequest("POST", "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.HandleReconcile(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var results map[string]reconcile.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	candidates := results["q0"].Result
	if len(candidates) != 1 {
		t.Fatalf("Expected 1 candidate, got %d", len(candidates))
	}
	c := candidates[0]
	if c.ID != "http://id.loc.gov/authorities/names/n79076241" {
		t.Errorf("Unexpected id %s", c.ID)
	}
	if c.Name != "Paris (France)" {
		t.Errorf("Unexpected name %s", c.Name)
	}
	if c.Score < 0 || c.Score > 100 {
		t.Errorf("Score out of range: %d", c.Score)
	}
	if c.Type.ID != "Names--Geographic" {
		t.Errorf("Expected type echo, got %s", c.Type.ID)
	}
}

func TestHandleReconcileQueriesViaGet(t *testing.T) {
	handler := newTestHandler()

	queries := url.QueryEscape(`{"q0": {"query": "Paris", "type": "Names--Geographic"}}`)
	req := httptest.NewRequest("GET", "/?queries="+queries, nil)
	rec := httptest.NewRecorder()
	handler.HandleReconcile(rec, req)

	var results map[string]reconcile.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(results["q0"].Result) != 1 {
		t.Errorf("GET with queries parameter not handled: %s", rec.Body.String())
	}
}

func TestHandleReconcileMissingTypeReturnsMetadata(t *testing.T) {
	handler := newTestHandler()

	form := url.Values{}
	form.Set("queries", `{"q0": {"query": "Paris", "type": "Names--Geographic"}, "q1": {"query": "Twain"}}`)
	req := httptest.NewRequest("POST", "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.HandleReconcile(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var meta reconcile.Metadata
	if err := json.Unmarshal(rec.Body.Bytes(), &meta); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if meta.Name == "" {
		t.Errorf("Expected metadata response, got %s", rec.Body.String())
	}
}

func TestHandleReconcileMalformedQueriesReturnsMetadata(t *testing.T) {
	handler := newTestHandler()

	form := url.Values{}
	form.Set("queries", `{not json`)
	req := httptest.NewRequest("POST", "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.HandleReconcile(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var meta reconcile.Metadata
	if err := json.Unmarshal(rec.Body.Bytes(), &meta); err != nil || meta.Name == "" {
		t.Errorf("Expected metadata response, got %s", rec.Body.String())
	}
}

func TestHandleReconcileJSONP(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest("GET", "/?callback=jsonp123", nil)
	rec := httptest.NewRecorder()
	handler.HandleReconcile(rec, req)

	if ct := rec.Header().Get("Content-Type"); ct != "text/javascript" {
		t.Errorf("Expected text/javascript, got %s", ct)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "jsonp123(") || !strings.HasSuffix(body, ")") {
		t.Errorf("Expected callback wrapping, got %s", body)
	}

	inner := strings.TrimSuffix(strings.TrimPrefix(body, "jsonp123("), ")")
	var meta reconcile.Metadata
	if err := json.Unmarshal([]byte(inner), &meta); err != nil {
		t.Errorf("Wrapped payload is not valid JSON: %v", err)
	}
}

func TestHandleReconcileMethodNotAllowed(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest("PUT", "/", nil)
	rec := httptest.NewRecorder()
	handler.HandleReconcile(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}
}
