// Package suggest talks to the id.loc.gov suggest2 API.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/timothy-mendenhall/lc-reconcile-extended/internal/cache"
	"github.com/timothy-mendenhall/lc-reconcile-extended/internal/vocab"
)

// DefaultBaseURL is the production id.loc.gov host.
const DefaultBaseURL = "https://id.loc.gov"

// DefaultTimeout bounds each upstream call. The suggest2 endpoint normally
// answers well under a second; anything slower is treated as a failed query.
const DefaultTimeout = 10 * time.Second

// Hit is one suggestion from the suggest2 API. Only the fields the
// reconciliation pipeline needs are decoded; the rest of the payload is
// ignored.
type Hit struct {
	URI   string `json:"uri"`
	Label string `json:"aLabel"`
}

// BuildURL constructs the suggest2 request URL for one query. The count
// parameter widens the candidate pool past the API's small default so the
// scorer has material to rank. When the vocabulary carries both a memberOf
// collection and an rdftype class, each conditional branch appends its own
// copy of both filters, so the parameters appear twice; suggest2 ignores the
// repeats, and the duplication is kept for parity with the original service.
func BuildURL(base string, v vocab.Type, query string) string {
	u := base + v.Index + "/suggest2?q=" + url.QueryEscape(query) + "&count=50"
	if v.MemberOf != "" {
		u += "&memberOf=" + v.MemberOf
		if v.RDFClass != "" {
			u += "&rdftype=" + v.RDFClass
		}
	}
	if v.RDFClass != "" {
		u += "&rdftype=" + v.RDFClass
		if v.MemberOf != "" {
			u += "&memberOf=" + v.MemberOf
		}
	}
	return u
}

// Client fetches suggestions from a suggest2 host.
type Client struct {
	BaseURL    string
	httpClient *http.Client
	responses  *cache.ResponseCache
}

// NewClient creates a suggest2 client. A nil responses cache disables
// caching.
func NewClient(baseURL string, timeout time.Duration, responses *cache.ResponseCache) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		responses: responses,
	}
}

// Suggest runs one suggest2 query for the given vocabulary and returns the
// raw hits in upstream relevance order.
func (c *Client) Suggest(ctx context.Context, v vocab.Type, query string) ([]Hit, error) {
	reqURL := BuildURL(c.BaseURL, v, query)
	slog.Debug("Querying suggest2", "url", reqURL)

	body, ok := c.responses.Get(reqURL)
	if !ok {
		var err error
		body, err = c.fetch(ctx, reqURL)
		if err != nil {
			return nil, err
		}
		c.responses.Set(reqURL, body)
	}

	var response struct {
		Hits []Hit `json:"hits"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode suggest2 response: %w", err)
	}

	return response.Hits, nil
}

func (c *Client) fetch(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create suggest2 request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from suggest2: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("suggest2 returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read suggest2 response: %w", err)
	}

	return body, nil
}
