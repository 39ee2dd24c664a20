package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DBacaj29/marquee/internal/tmdb"
)

// Recorder defines the ledger surface the browse machine depends on.
// Implemented by *Client and by test fakes.
type Recorder interface {
	RecordSearch(ctx context.Context, queryText string, movie tmdb.Movie) error
	TopSearches(ctx context.Context, limit int) ([]Counter, error)
}

// Ensure Client implements Recorder at compile time.
var _ Recorder = (*Client)(nil)

// Options identify one collection inside the hosted document store.
type Options struct {
	Endpoint     string // e.g. https://cloud.appwrite.io/v1
	ProjectID    string
	APIKey       string
	DatabaseID   string
	CollectionID string
}

// Client talks to the hosted document collection that backs the popularity
// ledger. The collection is used purely as a key-value counter store: an
// exact-match filtered list, a create, and an update-by-id.
type Client struct {
	baseURL   *url.URL
	opts      Options
	http      *http.Client
	userAgent string
}

const (
	defaultTopLimit  = 5
	requestTimeout   = 10 * time.Second
	defaultUserAgent = "marquee/0.1"

	// uniqueID asks the backend to mint a document id on creation. Keying
	// creation on anything derived from the movie would make two distinct
	// new query texts with the same first result collide.
	uniqueID = "unique()"
)

// NewClient builds a Client for the given collection.
func NewClient(opts Options) (*Client, error) {
	trimmed := strings.TrimSpace(opts.Endpoint)
	if trimmed == "" {
		return nil, fmt.Errorf("ledger endpoint is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	base, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse ledger endpoint %q: %w", opts.Endpoint, err)
	}
	base.RawQuery = ""
	base.Fragment = ""
	base.Path = strings.TrimSuffix(base.Path, "/")
	return &Client{
		baseURL:   base,
		opts:      opts,
		http:      &http.Client{Timeout: requestTimeout},
		userAgent: defaultUserAgent,
	}, nil
}

// RecordSearch increments the counter row whose queryText exactly matches
// the given text, or creates the row with count 1 when none exists. The
// match is case-sensitive, as submitted. The read-then-write is not atomic:
// two clients recording the same new query concurrently can each create a
// row, and later increments land on whichever row each client read.
func (c *Client) RecordSearch(ctx context.Context, queryText string, movie tmdb.Movie) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}

	existing, err := c.listByQueryText(ctx, queryText)
	if err != nil {
		return fmt.Errorf("look up counter: %w", err)
	}

	if len(existing) > 0 {
		row := existing[0]
		body := updateRequest{Data: map[string]any{"count": row.Count + 1}}
		if err := c.do(ctx, http.MethodPatch, c.documentPath(row.DocumentID), body, nil); err != nil {
			return fmt.Errorf("increment counter: %w", err)
		}
		return nil
	}

	body := createRequest{
		DocumentID: uniqueID,
		Data: counterData{
			QueryText: queryText,
			Count:     1,
			MovieID:   movie.ID,
			Title:     movie.Title,
			PosterURL: movie.PosterURL(),
		},
	}
	if err := c.do(ctx, http.MethodPost, c.documentsPath(), body, nil); err != nil {
		return fmt.Errorf("create counter: %w", err)
	}
	return nil
}

// TopSearches returns up to limit counter rows ordered by count descending.
// Ties between equal counts come back in whatever order the backend chose;
// that order is unspecified and callers must not rely on it.
func (c *Client) TopSearches(ctx context.Context, limit int) ([]Counter, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if limit <= 0 {
		limit = defaultTopLimit
	}

	values := url.Values{}
	values.Add("queries[]", orderDescQuery("count"))
	values.Add("queries[]", limitQuery(limit))

	var payload documentList
	if err := c.do(ctx, http.MethodGet, c.documentsPath()+"?"+values.Encode(), nil, &payload); err != nil {
		return nil, fmt.Errorf("list top searches: %w", err)
	}
	return payload.Documents, nil
}

func (c *Client) listByQueryText(ctx context.Context, queryText string) ([]Counter, error) {
	values := url.Values{}
	values.Add("queries[]", equalQuery("queryText", queryText))

	var payload documentList
	if err := c.do(ctx, http.MethodGet, c.documentsPath()+"?"+values.Encode(), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Documents, nil
}

func (c *Client) documentsPath() string {
	return fmt.Sprintf("/databases/%s/collections/%s/documents",
		url.PathEscape(c.opts.DatabaseID), url.PathEscape(c.opts.CollectionID))
}

func (c *Client) documentPath(id string) string {
	return c.documentsPath() + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, pathAndQuery string, body, dest any) error {
	rel, err := url.Parse(pathAndQuery)
	if err != nil {
		return fmt.Errorf("build request url: %w", err)
	}
	reqURL := c.baseURL.JoinPath(rel.Path)
	reqURL.RawQuery = rel.RawQuery

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Appwrite-Project", c.opts.ProjectID)
	req.Header.Set("X-Appwrite-Key", c.opts.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("ledger %s %s returned status %d", method, rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Query encoding, one JSON object per query string.

type queryExpr struct {
	Method    string `json:"method"`
	Attribute string `json:"attribute,omitempty"`
	Values    []any  `json:"values,omitempty"`
}

func equalQuery(attribute, value string) string {
	return marshalQuery(queryExpr{Method: "equal", Attribute: attribute, Values: []any{value}})
}

func orderDescQuery(attribute string) string {
	return marshalQuery(queryExpr{Method: "orderDesc", Attribute: attribute})
}

func limitQuery(n int) string {
	return marshalQuery(queryExpr{Method: "limit", Values: []any{n}})
}

func marshalQuery(q queryExpr) string {
	encoded, err := json.Marshal(q)
	if err != nil {
		return ""
	}
	return string(encoded)
}
