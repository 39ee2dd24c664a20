package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Catalog defines the read surface of the movie catalog. Implemented by
// *Client and by test fakes.
type Catalog interface {
	FetchPage(ctx context.Context, query string, page int) (Page, error)
	FetchGenres(ctx context.Context) ([]Genre, error)
}

// Ensure Client implements Catalog at compile time.
var _ Catalog = (*Client)(nil)

// Client talks to the TMDB HTTP API.
type Client struct {
	baseURL   *url.URL
	apiKey    string
	http      *http.Client
	userAgent string
}

const (
	defaultBaseURL   = "https://api.themoviedb.org/3"
	defaultUserAgent = "marquee/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the given base URL and bearer token.
func NewClient(baseURL, apiKey string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchPage retrieves one page of movies. An empty query hits the discovery
// endpoint sorted by descending popularity; anything else hits text search.
// A page with zero results and a nil error is a valid zero-match outcome.
func (c *Client) FetchPage(ctx context.Context, query string, page int) (Page, error) {
	if c == nil {
		return Page{}, fmt.Errorf("client is nil")
	}
	if page < 1 {
		page = 1
	}

	values := url.Values{}
	values.Set("page", strconv.Itoa(page))

	var path string
	if strings.TrimSpace(query) == "" {
		path = "/discover/movie"
		values.Set("sort_by", "popularity.desc")
	} else {
		path = "/search/movie"
		values.Set("query", query)
	}

	var payload Page
	if err := c.get(ctx, path, values, &payload); err != nil {
		return Page{}, err
	}
	return payload, nil
}

// FetchGenres retrieves the catalog's genre vocabulary. The vocabulary is
// static for a session; callers fetch it once at startup.
func (c *Client) FetchGenres(ctx context.Context) ([]Genre, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload genreListResponse
	if err := c.get(ctx, "/genre/movie/list", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Genres, nil
}

// get issues a GET against the base URL plus path. The base URL's own path
// prefix (TMDB's /3) is preserved.
func (c *Client) get(ctx context.Context, path string, values url.Values, dest any) error {
	reqURL := c.baseURL.JoinPath(path)
	if len(values) > 0 {
		reqURL.RawQuery = values.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("catalog %s returned status %d", path, resp.StatusCode)
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

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.Path = strings.TrimSuffix(u.Path, "/")
	return u, nil
}
