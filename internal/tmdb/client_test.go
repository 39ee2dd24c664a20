package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultBaseURL {
		t.Fatalf("base = %q, want %q", u.String(), defaultBaseURL)
	}

	u, err = parseBaseURL("api.example.com/v3/")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
	if u.Path != "/v3" {
		t.Fatalf("path = %q, want /v3 (trailing slash trimmed)", u.Path)
	}
}

func TestFetchPage_SelectsEndpointByQuery(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotQuery url.Values
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Page{
			Results:    []Movie{{ID: 155, Title: "The Dark Knight", VoteAverage: 8.5}},
			TotalPages: 12,
		})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "test-token")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	page, err := c.FetchPage(ctx, "", 3)
	if err != nil {
		t.Fatalf("FetchPage returned error: %v", err)
	}
	if gotPath != "/discover/movie" {
		t.Fatalf("empty query hit %q, want /discover/movie", gotPath)
	}
	if gotQuery.Get("sort_by") != "popularity.desc" {
		t.Fatalf("sort_by = %q, want popularity.desc", gotQuery.Get("sort_by"))
	}
	if gotQuery.Get("page") != "3" {
		t.Fatalf("page = %q, want 3", gotQuery.Get("page"))
	}
	if gotAuth != "Bearer test-token" {
		t.Fatalf("Authorization = %q, want bearer token", gotAuth)
	}
	if page.TotalPages != 12 || len(page.Results) != 1 || page.Results[0].ID != 155 {
		t.Fatalf("page = %#v, want 1 result id=155 totalPages=12", page)
	}

	if _, err := c.FetchPage(ctx, "batman returns", 1); err != nil {
		t.Fatalf("FetchPage returned error: %v", err)
	}
	if gotPath != "/search/movie" {
		t.Fatalf("non-empty query hit %q, want /search/movie", gotPath)
	}
	if gotQuery.Get("query") != "batman returns" {
		t.Fatalf("query = %q, want original text", gotQuery.Get("query"))
	}
	if gotQuery.Get("sort_by") != "" {
		t.Fatalf("search request carried sort_by = %q", gotQuery.Get("sort_by"))
	}
}

func TestFetchPage_PreservesBasePathPrefix(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(Page{TotalPages: 1})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/3", "k")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchPage(context.Background(), "", 1); err != nil {
		t.Fatalf("FetchPage returned error: %v", err)
	}
	if gotPath != "/3/discover/movie" {
		t.Fatalf("path = %q, want /3/discover/movie", gotPath)
	}
}

func TestFetchPage_ZeroMatchesIsNotAnError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Page{Results: []Movie{}, TotalPages: 1})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "k")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	page, err := c.FetchPage(context.Background(), "zzzz", 1)
	if err != nil {
		t.Fatalf("zero-match page returned error: %v", err)
	}
	if len(page.Results) != 0 {
		t.Fatalf("results = %d, want 0", len(page.Results))
	}
}

func TestFetchPage_ServerErrorIsAnError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "k")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchPage(context.Background(), "", 1); err == nil {
		t.Fatalf("FetchPage succeeded on 500, want error")
	}
}

func TestFetchGenres(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/genre/movie/list" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(genreListResponse{Genres: []Genre{
			{ID: 28, Name: "Action"},
			{ID: 35, Name: "Comedy"},
		}})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "k")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	genres, err := c.FetchGenres(context.Background())
	if err != nil {
		t.Fatalf("FetchGenres returned error: %v", err)
	}
	if len(genres) != 2 || genres[0].Name != "Action" {
		t.Fatalf("genres = %#v, want Action and Comedy", genres)
	}
}
