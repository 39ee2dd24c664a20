// Package tmdb provides a read-only HTTP client for the TMDB movie catalog.
//
// # Endpoints
//
// The client wraps three endpoints:
//
//   - GET /discover/movie?sort_by=popularity.desc for browsing without a query
//   - GET /search/movie?query=... for text search
//   - GET /genre/movie/list for the static genre vocabulary
//
// FetchPage selects between the first two based on whether the query is
// empty, so callers hold a single entry point for "give me page N of
// whatever the user is looking at".
//
// # Zero matches vs. failure
//
// A 2xx response whose results array is empty returns (Page{}, nil). Callers
// must be able to tell "the catalog matched nothing" apart from "the request
// failed"; only transport problems, non-2xx statuses and malformed bodies
// produce errors.
//
// # Images
//
// The catalog references posters by relative path. Movie.PosterURL resolves
// them against https://image.tmdb.org/t/p/w500, the fixed width profile the
// rest of the application displays and records.
//
// # Request handling
//
// All requests use context for cancellation, carry a bearer token
// (Authorization header, TMDB API v4 style), and time out after 10 seconds.
// Errors are wrapped with what failed. No retries are performed; the user
// retries by typing or navigating, which re-triggers the browse machine.
package tmdb
