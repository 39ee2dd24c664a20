// Package ledger records search popularity in a hosted document collection.
//
// The collection is treated purely as a counter store keyed by query text:
// RecordSearch performs a read-check-then-write upsert (exact-match list on
// queryText, then either an increment write-back or a create with count 1),
// and TopSearches lists rows count-descending. Nothing here uses the
// backend's broader query capabilities.
//
// New rows carry a denormalized snapshot of the first search result (movie
// id, title, poster URL at the catalog's w500 profile) taken at creation
// time; the snapshot is never refreshed.
//
// The upsert is not atomic across clients. Two concurrent writers can race
// the read, and the backend resolves the overlap last-write-wins. That
// matches the store's consistency model and is acceptable for a popularity
// tally.
//
// Failures are returned to the caller; the browse layer logs and swallows
// them. A broken ledger never blocks browsing; trending simply goes stale
// or empty.
package ledger
