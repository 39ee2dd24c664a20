// Package browse is the single orchestration point between user input and
// the two remote clients.
//
// It is written as a pure reducer: Reduce maps (state, event) to the next
// state plus a list of side-effect requests, and the UI layer executes those
// requests (catalog fetches, ledger writes) and feeds the outcomes back in
// as events. The reducer itself performs no I/O.
//
// # Lifecycle
//
// Status moves Idle → Loading whenever the settled query or the page cursor
// changes, then Loading → Loaded on a response with at least one result, or
// Loading → Errored on either a zero-result response ("No movies found.", a
// user-visible non-fatal condition) or a transport failure (a generic retry
// message). On every Loading → Loaded transition with a non-empty query the
// reducer emits best-effort RecordSearch and LoadTrending effects; their
// failure never alters the Loaded state.
//
// # Staleness
//
// Every issued fetch carries a monotonic sequence number. Responses whose
// sequence is older than the latest issued fetch are dropped on the floor,
// so a slow early response cannot overwrite fresher results. There is no
// cancellation; stale requests are simply ignored when they land.
//
// # Filters
//
// The genre and minimum-rating filters are a view-layer refinement of the
// currently fetched page; changing them never re-queries the catalog.
package browse
