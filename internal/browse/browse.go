package browse

import "github.com/DBacaj29/marquee/internal/tmdb"

// Status is the fetch lifecycle of the current page.
type Status int

const (
	Idle Status = iota
	Loading
	Loaded
	Errored
)

// User-facing messages for the two Errored flavors.
const (
	MsgNoMovies   = "No movies found."
	MsgFetchError = "Error fetching movies. Please try again later."
)

// State is the browse view model. It is owned by the reducer: the UI reads
// it and feeds events back, nothing else mutates it.
type State struct {
	Query      string // settled (debounced) query text
	Page       int    // current page cursor, >= 1
	TotalPages int    // from the last catalog response

	Status   Status
	Movies   []tmdb.Movie // last fetched page, unfiltered
	ErrMsg   string       // set only when Status == Errored
	FetchSeq int          // sequence number of the latest issued fetch

	// View-layer filters. They refine the fetched page only and never
	// trigger a re-query.
	GenreID   int // 0 means no genre filter
	MinRating float64
}

// NewState returns the initial state: page 1, nothing fetched yet.
func NewState() State {
	return State{Page: 1, Status: Idle}
}

// Event is an input to Reduce.
type Event interface{ isEvent() }

// QuerySettled fires when the debounced query text settles, including when
// the settled text is identical to the previous one.
type QuerySettled struct{ Query string }

// PageFirst, PagePrev and PageNext move the page cursor.
type (
	PageFirst struct{}
	PagePrev  struct{}
	PageNext  struct{}
)

// GenreSelected sets the genre filter; id 0 clears it.
type GenreSelected struct{ ID int }

// MinRatingChanged sets the minimum-rating filter.
type MinRatingChanged struct{ Min float64 }

// PageFetched delivers a successful catalog response for fetch Seq.
type PageFetched struct {
	Seq        int
	Movies     []tmdb.Movie
	TotalPages int
}

// FetchFailed delivers a transport or decode failure for fetch Seq.
type FetchFailed struct {
	Seq int
	Err error
}

func (QuerySettled) isEvent()     {}
func (PageFirst) isEvent()        {}
func (PagePrev) isEvent()         {}
func (PageNext) isEvent()         {}
func (GenreSelected) isEvent()    {}
func (MinRatingChanged) isEvent() {}
func (PageFetched) isEvent()      {}
func (FetchFailed) isEvent()      {}

// Effect is a side-effect request emitted by Reduce and executed by the
// effect runner in the UI layer.
type Effect interface{ isEffect() }

// FetchPage asks for one catalog page. Seq identifies the fetch so that
// stale responses can be discarded.
type FetchPage struct {
	Query string
	Page  int
	Seq   int
}

// RecordSearch asks the ledger to tally a successful non-empty search,
// snapshotting the first result. Best-effort: failure never reaches State.
type RecordSearch struct {
	Query string
	Movie tmdb.Movie
}

// LoadTrending asks for a refresh of the top-searches leaderboard.
type LoadTrending struct{}

func (FetchPage) isEffect()    {}
func (RecordSearch) isEffect() {}
func (LoadTrending) isEffect() {}

// Reduce is a pure function from (state, event) to the next state plus the
// side effects to run. Fetch responses whose sequence number is older than
// the latest issued fetch are discarded, so a slow early response can never
// overwrite a fresher one.
func Reduce(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case QuerySettled:
		// A settled query always restarts from page 1, identical text
		// included: re-entering the same search is a fresh search.
		s.Query = ev.Query
		s.Page = 1
		return issueFetch(s)

	case PageFirst:
		if !s.CanFirst() {
			return s, nil
		}
		s.Page = 1
		return issueFetch(s)

	case PagePrev:
		if !s.CanPrev() {
			return s, nil
		}
		s.Page--
		return issueFetch(s)

	case PageNext:
		if !s.CanNext() {
			return s, nil
		}
		s.Page++
		return issueFetch(s)

	case GenreSelected:
		s.GenreID = ev.ID
		return s, nil

	case MinRatingChanged:
		s.MinRating = clampRating(ev.Min)
		return s, nil

	case PageFetched:
		if ev.Seq != s.FetchSeq {
			return s, nil // stale response, a newer fetch is in flight or done
		}
		s.TotalPages = ev.TotalPages
		if len(ev.Movies) == 0 {
			s.Status = Errored
			s.ErrMsg = MsgNoMovies
			s.Movies = nil
			return s, nil
		}
		s.Status = Loaded
		s.ErrMsg = ""
		s.Movies = ev.Movies
		if s.Query != "" {
			// Best-effort side effects; they do not gate the Loaded state.
			return s, []Effect{
				RecordSearch{Query: s.Query, Movie: ev.Movies[0]},
				LoadTrending{},
			}
		}
		return s, nil

	case FetchFailed:
		if ev.Seq != s.FetchSeq {
			return s, nil
		}
		s.Status = Errored
		s.ErrMsg = MsgFetchError
		s.Movies = nil
		return s, nil
	}

	return s, nil
}

func issueFetch(s State) (State, []Effect) {
	s.FetchSeq++
	s.Status = Loading
	s.ErrMsg = ""
	return s, []Effect{FetchPage{Query: s.Query, Page: s.Page, Seq: s.FetchSeq}}
}

// CanFirst reports whether jumping to page 1 would do anything.
func (s State) CanFirst() bool {
	return s.Status != Loading && s.Page > 1
}

// CanPrev reports whether the previous-page action is available.
func (s State) CanPrev() bool {
	return s.Status != Loading && s.Page > 1
}

// CanNext reports whether the next-page action is available.
func (s State) CanNext() bool {
	return s.Status != Loading && s.TotalPages > 0 && s.Page < s.TotalPages
}

// Visible applies the view-layer filters to the fetched page. A movie passes
// the rating filter iff voteAverage >= MinRating, with a missing rating
// treated as 0, and passes the genre filter iff no genre is selected or its
// genre set contains the selection.
func (s State) Visible() []tmdb.Movie {
	if s.GenreID == 0 && s.MinRating <= 0 {
		return s.Movies
	}
	var out []tmdb.Movie
	for _, m := range s.Movies {
		if m.VoteAverage < s.MinRating {
			continue
		}
		if s.GenreID != 0 && !m.HasGenre(s.GenreID) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func clampRating(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 10 {
		return 10
	}
	return r
}
