package browse

import (
	"errors"
	"testing"

	"github.com/DBacaj29/marquee/internal/tmdb"
)

// settle runs a QuerySettled and returns the state plus the issued fetch.
func settle(t *testing.T, s State, query string) (State, FetchPage) {
	t.Helper()
	s, effects := Reduce(s, QuerySettled{Query: query})
	if len(effects) != 1 {
		t.Fatalf("QuerySettled emitted %d effects, want 1 fetch", len(effects))
	}
	fetch, ok := effects[0].(FetchPage)
	if !ok {
		t.Fatalf("effect = %T, want FetchPage", effects[0])
	}
	if s.Status != Loading {
		t.Fatalf("status = %v after settle, want Loading", s.Status)
	}
	return s, fetch
}

func loaded(t *testing.T, s State, fetch FetchPage, movies []tmdb.Movie, totalPages int) (State, []Effect) {
	t.Helper()
	return Reduce(s, PageFetched{Seq: fetch.Seq, Movies: movies, TotalPages: totalPages})
}

func onePage(t *testing.T, s State, query string, movies []tmdb.Movie, totalPages int) State {
	t.Helper()
	s, fetch := settle(t, s, query)
	s, _ = loaded(t, s, fetch, movies, totalPages)
	return s
}

var someMovies = []tmdb.Movie{
	{ID: 155, Title: "The Dark Knight", VoteAverage: 8.5, GenreIDs: []int{28, 80}},
	{ID: 27205, Title: "Inception", VoteAverage: 8.3, GenreIDs: []int{878}},
}

func TestSettle_ResetsPageEvenForIdenticalQuery(t *testing.T) {
	s := onePage(t, NewState(), "batman", someMovies, 5)

	// Move off page 1.
	s, effects := Reduce(s, PageNext{})
	fetch := effects[0].(FetchPage)
	s, _ = loaded(t, s, fetch, someMovies, 5)
	if s.Page != 2 {
		t.Fatalf("page = %d, want 2", s.Page)
	}

	// Re-settling the identical text restarts at page 1.
	s, fetch = settle(t, s, "batman")
	if s.Page != 1 || fetch.Page != 1 {
		t.Fatalf("page = %d (fetch %d) after identical re-settle, want 1", s.Page, fetch.Page)
	}
}

func TestPagination_ClampsAtBounds(t *testing.T) {
	s := onePage(t, NewState(), "", someMovies, 5)

	// Previous on page 1 is a no-op.
	next, effects := Reduce(s, PagePrev{})
	if next.Page != 1 || len(effects) != 0 {
		t.Fatalf("PagePrev at page 1 moved to %d with %d effects, want no-op", next.Page, len(effects))
	}

	// Three Nexts land on page 4.
	for i := 0; i < 3; i++ {
		var fetch FetchPage
		s, effects = Reduce(s, PageNext{})
		if len(effects) != 1 {
			t.Fatalf("PageNext %d emitted %d effects, want 1", i, len(effects))
		}
		fetch = effects[0].(FetchPage)
		s, _ = loaded(t, s, fetch, someMovies, 5)
	}
	if s.Page != 4 {
		t.Fatalf("page = %d after three Nexts, want 4", s.Page)
	}

	// Next on the last page is a no-op.
	s, effects = Reduce(s, PageNext{})
	fetch := effects[0].(FetchPage)
	s, _ = loaded(t, s, fetch, someMovies, 5)
	if s.Page != 5 {
		t.Fatalf("page = %d, want 5", s.Page)
	}
	next, effects = Reduce(s, PageNext{})
	if next.Page != 5 || len(effects) != 0 {
		t.Fatalf("PageNext at last page moved to %d with %d effects, want no-op", next.Page, len(effects))
	}

	// First jumps back and fetches.
	s, effects = Reduce(s, PageFirst{})
	if s.Page != 1 || len(effects) != 1 {
		t.Fatalf("PageFirst: page = %d, effects = %d, want 1/1", s.Page, len(effects))
	}
}

func TestPagination_DisabledWhileLoading(t *testing.T) {
	s, _ := settle(t, NewState(), "")
	s.TotalPages = 5
	s.Page = 3

	if s.CanNext() || s.CanPrev() || s.CanFirst() {
		t.Fatalf("pagination enabled while Loading")
	}
	if next, effects := Reduce(s, PageNext{}); next.Page != 3 || len(effects) != 0 {
		t.Fatalf("PageNext while Loading moved the cursor")
	}
}

func TestZeroResults_IsErroredNotLoaded(t *testing.T) {
	s, fetch := settle(t, NewState(), "zzzz")
	s, effects := loaded(t, s, fetch, nil, 1)

	if s.Status != Errored {
		t.Fatalf("status = %v on zero results, want Errored", s.Status)
	}
	if s.ErrMsg != MsgNoMovies {
		t.Fatalf("ErrMsg = %q, want %q", s.ErrMsg, MsgNoMovies)
	}
	if len(s.Movies) != 0 {
		t.Fatalf("movies = %d, want empty", len(s.Movies))
	}
	if len(effects) != 0 {
		t.Fatalf("zero-result load emitted %d effects, want none (no search to record)", len(effects))
	}
}

func TestTransportFailure_SetsGenericError(t *testing.T) {
	s, fetch := settle(t, NewState(), "batman")
	s, _ = Reduce(s, FetchFailed{Seq: fetch.Seq, Err: errors.New("connection refused")})

	if s.Status != Errored || s.ErrMsg != MsgFetchError {
		t.Fatalf("state = %v/%q, want Errored with generic message", s.Status, s.ErrMsg)
	}
}

func TestLoaded_RecordsSearchAndRefreshesTrending(t *testing.T) {
	s, fetch := settle(t, NewState(), "batman")
	_, effects := loaded(t, s, fetch, someMovies, 3)

	if len(effects) != 2 {
		t.Fatalf("effects = %d, want RecordSearch + LoadTrending", len(effects))
	}
	rec, ok := effects[0].(RecordSearch)
	if !ok {
		t.Fatalf("first effect = %T, want RecordSearch", effects[0])
	}
	if rec.Query != "batman" || rec.Movie.ID != 155 {
		t.Fatalf("RecordSearch = %+v, want query batman, first result id 155", rec)
	}
	if _, ok := effects[1].(LoadTrending); !ok {
		t.Fatalf("second effect = %T, want LoadTrending", effects[1])
	}
}

func TestLoaded_EmptyQueryRecordsNothing(t *testing.T) {
	s, fetch := settle(t, NewState(), "")
	_, effects := loaded(t, s, fetch, someMovies, 3)
	if len(effects) != 0 {
		t.Fatalf("discovery load emitted %d effects, want none", len(effects))
	}
}

func TestStaleResponse_IsDiscarded(t *testing.T) {
	s, stale := settle(t, NewState(), "bat")
	s, fresh := settle(t, s, "batman")

	// The older in-flight response lands after the newer fetch was issued.
	s, _ = Reduce(s, PageFetched{Seq: stale.Seq, Movies: []tmdb.Movie{{ID: 1}}, TotalPages: 9})
	if s.Status != Loading {
		t.Fatalf("stale response flipped status to %v, want still Loading", s.Status)
	}

	s, _ = Reduce(s, PageFetched{Seq: fresh.Seq, Movies: someMovies, TotalPages: 3})
	if s.Status != Loaded || s.Movies[0].ID != 155 {
		t.Fatalf("fresh response not applied: %v", s.Status)
	}

	// A stale failure is discarded too.
	s, _ = Reduce(s, FetchFailed{Seq: stale.Seq, Err: errors.New("timeout")})
	if s.Status != Loaded {
		t.Fatalf("stale failure flipped status to %v", s.Status)
	}
}

func TestFilters_RatingBoundaryAndGenre(t *testing.T) {
	s := onePage(t, NewState(), "", []tmdb.Movie{
		{ID: 1, VoteAverage: 6.0, GenreIDs: []int{28}},
		{ID: 2, VoteAverage: 7.0, GenreIDs: []int{35}},
		{ID: 3, GenreIDs: []int{28}}, // no rating: treated as 0
	}, 1)

	s, _ = Reduce(s, MinRatingChanged{Min: 6.0})
	got := s.Visible()
	if len(got) != 2 {
		t.Fatalf("visible = %d at minRating 6.0, want 2 (6.0 passes)", len(got))
	}

	s, _ = Reduce(s, MinRatingChanged{Min: 6.1})
	got = s.Visible()
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("visible = %#v at minRating 6.1, want only id 2", got)
	}

	s, _ = Reduce(s, MinRatingChanged{Min: 0})
	s, _ = Reduce(s, GenreSelected{ID: 28})
	got = s.Visible()
	if len(got) != 2 {
		t.Fatalf("visible = %d with genre 28, want 2", len(got))
	}
	for _, m := range got {
		if !m.HasGenre(28) {
			t.Fatalf("movie %d lacks selected genre", m.ID)
		}
	}

	// Clearing the genre restores the full page.
	s, _ = Reduce(s, GenreSelected{ID: 0})
	if len(s.Visible()) != 3 {
		t.Fatalf("visible = %d after clearing filters, want 3", len(s.Visible()))
	}
}

func TestFilters_DoNotRefetch(t *testing.T) {
	s := onePage(t, NewState(), "", someMovies, 2)
	seq := s.FetchSeq

	s, effects := Reduce(s, GenreSelected{ID: 28})
	if len(effects) != 0 || s.FetchSeq != seq {
		t.Fatalf("genre change issued a fetch")
	}
	s, effects = Reduce(s, MinRatingChanged{Min: 5})
	if len(effects) != 0 || s.FetchSeq != seq {
		t.Fatalf("rating change issued a fetch")
	}
}

func TestMinRating_Clamped(t *testing.T) {
	s, _ := Reduce(NewState(), MinRatingChanged{Min: 11})
	if s.MinRating != 10 {
		t.Fatalf("MinRating = %v, want clamped to 10", s.MinRating)
	}
	s, _ = Reduce(NewState(), MinRatingChanged{Min: -1})
	if s.MinRating != 0 {
		t.Fatalf("MinRating = %v, want clamped to 0", s.MinRating)
	}
}
