package ui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DBacaj29/marquee/internal/browse"
	"github.com/DBacaj29/marquee/internal/favorites"
	"github.com/DBacaj29/marquee/internal/ledger"
	"github.com/DBacaj29/marquee/internal/logger"
	"github.com/DBacaj29/marquee/internal/tmdb"
)

type fakeCatalog struct {
	page tmdb.Page
	err  error
}

func (f *fakeCatalog) FetchPage(ctx context.Context, query string, page int) (tmdb.Page, error) {
	return f.page, f.err
}

func (f *fakeCatalog) FetchGenres(ctx context.Context) ([]tmdb.Genre, error) {
	return []tmdb.Genre{{ID: 28, Name: "Action"}}, nil
}

type fakeRecorder struct {
	recorded []string
	top      []ledger.Counter
}

func (f *fakeRecorder) RecordSearch(ctx context.Context, queryText string, movie tmdb.Movie) error {
	f.recorded = append(f.recorded, queryText)
	return nil
}

func (f *fakeRecorder) TopSearches(ctx context.Context, limit int) ([]ledger.Counter, error) {
	return f.top, nil
}

func testModel(t *testing.T) Model {
	t.Helper()
	favs := favorites.Load(filepath.Join(t.TempDir(), "favs.toml"), logger.Nop())
	m := New(Options{
		Catalog:   &fakeCatalog{},
		Ledger:    &fakeRecorder{},
		Favorites: favs,
		Log:       logger.Nop(),
	})
	m.ready = true
	m.width = 120
	m.height = 40
	return m
}

// advance runs one message through Update and returns the new Model.
func advance(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func TestDebounce_StaleTickIgnored(t *testing.T) {
	m := testModel(t)
	m.inputSeq = 5

	next, cmd := advance(t, m, debounceMsg{seq: 3})
	if next.state.Status != browse.Idle {
		t.Fatalf("stale debounce tick settled the query; status = %v", next.state.Status)
	}
	if cmd != nil {
		t.Fatalf("stale debounce tick produced a command")
	}
}

func TestDebounce_CurrentTickSettles(t *testing.T) {
	m := testModel(t)
	m.inputSeq = 5
	m.search.SetValue("batman")

	next, cmd := advance(t, m, debounceMsg{seq: 5})
	if next.state.Status != browse.Loading {
		t.Fatalf("status = %v after live debounce tick, want Loading", next.state.Status)
	}
	if next.state.Query != "batman" {
		t.Fatalf("query = %q, want batman", next.state.Query)
	}
	if next.state.Page != 1 {
		t.Fatalf("page = %d, want reset to 1", next.state.Page)
	}
	if cmd == nil {
		t.Fatalf("live debounce tick produced no fetch command")
	}
}

func TestPageResult_ErrorBecomesErroredState(t *testing.T) {
	m := testModel(t)
	m, _ = advance(t, m, debounceMsg{seq: 0})

	m, _ = advance(t, m, pageResultMsg{seq: m.state.FetchSeq, err: errors.New("connection refused")})
	if m.state.Status != browse.Errored {
		t.Fatalf("status = %v, want Errored", m.state.Status)
	}
	if m.state.ErrMsg != browse.MsgFetchError {
		t.Fatalf("ErrMsg = %q, want generic retry message", m.state.ErrMsg)
	}
}

func TestPageResult_PopulatesMoviesAndView(t *testing.T) {
	m := testModel(t)
	m, _ = advance(t, m, debounceMsg{seq: 0})

	m, _ = advance(t, m, pageResultMsg{
		seq: m.state.FetchSeq,
		page: tmdb.Page{
			Results:    []tmdb.Movie{{ID: 155, Title: "The Dark Knight", VoteAverage: 8.5}},
			TotalPages: 3,
		},
	})
	if m.state.Status != browse.Loaded {
		t.Fatalf("status = %v, want Loaded", m.state.Status)
	}

	view := m.View()
	if view == "" {
		t.Fatalf("View returned empty string")
	}
}

func TestFavoriteKey_TogglesSelectedMovie(t *testing.T) {
	m := testModel(t)
	m.search.Blur()
	m, _ = advance(t, m, debounceMsg{seq: 0})
	m, _ = advance(t, m, pageResultMsg{
		seq:  m.state.FetchSeq,
		page: tmdb.Page{Results: []tmdb.Movie{{ID: 155, Title: "The Dark Knight"}}, TotalPages: 1},
	})

	press := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}}
	m, _ = advance(t, m, press)
	if !m.favs.Contains(155) {
		t.Fatalf("favorite not saved after pressing f")
	}
	m, _ = advance(t, m, press)
	if m.favs.Contains(155) {
		t.Fatalf("favorite not removed after pressing f twice")
	}
}

func TestTrendingMsg_UpdatesLeaderboard(t *testing.T) {
	m := testModel(t)
	m, _ = advance(t, m, trendingMsg{rows: []ledger.Counter{
		{QueryText: "batman", Count: 9},
		{QueryText: "dune", Count: 4},
	}})
	if len(m.trending) != 2 || m.trending[0].QueryText != "batman" {
		t.Fatalf("trending = %#v, want batman first", m.trending)
	}
}
