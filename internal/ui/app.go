package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/DBacaj29/marquee/internal/browse"
	"github.com/DBacaj29/marquee/internal/favorites"
	"github.com/DBacaj29/marquee/internal/ledger"
	"github.com/DBacaj29/marquee/internal/logger"
	"github.com/DBacaj29/marquee/internal/tmdb"
)

// View represents the current active view.
type View int

const (
	ViewBrowse View = iota
	ViewFavorites
)

const (
	defaultDebounce = 500 * time.Millisecond
	trendingLimit   = 5
	ratingStep      = 0.5
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Catalog   tmdb.Catalog
	Ledger    ledger.Recorder // nil disables trending and search recording
	Favorites *favorites.Store
	Log       logger.Logger
	Debounce  time.Duration
	ThemeName string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Collaborators
	ctx     context.Context
	catalog tmdb.Catalog
	ledger  ledger.Recorder
	favs    *favorites.Store
	log     logger.Logger

	// UI state
	theme       Theme
	keys        keyMap
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Search input and debounce bookkeeping
	search   textinput.Model
	debounce time.Duration
	inputSeq int // bumped on every keystroke; a debounce tick is live only if its seq still matches

	// Browse state machine
	state browse.State

	// Session data
	genres   []tmdb.Genre
	genreIdx int // index into the genre cycle; 0 means no filter
	trending []ledger.Counter

	// Selection
	selectedRow int
	favRow      int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	search := textinput.New()
	search.Placeholder = "Search through thousands of movies"
	search.Prompt = "/ "
	search.CharLimit = 120
	search.Focus()

	return Model{
		ctx:      ctx,
		catalog:  opts.Catalog,
		ledger:   opts.Ledger,
		favs:     opts.Favorites,
		log:      log,
		theme:    GetTheme(opts.ThemeName),
		keys:     DefaultKeyMap(),
		search:   search,
		debounce: debounce,
		state:    browse.NewState(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		textinput.Blink,
		m.fetchGenresCmd(),
	}
	if m.ledger != nil {
		cmds = append(cmds, m.loadTrendingCmd())
	}
	// Settle the empty query immediately to populate the discovery page.
	// inputSeq starts at 0, so this debounce fires unless the user has
	// already typed.
	cmds = append(cmds, func() tea.Msg { return debounceMsg{seq: 0} })
	return tea.Batch(cmds...)
}

// Messages

type debounceMsg struct{ seq int }

type pageResultMsg struct {
	seq  int
	page tmdb.Page
	err  error
}

type genresMsg struct {
	genres []tmdb.Genre
	err    error
}

type trendingMsg struct {
	rows []ledger.Counter
	err  error
}

// favoritesChangedMsg arrives via the store subscription; the UI only needs
// a redraw, all data is read back from the store.
type favoritesChangedMsg struct{}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case debounceMsg:
		if msg.seq != m.inputSeq {
			return m, nil // superseded by more typing
		}
		var cmd tea.Cmd
		m.state, cmd = m.reduce(browse.QuerySettled{Query: strings.TrimSpace(m.search.Value())})
		m.selectedRow = 0
		return m, cmd

	case pageResultMsg:
		var cmd tea.Cmd
		if msg.err != nil {
			m.log.Warn("catalog fetch failed", logger.Error(msg.err))
			m.state, cmd = m.reduce(browse.FetchFailed{Seq: msg.seq, Err: msg.err})
		} else {
			m.state, cmd = m.reduce(browse.PageFetched{
				Seq:        msg.seq,
				Movies:     msg.page.Results,
				TotalPages: msg.page.TotalPages,
			})
		}
		m.clampSelection()
		return m, cmd

	case genresMsg:
		if msg.err != nil {
			// Genre names degrade to raw ids; browsing works without them.
			m.log.Warn("genre fetch failed", logger.Error(msg.err))
			return m, nil
		}
		m.genres = msg.genres
		return m, nil

	case trendingMsg:
		if msg.err != nil {
			m.log.Warn("trending fetch failed", logger.Error(msg.err))
			return m, nil
		}
		m.trending = msg.rows
		return m, nil

	case favoritesChangedMsg:
		m.clampFavSelection()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help.
		m.showHelp = false
		return m, nil
	}

	if key.Matches(msg, m.keys.Quit) && (msg.String() == "ctrl+c" || !m.search.Focused()) {
		return m, tea.Quit
	}

	if m.search.Focused() {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		return m, nil

	case key.Matches(msg, m.keys.FocusSearch):
		m.currentView = ViewBrowse
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.ViewFavorites):
		if m.currentView == ViewFavorites {
			m.currentView = ViewBrowse
		} else {
			m.currentView = ViewFavorites
		}
		return m, nil

	case key.Matches(msg, m.keys.ViewBrowse), key.Matches(msg, m.keys.Escape):
		m.currentView = ViewBrowse
		return m, nil
	}

	switch m.currentView {
	case ViewBrowse:
		return m.handleBrowseKey(msg)
	case ViewFavorites:
		return m.handleFavoritesKey(msg)
	}
	return m, nil
}

// handleSearchKey routes keys while the search input is focused.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.search.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		// Enter skips the rest of the debounce window.
		m.search.Blur()
		m.inputSeq++
		var cmd tea.Cmd
		m.state, cmd = m.reduce(browse.QuerySettled{Query: strings.TrimSpace(m.search.Value())})
		m.selectedRow = 0
		return m, cmd
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}

	// Input changed: restart the debounce window.
	m.inputSeq++
	seq := m.inputSeq
	debounce := tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
	return m, tea.Batch(cmd, debounce)
}

// handleBrowseKey processes keys for the browse view.
func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.state.Visible()

	switch {
	case key.Matches(msg, m.keys.NextPage):
		var cmd tea.Cmd
		m.state, cmd = m.reduce(browse.PageNext{})
		m.selectedRow = 0
		return m, cmd

	case key.Matches(msg, m.keys.PrevPage):
		var cmd tea.Cmd
		m.state, cmd = m.reduce(browse.PagePrev{})
		m.selectedRow = 0
		return m, cmd

	case key.Matches(msg, m.keys.FirstPage):
		var cmd tea.Cmd
		m.state, cmd = m.reduce(browse.PageFirst{})
		m.selectedRow = 0
		return m, cmd

	case key.Matches(msg, m.keys.CycleGenre):
		return m.cycleGenre()

	case key.Matches(msg, m.keys.RatingUp):
		var cmd tea.Cmd
		m.state, cmd = m.reduce(browse.MinRatingChanged{Min: m.state.MinRating + ratingStep})
		m.clampSelection()
		return m, cmd

	case key.Matches(msg, m.keys.RatingDown):
		var cmd tea.Cmd
		m.state, cmd = m.reduce(browse.MinRatingChanged{Min: m.state.MinRating - ratingStep})
		m.clampSelection()
		return m, cmd

	case key.Matches(msg, m.keys.Favorite):
		if m.favs != nil && m.selectedRow < len(visible) {
			m.favs.Toggle(visible[m.selectedRow])
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < len(visible)-1 {
			m.selectedRow++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		if len(visible) > 0 {
			m.selectedRow = len(visible) - 1
		}
		return m, nil
	}
	return m, nil
}

// handleFavoritesKey processes keys for the favorites view.
func (m Model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := 0
	if m.favs != nil {
		count = m.favs.Len()
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.favRow < count-1 {
			m.favRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.favRow > 0 {
			m.favRow--
		}
	case key.Matches(msg, m.keys.Favorite):
		if m.favs != nil {
			list := m.favs.List()
			if m.favRow < len(list) {
				m.favs.Remove(list[m.favRow].ID)
				m.clampFavSelection()
			}
		}
	}
	return m, nil
}

func (m *Model) cycleGenre() (tea.Model, tea.Cmd) {
	if len(m.genres) == 0 {
		return *m, nil
	}
	// Cycle: none → first genre → ... → last genre → none.
	m.genreIdx = (m.genreIdx + 1) % (len(m.genres) + 1)
	id := 0
	if m.genreIdx > 0 {
		id = m.genres[m.genreIdx-1].ID
	}
	var cmd tea.Cmd
	m.state, cmd = m.reduce(browse.GenreSelected{ID: id})
	m.clampSelection()
	return *m, cmd
}

func (m *Model) clampSelection() {
	visible := m.state.Visible()
	if m.selectedRow >= len(visible) {
		m.selectedRow = len(visible) - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

func (m *Model) clampFavSelection() {
	count := 0
	if m.favs != nil {
		count = m.favs.Len()
	}
	if m.favRow >= count {
		m.favRow = count - 1
	}
	if m.favRow < 0 {
		m.favRow = 0
	}
}

// reduce runs the browse reducer and turns its effects into commands.
func (m Model) reduce(ev browse.Event) (browse.State, tea.Cmd) {
	next, effects := browse.Reduce(m.state, ev)
	return next, m.runEffects(effects)
}

// runEffects executes the reducer's side-effect requests. A RecordSearch is
// chained into the trending refresh so the leaderboard reflects the write.
func (m Model) runEffects(effects []browse.Effect) tea.Cmd {
	var cmds []tea.Cmd
	recorded := false
	for _, eff := range effects {
		switch eff := eff.(type) {
		case browse.FetchPage:
			cmds = append(cmds, m.fetchPageCmd(eff))
		case browse.RecordSearch:
			recorded = true
			cmds = append(cmds, m.recordSearchCmd(eff))
		case browse.LoadTrending:
			if recorded {
				continue // the record command already refreshes trending
			}
			cmds = append(cmds, m.loadTrendingCmd())
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Commands

func (m Model) fetchPageCmd(eff browse.FetchPage) tea.Cmd {
	catalog, ctx := m.catalog, m.ctx
	return func() tea.Msg {
		page, err := catalog.FetchPage(ctx, eff.Query, eff.Page)
		return pageResultMsg{seq: eff.Seq, page: page, err: err}
	}
}

func (m Model) fetchGenresCmd() tea.Cmd {
	catalog, ctx := m.catalog, m.ctx
	return func() tea.Msg {
		genres, err := catalog.FetchGenres(ctx)
		return genresMsg{genres: genres, err: err}
	}
}

func (m Model) loadTrendingCmd() tea.Cmd {
	rec, ctx := m.ledger, m.ctx
	if rec == nil {
		return nil
	}
	return func() tea.Msg {
		rows, err := rec.TopSearches(ctx, trendingLimit)
		return trendingMsg{rows: rows, err: err}
	}
}

// recordSearchCmd tallies the search, then refreshes trending. Both halves
// are best-effort: a ledger failure is logged and the UI carries on.
func (m Model) recordSearchCmd(eff browse.RecordSearch) tea.Cmd {
	rec, ctx, log := m.ledger, m.ctx, m.log
	if rec == nil {
		return nil
	}
	return func() tea.Msg {
		if err := rec.RecordSearch(ctx, eff.Query, eff.Movie); err != nil {
			log.Warn("record search failed",
				logger.String("query", eff.Query), logger.Error(err))
		}
		rows, err := rec.TopSearches(ctx, trendingLimit)
		return trendingMsg{rows: rows, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until it exits. Favorites
// changes from any source are forwarded into the program so the UI redraws.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	if opts.Favorites != nil {
		opts.Favorites.Subscribe(func() {
			p.Send(favoritesChangedMsg{})
		})
	}
	_, err := p.Run()
	return err
}
