package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/DBacaj29/marquee/internal/browse"
	"github.com/DBacaj29/marquee/internal/tmdb"
)

const sidePaneWidth = 38

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSearchBar())
	b.WriteString("\n")

	switch m.currentView {
	case ViewFavorites:
		b.WriteString(m.renderFavorites())
	default:
		b.WriteString(m.renderBrowse())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader renders the top status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	parts := []string{styles.Logo.Render("marquee")}

	switch m.state.Status {
	case browse.Loading:
		parts = append(parts, styles.WarningText.Render("Loading..."))
	case browse.Errored:
		parts = append(parts, styles.DangerText.Render(m.state.ErrMsg))
	case browse.Loaded:
		visible := len(m.state.Visible())
		total := len(m.state.Movies)
		if visible == total {
			parts = append(parts, styles.MutedText.Render(fmt.Sprintf("%d movies", total)))
		} else {
			parts = append(parts, styles.MutedText.Render(fmt.Sprintf("%d of %d movies (filtered)", visible, total)))
		}
	}

	if m.state.Query != "" {
		parts = append(parts, styles.AccentText.Render("“"+truncate(m.state.Query, 30)+"”"))
	}
	if m.favs != nil && m.favs.Len() > 0 {
		parts = append(parts, styles.MutedText.Render(fmt.Sprintf("♥ %d", m.favs.Len())))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

// renderSearchBar renders the search input line.
func (m Model) renderSearchBar() string {
	styles := m.theme.Styles()
	line := m.search.View()
	if !m.search.Focused() {
		line += styles.FaintText.Render("  (press / to search)")
	}
	return line
}

// renderBrowse renders the results table next to the detail/trending pane.
func (m Model) renderBrowse() string {
	styles := m.theme.Styles()

	tableWidth := m.width - sidePaneWidth - 6
	if tableWidth < 30 {
		tableWidth = m.width - 4
	}
	contentHeight := m.contentHeight()

	table := m.renderMovieTable(tableWidth, contentHeight)
	if tableWidth >= m.width-4 {
		return styles.Pane.Width(tableWidth).Height(contentHeight).Render(table)
	}

	side := lipgloss.JoinVertical(lipgloss.Left,
		m.renderDetail(sidePaneWidth-4),
		m.renderTrending(sidePaneWidth-4),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.PaneFocus.Width(tableWidth).Height(contentHeight).Render(table),
		styles.Pane.Width(sidePaneWidth).Height(contentHeight).Render(side),
	)
}

// renderMovieTable renders the visible movies with the selection highlighted.
func (m Model) renderMovieTable(width, height int) string {
	styles := m.theme.Styles()
	visible := m.state.Visible()

	if m.state.Status == browse.Errored {
		return styles.DangerText.Render(m.state.ErrMsg)
	}
	if len(visible) == 0 {
		if m.state.Status == browse.Loading {
			return styles.MutedText.Render("Fetching movies...")
		}
		return styles.MutedText.Render("Nothing to show on this page with the current filters.")
	}

	titleWidth := width - 22
	if titleWidth < 10 {
		titleWidth = 10
	}

	rows := make([]string, 0, len(visible))
	for i, movie := range visible {
		if i >= height-1 {
			rows = append(rows, styles.FaintText.Render(fmt.Sprintf("… %d more", len(visible)-i)))
			break
		}
		rows = append(rows, m.renderMovieRow(movie, i == m.selectedRow, titleWidth))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderMovieRow(movie tmdb.Movie, selected bool, titleWidth int) string {
	styles := m.theme.Styles()

	mark := "  "
	if m.favs != nil && m.favs.Contains(movie.ID) {
		mark = styles.DangerText.Render("♥") + " "
	}

	title := truncate(movie.Title, titleWidth)
	year := movie.Year()
	if year == "" {
		year = "────"
	}
	rating := "N/A"
	if movie.VoteAverage > 0 {
		rating = fmt.Sprintf("%.1f", movie.VoteAverage)
	}

	if selected {
		line := fmt.Sprintf("%-*s  %s  %4s  %s", titleWidth, title, rating, year, movie.OriginalLanguage)
		return mark + styles.Selected.Render(line)
	}
	return mark +
		styles.Text.Render(fmt.Sprintf("%-*s", titleWidth, title)) + "  " +
		styles.RatingStyle(movie.VoteAverage).Render(rating) + "  " +
		styles.MutedText.Render(fmt.Sprintf("%4s  %s", year, movie.OriginalLanguage))
}

// renderDetail renders the selected movie's details.
func (m Model) renderDetail(width int) string {
	styles := m.theme.Styles()
	visible := m.state.Visible()

	if m.selectedRow >= len(visible) {
		return styles.FaintText.Render("No selection")
	}
	movie := visible[m.selectedRow]

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(truncate(movie.Title, width)))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Released ") + styles.Text.Render(orDash(movie.ReleaseDate)))
	b.WriteString("\n")
	rating := "not rated"
	if movie.VoteAverage > 0 {
		rating = fmt.Sprintf("%.1f / 10", movie.VoteAverage)
	}
	b.WriteString(styles.MutedText.Render("Rating   ") + styles.RatingStyle(movie.VoteAverage).Render(rating))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Language ") + styles.Text.Render(orDash(movie.OriginalLanguage)))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Genres   ") + styles.Text.Render(truncate(m.genreNames(movie.GenreIDs), width-9)))
	if url := movie.PosterURL(); url != "" {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render(truncateMiddle(url, width)))
	}
	return b.String()
}

// renderTrending renders the top-searches leaderboard.
func (m Model) renderTrending(width int) string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Trending searches"))
	b.WriteString("\n")

	if m.ledger == nil {
		b.WriteString(styles.FaintText.Render("ledger not configured"))
		return b.String()
	}
	if len(m.trending) == 0 {
		b.WriteString(styles.FaintText.Render("nothing yet"))
		return b.String()
	}

	for i, row := range m.trending {
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			styles.AccentText.Render(fmt.Sprintf("%d.", i+1)),
			styles.Text.Render(truncate(row.QueryText, width-10)),
			styles.MutedText.Render(fmt.Sprintf("×%d", row.Count)),
		))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderFooter renders pagination state, active filters and key hints.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	var parts []string

	if m.currentView == ViewFavorites {
		parts = append(parts, styles.AccentText.Render("Favorites"))
	} else {
		page := fmt.Sprintf("Page %d", m.state.Page)
		if m.state.TotalPages > 0 {
			page = fmt.Sprintf("Page %d/%d", m.state.Page, m.state.TotalPages)
		}
		parts = append(parts, styles.Text.Render(page))

		pager := pagerHint("g First", m.state.CanFirst(), styles) + " " +
			pagerHint("p Prev", m.state.CanPrev(), styles) + " " +
			pagerHint("n Next", m.state.CanNext(), styles)
		parts = append(parts, pager)

		if m.state.GenreID != 0 {
			parts = append(parts, styles.InfoText.Render("genre: "+m.genreName(m.state.GenreID)))
		}
		if m.state.MinRating > 0 {
			parts = append(parts, styles.InfoText.Render(fmt.Sprintf("rating ≥ %.1f", m.state.MinRating)))
		}
	}

	parts = append(parts, styles.FaintText.Render("/ search  f fav  F favorites  G genre  +/- rating  ? help  q quit"))

	return styles.Footer.Width(m.width).Render(strings.Join(parts, "  •  "))
}

// pagerHint renders one pagination action, dimmed when unavailable.
func pagerHint(label string, enabled bool, styles Styles) string {
	if enabled {
		return styles.AccentText.Render(label)
	}
	return styles.FaintText.Render(label)
}

func (m Model) contentHeight() int {
	// Header, search bar, footer and pane borders.
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

func (m Model) genreName(id int) string {
	for _, g := range m.genres {
		if g.ID == id {
			return g.Name
		}
	}
	return fmt.Sprintf("#%d", id)
}

func (m Model) genreNames(ids []int) string {
	if len(ids) == 0 {
		return "—"
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, m.genreName(id))
	}
	return strings.Join(names, ", ")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}
