package ui

import (
	"fmt"
	"strings"
)

// renderFavorites renders the saved-movies view.
func (m Model) renderFavorites() string {
	styles := m.theme.Styles()
	contentHeight := m.contentHeight()
	width := m.width - 4

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Saved movies"))
	b.WriteString("\n\n")

	if m.favs == nil || m.favs.Len() == 0 {
		b.WriteString(styles.MutedText.Render("Nothing saved yet. Press f on a movie in the browse view."))
		return styles.Pane.Width(width).Height(contentHeight).Render(b.String())
	}

	titleWidth := width - 24
	if titleWidth < 10 {
		titleWidth = 10
	}

	for i, rec := range m.favs.List() {
		if i >= contentHeight-3 {
			b.WriteString(styles.FaintText.Render(fmt.Sprintf("… %d more", m.favs.Len()-i)))
			break
		}

		title := truncate(rec.Title, titleWidth)
		year := rec.ReleaseDate
		if idx := strings.IndexByte(year, '-'); idx > 0 {
			year = year[:idx]
		}
		rating := "N/A"
		if rec.VoteAverage > 0 {
			rating = fmt.Sprintf("%.1f", rec.VoteAverage)
		}

		if i == m.favRow {
			b.WriteString(styles.Selected.Render(
				fmt.Sprintf("%-*s  %s  %4s", titleWidth, title, rating, year)))
		} else {
			b.WriteString(styles.Text.Render(fmt.Sprintf("%-*s", titleWidth, title)) + "  " +
				styles.RatingStyle(rec.VoteAverage).Render(rating) + "  " +
				styles.MutedText.Render(year))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("f removes the selected movie"))

	return styles.Pane.Width(width).Height(contentHeight).Render(strings.TrimRight(b.String(), "\n"))
}
