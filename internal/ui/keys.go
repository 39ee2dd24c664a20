package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// View switching
	ViewBrowse    key.Binding
	ViewFavorites key.Binding

	// Search
	FocusSearch key.Binding
	Confirm     key.Binding

	// Pagination
	NextPage  key.Binding
	PrevPage  key.Binding
	FirstPage key.Binding

	// Filters
	CycleGenre key.Binding
	RatingUp   key.Binding
	RatingDown key.Binding

	// Selection
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Favorite key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back / leave search"),
		),
		ViewBrowse: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Browse"),
		),
		ViewFavorites: key.NewBinding(
			key.WithKeys("F", "tab"),
			key.WithHelp("F", "Favorites"),
		),
		FocusSearch: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Search now"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n/→", "Next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("p/←", "Previous page"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "First page"),
		),
		CycleGenre: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "Cycle genre filter"),
		),
		RatingUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Raise min rating"),
		),
		RatingDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Lower min rating"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("j/k", "Move selection"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("", ""),
		),
		Top: key.NewBinding(
			key.WithKeys("ctrl+home"),
			key.WithHelp("", "Top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("ctrl+end"),
			key.WithHelp("", "Bottom"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Toggle favorite"),
		),
	}
}
