package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit        key.Binding
	Help        key.Binding
	CycleTheme  key.Binding
	Diagnostics key.Binding
	Escape      key.Binding

	// Page switching
	NextPage key.Binding
	PrevPage key.Binding
	GoPage   key.Binding

	// Carousel
	Prev      key.Binding
	Next      key.Binding
	FocusPrev key.Binding
	FocusNext key.Binding
	Jump      key.Binding

	// Page actions
	Up   key.Binding
	Down key.Binding
	Year key.Binding
	Open key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "theme"),
		),
		Diagnostics: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "diagnostics"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),

		NextPage: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous page"),
		),
		GoPage: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6"),
			key.WithHelp("1-6", "go to page"),
		),

		Prev: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous slide"),
		),
		Next: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next slide"),
		),
		FocusPrev: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous carousel"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next carousel"),
		),
		Jump: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g 1-9", "jump to slide"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑", "select card"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓", "select card"),
		),
		Year: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "change year"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "show QR"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPage, k.Prev, k.Next, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextPage, k.PrevPage, k.GoPage},
		{k.Prev, k.Next, k.FocusPrev, k.FocusNext, k.Jump},
		{k.Up, k.Down, k.Year, k.Open},
		{k.CycleTheme, k.Diagnostics, k.Help, k.Escape, k.Quit},
	}
}
