package ui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the color roles the kiosk draws with. Every theme is a
// Catppuccin flavor.
type Theme struct {
	Name string

	Background string // page area
	Surface    string // header and footer bars
	Border     string
	Focus      string // focused carousel frame

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Background lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header      lipgloss.Style
	Footer      lipgloss.Style
	Logo        lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Carousel windows are plain text; these color the whole frame.
	Slide      lipgloss.Style
	SlideFocus lipgloss.Style
}

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// Styles builds the style set for t.
func (t Theme) Styles() Styles {
	bar := lipgloss.NewStyle().Background(lipgloss.Color(t.Surface)).Padding(0, 1)
	return Styles{
		Background: lipgloss.NewStyle().Background(lipgloss.Color(t.Background)),

		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),

		Header:      bar.Foreground(lipgloss.Color(t.Text)),
		Footer:      bar.Foreground(lipgloss.Color(t.Muted)),
		Logo:        fg(t.Accent).Bold(true),
		TabActive:   fg(t.Background).Background(lipgloss.Color(t.Accent)).Bold(true).Padding(0, 1),
		TabInactive: fg(t.Muted).Background(lipgloss.Color(t.Surface)).Padding(0, 1),

		Slide:      fg(t.Text),
		SlideFocus: fg(t.Focus),
	}
}

// WithBackground paints every text style on bg, for use on the bars.
// TabActive keeps its own highlight.
func (s Styles) WithBackground(bg string) Styles {
	c := lipgloss.Color(bg)
	s.Background = s.Background.Background(c)
	s.Text = s.Text.Background(c)
	s.MutedText = s.MutedText.Background(c)
	s.FaintText = s.FaintText.Background(c)
	s.AccentText = s.AccentText.Background(c)
	s.SuccessText = s.SuccessText.Background(c)
	s.WarningText = s.WarningText.Background(c)
	s.DangerText = s.DangerText.Background(c)
	s.Header = s.Header.Background(c)
	s.Footer = s.Footer.Background(c)
	s.Logo = s.Logo.Background(c)
	s.TabInactive = s.TabInactive.Background(c)
	s.Slide = s.Slide.Background(c)
	s.SlideFocus = s.SlideFocus.Background(c)
	return s
}

// DefaultTheme is used when no preference is stored. It is the light flavor,
// closest to the lab's white signage.
const DefaultTheme = "Latte"

var themeOrder = []string{"Latte", "Frappe", "Macchiato", "Mocha"}

var themes = map[string]Theme{
	"Latte":     flavorTheme("Latte", catppuccin.Latte),
	"Frappe":    flavorTheme("Frappe", catppuccin.Frappe),
	"Macchiato": flavorTheme("Macchiato", catppuccin.Macchiato),
	"Mocha":     flavorTheme("Mocha", catppuccin.Mocha),
}

// GetTheme returns the named theme, or the default for unknown names.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[DefaultTheme]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames lists theme names in cycle order.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}

func flavorTheme(name string, f catppuccin.Flavor) Theme {
	return Theme{
		Name:       name,
		Background: f.Base().Hex,
		Surface:    f.Mantle().Hex,
		Border:     f.Surface2().Hex,
		Focus:      f.Blue().Hex,
		Text:       f.Text().Hex,
		Muted:      f.Subtext0().Hex,
		Faint:      f.Overlay0().Hex,
		Accent:     f.Blue().Hex,
		Success:    f.Green().Hex,
		Warning:    f.Peach().Hex,
		Danger:     f.Red().Hex,
	}
}
