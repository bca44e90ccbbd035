package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/skip2/go-qrcode"
)

// qrModal shows a project's deploy link as a scannable QR code.
type qrModal struct {
	title string
	link  string
	code  []string
}

func newQRModal(title, link string) (qrModal, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return qrModal{}, errors.New("empty link")
	}
	q, err := qrcode.New(link, qrcode.High)
	if err != nil {
		return qrModal{}, err
	}
	q.DisableBorder = true
	return qrModal{title: title, link: link, code: halfBlocks(q.Bitmap())}, nil
}

// halfBlocks packs two bitmap rows into each text row. true is a dark module.
func halfBlocks(bitmap [][]bool) []string {
	at := func(y, x int) bool {
		return y < len(bitmap) && x < len(bitmap[y]) && bitmap[y][x]
	}
	var lines []string
	for y := 0; y < len(bitmap); y += 2 {
		var b strings.Builder
		for x := range bitmap[y] {
			top, bottom := at(y, x), at(y+1, x)
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		lines = append(lines, b.String())
	}
	return lines
}

func (q qrModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(k, keys.Escape, keys.Open) || k.String() == "q" {
			return q, nil, true
		}
	}
	return q, nil, false
}

func (q qrModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	// Dark modules on white regardless of theme so phones can scan it.
	code := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Background(lipgloss.Color("#ffffff")).
		Padding(1, 2).
		Render(strings.Join(q.code, "\n"))

	body := lipgloss.JoinVertical(lipgloss.Center,
		styles.Text.Bold(true).Render(q.title),
		"",
		code,
		"",
		styles.AccentText.Render(q.link),
		styles.FaintText.Render("esc to close"),
	)
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}
