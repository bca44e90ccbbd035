package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lobby/internal/content"
	"github.com/five82/lobby/internal/logtail"
)

// diagnostics is the overlay that tails the kiosk's own log file.
type diagnostics struct {
	viewport viewport.Model
	entries  []logtail.Entry
	err      error
}

type logLoadedMsg struct {
	entries []logtail.Entry
	err     error
}

func loadLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logLoadedMsg{}
		}
		lines, err := logtail.Read(path, DiagnosticsLines)
		if err != nil {
			return logLoadedMsg{err: err}
		}
		return logLoadedMsg{entries: logtail.ParseLines(lines)}
	}
}

// resize fits the viewport below the section table.
func (d *diagnostics) resize(width, height int) {
	w := max(width-4, 10)
	h := max(height-len(content.Sections())-6, 3)
	if d.viewport.Width == 0 {
		d.viewport = viewport.New(w, h)
		return
	}
	d.viewport.Width = w
	d.viewport.Height = h
}

// setEntries replaces the log lines, keeping the view pinned to the bottom
// when it already was.
func (d *diagnostics) setEntries(msg logLoadedMsg) {
	follow := d.viewport.AtBottom() || len(d.entries) == 0
	d.entries, d.err = msg.entries, msg.err
	lines := make([]string, len(d.entries))
	for i, e := range d.entries {
		lines[i] = e.Format()
	}
	d.viewport.SetContent(strings.Join(lines, "\n"))
	if follow {
		d.viewport.GotoBottom()
	}
}

func (m Model) renderDiagnostics() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Diagnostics"))
	b.WriteString("  ")
	b.WriteString(styles.FaintText.Render(m.logPath))
	b.WriteString("\n\n")

	for _, s := range content.Sections() {
		name := fmt.Sprintf("%-9s", s)
		switch {
		case m.snapshot.Errors[s] != nil:
			b.WriteString(styles.DangerText.Render("✗ " + name))
			b.WriteString(" ")
			b.WriteString(styles.MutedText.Render(m.snapshot.Errors[s].Error()))
		case m.snapshot.HasData(s):
			b.WriteString(styles.SuccessText.Render("✓ " + name))
			b.WriteString(" ")
			b.WriteString(styles.FaintText.Render(fmt.Sprintf("rev %016x", m.snapshot.Revision(s))))
		default:
			b.WriteString(styles.MutedText.Render("… " + name))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.diag.err != nil:
		b.WriteString(styles.DangerText.Render("read log: " + m.diag.err.Error()))
	case len(m.diag.entries) == 0:
		b.WriteString(styles.FaintText.Render("No log entries"))
	default:
		b.WriteString(m.diag.viewport.View())
	}

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Width(max(m.width-2, 10)).
		Height(max(m.height-2, 5)).
		Render(b.String())
	return panel
}
