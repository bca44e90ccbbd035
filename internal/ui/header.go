package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/five82/lobby/internal/content"
)

const logoText = "WISOFT.IO"

// renderHeader renders the tab bar and the connection line.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	tabs := []string{bg.Render(logoText, styles.Logo)}
	compact := m.width < LayoutCompactWidth
	for id := PageID(0); id < pageCount; id++ {
		label := fmt.Sprintf("%d %s", id+1, id.Title())
		if compact {
			label = fmt.Sprintf("%d", id+1)
			if id == m.current {
				label += " " + id.Title()
			}
		}
		if id == m.current {
			tabs = append(tabs, styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, styles.TabInactive.Render(label))
		}
	}
	line1 := styles.Header.Width(m.width).Render(bg.Join(tabs, " "))
	line2 := styles.Header.Width(m.width).Render(m.statusLine(styles, bg))
	return line1 + "\n" + line2
}

// statusLine describes the content feed: connecting, offline, or fresh.
func (m Model) statusLine(styles Styles, bg BgStyle) string {
	sep := bg.Spaces(2)
	snap := m.snapshot
	now := m.now()

	if !m.haveSnapshot || (snap.LastAttempt.IsZero() && !snap.FromCache) {
		return bg.Render("Connecting to content API…", styles.WarningText.Bold(true))
	}

	var parts []string
	switch {
	case snap.IsOffline():
		parts = append(parts,
			bg.Render("● "+classifyConnectionError(snap.LastError), styles.DangerText),
			bg.Render("Retrying…", styles.WarningText.Bold(true)),
		)
		if shown := lastContentTime(snap.LastUpdated, snap.CachedAt); !shown.IsZero() {
			parts = append(parts, bg.Render("showing content from "+relTime(shown, now), styles.MutedText))
		}
	case snap.FromCache:
		parts = append(parts,
			bg.Render("● CACHED", styles.WarningText.Bold(true)),
			bg.Render("saved "+relTime(snap.CachedAt, now), styles.MutedText),
		)
	case snap.LastUpdated.IsZero():
		parts = append(parts, bg.Render("Connecting to content API…", styles.WarningText.Bold(true)))
	default:
		parts = append(parts,
			bg.Render("● LIVE", styles.SuccessText),
			bg.Render("updated "+relTime(snap.LastUpdated, now), styles.MutedText),
		)
	}

	if !snap.IsOffline() && len(snap.Errors) > 0 {
		names := make([]string, 0, len(snap.Errors))
		for _, s := range content.Sections() {
			if _, failed := snap.Errors[s]; failed {
				names = append(names, string(s))
			}
		}
		parts = append(parts, bg.Render("! stale: "+strings.Join(names, ", "), styles.WarningText))
	}

	if m.width >= LayoutCompactWidth {
		parts = append(parts, bg.Render(m.theme.Name, styles.FaintText))
	}
	return bg.Join(parts, sep)
}

func lastContentTime(updated, cached time.Time) time.Time {
	if updated.After(cached) {
		return updated
	}
	return cached
}

func relTime(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	if now.Sub(t) < time.Second {
		return "just now"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// classifyConnectionError returns a short description of the connection error.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	var se *content.StatusError
	switch {
	case errors.Is(err, content.ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, content.ErrHTMLResponse):
		return "WRONG API URL"
	case errors.Is(err, content.ErrUnexpectedContentType):
		return "BAD RESPONSE"
	case errors.As(err, &se):
		return fmt.Sprintf("HTTP %d", se.Code)
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}
