package ui

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/five82/lobby/internal/carousel"
)

// Carousel panels are plain text: the strip renderer slices them by display
// column, which would cut ANSI sequences apart. Color is applied to the
// finished window instead.

// box draws a rounded frame of exactly width×height around lines.
func box(lines []string, width, height int, focused bool) string {
	if width < 4 || height < 2 {
		return strings.Join(lines, "\n")
	}
	h, v := "─", "│"
	tl, tr, bl, br := "╭", "╮", "╰", "╯"
	if focused {
		h, v = "━", "┃"
		tl, tr, bl, br = "┏", "┓", "┗", "┛"
	}
	inner := width - 4
	out := make([]string, 0, height)
	out = append(out, tl+strings.Repeat(h, width-2)+tr)
	for i := 0; i < height-2; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		out = append(out, v+" "+padRight(line, inner)+" "+v)
	}
	out = append(out, bl+strings.Repeat(h, width-2)+br)
	return strings.Join(out, "\n")
}

// padRight truncates or pads s to exactly width display columns.
func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(s, width, "…")
	return runewidth.FillRight(s, width)
}

// centerLine centers s within width display columns.
func centerLine(s string, width int) string {
	s = runewidth.Truncate(s, width, "…")
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return strings.Repeat(" ", gap/2) + s
}

// wrap breaks text into lines of at most width display columns, splitting
// words that are longer than a line.
func wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var (
		lines []string
		cur   strings.Builder
		curW  int
	)
	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		curW = 0
	}
	for _, word := range strings.Fields(text) {
		ww := runewidth.StringWidth(word)
		if curW > 0 && curW+1+ww > width {
			flush()
		}
		for ww > width {
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				_, size := utf8.DecodeRuneInString(word)
				head = word[:size]
			}
			if curW > 0 {
				flush()
			}
			lines = append(lines, head)
			word = strings.TrimPrefix(word, head)
			ww = runewidth.StringWidth(word)
		}
		if word == "" {
			continue
		}
		if curW > 0 {
			cur.WriteByte(' ')
			curW++
		}
		cur.WriteString(word)
		curW += ww
	}
	if curW > 0 {
		flush()
	}
	return lines
}

// indicators renders one dot per slide with the active one highlighted.
func indicators(c carousel.Model, styles Styles) string {
	n := c.Len()
	if n <= 1 {
		return ""
	}
	active, _ := c.Index()
	dots := make([]string, n)
	for i := range dots {
		if i == active {
			dots[i] = styles.AccentText.Render("●")
		} else {
			dots[i] = styles.FaintText.Render("○")
		}
	}
	return strings.Join(dots, " ")
}

// pager renders numbered page markers, used where indicators are pagination.
func pager(c carousel.Model, styles Styles) string {
	n := c.Len()
	if n <= 1 {
		return ""
	}
	active, _ := c.Index()
	parts := make([]string, n)
	for i := range parts {
		label := runewidth.FillLeft(strconv.Itoa(i+1), 2)
		if i == active {
			parts[i] = styles.AccentText.Bold(true).Render("[" + label + "]")
		} else {
			parts[i] = styles.FaintText.Render(" " + label + " ")
		}
	}
	return strings.Join(parts, "")
}

// window renders a carousel's visible panel in style.
func window(c carousel.Model, panels []string, width, height int, style lipgloss.Style) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	return style.Render(c.View(panels, width, height))
}

// centered places s in the middle of the page area.
func centered(rc renderContext, s string) string {
	return lipgloss.Place(rc.width, rc.height, lipgloss.Center, lipgloss.Center, s)
}

// fit clips s to width×height and pads it to fill the area.
func fit(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	clipped := lipgloss.NewStyle().MaxWidth(width).MaxHeight(height).Render(s)
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, clipped)
}

// centerStyled centers an already styled line.
func centerStyled(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
