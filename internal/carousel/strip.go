package carousel

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Orientation selects the axis slides are laid out on.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// SlotIndex maps a padded slot in [0, n+1] to the logical slide rendered
// there: slot 0 is a clone of the last slide and slot n+1 a clone of the first.
func SlotIndex(slot, n int) int {
	if n <= 0 {
		return 0
	}
	switch {
	case slot <= 0:
		return n - 1
	case slot > n:
		return 0
	default:
		return slot - 1
	}
}

// Slots returns the logical index rendered in each of the n+2 padded slots.
func Slots(n int) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, n+2)
	for slot := range out {
		out[slot] = SlotIndex(slot, n)
	}
	return out
}

// OffsetPercent is the strip translation for a position, as a percentage of
// the full strip length.
func OffsetPercent(position, n int) float64 {
	if n < 0 {
		n = 0
	}
	return -float64(position) * (100 / float64(n+2))
}

// Group splits items into consecutive groups of at most size items.
func Group[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}
	groups := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		groups = append(groups, items[start:end:end])
	}
	return groups
}

// Frame renders the visible window of a strip. panels holds one plain-text
// panel per logical slide; each is normalized to width×height. from and to are
// padded positions and progress in [0,1] interpolates between them with an
// ease-in-out curve.
func Frame(panels []string, width, height int, orient Orientation, from, to int, progress float64) string {
	n := len(panels)
	if n == 0 || width <= 0 || height <= 0 {
		return ""
	}
	cells := make([][]string, n)
	for i, p := range panels {
		cells[i] = normalize(p, width, height)
	}

	pos := float64(from) + (float64(to)-float64(from))*ease(progress)
	if from == to || progress >= 1 {
		pos = float64(to)
	}

	if orient == Vertical {
		return verticalWindow(cells, n, height, pos)
	}
	return horizontalWindow(cells, n, width, height, pos)
}

func horizontalWindow(cells [][]string, n, width, height int, pos float64) string {
	left := int(pos*float64(width) + 0.5)
	first := left / width
	shift := left % width
	out := make([]string, height)
	for row := 0; row < height; row++ {
		var b strings.Builder
		b.WriteString(cells[SlotIndex(first, n)][row])
		if shift > 0 {
			b.WriteString(cells[SlotIndex(first+1, n)][row])
		}
		out[row] = cutColumns(b.String(), shift, width)
	}
	return strings.Join(out, "\n")
}

func verticalWindow(cells [][]string, n, height int, pos float64) string {
	top := int(pos*float64(height) + 0.5)
	first := top / height
	shift := top % height
	lines := make([]string, 0, 2*height)
	lines = append(lines, cells[SlotIndex(first, n)]...)
	if shift > 0 {
		lines = append(lines, cells[SlotIndex(first+1, n)]...)
	}
	return strings.Join(lines[shift:shift+height], "\n")
}

// normalize pads or trims a panel to exactly width columns and height lines.
func normalize(panel string, width, height int) []string {
	lines := strings.Split(panel, "\n")
	out := make([]string, height)
	for i := range out {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		out[i] = cutColumns(line, 0, width)
	}
	return out
}

// cutColumns returns exactly width display columns of s starting at column
// start. Wide runes split by either edge are replaced with spaces.
func cutColumns(s string, start, width int) string {
	var b strings.Builder
	col := 0
	end := start + width
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		next := col + w
		switch {
		case next <= start:
		case col >= end:
		case col < start || next > end:
			for c := max(col, start); c < min(next, end); c++ {
				b.WriteByte(' ')
			}
		default:
			b.WriteRune(r)
		}
		col = next
		if col >= end {
			break
		}
	}
	if col < end {
		b.WriteString(strings.Repeat(" ", end-max(col, start)))
	}
	return b.String()
}

func ease(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	case t < 0.5:
		return 2 * t * t
	default:
		return 1 - 2*(1-t)*(1-t)
	}
}
