package ui

import (
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lobby/internal/carousel"
	"github.com/five82/lobby/internal/content"
	"github.com/five82/lobby/internal/state"
)

// awardsPage shows awards in rows, each row its own autoplaying carousel.
// Rows alternate direction and cycle at different speeds.
type awardsPage struct {
	state   sectionState
	rows    [][]content.Award
	rowCars []carousel.Model
	focus   int
	mounted bool
	retired uint64 // moves of carousels replaced by a newer payload
}

func newAwardsPage() awardsPage {
	return awardsPage{state: sectionState{section: content.SectionAwards}}
}

// awardRowOptions returns the carousel options for row i holding n awards:
// one full loop takes awardLoopDurations[i%len] regardless of n.
func awardRowOptions(i, n int) carousel.Options {
	loop := awardLoopDurations[i%len(awardLoopDurations)]
	opts := carousel.Options{AnimateJumps: true}
	if n > 0 {
		opts.Interval = loop / time.Duration(n)
	}
	if i%2 == 1 {
		opts.Direction = carousel.Reverse
	}
	return opts
}

func (p awardsPage) mount() (page, tea.Cmd) {
	p.mounted = true
	cmds := make([]tea.Cmd, len(p.rowCars))
	for i := range p.rowCars {
		p.rowCars[i], cmds[i] = p.rowCars[i].Start()
	}
	return p, tea.Batch(cmds...)
}

func (p awardsPage) unmount() page {
	p.mounted = false
	cars := make([]carousel.Model, len(p.rowCars))
	for i, c := range p.rowCars {
		cars[i] = c.Stop()
	}
	p.rowCars = cars
	return p
}

func (p awardsPage) apply(snap state.Snapshot) (page, tea.Cmd) {
	if !p.state.sync(snap) {
		return p, nil
	}
	for _, c := range p.rowCars {
		p.retired += c.Moves()
	}
	p.rows = carousel.Group(snap.Bundle.Awards, awardsPerRow)
	p.rowCars = make([]carousel.Model, len(p.rows))
	var cmds []tea.Cmd
	for i, row := range p.rows {
		c, _ := carousel.New(awardRowOptions(i, len(row))).Replace(len(row))
		if p.mounted {
			var cmd tea.Cmd
			c, cmd = c.Start()
			cmds = append(cmds, cmd)
		}
		p.rowCars[i] = c
	}
	if p.focus >= len(p.rows) {
		p.focus = 0
	}
	return p, tea.Batch(cmds...)
}

func (p awardsPage) update(msg tea.Msg) (page, tea.Cmd) {
	cars := make([]carousel.Model, len(p.rowCars))
	cmds := make([]tea.Cmd, len(p.rowCars))
	for i, c := range p.rowCars {
		cars[i], cmds[i] = c.Update(msg)
	}
	p.rowCars = cars
	return p, tea.Batch(cmds...)
}

func (p awardsPage) act(a action) (page, tea.Cmd) {
	n := len(p.rowCars)
	if n == 0 {
		return p, nil
	}
	switch a.kind {
	case actFocusNext, actDown:
		p.focus = (p.focus + 1) % n
		return p, nil
	case actFocusPrev, actUp:
		p.focus = (p.focus - 1 + n) % n
		return p, nil
	}

	cars := make([]carousel.Model, n)
	copy(cars, p.rowCars)
	var cmd tea.Cmd
	switch a.kind {
	case actPrev:
		cars[p.focus], cmd = cars[p.focus].Prev()
	case actNext:
		cars[p.focus], cmd = cars[p.focus].Next()
	case actJump:
		cars[p.focus], cmd = cars[p.focus].JumpTo(a.index)
	}
	p.rowCars = cars
	return p, cmd
}

func (p awardsPage) moves() uint64 {
	total := p.retired
	for _, c := range p.rowCars {
		total += c.Moves()
	}
	return total
}

func (p awardsPage) view(rc renderContext) string {
	if s, ok := p.state.placeholder(rc, "awards"); ok {
		return s
	}
	if len(p.rows) == 0 {
		return centered(rc, rc.styles.MutedText.Render("No awards"))
	}

	rowH := max(rc.height/len(p.rows), 3)
	var out []string
	for i, row := range p.rows {
		panels := make([]string, len(row))
		for j, a := range row {
			panels[j] = awardCard(a, rc.asset, rc.width, rowH)
		}
		style := rc.styles.Slide
		if i == p.focus {
			style = rc.styles.SlideFocus
		}
		out = append(out, window(p.rowCars[i], panels, rc.width, rowH, style))
	}
	return fit(strings.Join(out, "\n"), rc.width, rc.height)
}

func awardCard(a content.Award, asset func(string) string, width, height int) string {
	shape := "landscape"
	if a.Portrait() {
		shape = "portrait"
	}
	head := "Award"
	if a.Year > 0 {
		head += " " + strconv.Itoa(a.Year)
	}
	lines := []string{
		head + "  ·  " + shape,
		asset(a.ImageURL),
	}
	return box(lines, width, height, false)
}
