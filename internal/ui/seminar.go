package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lobby/internal/carousel"
	"github.com/five82/lobby/internal/content"
	"github.com/five82/lobby/internal/state"
)

// seminarPage is a paginated grid: each slide holds up to six seminars and the
// indicators double as page numbers. Page jumps are instant.
type seminarPage struct {
	state    sectionState
	pages    [][]content.Seminar
	carousel carousel.Model
}

func newSeminarPage() seminarPage {
	return seminarPage{
		state:    sectionState{section: content.SectionSeminars},
		carousel: carousel.New(carousel.Options{AnimateJumps: false}),
	}
}

func (p seminarPage) mount() (page, tea.Cmd) {
	var cmd tea.Cmd
	p.carousel, cmd = p.carousel.Start()
	return p, cmd
}

func (p seminarPage) unmount() page {
	p.carousel = p.carousel.Stop()
	return p
}

func (p seminarPage) apply(snap state.Snapshot) (page, tea.Cmd) {
	if !p.state.sync(snap) {
		return p, nil
	}
	p.pages = carousel.Group(snap.Bundle.Seminars, seminarsPerSlide)
	var cmd tea.Cmd
	p.carousel, cmd = p.carousel.Replace(len(p.pages))
	return p, cmd
}

func (p seminarPage) update(msg tea.Msg) (page, tea.Cmd) {
	var cmd tea.Cmd
	p.carousel, cmd = p.carousel.Update(msg)
	return p, cmd
}

func (p seminarPage) act(a action) (page, tea.Cmd) {
	var cmd tea.Cmd
	switch a.kind {
	case actPrev:
		p.carousel, cmd = p.carousel.Prev()
	case actNext:
		p.carousel, cmd = p.carousel.Next()
	case actJump:
		p.carousel, cmd = p.carousel.JumpTo(a.index)
	}
	return p, cmd
}

func (p seminarPage) moves() uint64 {
	return p.carousel.Moves()
}

func (p seminarPage) view(rc renderContext) string {
	if s, ok := p.state.placeholder(rc, "seminars"); ok {
		return s
	}
	if len(p.pages) == 0 {
		return centered(rc, rc.styles.MutedText.Render("No seminars to show"))
	}

	const cols = 3
	panelH := rc.height - 2
	cardW := (rc.width - (cols - 1)) / cols
	cardH := max(panelH/2, 4)

	panels := make([]string, len(p.pages))
	for i, group := range p.pages {
		var rows []string
		for _, line := range carousel.Group(group, cols) {
			cards := make([]string, len(line))
			for j, s := range line {
				cards[j] = seminarCard(s, rc.asset, cardW, cardH)
			}
			rows = append(rows, joinColumns(cards, " "))
		}
		panels[i] = strings.Join(rows, "\n")
	}

	win := window(p.carousel, panels, rc.width, panelH, rc.styles.Slide)
	return fit(win+"\n"+centerStyled(pager(p.carousel, rc.styles), rc.width), rc.width, rc.height)
}

func seminarCard(s content.Seminar, asset func(string) string, width, height int) string {
	title := s.Title
	if s.Icon != "" && !strings.Contains(s.Icon, "/") {
		title = s.Icon + " " + title
	}
	lines := wrap(title, width-4)
	lines = append(lines, "", asset(s.Cover))
	return box(lines, width, height, false)
}
