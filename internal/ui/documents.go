package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lobby/internal/carousel"
	"github.com/five82/lobby/internal/content"
	"github.com/five82/lobby/internal/state"
)

// document is one slide of the paper or patent page.
type document struct {
	title string
	ref   string
	kind  string
}

// documentPage shows one document per slide with manual navigation only.
type documentPage struct {
	state    sectionState
	what     string
	empty    string
	extract  func(content.Bundle) []document
	docs     []document
	carousel carousel.Model
}

func newPaperPage() documentPage {
	return documentPage{
		state: sectionState{section: content.SectionPapers},
		what:  "papers",
		empty: "No papers",
		extract: func(b content.Bundle) []document {
			docs := make([]document, len(b.Papers))
			for i, p := range b.Papers {
				docs[i] = document{title: p.Title, ref: p.ImageURL, kind: "image"}
			}
			return docs
		},
		carousel: carousel.New(carousel.Options{AnimateJumps: true}),
	}
}

func newPatentPage() documentPage {
	return documentPage{
		state: sectionState{section: content.SectionPatents},
		what:  "patents",
		empty: "No patents",
		extract: func(b content.Bundle) []document {
			docs := make([]document, len(b.Patents))
			for i, p := range b.Patents {
				docs[i] = document{title: p.Title, ref: p.PDFURL, kind: "PDF"}
			}
			return docs
		},
		carousel: carousel.New(carousel.Options{AnimateJumps: true}),
	}
}

func (p documentPage) mount() (page, tea.Cmd) {
	var cmd tea.Cmd
	p.carousel, cmd = p.carousel.Start()
	return p, cmd
}

func (p documentPage) unmount() page {
	p.carousel = p.carousel.Stop()
	return p
}

func (p documentPage) apply(snap state.Snapshot) (page, tea.Cmd) {
	if !p.state.sync(snap) {
		return p, nil
	}
	p.docs = p.extract(snap.Bundle)
	var cmd tea.Cmd
	p.carousel, cmd = p.carousel.Replace(len(p.docs))
	return p, cmd
}

func (p documentPage) update(msg tea.Msg) (page, tea.Cmd) {
	var cmd tea.Cmd
	p.carousel, cmd = p.carousel.Update(msg)
	return p, cmd
}

func (p documentPage) act(a action) (page, tea.Cmd) {
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

func (p documentPage) moves() uint64 {
	return p.carousel.Moves()
}

func (p documentPage) view(rc renderContext) string {
	if s, ok := p.state.placeholder(rc, p.what); ok {
		return s
	}
	if len(p.docs) == 0 {
		return centered(rc, rc.styles.MutedText.Render(p.empty))
	}

	panelH := rc.height - 2
	inner := rc.width - 4
	panels := make([]string, len(p.docs))
	for i, d := range p.docs {
		lines := []string{itemCounter(i, len(p.docs)), ""}
		for _, l := range wrap(d.title, inner) {
			lines = append(lines, centerLine(l, inner))
		}
		lines = append(lines, "", centerLine(d.kind+": "+rc.asset(d.ref), inner))
		panels[i] = box(lines, rc.width, panelH, false)
	}

	nav := rc.styles.FaintText.Render("‹ ←") + "  " + indicators(p.carousel, rc.styles) + "  " + rc.styles.FaintText.Render("→ ›")
	win := window(p.carousel, panels, rc.width, panelH, rc.styles.Slide)
	return fit(win+"\n"+centerStyled(nav, rc.width), rc.width, rc.height)
}
