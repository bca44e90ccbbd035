package ui

import (
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lobby/internal/carousel"
	"github.com/five82/lobby/internal/content"
	"github.com/five82/lobby/internal/state"
)

type projectPage struct {
	state    sectionState
	byYear   map[int][]content.Project
	years    []int // newest first
	year     int
	slides   [][]content.Project
	carousel carousel.Model
	selected int // card within the current slide
}

func newProjectPage() projectPage {
	return projectPage{
		state:    sectionState{section: content.SectionProjects},
		carousel: carousel.New(carousel.Options{AnimateJumps: true}),
	}
}

func (p projectPage) mount() (page, tea.Cmd) {
	var cmd tea.Cmd
	p.carousel, cmd = p.carousel.Start()
	return p, cmd
}

func (p projectPage) unmount() page {
	p.carousel = p.carousel.Stop()
	return p
}

func (p projectPage) apply(snap state.Snapshot) (page, tea.Cmd) {
	if !p.state.sync(snap) {
		return p, nil
	}
	p.byYear = make(map[int][]content.Project)
	for _, proj := range snap.Bundle.Projects {
		p.byYear[proj.Year] = append(p.byYear[proj.Year], proj)
	}
	p.years = make([]int, 0, len(p.byYear))
	for y := range p.byYear {
		p.years = append(p.years, y)
	}
	slices.Sort(p.years)
	slices.Reverse(p.years)

	year := p.year
	if !slices.Contains(p.years, year) && len(p.years) > 0 {
		year = p.years[0]
	}
	return p.selectYear(year)
}

// selectYear swaps the carousel's sequence for year's projects.
func (p projectPage) selectYear(year int) (page, tea.Cmd) {
	p.year = year
	p.slides = carousel.Group(p.byYear[year], projectsPerSlide)
	p.selected = 0
	var cmd tea.Cmd
	p.carousel, cmd = p.carousel.Replace(len(p.slides))
	return p, cmd
}

func (p projectPage) update(msg tea.Msg) (page, tea.Cmd) {
	var cmd tea.Cmd
	p.carousel, cmd = p.carousel.Update(msg)
	return p, cmd
}

func (p projectPage) act(a action) (page, tea.Cmd) {
	var cmd tea.Cmd
	switch a.kind {
	case actPrev:
		p.carousel, cmd = p.carousel.Prev()
		p.selected = 0
	case actNext:
		p.carousel, cmd = p.carousel.Next()
		p.selected = 0
	case actJump:
		p.carousel, cmd = p.carousel.JumpTo(a.index)
		p.selected = 0
	case actYear:
		if len(p.years) > 1 {
			i := slices.Index(p.years, p.year)
			return p.selectYear(p.years[(i+1)%len(p.years)])
		}
	case actUp:
		if p.selected > 0 {
			p.selected--
		}
	case actDown:
		if p.selected < len(p.currentSlide())-1 {
			p.selected++
		}
	case actOpen:
		slide := p.currentSlide()
		if p.selected < len(slide) {
			proj := slide[p.selected]
			if strings.TrimSpace(proj.QRLink) != "" {
				return p, openQRCmd(proj.Name, proj.QRLink)
			}
		}
	}
	return p, cmd
}

func (p projectPage) currentSlide() []content.Project {
	i, ok := p.carousel.Index()
	if !ok || i >= len(p.slides) {
		return nil
	}
	return p.slides[i]
}

func (p projectPage) moves() uint64 {
	return p.carousel.Moves()
}

func (p projectPage) view(rc renderContext) string {
	if s, ok := p.state.placeholder(rc, "projects"); ok {
		return s
	}
	if len(p.years) == 0 {
		return centered(rc, rc.styles.MutedText.Render("No projects"))
	}

	st := rc.styles
	var yearParts []string
	for _, y := range p.years {
		label := strconv.Itoa(y)
		if y == p.year {
			yearParts = append(yearParts, st.TabActive.Render(label))
		} else {
			yearParts = append(yearParts, st.MutedText.Render(" "+label+" "))
		}
	}
	top := strings.Join(yearParts, " ") + "  " + st.FaintText.Render("y: change year · enter: deploy QR")

	panelH := rc.height - 3
	cardW := (rc.width - 1) / projectsPerSlide
	panels := make([]string, len(p.slides))
	for i, slide := range p.slides {
		cards := make([]string, 0, projectsPerSlide)
		for j, proj := range slide {
			cards = append(cards, projectCard(proj, rc.asset, cardW, panelH, j == p.selected))
		}
		panels[i] = joinColumns(cards, " ")
	}

	win := window(p.carousel, panels, rc.width, panelH, st.SlideFocus)
	return fit(top+"\n\n"+win+"\n"+centerStyled(indicators(p.carousel, st), rc.width), rc.width, rc.height)
}

func projectCard(proj content.Project, asset func(string) string, width, height int, selected bool) string {
	inner := width - 4
	var lines []string
	if proj.SpecialNote != "" {
		lines = append(lines, "★ "+proj.SpecialNote)
	}
	lines = append(lines, strings.ToUpper(proj.Name), "")
	lines = append(lines, wrap(strings.Join(proj.Participants, " "), inner)...)
	lines = append(lines, "", asset(proj.ImageURL))
	if proj.QRLink != "" {
		lines = append(lines, "", "QR ▸ "+proj.QRLink)
	}
	return box(lines, width, height, selected)
}

// joinColumns places plain-text blocks side by side, line by line.
func joinColumns(blocks []string, sep string) string {
	split := make([][]string, len(blocks))
	rows := 0
	for i, b := range blocks {
		split[i] = strings.Split(b, "\n")
		rows = max(rows, len(split[i]))
	}
	out := make([]string, rows)
	for r := range out {
		parts := make([]string, len(split))
		for i, lines := range split {
			if r < len(lines) {
				parts[i] = lines[r]
			}
		}
		out[r] = strings.Join(parts, sep)
	}
	return strings.Join(out, "\n")
}
