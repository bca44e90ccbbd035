package ui

import (
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lobby/internal/carousel"
	"github.com/five82/lobby/internal/content"
	"github.com/five82/lobby/internal/state"
)

const (
	introTitle = "HBNU WISOFT.IO"
	introText  = "국립한밭대학교 와이소프트(WiSoft)는 프로그래밍으로 미래를 설계하는 소프트웨어 중심의 연구실입니다."
)

const (
	homeFocusHero = iota
	homeFocusNews
)

type homePage struct {
	state sectionState
	home  content.Home
	hero  carousel.Model
	news  carousel.Model
	focus int
}

func newHomePage(slideInterval, newsInterval time.Duration) homePage {
	return homePage{
		state: sectionState{section: content.SectionHome},
		hero: carousel.New(carousel.Options{
			Interval:     slideInterval,
			AnimateJumps: true,
		}),
		news: carousel.New(carousel.Options{
			Interval:     newsInterval,
			Orientation:  carousel.Vertical,
			AnimateJumps: true,
		}),
	}
}

func (p homePage) mount() (page, tea.Cmd) {
	var c1, c2 tea.Cmd
	p.hero, c1 = p.hero.Start()
	p.news, c2 = p.news.Start()
	return p, tea.Batch(c1, c2)
}

func (p homePage) unmount() page {
	p.hero = p.hero.Stop()
	p.news = p.news.Stop()
	return p
}

func (p homePage) apply(snap state.Snapshot) (page, tea.Cmd) {
	if !p.state.sync(snap) {
		return p, nil
	}
	p.home = snap.Bundle.Home
	var c1, c2 tea.Cmd
	p.hero, c1 = p.hero.Replace(len(p.home.Slides))
	p.news, c2 = p.news.Replace(len(p.home.News))
	return p, tea.Batch(c1, c2)
}

func (p homePage) update(msg tea.Msg) (page, tea.Cmd) {
	var c1, c2 tea.Cmd
	p.hero, c1 = p.hero.Update(msg)
	p.news, c2 = p.news.Update(msg)
	return p, tea.Batch(c1, c2)
}

func (p homePage) act(a action) (page, tea.Cmd) {
	switch a.kind {
	case actFocusNext, actFocusPrev:
		p.focus = 1 - p.focus
		return p, nil
	}
	target := &p.hero
	if p.focus == homeFocusNews {
		target = &p.news
	}
	var cmd tea.Cmd
	switch a.kind {
	case actPrev:
		*target, cmd = target.Prev()
	case actNext:
		*target, cmd = target.Next()
	case actJump:
		*target, cmd = target.JumpTo(a.index)
	}
	return p, cmd
}

func (p homePage) moves() uint64 {
	return p.hero.Moves() + p.news.Moves()
}

func (p homePage) view(rc renderContext) string {
	if s, ok := p.state.placeholder(rc, "home"); ok {
		return s
	}

	if rc.width < LayoutCompactWidth {
		heroH := max(rc.height/2, 6)
		hero := p.renderHero(rc, rc.width, heroH)
		side := p.renderSide(rc, rc.width, rc.height-heroH)
		return lipgloss.JoinVertical(lipgloss.Left, hero, side)
	}

	leftW := rc.width * 3 / 5
	rightW := rc.width - leftW - 1
	hero := p.renderHero(rc, leftW, rc.height)
	side := p.renderSide(rc, rightW, rc.height)
	return lipgloss.JoinHorizontal(lipgloss.Top, hero, " ", side)
}

func (p homePage) renderHero(rc renderContext, width, height int) string {
	slides := p.home.Slides
	if len(slides) == 0 {
		return fit(rc.styles.MutedText.Render("No slides"), width, height)
	}
	panelH := height - 1
	panels := make([]string, len(slides))
	for i, s := range slides {
		lines := []string{
			itemCounter(i, len(slides)),
			"",
		}
		for _, l := range wrap(s.Caption, width-4) {
			lines = append(lines, centerLine(l, width-4))
		}
		lines = append(lines, "")
		lines = append(lines, centerLine(rc.asset(s.ImageURL), width-4))
		panels[i] = box(lines, width, panelH, false)
	}
	style := rc.styles.Slide
	if p.focus == homeFocusHero {
		style = rc.styles.SlideFocus
	}
	win := window(p.hero, panels, width, panelH, style)
	return fit(win+"\n"+centerStyled(indicators(p.hero, rc.styles), width), width, height)
}

func (p homePage) renderSide(rc renderContext, width, height int) string {
	var b strings.Builder
	st := rc.styles

	b.WriteString(st.AccentText.Bold(true).Render(introTitle))
	b.WriteString("\n")
	for _, l := range wrap(introText, width) {
		b.WriteString(st.MutedText.Render(l))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	upcoming := weeklySchedule(p.home.Schedule, rc.now)
	if len(upcoming) == 0 {
		b.WriteString(st.Text.Bold(true).Render("No schedule this week"))
		b.WriteString("\n")
	} else {
		b.WriteString(st.Text.Bold(true).Render("This week"))
		b.WriteString("\n")
		for _, item := range upcoming {
			b.WriteString(st.WarningText.Render(item.Date))
			b.WriteString("  ")
			b.WriteString(st.Text.Render(item.Title))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	if len(p.home.Projects) > 0 {
		b.WriteString(st.Text.Bold(true).Render("Current Project"))
		b.WriteString("\n")
		for _, name := range p.home.Projects {
			b.WriteString(st.MutedText.Render("• " + name))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(st.Text.Bold(true).Render("WiSoft News"))
	b.WriteString("\n")
	if len(p.home.News) == 0 {
		b.WriteString(st.FaintText.Render("No news"))
	} else {
		panels := make([]string, len(p.home.News))
		for i, n := range p.home.News {
			panels[i] = "\n" + padRight("› "+n, width) + "\n"
		}
		style := st.Text
		if p.focus == homeFocusNews {
			style = st.SlideFocus
		}
		b.WriteString(window(p.news, panels, width, 3, style))
	}
	return fit(b.String(), width, height)
}

// weeklySchedule keeps the entries dated from today through seven days
// ahead, in now's location. Malformed dates are dropped.
func weeklySchedule(items []content.ScheduleItem, now time.Time) []content.ScheduleItem {
	loc := now.Location()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)
	end := today.Add(scheduleWindow)

	var out []content.ScheduleItem
	for _, item := range items {
		day, ok := item.Day(loc)
		if !ok {
			continue
		}
		if day.Before(today) || day.After(end) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func itemCounter(i, n int) string {
	return strconv.Itoa(i+1) + " / " + strconv.Itoa(n)
}
