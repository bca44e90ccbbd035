package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lobby/internal/content"
	"github.com/five82/lobby/internal/state"
)

// PageID identifies one kiosk page.
type PageID int

const (
	PageHome PageID = iota
	PageProject
	PagePaper
	PageAwards
	PagePatent
	PageSeminar
	pageCount
)

var pageNames = [pageCount]string{"home", "project", "paper", "awards", "patent", "seminar"}

var pageTitles = [pageCount]string{"Home", "Project", "Paper", "Awards", "Patent", "Seminar"}

func (p PageID) String() string {
	if p < 0 || p >= pageCount {
		return "unknown"
	}
	return pageNames[p]
}

// Title is the tab label.
func (p PageID) Title() string {
	if p < 0 || p >= pageCount {
		return ""
	}
	return pageTitles[p]
}

// PageNames lists page names in tab order.
func PageNames() []string {
	return pageNames[:]
}

// pageByName resolves a stored start page; unknown names fall back to home.
func pageByName(name string) PageID {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range pageNames {
		if n == name {
			return PageID(i)
		}
	}
	return PageHome
}

type actionKind int

const (
	actPrev actionKind = iota
	actNext
	actFocusPrev
	actFocusNext
	actJump
	actUp
	actDown
	actYear
	actOpen
)

// action is a key press translated for the current page.
type action struct {
	kind  actionKind
	index int // slide for actJump
}

// renderContext carries what a page needs to draw itself.
type renderContext struct {
	theme  Theme
	styles Styles
	width  int
	height int
	now    time.Time
	asset  func(string) string
}

// page is one screen of the kiosk. Pages are values; every method returns the
// updated page. Carousels only run between mount and unmount.
type page interface {
	mount() (page, tea.Cmd)
	unmount() page
	apply(snap state.Snapshot) (page, tea.Cmd)
	update(msg tea.Msg) (page, tea.Cmd)
	act(a action) (page, tea.Cmd)
	view(rc renderContext) string
	moves() uint64
}

// sectionState tracks which payload revision a page last rendered.
type sectionState struct {
	section content.Section
	rev     uint64
	loaded  bool
	err     error
}

// sync reports whether the section's payload changed since the last call.
func (s *sectionState) sync(snap state.Snapshot) bool {
	s.err = snap.Errors[s.section]
	if !snap.HasData(s.section) {
		return false
	}
	rev := snap.Revision(s.section)
	if s.loaded && rev == s.rev {
		return false
	}
	s.loaded, s.rev = true, rev
	return true
}

// placeholder renders the loading or error state. ok is false once the
// section has data; stale data is preferred over an error.
func (s sectionState) placeholder(rc renderContext, what string) (string, bool) {
	if s.loaded {
		return "", false
	}
	if s.err != nil {
		msg := rc.styles.DangerText.Render("Could not load "+what) + "\n" +
			rc.styles.MutedText.Render(classifyConnectionError(s.err))
		return centered(rc, msg), true
	}
	return centered(rc, rc.styles.MutedText.Render("Loading "+what+"…")), true
}

// openQRMsg asks the root model to show a QR code for link.
type openQRMsg struct {
	title string
	link  string
}

func openQRCmd(title, link string) tea.Cmd {
	return func() tea.Msg {
		return openQRMsg{title: title, link: link}
	}
}
