package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/five82/lobby/internal/carousel"
	"github.com/five82/lobby/internal/config"
	"github.com/five82/lobby/internal/content"
	"github.com/five82/lobby/internal/metrics"
	"github.com/five82/lobby/internal/prefs"
	"github.com/five82/lobby/internal/state"
)

// Options configures the UI.
type Options struct {
	Context      context.Context
	Store        *state.Store
	Client       *content.Client // resolves asset references; may be nil
	Config       config.Config
	Metrics      *metrics.Metrics // may be nil
	Logger       zerolog.Logger
	RefreshEvery time.Duration
	ThemeName    string
	StartPage    string
	PrefsPath    string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	asset     func(string) string
	metrics   *metrics.Metrics
	log       zerolog.Logger
	prefsPath string
	logPath   string
	refresh   time.Duration
	startPage string
	now       func() time.Time

	// UI state
	keys   keyMap
	help   help.Model
	theme  Theme
	width  int
	height int
	ready  bool

	// Data state
	snapshot     state.Snapshot
	haveSnapshot bool

	// Pages
	current PageID
	pages   [pageCount]page
	counted [pageCount]uint64
	initCmd tea.Cmd

	// Overlays
	pendingJump bool
	showHelp    bool
	modal       Modal
	showDiag    bool
	diag        diagnostics
}

// New creates a new Bubble Tea model with the start page mounted.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	refresh := opts.RefreshEvery
	if refresh <= 0 {
		refresh = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = DefaultTheme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	asset := func(ref string) string { return ref }
	if opts.Client != nil {
		asset = opts.Client.Asset
	}

	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		asset:     asset,
		metrics:   opts.Metrics,
		log:       opts.Logger,
		prefsPath: prefsPath,
		logPath:   opts.Config.LogFile,
		refresh:   refresh,
		startPage: opts.StartPage,
		now:       time.Now,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     GetTheme(themeName),
		current:   pageByName(opts.StartPage),
	}
	m.pages = [pageCount]page{
		PageHome:    newHomePage(opts.Config.SlideInterval(), opts.Config.NewsInterval()),
		PageProject: newProjectPage(),
		PagePaper:   newPaperPage(),
		PageAwards:  newAwardsPage(),
		PagePatent:  newPatentPage(),
		PageSeminar: newSeminarPage(),
	}
	m.pages[m.current], m.initCmd = m.pages[m.current].mount()
	m.metrics.PageView(m.current.String())
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.refresh),
		m.initCmd,
		waitForDone(m.ctx),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.diag.resize(msg.Width, msg.Height)
		m.ready = true
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		return m.applySnapshot(state.Snapshot(msg))

	case carousel.TickMsg, carousel.FrameMsg:
		var cmd tea.Cmd
		m.pages[m.current], cmd = m.pages[m.current].update(msg)
		m.recordMoves()
		return m, cmd

	case openQRMsg:
		modal, err := newQRModal(msg.title, msg.link)
		if err != nil {
			m.log.Warn().Err(err).Str("project", msg.title).Msg("render qr code")
			return m, nil
		}
		m.modal = modal
		return m, nil

	case logLoadedMsg:
		m.diag.setEntries(msg)
		return m, nil

	case doneMsg:
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	if m.showDiag {
		return m.renderDiagnostics()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		modal, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	if m.showDiag {
		if key.Matches(msg, m.keys.Escape, m.keys.Diagnostics) {
			m.showDiag = false
			return m, nil
		}
		var cmd tea.Cmd
		m.diag.viewport, cmd = m.diag.viewport.Update(msg)
		return m, cmd
	}

	if m.pendingJump {
		m.pendingJump = false
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			return m.act(action{kind: actJump, index: int(s[0] - '1')})
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			p := prefs.Prefs{Theme: m.theme.Name, StartPage: m.startPage}
			if err := prefs.Save(m.prefsPath, p); err != nil {
				m.log.Warn().Err(err).Msg("save prefs")
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Diagnostics):
		m.showDiag = true
		return m, loadLogCmd(m.logPath)

	case key.Matches(msg, m.keys.NextPage):
		return m.switchTo((m.current + 1) % pageCount)

	case key.Matches(msg, m.keys.PrevPage):
		return m.switchTo((m.current + pageCount - 1) % pageCount)

	case key.Matches(msg, m.keys.GoPage):
		return m.switchTo(PageID(msg.String()[0] - '1'))

	case key.Matches(msg, m.keys.Jump):
		m.pendingJump = true
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		return m.act(action{kind: actPrev})
	case key.Matches(msg, m.keys.Next):
		return m.act(action{kind: actNext})
	case key.Matches(msg, m.keys.FocusPrev):
		return m.act(action{kind: actFocusPrev})
	case key.Matches(msg, m.keys.FocusNext):
		return m.act(action{kind: actFocusNext})
	case key.Matches(msg, m.keys.Up):
		return m.act(action{kind: actUp})
	case key.Matches(msg, m.keys.Down):
		return m.act(action{kind: actDown})
	case key.Matches(msg, m.keys.Year):
		return m.act(action{kind: actYear})
	case key.Matches(msg, m.keys.Open):
		return m.act(action{kind: actOpen})
	}

	return m, nil
}

// act forwards a navigation action to the current page.
func (m Model) act(a action) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.pages[m.current], cmd = m.pages[m.current].act(a)
	m.recordMoves()
	return m, cmd
}

// switchTo unmounts the current page and mounts id.
func (m Model) switchTo(id PageID) (tea.Model, tea.Cmd) {
	if id < 0 || id >= pageCount || id == m.current {
		return m, nil
	}
	m.pages[m.current] = m.pages[m.current].unmount()
	m.current = id
	var cmd tea.Cmd
	m.pages[id], cmd = m.pages[id].mount()
	m.metrics.PageView(id.String())
	m.log.Debug().Str("page", id.String()).Msg("page shown")
	return m, cmd
}

// applySnapshot hands fresh content to every page. Pages whose payload
// revision did not change keep their carousel position.
func (m Model) applySnapshot(snap state.Snapshot) (tea.Model, tea.Cmd) {
	m.snapshot = snap
	m.haveSnapshot = true
	var cmds []tea.Cmd
	for id := range m.pages {
		var cmd tea.Cmd
		m.pages[id], cmd = m.pages[id].apply(snap)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// recordMoves reports carousel transitions on the current page since the
// last call.
func (m *Model) recordMoves() {
	now := m.pages[m.current].moves()
	if prev := m.counted[m.current]; now > prev {
		m.metrics.AddTransitions(m.current.String(), int(now-prev))
	}
	m.counted[m.current] = now
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.showDiag {
		cmds = append(cmds, loadLogCmd(m.logPath))
	}
	cmds = append(cmds, tickCmd(m.refresh))
	return m, tea.Batch(cmds...)
}

// renderMain renders header, current page and footer.
func (m Model) renderMain() string {
	bodyH := max(m.height-headerHeight-footerHeight, 1)
	styles := m.theme.Styles()
	rc := renderContext{
		theme:  m.theme,
		styles: styles,
		width:  m.width,
		height: bodyH,
		now:    m.now(),
		asset:  m.asset,
	}
	body := fit(m.pages[m.current].view(rc), m.width, bodyH)
	body = styles.Background.Width(m.width).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type doneMsg struct{}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// waitForDone quits the program when ctx is cancelled.
func waitForDone(ctx context.Context) tea.Cmd {
	if ctx.Done() == nil {
		return nil
	}
	return func() tea.Msg {
		<-ctx.Done()
		return doneMsg{}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
