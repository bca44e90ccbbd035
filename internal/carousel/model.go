package carousel

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	// MotionDuration is how long one slide motion takes on screen.
	MotionDuration = 500 * time.Millisecond

	// FrameInterval is the redraw cadence while a motion is in flight.
	FrameInterval = 50 * time.Millisecond

	motionFrames = int(MotionDuration / FrameInterval)
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// TickMsg fires the autoplay timer of the carousel with the matching ID.
type TickMsg struct {
	ID  int
	tag int
}

// FrameMsg advances the motion of the carousel with the matching ID.
type FrameMsg struct {
	ID    int
	token uint64
}

// Options parameterize a carousel instance.
type Options struct {
	// Interval between autoplay steps. Zero disables autoplay.
	Interval     time.Duration
	Direction    Direction
	Orientation  Orientation
	AnimateJumps bool
}

type motion struct {
	active bool
	token  uint64
	from   int
	to     int
	frame  int
}

// Model is a Bubble Tea component driving one Engine. Autoplay timers and
// motion frames carry the tag or token they were scheduled under; anything
// scheduled before the latest Stop, Replace or manual move is dropped on
// arrival.
type Model struct {
	id      int
	opts    Options
	engine  Engine
	running bool
	tag     int
	motion  motion
	moves   uint64
}

// New returns a stopped carousel with no slides.
func New(opts Options) Model {
	return Model{id: nextID(), opts: opts}
}

// ID identifies the carousel in TickMsg and FrameMsg.
func (m Model) ID() int { return m.id }

// Options returns the instance parameters.
func (m Model) Options() Options { return m.opts }

// Len returns the number of logical slides.
func (m Model) Len() int { return m.engine.Len() }

// Position returns the engine's padded position.
func (m Model) Position() int { return m.engine.Position() }

// Index returns the logical slide to highlight in indicators.
func (m Model) Index() (int, bool) { return m.engine.CurrentIndex() }

// Transitioning reports whether a motion is in flight.
func (m Model) Transitioning() bool { return m.engine.Transitioning() }

// Running reports whether the carousel is mounted.
func (m Model) Running() bool { return m.running }

// Moves counts transitions started over the carousel's lifetime.
func (m Model) Moves() uint64 { return m.moves }

// Start mounts the carousel and schedules autoplay.
func (m Model) Start() (Model, tea.Cmd) {
	m.running = true
	m.tag++
	return m, m.scheduleTick()
}

// Stop unmounts the carousel. Pending timers and frames become inert and an
// in-flight motion is settled in place.
func (m Model) Stop() Model {
	m.running = false
	m.tag++
	if m.motion.active {
		m.engine.Settle(m.motion.token)
		m.motion = motion{}
	}
	return m
}

// Replace installs a new sequence of n slides and restarts from the first.
func (m Model) Replace(n int) (Model, tea.Cmd) {
	m.engine.Replace(n)
	m.motion = motion{}
	return m.restartAutoplay()
}

// Resize changes the slide count while keeping the current position.
func (m Model) Resize(n int) (Model, tea.Cmd) {
	m.engine.Resize(n)
	m.motion = motion{}
	return m.restartAutoplay()
}

// Next moves forward one slide and restarts the autoplay countdown.
func (m Model) Next() (Model, tea.Cmd) {
	return m.manual(m.engine.Advance())
}

// Prev moves back one slide and restarts the autoplay countdown.
func (m Model) Prev() (Model, tea.Cmd) {
	return m.manual(m.engine.Retreat())
}

// JumpTo moves to a logical slide, as an indicator selection would.
func (m Model) JumpTo(index int) (Model, tea.Cmd) {
	return m.manual(m.engine.JumpTo(index, m.opts.AnimateJumps))
}

// Update handles the carousel's own timer and frame messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if msg.ID != m.id || msg.tag != m.tag || !m.running {
			return m, nil
		}
		var cmds []tea.Cmd
		if tr, ok := m.engine.Tick(m.opts.Direction); ok {
			cmds = append(cmds, m.startMotion(tr))
		}
		cmds = append(cmds, m.scheduleTick())
		return m, tea.Batch(cmds...)

	case FrameMsg:
		if msg.ID != m.id || !m.motion.active || msg.token != m.motion.token {
			return m, nil
		}
		m.motion.frame++
		if m.motion.frame >= motionFrames {
			m.engine.Settle(m.motion.token)
			m.motion = motion{}
			return m, nil
		}
		return m, m.frameCmd()
	}
	return m, nil
}

// Progress reports the motion's completion in [0,1]; 1 when at rest.
func (m Model) Progress() float64 {
	if !m.motion.active {
		return 1
	}
	return float64(m.motion.frame) / float64(motionFrames)
}

// View renders the visible window for panels, one per logical slide.
func (m Model) View(panels []string, width, height int) string {
	if len(panels) == 0 {
		return ""
	}
	if !m.motion.active {
		pos := m.engine.Position()
		return Frame(panels, width, height, m.opts.Orientation, pos, pos, 1)
	}
	return Frame(panels, width, height, m.opts.Orientation, m.motion.from, m.motion.to, m.Progress())
}

func (m Model) manual(tr Transition, ok bool) (Model, tea.Cmd) {
	if !ok {
		return m, nil
	}
	var cmds []tea.Cmd
	if tr.Animated {
		cmds = append(cmds, m.startMotion(tr))
	} else {
		m.moves++
	}
	m, tick := m.restartAutoplay()
	cmds = append(cmds, tick)
	return m, tea.Batch(cmds...)
}

func (m *Model) startMotion(tr Transition) tea.Cmd {
	m.moves++
	m.motion = motion{active: true, token: tr.Token, from: tr.From, to: tr.To}
	return m.frameCmd()
}

func (m Model) restartAutoplay() (Model, tea.Cmd) {
	if !m.running {
		return m, nil
	}
	m.tag++
	return m, m.scheduleTick()
}

func (m Model) scheduleTick() tea.Cmd {
	if !m.running || m.opts.Interval <= 0 || m.engine.Len() <= 1 {
		return nil
	}
	id, tag := m.id, m.tag
	return tea.Tick(m.opts.Interval, func(time.Time) tea.Msg {
		return TickMsg{ID: id, tag: tag}
	})
}

func (m Model) frameCmd() tea.Cmd {
	id, token := m.id, m.motion.token
	return tea.Tick(FrameInterval, func(time.Time) tea.Msg {
		return FrameMsg{ID: id, token: token}
	})
}
