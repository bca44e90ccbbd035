package carousel

import (
	"testing"
	"time"
)

func started(t *testing.T, opts Options, n int) Model {
	t.Helper()
	m := New(opts)
	m, _ = m.Replace(n)
	m, cmd := m.Start()
	if opts.Interval > 0 && n > 1 && cmd == nil {
		t.Fatal("Start did not schedule autoplay")
	}
	return m
}

func tick(m Model) (Model, bool) {
	before := m.Moves()
	m, _ = m.Update(TickMsg{ID: m.ID(), tag: m.tag})
	return m, m.Moves() > before
}

func finishMotion(m Model) Model {
	for m.motion.active {
		m, _ = m.Update(FrameMsg{ID: m.ID(), token: m.motion.token})
	}
	return m
}

func TestModel_AutoplayCyclesForward(t *testing.T) {
	m := started(t, Options{Interval: time.Second}, 3)
	var seen []int
	for i := 0; i < 4; i++ {
		var moved bool
		m, moved = tick(m)
		if !moved {
			t.Fatalf("tick %d did not move", i)
		}
		m = finishMotion(m)
		idx, _ := m.Index()
		seen = append(seen, idx)
	}
	want := []int{1, 2, 0, 1}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("indices = %v, want %v", seen, want)
		}
	}
}

func TestModel_ReverseAutoplay(t *testing.T) {
	m := started(t, Options{Interval: time.Second, Direction: Reverse}, 4)
	m, _ = tick(m)
	m = finishMotion(m)
	if idx, _ := m.Index(); idx != 3 {
		t.Fatalf("index = %d, want 3", idx)
	}
	if m.Position() != 4 {
		t.Fatalf("position = %d, want 4", m.Position())
	}
}

func TestModel_SettlesAfterMotionFrames(t *testing.T) {
	m := started(t, Options{Interval: time.Second}, 3)
	m, _ = tick(m)
	token := m.motion.token
	for i := 0; i < motionFrames-1; i++ {
		m, _ = m.Update(FrameMsg{ID: m.ID(), token: token})
		if !m.Transitioning() {
			t.Fatalf("settled early after %d frames", i+1)
		}
	}
	if p := m.Progress(); p <= 0 || p >= 1 {
		t.Fatalf("progress = %v, want strictly between 0 and 1", p)
	}
	m, cmd := m.Update(FrameMsg{ID: m.ID(), token: token})
	if m.Transitioning() {
		t.Fatal("still transitioning after final frame")
	}
	if cmd != nil {
		t.Fatal("final frame scheduled another frame")
	}
	if m.Progress() != 1 {
		t.Fatalf("progress at rest = %v, want 1", m.Progress())
	}
}

func TestModel_StaleTickIgnored(t *testing.T) {
	m := started(t, Options{Interval: time.Second}, 3)
	stale := TickMsg{ID: m.ID(), tag: m.tag}

	m, _ = m.Next()
	m = finishMotion(m)
	before := m.Position()

	m, cmd := m.Update(stale)
	if cmd != nil || m.Position() != before {
		t.Fatalf("stale tick acted: position %d -> %d", before, m.Position())
	}
}

func TestModel_StopMakesTimersInert(t *testing.T) {
	m := started(t, Options{Interval: time.Second}, 3)
	pending := TickMsg{ID: m.ID(), tag: m.tag}
	m = m.Stop()

	m, cmd := m.Update(pending)
	if cmd != nil || m.Moves() != 0 {
		t.Fatal("tick delivered after Stop moved the carousel")
	}
	m, _ = m.Update(TickMsg{ID: m.ID(), tag: m.tag})
	if m.Moves() != 0 {
		t.Fatal("stopped carousel advanced on current-tag tick")
	}
}

func TestModel_StopSettlesInFlightMotion(t *testing.T) {
	m := started(t, Options{Interval: time.Second}, 3)
	m, _ = m.Prev()
	if !m.Transitioning() {
		t.Fatal("Prev did not start a motion")
	}
	token := m.motion.token
	m = m.Stop()
	if m.Transitioning() || m.Position() != 3 {
		t.Fatalf("after Stop transitioning=%v position=%d, want idle at 3", m.Transitioning(), m.Position())
	}
	m, _ = m.Update(FrameMsg{ID: m.ID(), token: token})
	if m.Position() != 3 {
		t.Fatalf("late frame moved position to %d", m.Position())
	}
}

func TestModel_IgnoresOtherCarousels(t *testing.T) {
	a := started(t, Options{Interval: time.Second}, 3)
	b := started(t, Options{Interval: time.Second}, 3)

	a, _ = a.Update(TickMsg{ID: b.ID(), tag: a.tag})
	if a.Moves() != 0 {
		t.Fatal("carousel reacted to another carousel's tick")
	}
	b, _ = b.Next()
	a, _ = a.Update(FrameMsg{ID: b.ID(), token: b.motion.token})
	if a.Transitioning() {
		t.Fatal("carousel reacted to another carousel's frame")
	}
}

func TestModel_ManualNavigationDroppedMidMotion(t *testing.T) {
	m := started(t, Options{Interval: time.Second}, 4)
	m, _ = m.Next()
	m, cmd := m.Next()
	if cmd != nil {
		t.Fatal("second Next while transitioning returned a command")
	}
	m = finishMotion(m)
	if idx, _ := m.Index(); idx != 1 {
		t.Fatalf("index = %d, want 1", idx)
	}
}

func TestModel_ReplaceDuringMotion(t *testing.T) {
	m := started(t, Options{Interval: time.Second}, 3)
	m, _ = tick(m)
	token := m.motion.token

	m, _ = m.Replace(5)
	if m.Transitioning() || m.Position() != 1 || m.Len() != 5 {
		t.Fatalf("after Replace transitioning=%v position=%d len=%d", m.Transitioning(), m.Position(), m.Len())
	}
	m, cmd := m.Update(FrameMsg{ID: m.ID(), token: token})
	if cmd != nil || m.Position() != 1 {
		t.Fatal("frame from replaced sequence acted")
	}
}

func TestModel_InstantJump(t *testing.T) {
	m := started(t, Options{Interval: time.Second}, 6)
	m, _ = m.JumpTo(4)
	if m.Transitioning() {
		t.Fatal("instant jump left the carousel transitioning")
	}
	if idx, _ := m.Index(); idx != 4 {
		t.Fatalf("index = %d, want 4", idx)
	}
	if m.Moves() != 1 {
		t.Fatalf("moves = %d, want 1", m.Moves())
	}
}

func TestModel_AnimatedJump(t *testing.T) {
	m := started(t, Options{Interval: time.Second, AnimateJumps: true}, 6)
	m, cmd := m.JumpTo(2)
	if cmd == nil || !m.Transitioning() {
		t.Fatal("animated jump did not start a motion")
	}
	m = finishMotion(m)
	if idx, _ := m.Index(); idx != 2 {
		t.Fatalf("index = %d, want 2", idx)
	}
}

func TestModel_NoTimerWithoutSlidesOrInterval(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		n    int
	}{
		{"empty", Options{Interval: time.Second}, 0},
		{"single", Options{Interval: time.Second}, 1},
		{"no interval", Options{}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.opts)
			m, _ = m.Replace(tt.n)
			if _, cmd := m.Start(); cmd != nil {
				t.Fatal("Start scheduled a timer")
			}
		})
	}
}

func TestModel_ViewAtRest(t *testing.T) {
	m := started(t, Options{Interval: time.Second}, 2)
	if got := m.View([]string{"one", "two"}, 4, 1); got != "one " {
		t.Fatalf("View = %q, want %q", got, "one ")
	}
	if got := m.View(nil, 4, 1); got != "" {
		t.Fatalf("View with no panels = %q", got)
	}
}
