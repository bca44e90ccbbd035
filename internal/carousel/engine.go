package carousel

// Phase is the engine's finite state.
type Phase int

const (
	// Idle means no motion is in flight and position is at rest.
	Idle Phase = iota
	// Transitioning means a motion is in flight; navigation requests are dropped.
	Transitioning
)

func (p Phase) String() string {
	if p == Transitioning {
		return "transitioning"
	}
	return "idle"
}

// Direction selects which way autoplay moves.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

// Transition describes a motion the render surface should perform.
type Transition struct {
	Token    uint64
	From     int
	To       int
	Animated bool
}

// Engine owns the padded position of one carousel. Logical slide i lives at
// position i+1; position 0 is the clone of the last slide and position n+1 the
// clone of the first. The zero value is an empty carousel.
type Engine struct {
	n        int
	position int
	phase    Phase
	token    uint64
}

// NewEngine returns an engine at rest on the first slide.
func NewEngine(n int) Engine {
	e := Engine{}
	e.Replace(n)
	return e
}

// Len returns the number of logical slides.
func (e *Engine) Len() int { return e.n }

// Position returns the padded position in [0, n+1].
func (e *Engine) Position() int { return e.position }

// Phase returns the current state.
func (e *Engine) Phase() Phase { return e.phase }

// Transitioning reports whether a motion is in flight.
func (e *Engine) Transitioning() bool { return e.phase == Transitioning }

// Token identifies the in-flight transition. It changes whenever a transition
// starts or is invalidated.
func (e *Engine) Token() uint64 { return e.token }

// Advance moves forward one slide. At the last real slide it moves into the
// trailing clone; Settle snaps back to the first slide.
func (e *Engine) Advance() (Transition, bool) {
	if e.n <= 1 || e.phase == Transitioning {
		return Transition{}, false
	}
	return e.begin(e.position + 1), true
}

// Retreat moves back one slide. At the first real slide it moves into the
// leading clone; Settle snaps to the last slide.
func (e *Engine) Retreat() (Transition, bool) {
	if e.n <= 1 || e.phase == Transitioning {
		return Transition{}, false
	}
	return e.begin(e.position - 1), true
}

// JumpTo moves straight to a logical slide. Out of range targets, jumps while
// transitioning and jumps to the current slide are dropped. Without animation
// the position changes immediately and the engine stays Idle.
func (e *Engine) JumpTo(index int, animate bool) (Transition, bool) {
	if index < 0 || index >= e.n || e.phase == Transitioning {
		return Transition{}, false
	}
	target := index + 1
	if target == e.position {
		return Transition{}, false
	}
	if !animate {
		from := e.position
		e.position = target
		e.token++
		return Transition{Token: e.token, From: from, To: target}, true
	}
	return e.begin(target), true
}

// Tick is the autoplay step. Single-slide and empty carousels never move.
func (e *Engine) Tick(dir Direction) (Transition, bool) {
	if dir == Reverse {
		return e.Retreat()
	}
	return e.Advance()
}

// Settle completes the in-flight transition identified by token. A token from
// a superseded transition is ignored so it cannot clobber a newer position.
func (e *Engine) Settle(token uint64) bool {
	if e.phase != Transitioning || token != e.token {
		return false
	}
	e.phase = Idle
	switch e.position {
	case 0:
		e.position = e.n
	case e.n + 1:
		e.position = 1
	}
	return true
}

// Replace resets the engine for a new sequence of n slides.
func (e *Engine) Replace(n int) {
	if n < 0 {
		n = 0
	}
	e.n = n
	e.position = 1
	e.phase = Idle
	e.token++
}

// Resize adjusts the slide count without treating it as a new sequence. The
// position is clamped into [1, max(1, n)] and any transition is abandoned.
func (e *Engine) Resize(n int) {
	if n < 0 {
		n = 0
	}
	e.n = n
	hi := max(1, n)
	e.position = min(max(e.position, 1), hi)
	e.phase = Idle
	e.token++
}

// CurrentIndex maps the position back to a logical index for indicators.
// Clone positions report the slide they mirror. ok is false when empty.
func (e *Engine) CurrentIndex() (index int, ok bool) {
	if e.n == 0 {
		return 0, false
	}
	return SlotIndex(e.position, e.n), true
}

func (e *Engine) begin(target int) Transition {
	from := e.position
	e.position = target
	e.phase = Transitioning
	e.token++
	return Transition{Token: e.token, From: from, To: target, Animated: true}
}
