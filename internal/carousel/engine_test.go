package carousel

import "testing"

func TestEngine_AdvanceWrapsAroundInvisibly(t *testing.T) {
	for n := 2; n <= 7; n++ {
		e := NewEngine(n)
		start, _ := e.CurrentIndex()
		for step := 0; step < n; step++ {
			tr, ok := e.Advance()
			if !ok {
				t.Fatalf("n=%d step %d: Advance rejected", n, step)
			}
			if p := e.Position(); p < 0 || p > n+1 {
				t.Fatalf("n=%d step %d: position %d outside [0,%d]", n, step, p, n+1)
			}
			if !e.Settle(tr.Token) {
				t.Fatalf("n=%d step %d: Settle rejected token %d", n, step, tr.Token)
			}
			if p := e.Position(); p < 1 || p > n {
				t.Fatalf("n=%d step %d: settled position %d outside [1,%d]", n, step, p, n)
			}
		}
		if got, _ := e.CurrentIndex(); got != start {
			t.Fatalf("n=%d: index after full cycle = %d, want %d", n, got, start)
		}
	}
}

func TestEngine_AdvanceFromLastEntersTrailingClone(t *testing.T) {
	e := NewEngine(3)
	for i := 0; i < 2; i++ {
		tr, _ := e.Advance()
		e.Settle(tr.Token)
	}
	if e.Position() != 3 {
		t.Fatalf("position = %d, want 3", e.Position())
	}

	tr, ok := e.Advance()
	if !ok || tr.From != 3 || tr.To != 4 || !tr.Animated {
		t.Fatalf("Advance = %+v ok=%v, want 3->4 animated", tr, ok)
	}
	if idx, _ := e.CurrentIndex(); idx != 0 {
		t.Fatalf("index on trailing clone = %d, want 0", idx)
	}
	e.Settle(tr.Token)
	if e.Position() != 1 || e.Transitioning() {
		t.Fatalf("after settle position=%d transitioning=%v, want 1 idle", e.Position(), e.Transitioning())
	}
}

func TestEngine_DropsRequestsWhileTransitioning(t *testing.T) {
	e := NewEngine(4)
	before, _ := e.CurrentIndex()

	tr, ok := e.Advance()
	if !ok {
		t.Fatal("first Advance rejected")
	}
	if _, ok := e.Advance(); ok {
		t.Fatal("second Advance accepted while transitioning")
	}
	if _, ok := e.Retreat(); ok {
		t.Fatal("Retreat accepted while transitioning")
	}
	if _, ok := e.JumpTo(3, true); ok {
		t.Fatal("JumpTo accepted while transitioning")
	}
	e.Settle(tr.Token)

	after, _ := e.CurrentIndex()
	if after-before != 1 {
		t.Fatalf("index moved by %d, want exactly 1", after-before)
	}
}

func TestEngine_SingleSlideNeverMoves(t *testing.T) {
	e := NewEngine(1)
	for i := 0; i < 10; i++ {
		if _, ok := e.Tick(Forward); ok {
			t.Fatal("Tick started a transition with one slide")
		}
		if _, ok := e.Tick(Reverse); ok {
			t.Fatal("reverse Tick started a transition with one slide")
		}
	}
	if e.Transitioning() {
		t.Fatal("engine transitioning with one slide")
	}
	if idx, ok := e.CurrentIndex(); !ok || idx != 0 {
		t.Fatalf("CurrentIndex = %d,%v, want 0,true", idx, ok)
	}
}

func TestEngine_EmptyIsInert(t *testing.T) {
	var e Engine
	if _, ok := e.Advance(); ok {
		t.Fatal("Advance accepted on empty engine")
	}
	if _, ok := e.Retreat(); ok {
		t.Fatal("Retreat accepted on empty engine")
	}
	if _, ok := e.JumpTo(0, true); ok {
		t.Fatal("JumpTo accepted on empty engine")
	}
	if _, ok := e.Tick(Forward); ok {
		t.Fatal("Tick accepted on empty engine")
	}
	if e.Settle(e.Token()) {
		t.Fatal("Settle accepted on idle empty engine")
	}
	if _, ok := e.CurrentIndex(); ok {
		t.Fatal("CurrentIndex ok on empty engine")
	}
}

func TestEngine_IndexValidMidTransition(t *testing.T) {
	for n := 1; n <= 5; n++ {
		e := NewEngine(n)
		for step := 0; step < 3*n; step++ {
			var tr Transition
			var ok bool
			if step%3 == 2 {
				tr, ok = e.Retreat()
			} else {
				tr, ok = e.Advance()
			}
			idx, has := e.CurrentIndex()
			if !has || idx < 0 || idx >= n {
				t.Fatalf("n=%d step %d: mid-transition index %d (ok=%v) out of range", n, step, idx, has)
			}
			if ok {
				e.Settle(tr.Token)
			}
		}
	}
}

func TestEngine_ReplaceResets(t *testing.T) {
	e := NewEngine(5)
	tr, _ := e.Advance()
	e.Settle(tr.Token)
	tr, _ = e.Advance()

	e.Replace(3)
	if e.Position() != 1 || e.Transitioning() || e.Len() != 3 {
		t.Fatalf("after Replace position=%d transitioning=%v len=%d", e.Position(), e.Transitioning(), e.Len())
	}
	if e.Settle(tr.Token) {
		t.Fatal("stale settle accepted after Replace")
	}
	if e.Position() != 1 {
		t.Fatalf("stale settle moved position to %d", e.Position())
	}

	e.Replace(0)
	if e.Position() != 1 || e.Transitioning() {
		t.Fatalf("Replace(0) position=%d transitioning=%v", e.Position(), e.Transitioning())
	}
}

func TestEngine_ResizeMidTransitionClamps(t *testing.T) {
	e := NewEngine(5)
	e.JumpTo(4, false)
	tr, ok := e.Advance()
	if !ok || e.Position() != 6 {
		t.Fatalf("Advance to clone: ok=%v position=%d", ok, e.Position())
	}

	e.Resize(2)
	if e.Position() != 2 || e.Transitioning() {
		t.Fatalf("Resize(2) position=%d transitioning=%v, want 2 idle", e.Position(), e.Transitioning())
	}
	if e.Settle(tr.Token) {
		t.Fatal("settle for abandoned transition accepted")
	}

	e.Resize(0)
	if e.Position() != 1 {
		t.Fatalf("Resize(0) position=%d, want 1", e.Position())
	}
	if _, ok := e.CurrentIndex(); ok {
		t.Fatal("CurrentIndex ok after Resize(0)")
	}
}

func TestEngine_RetreatScenario(t *testing.T) {
	e := NewEngine(5)
	tr, ok := e.Retreat()
	if !ok || e.Position() != 0 || !e.Transitioning() {
		t.Fatalf("Retreat ok=%v position=%d transitioning=%v, want 0 transitioning", ok, e.Position(), e.Transitioning())
	}
	if !e.Settle(tr.Token) {
		t.Fatal("Settle rejected")
	}
	if e.Position() != 5 {
		t.Fatalf("position after settle = %d, want 5", e.Position())
	}
	if idx, _ := e.CurrentIndex(); idx != 4 {
		t.Fatalf("CurrentIndex = %d, want 4", idx)
	}
}

func TestEngine_JumpToScenario(t *testing.T) {
	e := NewEngine(3)
	tr, ok := e.JumpTo(2, true)
	if !ok || e.Position() != 3 {
		t.Fatalf("JumpTo(2) ok=%v position=%d, want 3", ok, e.Position())
	}
	e.Settle(tr.Token)
	if idx, _ := e.CurrentIndex(); idx != 2 {
		t.Fatalf("CurrentIndex = %d, want 2", idx)
	}
}

func TestEngine_JumpToRejectsInvalid(t *testing.T) {
	e := NewEngine(3)
	cases := []int{-1, 3, 99}
	for _, idx := range cases {
		if _, ok := e.JumpTo(idx, true); ok {
			t.Fatalf("JumpTo(%d) accepted", idx)
		}
		if e.Position() != 1 || e.Transitioning() {
			t.Fatalf("JumpTo(%d) corrupted state: position=%d", idx, e.Position())
		}
	}
	if _, ok := e.JumpTo(0, true); ok {
		t.Fatal("JumpTo current slide started a transition")
	}
}

func TestEngine_InstantJumpStaysIdle(t *testing.T) {
	e := NewEngine(4)
	tr, ok := e.JumpTo(3, false)
	if !ok || tr.Animated {
		t.Fatalf("instant JumpTo = %+v ok=%v", tr, ok)
	}
	if e.Transitioning() || e.Position() != 4 {
		t.Fatalf("instant jump position=%d transitioning=%v", e.Position(), e.Transitioning())
	}
}

func TestEngine_SettleIgnoresWrongToken(t *testing.T) {
	e := NewEngine(3)
	tr, _ := e.Advance()
	if e.Settle(tr.Token + 1) {
		t.Fatal("Settle accepted mismatched token")
	}
	if !e.Transitioning() {
		t.Fatal("mismatched settle cleared transition")
	}
	if !e.Settle(tr.Token) {
		t.Fatal("Settle rejected matching token")
	}
	if e.Settle(tr.Token) {
		t.Fatal("Settle accepted twice")
	}
}

func TestEngine_ReverseTickRetreats(t *testing.T) {
	e := NewEngine(3)
	tr, ok := e.Tick(Reverse)
	if !ok || tr.To != 0 {
		t.Fatalf("reverse Tick = %+v ok=%v, want move to 0", tr, ok)
	}
	e.Settle(tr.Token)
	if e.Position() != 3 {
		t.Fatalf("position = %d, want 3", e.Position())
	}
}
