// Package carousel implements the infinite-loop slide carousel used by every
// lobby page.
//
// # Position model
//
// A carousel of n slides is laid out as a strip of n+2 panels:
//
//	slot:   0      1    2   ...   n     n+1
//	slide: [n-1]   0    1   ...  n-1   [0]
//
// The bracketed panels are clones. Moving off either end lands on a clone, and
// settling the motion snaps the position to the real slide the clone mirrors.
// The snap happens without animation so the loop looks continuous.
//
// # Components
//
//   - engine.go: Engine, the pure state machine (Idle/Transitioning, tokens)
//   - strip.go: slot mapping, grouping and the text renderer for a moving window
//   - model.go: Model, a Bubble Tea component owning autoplay and motion frames
//
// # Timers
//
// tea.Tick cannot be cancelled, so every autoplay tick carries the tag it was
// scheduled under and every motion frame carries the engine token of its
// transition. Stop, Replace, Resize and manual navigation bump the tag; a
// message whose tag or token no longer matches is dropped on arrival. A
// carousel therefore never has more than one live autoplay chain, and a
// stopped carousel does nothing when its old timers fire.
//
// # Usage
//
//	m := carousel.New(carousel.Options{Interval: 5 * time.Second})
//	m, _ = m.Replace(len(slides))
//	m, cmd := m.Start()
//	// forward carousel.TickMsg and carousel.FrameMsg to m.Update
package carousel
