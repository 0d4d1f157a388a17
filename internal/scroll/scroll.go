// Package scroll derives the scroll-driven UI state of the portfolio page:
// reading progress, back-to-top visibility and the active navigation section.
package scroll

import "sync"

const (
	// ActivationMargin is subtracted from a section's top offset so the
	// section becomes active slightly before it reaches the top of the viewport.
	ActivationMargin = 100

	// BackToTopThreshold is the scroll offset past which the back-to-top
	// button is shown.
	BackToTopThreshold = 300

	// NavOffset is the height of the fixed navbar; navigating to a section
	// stops this far above it.
	NavOffset = 80
)

// Viewport is the host's scroll measurement at the time of an event.
type Viewport struct {
	ScrollY        float64 `json:"scrollY"`
	ViewportHeight float64 `json:"viewportHeight"`
	DocumentHeight float64 `json:"documentHeight"`
}

// Section is a navigable region of the page in document order.
type Section struct {
	ID        string  `json:"id"`
	OffsetTop float64 `json:"offsetTop"`
}

// State is the derived presentation state for one scroll position.
type State struct {
	Progress      float64 `json:"progress"`
	BackToTop     bool    `json:"backToTop"`
	ActiveSection string  `json:"activeSection"`
}

// Compute derives the State for viewport v over sections, which must be in
// document order. Progress is clamped to [0, 100] and is 0 when the document
// cannot scroll.
func Compute(v Viewport, sections []Section) State {
	var st State

	if scrollable := v.DocumentHeight - v.ViewportHeight; scrollable > 0 {
		st.Progress = clamp(v.ScrollY/scrollable*100, 0, 100)
	}

	st.BackToTop = v.ScrollY > BackToTopThreshold

	for i := range sections {
		if v.ScrollY >= sections[i].OffsetTop-ActivationMargin {
			st.ActiveSection = sections[i].ID
		}
	}

	return st
}

// Target returns the scroll offset that brings a section starting at
// offsetTop just below the navbar.
func Target(offsetTop float64) float64 {
	return max(0, offsetTop-NavOffset)
}

func clamp(v, lo, hi float64) float64 {
	if v != v { // NaN
		return lo
	}
	return min(max(v, lo), hi)
}

// Host is the rendering layer a Synchronizer is attached to. The listener
// passed to Subscribe must be fired on every scroll and resize event.
type Host interface {
	Viewport() Viewport
	Sections() []Section
	Subscribe(listener func()) (cancel func())
}

// Synchronizer keeps a State in sync with a Host's scroll events.
type Synchronizer struct {
	mu       sync.Mutex
	host     Host
	onChange func(State)
	cancel   func()
	state    State
	disposed bool
}

// New attaches a Synchronizer to host and computes the initial state.
// onChange, if non-nil, is called with every recomputed state; it runs while
// the Synchronizer is locked and must not call back into it.
func New(host Host, onChange func(State)) *Synchronizer {
	s := &Synchronizer{host: host, onChange: onChange}
	s.state = Compute(host.Viewport(), host.Sections())
	s.cancel = host.Subscribe(s.handle)
	return s
}

func (s *Synchronizer) handle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	s.state = Compute(s.host.Viewport(), s.host.Sections())
	if s.onChange != nil {
		s.onChange(s.state)
	}
}

// Refresh recomputes the state as if the host had fired an event.
func (s *Synchronizer) Refresh() {
	s.handle()
}

// State returns the most recently computed state.
func (s *Synchronizer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispose detaches from the host. After Dispose returns the state no longer
// changes and onChange is never called again. It is safe to call twice.
func (s *Synchronizer) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}
