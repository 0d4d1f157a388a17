// Package typing implements the hero "typewriter" that types and deletes a
// cycle of role titles one character at a time.
package typing

import (
	"errors"
	"sync"
	"time"
)

// Step delays.
const (
	TypeDelay   = 100 * time.Millisecond
	HoldDelay   = 2000 * time.Millisecond
	DeleteDelay = 50 * time.Millisecond
	NextDelay   = 500 * time.Millisecond
)

// ErrNoRoles is returned when an animator is built without any role.
var ErrNoRoles = errors.New("typing: role list is empty")

// State is one frame of the animation.
type State struct {
	Roles     []string
	RoleIndex int
	CharIndex int // in runes
	Deleting  bool
}

// NewState returns the initial state for roles: typing the first role from
// an empty string.
func NewState(roles []string) (State, error) {
	if len(roles) == 0 {
		return State{}, ErrNoRoles
	}
	return State{Roles: roles}, nil
}

// Role returns the role currently being typed or deleted.
func (s State) Role() string {
	return s.Roles[s.RoleIndex]
}

// Text returns the visible prefix of the current role.
func (s State) Text() string {
	r := []rune(s.Role())
	return string(r[:s.CharIndex])
}

// Step returns the next state and how long to wait before stepping again.
func (s State) Step() (State, time.Duration) {
	n := len([]rune(s.Role()))

	switch {
	case !s.Deleting && s.CharIndex < n:
		s.CharIndex++
		return s, TypeDelay
	case !s.Deleting:
		s.Deleting = true
		return s, HoldDelay
	case s.CharIndex > 0:
		s.CharIndex--
		return s, DeleteDelay
	default:
		s.Deleting = false
		s.RoleIndex = (s.RoleIndex + 1) % len(s.Roles)
		return s, NextDelay
	}
}

// Animator drives State forward on a Scheduler. At most one step is pending
// at any time.
type Animator struct {
	mu        sync.Mutex
	state     State
	scheduler Scheduler
	onChange  func(State)
	pending   Timer
	gen       uint64
	started   bool
	disposed  bool
}

// New builds an Animator over roles. onChange, if non-nil, receives every
// new state; it runs while the Animator is locked and must not call back
// into it.
func New(roles []string, scheduler Scheduler, onChange func(State)) (*Animator, error) {
	st, err := NewState(roles)
	if err != nil {
		return nil, err
	}
	if scheduler == nil {
		scheduler = RealScheduler()
	}
	return &Animator{state: st, scheduler: scheduler, onChange: onChange}, nil
}

// Start schedules the first step. Calling it again, or after Dispose, does
// nothing.
func (a *Animator) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.started || a.disposed {
		return
	}
	a.started = true
	a.schedule(TypeDelay)
}

// schedule must be called with a.mu held.
func (a *Animator) schedule(d time.Duration) {
	a.gen++
	gen := a.gen
	a.pending = a.scheduler.AfterFunc(d, func() { a.tick(gen) })
}

func (a *Animator) tick(gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	// A timer that fired while Dispose held the lock, or a superseded one,
	// is dropped.
	if a.disposed || gen != a.gen {
		return
	}

	next, delay := a.state.Step()
	a.state = next
	if a.onChange != nil {
		a.onChange(next)
	}
	a.schedule(delay)
}

// State returns the current frame.
func (a *Animator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Text returns the currently displayed text.
func (a *Animator) Text() string {
	return a.State().Text()
}

// Dispose cancels the pending step. Once it returns no step runs and
// onChange is not called again.
func (a *Animator) Dispose() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.disposed {
		return
	}
	a.disposed = true
	a.gen++
	if a.pending != nil {
		a.pending.Stop()
		a.pending = nil
	}
}
