package typing

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"
)

// fakeScheduler queues callbacks until the test fires them.
type fakeScheduler struct {
	mu    sync.Mutex
	queue []*fakeTimer
}

type fakeTimer struct {
	delay   time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{delay: d, f: f}
	s.queue = append(s.queue, t)
	return t
}

// pending returns the live timers.
func (s *fakeScheduler) pending() []*fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	var live []*fakeTimer
	for _, t := range s.queue {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	return live
}

// fire runs the single pending timer and reports its delay.
func (s *fakeScheduler) fire(tb testing.TB) time.Duration {
	tb.Helper()
	live := s.pending()
	if len(live) != 1 {
		tb.Fatalf("expected exactly 1 pending step, got %d", len(live))
	}
	t := live[0]
	t.fired = true
	t.f()
	return t.delay
}

func TestNewStateRequiresRoles(t *testing.T) {
	if _, err := NewState(nil); !errors.Is(err, ErrNoRoles) {
		t.Errorf("NewState(nil) error = %v, want ErrNoRoles", err)
	}
	if _, err := New([]string{}, &fakeScheduler{}, nil); !errors.Is(err, ErrNoRoles) {
		t.Errorf("New(empty) error = %v, want ErrNoRoles", err)
	}
}

func TestStepTransitions(t *testing.T) {
	tests := []struct {
		name      string
		in        State
		wantState State
		wantDelay time.Duration
	}{
		{
			name:      "typing appends",
			in:        State{Roles: []string{"Go"}, CharIndex: 1},
			wantState: State{Roles: []string{"Go"}, CharIndex: 2},
			wantDelay: TypeDelay,
		},
		{
			name:      "full word holds then deletes",
			in:        State{Roles: []string{"Go"}, CharIndex: 2},
			wantState: State{Roles: []string{"Go"}, CharIndex: 2, Deleting: true},
			wantDelay: HoldDelay,
		},
		{
			name:      "deleting removes",
			in:        State{Roles: []string{"Go"}, CharIndex: 2, Deleting: true},
			wantState: State{Roles: []string{"Go"}, CharIndex: 1, Deleting: true},
			wantDelay: DeleteDelay,
		},
		{
			name:      "empty word advances role",
			in:        State{Roles: []string{"Go", "Rust"}, Deleting: true},
			wantState: State{Roles: []string{"Go", "Rust"}, RoleIndex: 1},
			wantDelay: NextDelay,
		},
		{
			name:      "last role wraps",
			in:        State{Roles: []string{"Go", "Rust"}, RoleIndex: 1, Deleting: true},
			wantState: State{Roles: []string{"Go", "Rust"}},
			wantDelay: NextDelay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, delay := tt.in.Step()
			if !reflect.DeepEqual(got, tt.wantState) {
				t.Errorf("state = %+v, want %+v", got, tt.wantState)
			}
			if delay != tt.wantDelay {
				t.Errorf("delay = %v, want %v", delay, tt.wantDelay)
			}
		})
	}
}

func TestTextCountsRunes(t *testing.T) {
	st := State{Roles: []string{"Développeur"}, CharIndex: 2}
	if got := st.Text(); got != "Dé" {
		t.Errorf("Text() = %q, want %q", got, "Dé")
	}
}

func TestAnimatorFullCycle(t *testing.T) {
	sched := &fakeScheduler{}
	var texts []string
	a, err := New([]string{"Go", "Rust"}, sched, func(st State) { texts = append(texts, st.Text()) })
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Dispose()

	if got := a.Text(); got != "" {
		t.Fatalf("initial text = %q, want empty", got)
	}

	a.Start()
	a.Start() // second start must not queue another step

	var delays []time.Duration
	// Two full cycles: "Go" is 6 steps, "Rust" is 10 steps.
	for i := 0; i < 32; i++ {
		delays = append(delays, sched.fire(t))
	}

	cycle := []string{
		"G", "Go", "Go", "G", "", "",
		"R", "Ru", "Rus", "Rust", "Rust", "Rus", "Ru", "R", "", "",
	}
	want := append(append([]string{}, cycle...), cycle...)
	if !reflect.DeepEqual(texts, want) {
		t.Errorf("texts =\n%q\nwant\n%q", texts, want)
	}

	wantDelays := []time.Duration{
		TypeDelay, // first step scheduled by Start
		TypeDelay, TypeDelay, HoldDelay, DeleteDelay, DeleteDelay, NextDelay,
	}
	if !reflect.DeepEqual(delays[:len(wantDelays)], wantDelays) {
		t.Errorf("delays = %v, want prefix %v", delays[:len(wantDelays)], wantDelays)
	}

	st := a.State()
	if st.RoleIndex != 0 || st.CharIndex != 0 || st.Deleting {
		t.Errorf("after two cycles state = %+v, want back at the first role", st)
	}
}

func TestAnimatorDisposeCancelsPending(t *testing.T) {
	sched := &fakeScheduler{}
	calls := 0
	a, err := New([]string{"Go"}, sched, func(State) { calls++ })
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a.Start()
	sched.fire(t)

	live := sched.pending()
	if len(live) != 1 {
		t.Fatalf("expected 1 pending step, got %d", len(live))
	}

	a.Dispose()
	if !live[0].stopped {
		t.Error("pending timer was not stopped")
	}
	if n := len(sched.pending()); n != 0 {
		t.Errorf("expected no pending steps after dispose, got %d", n)
	}

	// A callback that already fired and was waiting on the lock is dropped.
	live[0].f()

	if calls != 1 {
		t.Errorf("expected 1 change, got %d", calls)
	}
	if got := a.Text(); got != "G" {
		t.Errorf("text after dispose = %q, want %q", got, "G")
	}

	a.Start()
	if n := len(sched.pending()); n != 0 {
		t.Errorf("Start after Dispose scheduled %d steps", n)
	}
	a.Dispose()
}

func TestAnimatorRealScheduler(t *testing.T) {
	changes := make(chan string, 8)
	a, err := New([]string{"Go"}, RealScheduler(), func(st State) {
		select {
		case changes <- st.Text():
		default:
		}
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a.Start()

	for _, want := range []string{"G", "Go"} {
		select {
		case got := <-changes:
			if got != want {
				t.Fatalf("text = %q, want %q", got, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %q", want)
		}
	}

	a.Dispose()
	// The next step would fire after HoldDelay; nothing may arrive.
	select {
	case got := <-changes:
		t.Errorf("unexpected change after dispose: %q", got)
	case <-time.After(150 * time.Millisecond):
	}
}
