package preview

import (
	"reflect"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/typing"
)

// idleScheduler never runs anything; the tests feed frames by hand.
type idleScheduler struct{}

type idleTimer struct{}

func (idleTimer) Stop() bool { return true }

func (idleScheduler) AfterFunc(time.Duration, func()) typing.Timer { return idleTimer{} }

func newTestPreview(t *testing.T, w, h int) (*Preview, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)

	p, err := content.Default()
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	v, err := New(screen, p, config.ThemeDark, idleScheduler{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(v.Close)
	return v, screen
}

func TestLayoutHasEverySection(t *testing.T) {
	p, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	l := newLayout(p, 80)
	if len(l.starts) != len(content.Sections) {
		t.Fatalf("expected %d section starts, got %d", len(content.Sections), len(l.starts))
	}
	for i := 1; i < len(l.starts); i++ {
		if l.starts[i] <= l.starts[i-1] {
			t.Errorf("section %d starts at %d, not after %d", i, l.starts[i], l.starts[i-1])
		}
	}
	if l.starts[0] != 0 {
		t.Errorf("home should start at line 0, got %d", l.starts[0])
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  []string
	}{
		{"aaa bbb ccc", 7, []string{"aaa bbb", "ccc"}},
		{"abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"  spaced   out  ", 20, []string{"spaced out"}},
		{"", 10, nil},
	}
	for _, tt := range tests {
		if got := wrap(tt.in, tt.width); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("wrap(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestInitialState(t *testing.T) {
	v, _ := newTestPreview(t, 80, 24)
	st := v.sync.State()
	if st.ActiveSection != "home" || st.BackToTop || st.Progress != 0 {
		t.Errorf("unexpected initial state %+v", st)
	}
}

func TestJumpToSection(t *testing.T) {
	v, _ := newTestPreview(t, 80, 24)

	v.key(tcell.KeyRune, '3')
	if want := v.layout.starts[2] - 4; v.top != want {
		t.Errorf("top = %d, want %d", v.top, want)
	}
	st := v.sync.State()
	if st.ActiveSection != "skills" {
		t.Errorf("active = %q, want skills", st.ActiveSection)
	}
	if st.BackToTop != (v.top*linePx > 300) {
		t.Errorf("back-to-top = %v at top %d", st.BackToTop, v.top)
	}

	v.key(tcell.KeyRune, '9') // no ninth section
	if st2 := v.sync.State(); st2 != st {
		t.Errorf("state changed on unknown section: %+v", st2)
	}
}

func TestScrollKeys(t *testing.T) {
	v, _ := newTestPreview(t, 80, 24)

	v.key(tcell.KeyEnd, 0)
	if v.top != v.maxTop() {
		t.Fatalf("End: top = %d, want %d", v.top, v.maxTop())
	}
	if st := v.sync.State(); st.Progress != 100 || !st.BackToTop {
		t.Errorf("at bottom: %+v", st)
	}

	v.key(tcell.KeyUp, 0)
	if v.top != v.maxTop()-1 {
		t.Errorf("Up: top = %d", v.top)
	}
	v.key(tcell.KeyRune, 'j')
	if v.top != v.maxTop() {
		t.Errorf("j: top = %d", v.top)
	}
	v.key(tcell.KeyDown, 0) // clamped
	if v.top != v.maxTop() {
		t.Errorf("Down past end: top = %d", v.top)
	}

	v.key(tcell.KeyRune, 'g')
	if st := v.sync.State(); v.top != 0 || st.Progress != 0 || st.ActiveSection != "home" {
		t.Errorf("back to top: top=%d state=%+v", v.top, st)
	}

	v.key(tcell.KeyPgDn, 0)
	if v.top != v.bodyHeight() {
		t.Errorf("PgDn: top = %d, want %d", v.top, v.bodyHeight())
	}
}

func TestQuitKeys(t *testing.T) {
	v, _ := newTestPreview(t, 80, 24)
	if v.key(tcell.KeyRune, 'q') {
		t.Error("q should quit")
	}
	if v.key(tcell.KeyEscape, 0) {
		t.Error("Esc should quit")
	}
	if !v.key(tcell.KeyRune, 'x') {
		t.Error("unbound key should not quit")
	}
}

func TestThemeToggle(t *testing.T) {
	v, _ := newTestPreview(t, 80, 24)
	v.key(tcell.KeyRune, 't')
	if v.theme != config.ThemeLight {
		t.Errorf("theme = %q, want light", v.theme)
	}
	v.key(tcell.KeyRune, 't')
	if v.theme != config.ThemeDark {
		t.Errorf("theme = %q, want dark", v.theme)
	}
}

func TestHeroFrame(t *testing.T) {
	v, screen := newTestPreview(t, 80, 24)

	v.handle(tcell.NewEventInterrupt("Fro"))
	v.draw()

	// Hero is the third line of the page, drawn below the two chrome rows.
	var got []rune
	for x := 1; x <= 4; x++ {
		r, _, _, _ := screen.GetContent(x, 4)
		got = append(got, r)
	}
	if string(got) != "Fro▌" {
		t.Errorf("hero row = %q, want %q", string(got), "Fro▌")
	}
}

func TestResizeRelayouts(t *testing.T) {
	v, screen := newTestPreview(t, 80, 24)
	wide := len(v.layout.lines)

	screen.SetSize(40, 24)
	v.handle(tcell.NewEventResize(40, 24))

	if v.width != 40 {
		t.Fatalf("width = %d, want 40", v.width)
	}
	if len(v.layout.lines) <= wide {
		t.Errorf("narrow layout has %d lines, wide had %d", len(v.layout.lines), wide)
	}
}

func TestCloseDetaches(t *testing.T) {
	v, _ := newTestPreview(t, 80, 24)
	v.Close()

	if len(v.listeners) != 0 {
		t.Errorf("expected no listeners after close, got %d", len(v.listeners))
	}
	before := v.sync.State()
	v.key(tcell.KeyEnd, 0)
	if v.sync.State() != before {
		t.Error("state changed after close")
	}
}
