// Package preview renders the portfolio in a terminal. The terminal acts as
// the page host: arrow keys scroll it, and the same scroll synchronizer and
// typing animator that back the web page drive the progress bar, the nav
// highlight and the hero line.
package preview

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/scroll"
	"github.com/Zachkp/portfolio/internal/typing"
)

// linePx is the height of one terminal row in page pixels, so the page's
// pixel thresholds keep their meaning here.
const linePx = 20

// Rows taken by the progress bar, the nav and the status line.
const chromeRows = 3

type palette struct {
	base, heading, title, muted, accent, dim tcell.Style
}

var palettes = map[string]palette{
	config.ThemeDark: {
		base:    tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
		heading: tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue).Background(tcell.ColorBlack).Bold(true),
		title:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack).Bold(true),
		muted:   tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack),
		accent:  tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue).Background(tcell.ColorBlack),
		dim:     tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray).Background(tcell.ColorBlack),
	},
	config.ThemeLight: {
		base:    tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite),
		heading: tcell.StyleDefault.Foreground(tcell.ColorBlue).Background(tcell.ColorWhite).Bold(true),
		title:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite).Bold(true),
		muted:   tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorWhite),
		accent:  tcell.StyleDefault.Foreground(tcell.ColorBlue).Background(tcell.ColorWhite),
		dim:     tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorWhite),
	},
}

// Preview is a terminal page host. Apart from the animator's timer, which
// only posts events, everything runs on the event loop goroutine.
type Preview struct {
	screen    tcell.Screen
	portfolio *content.Portfolio
	theme     string

	layout layout
	top    int // first visible body line
	width  int
	height int

	listeners map[int]func()
	nextID    int

	sync *scroll.Synchronizer
	anim *typing.Animator
	role string
}

// Run opens the terminal and shows p until the user quits.
func Run(p *content.Portfolio, theme string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer screen.Fini()

	v, err := New(screen, p, theme, typing.RealScheduler())
	if err != nil {
		return err
	}
	v.Loop()
	return nil
}

// New lays p out on an initialized screen. Typing steps are timed by sched.
func New(screen tcell.Screen, p *content.Portfolio, theme string, sched typing.Scheduler) (*Preview, error) {
	if _, ok := palettes[theme]; !ok {
		theme = config.ThemeDark
	}
	v := &Preview{
		screen:    screen,
		portfolio: p,
		theme:     theme,
		listeners: make(map[int]func()),
	}
	v.width, v.height = screen.Size()
	v.layout = newLayout(p, v.width)

	anim, err := typing.New(p.Profile.Roles, sched, func(st typing.State) {
		// Runs on the timer goroutine; hand the frame to the event loop.
		_ = screen.PostEvent(tcell.NewEventInterrupt(st.Text()))
	})
	if err != nil {
		return nil, fmt.Errorf("hero animation: %w", err)
	}
	v.anim = anim
	v.sync = scroll.New(v, nil)
	return v, nil
}

// Viewport implements scroll.Host.
func (v *Preview) Viewport() scroll.Viewport {
	return scroll.Viewport{
		ScrollY:        float64(v.top * linePx),
		ViewportHeight: float64(v.bodyHeight() * linePx),
		DocumentHeight: float64(len(v.layout.lines) * linePx),
	}
}

// Sections implements scroll.Host.
func (v *Preview) Sections() []scroll.Section {
	out := make([]scroll.Section, len(v.layout.starts))
	for i, start := range v.layout.starts {
		out[i] = scroll.Section{ID: content.Sections[i], OffsetTop: float64(start * linePx)}
	}
	return out
}

// Subscribe implements scroll.Host.
func (v *Preview) Subscribe(listener func()) func() {
	id := v.nextID
	v.nextID++
	v.listeners[id] = listener
	return func() { delete(v.listeners, id) }
}

func (v *Preview) fire() {
	for _, l := range v.listeners {
		l()
	}
}

func (v *Preview) bodyHeight() int {
	return max(v.height-chromeRows, 1)
}

func (v *Preview) maxTop() int {
	return max(len(v.layout.lines)-v.bodyHeight(), 0)
}

// scrollTo moves the viewport and reports a scroll event if it moved.
func (v *Preview) scrollTo(top int) {
	top = min(max(top, 0), v.maxTop())
	if top == v.top {
		return
	}
	v.top = top
	v.fire()
}

// jump scrolls section i just below the nav, the way nav links do on the page.
func (v *Preview) jump(i int) {
	if i < 0 || i >= len(v.layout.starts) {
		return
	}
	target := scroll.Target(float64(v.layout.starts[i] * linePx))
	v.scrollTo(int(target) / linePx)
}

func (v *Preview) resize() {
	v.width, v.height = v.screen.Size()
	v.layout = newLayout(v.portfolio, v.width)
	v.top = min(v.top, v.maxTop())
	v.fire()
}

// Close stops the animation and detaches the synchronizer.
func (v *Preview) Close() {
	v.anim.Dispose()
	v.sync.Dispose()
}

// Loop processes events until the user quits, then calls Close.
func (v *Preview) Loop() {
	defer v.Close()
	v.anim.Start()
	v.draw()
	for {
		ev := v.screen.PollEvent()
		if ev == nil || !v.handle(ev) {
			return
		}
		v.draw()
	}
}

// handle applies one event and reports whether to keep running.
func (v *Preview) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.key(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		v.screen.Sync()
		v.resize()
	case *tcell.EventInterrupt:
		if text, ok := ev.Data().(string); ok {
			v.role = text
		}
	}
	return true
}

func (v *Preview) key(k tcell.Key, r rune) bool {
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyDown:
		v.scrollTo(v.top + 1)
	case tcell.KeyUp:
		v.scrollTo(v.top - 1)
	case tcell.KeyPgDn:
		v.scrollTo(v.top + v.bodyHeight())
	case tcell.KeyPgUp:
		v.scrollTo(v.top - v.bodyHeight())
	case tcell.KeyHome:
		v.scrollTo(0)
	case tcell.KeyEnd:
		v.scrollTo(v.maxTop())
	case tcell.KeyRune:
		switch {
		case r == 'q':
			return false
		case r == 'j':
			v.scrollTo(v.top + 1)
		case r == 'k':
			v.scrollTo(v.top - 1)
		case r == ' ':
			v.scrollTo(v.top + v.bodyHeight())
		case r == 'g':
			v.scrollTo(0)
		case r == 'G':
			v.scrollTo(v.maxTop())
		case r == 't':
			v.toggleTheme()
		case r >= '1' && r <= '9':
			v.jump(int(r - '1'))
		}
	}
	return true
}

func (v *Preview) toggleTheme() {
	if v.theme == config.ThemeDark {
		v.theme = config.ThemeLight
	} else {
		v.theme = config.ThemeDark
	}
}

func (v *Preview) draw() {
	pal := palettes[v.theme]
	st := v.sync.State()

	v.screen.SetStyle(pal.base)
	v.screen.Clear()

	// Progress bar
	filled := int(st.Progress / 100 * float64(v.width))
	for x := 0; x < v.width; x++ {
		if x < filled {
			v.screen.SetContent(x, 0, '━', nil, pal.accent)
		} else {
			v.screen.SetContent(x, 0, '─', nil, pal.dim)
		}
	}

	// Nav
	x := v.drawText(0, 1, pal.title, v.portfolio.Profile.BrandInitial()+" ")
	for i, id := range content.Sections {
		style := pal.muted
		if id == st.ActiveSection {
			style = pal.accent.Reverse(true)
		}
		x = v.drawText(x, 1, style, fmt.Sprintf(" %d %s ", i+1, id))
	}

	// Body
	for row := 0; row < v.bodyHeight(); row++ {
		i := v.top + row
		if i >= len(v.layout.lines) {
			break
		}
		l := v.layout.lines[i]
		y := row + 2
		switch l.kind {
		case kindHeading:
			v.drawText(1, y, pal.heading, l.text)
		case kindTitle:
			v.drawText(1, y, pal.title, l.text)
		case kindMuted:
			v.drawText(1, y, pal.muted, l.text)
		case kindHero:
			end := v.drawText(1, y, pal.accent, v.role)
			v.drawText(end, y, pal.accent, "▌")
		default:
			v.drawText(1, y, pal.base, l.text)
		}
	}

	// Status line
	status := v.height - 1
	v.drawText(0, status, pal.muted, " j/k scroll  1-8 jump  t theme  q quit")
	if st.BackToTop {
		hint := " ↑ top (g) "
		v.drawText(v.width-runewidth.StringWidth(hint), status, pal.accent.Reverse(true), hint)
	}

	v.screen.Show()
}

// drawText writes s at (x, y) and returns the column after it.
func (v *Preview) drawText(x, y int, style tcell.Style, s string) int {
	for _, r := range s {
		if x >= v.width {
			break
		}
		v.screen.SetContent(x, y, r, nil, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
	return x
}
