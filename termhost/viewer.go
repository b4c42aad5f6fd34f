// Package termhost shows parallax pages in a terminal. Every box is a band of
// rows whose shade follows its opacity; the status line shows the engine
// stats.
//
// Keys: Up/Down and the mouse wheel scroll one row, PgUp/PgDn/Space most of
// a screen, Home/End jump, q or Esc quits.
package termhost

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/phanxgames/parallax"
	"github.com/phanxgames/parallax/headless"
)

// TickInterval is the frame period of the viewer.
const TickInterval = 16 * time.Millisecond

// Config tunes the mapping from document pixels to terminal cells.
type Config struct {
	// RowHeight is the document height of one terminal row. Defaults to 20.
	RowHeight float64
	// Background is a hex color. Defaults to black.
	Background string
	// Touch forces the touch capability.
	Touch bool
	// Now overrides the clock; tests drive it by hand.
	Now func() time.Time
}

type timer struct {
	at time.Time
	fn func()
}

// Viewer is a parallax.Host drawing onto a tcell screen.
type Viewer struct {
	cfg    Config
	screen tcell.Screen
	src    *headless.Page
	boxes  []*headless.Box
	opts   []parallax.Options
	colors []colorful.Color
	bg     colorful.Color

	parallax  *parallax.Parallax
	scrollTop float64
	docHeight float64
	rows      int
	cols      int

	frames []func()
	timers []timer
}

// NewViewer lays src out on screen and registers every box that is not
// deferred. A completed box keeps the end values of its props. The screen
// must already be initialized.
func NewViewer(screen tcell.Screen, src *headless.Page, cfg Config) (*Viewer, error) {
	if cfg.RowHeight <= 0 {
		cfg.RowHeight = 20
	}
	if cfg.Background == "" {
		cfg.Background = "#000000"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	bg, err := colorful.Hex(cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("background %q: %w", cfg.Background, err)
	}

	v := &Viewer{cfg: cfg, screen: screen, src: src, bg: bg}
	v.cols, v.rows = screen.Size()
	for i, spec := range src.Boxes {
		c, err := src.BoxColor(i)
		if err != nil {
			return nil, err
		}
		opts := spec.Options
		if err := opts.Validate(); err != nil {
			return nil, fmt.Errorf("box %q: %w", spec.Name, err)
		}
		box := headless.NewBox(spec.Name, spec.Top, spec.Height, nil)
		box.SetClassStyle(opts.CompleteClass, opts.EndStyle())
		v.boxes = append(v.boxes, box)
		v.opts = append(v.opts, opts)
		v.colors = append(v.colors, c)
	}
	v.docHeight = src.DocumentHeight()
	v.scrollTop = v.clamp(src.Viewport.ScrollTop)

	v.parallax = parallax.New(v)
	for i, spec := range src.Boxes {
		if spec.Deferred {
			continue
		}
		if err := v.parallax.Init([]parallax.Element{v.boxes[i]}, v.opts[i]); err != nil {
			return nil, fmt.Errorf("box %q: %w", spec.Name, err)
		}
	}
	return v, nil
}

// Parallax returns the engine.
func (v *Viewer) Parallax() *parallax.Parallax { return v.parallax }

// Boxes returns the boxes in page order.
func (v *Viewer) Boxes() []*headless.Box { return v.boxes }

// Now implements parallax.Host.
func (v *Viewer) Now() time.Time { return v.cfg.Now() }

// ScrollTop implements parallax.Host.
func (v *Viewer) ScrollTop() float64 { return v.scrollTop }

// InnerHeight implements parallax.Host. The status line is not part of the
// viewport.
func (v *Viewer) InnerHeight() (float64, bool) { return v.viewportHeight(), true }

// ClientHeight implements parallax.Host.
func (v *Viewer) ClientHeight() float64 { return v.viewportHeight() }

// Capabilities implements parallax.Host.
func (v *Viewer) Capabilities() parallax.Capabilities {
	return parallax.Capabilities{AnimationFrame: true, Touch: v.cfg.Touch}
}

// RequestAnimationFrame implements parallax.Host.
func (v *Viewer) RequestAnimationFrame(fn func()) { v.frames = append(v.frames, fn) }

// SetTimeout implements parallax.Host.
func (v *Viewer) SetTimeout(fn func(), d time.Duration) {
	v.timers = append(v.timers, timer{at: v.Now().Add(d), fn: fn})
}

func (v *Viewer) viewportHeight() float64 {
	return float64(max(v.rows-1, 0)) * v.cfg.RowHeight
}

func (v *Viewer) clamp(top float64) float64 {
	maxTop := max(0, v.docHeight-v.viewportHeight())
	return max(0, min(top, maxTop))
}

// ScrollTo moves the viewport and notifies the engine.
func (v *Viewer) ScrollTo(top float64) {
	top = v.clamp(top)
	if top == v.scrollTop {
		return
	}
	v.scrollTop = top
	v.parallax.OnScroll()
}

// HandleEvent applies one terminal event. It returns false when the viewer
// should quit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	page := v.viewportHeight() * 0.9
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyDown:
			v.ScrollTo(v.scrollTop + v.cfg.RowHeight)
		case tcell.KeyUp:
			v.ScrollTo(v.scrollTop - v.cfg.RowHeight)
		case tcell.KeyPgDn:
			v.ScrollTo(v.scrollTop + page)
		case tcell.KeyPgUp:
			v.ScrollTo(v.scrollTop - page)
		case tcell.KeyHome:
			v.ScrollTo(0)
		case tcell.KeyEnd:
			v.ScrollTo(v.docHeight)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.ScrollTo(v.scrollTop + page)
			}
		}
	case *tcell.EventMouse:
		btn := ev.Buttons()
		if btn&tcell.WheelDown != 0 {
			v.ScrollTo(v.scrollTop + v.cfg.RowHeight)
		}
		if btn&tcell.WheelUp != 0 {
			v.ScrollTo(v.scrollTop - v.cfg.RowHeight)
		}
	case *tcell.EventResize:
		v.screen.Sync()
		v.cols, v.rows = v.screen.Size()
		v.scrollTop = v.clamp(v.scrollTop)
		v.parallax.OnResize()
	}
	return true
}

// Tick fires due timers and then the frame callbacks pending at the start of
// the tick.
func (v *Viewer) Tick() {
	now := v.Now()
	var due []timer
	kept := v.timers[:0]
	for _, t := range v.timers {
		if t.at.After(now) {
			kept = append(kept, t)
		} else {
			due = append(due, t)
		}
	}
	v.timers = kept
	slices.SortStableFunc(due, func(a, b timer) int { return a.at.Compare(b.at) })
	for _, t := range due {
		t.fn()
	}

	pending := v.frames
	v.frames = nil
	for _, fn := range pending {
		fn()
	}
}

// Draw renders the visible boxes and the status line.
func (v *Viewer) Draw() {
	bgStyle := tcell.StyleDefault.Background(toTcell(v.bg))
	v.screen.Fill(' ', bgStyle)

	for i := range v.boxes {
		v.drawBox(i)
	}

	status := fmt.Sprintf(" %s | scroll %.0f ", v.parallax.Stats(), v.scrollTop)
	statusStyle := tcell.StyleDefault.Reverse(true)
	v.drawText(0, v.rows-1, padRight(status, v.cols), statusStyle)
	v.screen.Show()
}

func (v *Viewer) drawBox(i int) {
	b := v.boxes[i]
	alpha := 1.0
	if raw, ok := b.Computed("opacity"); ok {
		if f, ok := parseLength(raw); ok {
			alpha = max(0, min(f, 1))
		}
	}
	shift := 0
	for _, name := range []string{"translateX", "left"} {
		if raw, ok := b.Computed(name); ok {
			if f, ok := parseLength(raw); ok {
				shift += int(f / v.cfg.RowHeight * 2)
			}
		}
	}

	top := int((b.Y - v.scrollTop) / v.cfg.RowHeight)
	bottom := int((b.Y + b.Height - v.scrollTop) / v.cfg.RowHeight)
	style := tcell.StyleDefault.
		Background(toTcell(v.bg.BlendRgb(v.colors[i], alpha))).
		Foreground(tcell.ColorWhite)

	left, right := 2+shift, v.cols-2+shift
	for y := max(top, 0); y < min(bottom, v.rows-1); y++ {
		for x := max(left, 0); x < min(right, v.cols); x++ {
			v.screen.SetContent(x, y, ' ', nil, style)
		}
	}
	if top >= 0 && top < v.rows-1 {
		label := b.Name
		if b.HasClass(v.opts[i].CompleteClass) {
			label += " *"
		}
		v.drawText(left+1, top, label, style)
	}
}

func (v *Viewer) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= v.cols {
			return
		}
		if x >= 0 {
			v.screen.SetContent(x, y, r, nil, style)
		}
		x++
	}
}

// Run polls screen events on a separate goroutine and handles them, together
// with the ticks, on the calling one. It returns when the user quits.
func (v *Viewer) Run() {
	v.screen.EnableMouse()
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(v.screen, events, done)

	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()
	v.Draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !v.HandleEvent(ev) {
				return
			}
		case <-ticker.C:
			v.Tick()
			v.Draw()
		}
	}
}

// pollEvents forwards screen events to events until the screen is finalized
// (events is then closed) or done is closed.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// View opens the terminal, shows src until the user quits and restores the
// terminal.
func View(src *headless.Page, cfg Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	v, err := NewViewer(screen, src, cfg)
	if err != nil {
		return err
	}
	v.Run()
	return nil
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func parseLength(s string) (float64, bool) {
	s = strings.TrimRightFunc(s, func(r rune) bool {
		return r == '%' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	})
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
