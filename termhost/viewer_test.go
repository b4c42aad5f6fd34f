package termhost

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/parallax/headless"
)

const testPage = `
boxes:
  - name: hero
    top: 400
    height: 200
    color: "#ff0000"
    options:
      animation:
        type: manual
        props:
          opacity: {from: 0, to: 1}
`

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

const fadePage = `
boxes:
  - name: fade
    top: 400
    height: 200
    color: "#ff0000"
    options:
      completeClass: gone
      animation:
        type: manual
        props:
          opacity: {from: 1, to: 0}
`

func newTestViewer(t *testing.T) (*Viewer, tcell.SimulationScreen, *clock) {
	t.Helper()
	return newPageViewer(t, testPage)
}

func newPageViewer(t *testing.T, page string) (*Viewer, tcell.SimulationScreen, *clock) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	// 20 rows of viewport plus the status line
	screen.SetSize(40, 21)

	src, err := headless.LoadPage([]byte(page))
	if err != nil {
		t.Fatal(err)
	}
	clk := &clock{now: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)}
	v, err := NewViewer(screen, src, Config{Now: clk.Now})
	if err != nil {
		t.Fatal(err)
	}
	return v, screen, clk
}

func TestViewerViewport(t *testing.T) {
	v, _, _ := newTestViewer(t)
	if h, _ := v.InnerHeight(); h != 400 {
		t.Errorf("InnerHeight = %v, want 400", h)
	}
	if _, bottom := v.Parallax().Viewport(); bottom != 400 {
		t.Errorf("viewport bottom = %v, want 400", bottom)
	}
}

func TestViewerKeysScroll(t *testing.T) {
	v, _, _ := newTestViewer(t)
	if !v.HandleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)) {
		t.Fatal("Down quit the viewer")
	}
	if v.ScrollTop() != 20 {
		t.Errorf("ScrollTop = %v, want 20", v.ScrollTop())
	}
	v.HandleEvent(tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone))
	if v.ScrollTop() != 380 {
		t.Errorf("ScrollTop = %v, want 380", v.ScrollTop())
	}
	v.HandleEvent(tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone))
	if v.ScrollTop() != 360 {
		t.Errorf("ScrollTop = %v, want 360", v.ScrollTop())
	}
	v.HandleEvent(tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone))
	if v.ScrollTop() != 0 {
		t.Errorf("ScrollTop = %v, want 0", v.ScrollTop())
	}
}

func TestViewerScrollIsClamped(t *testing.T) {
	v, _, _ := newTestViewer(t)
	v.HandleEvent(tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone))
	// document height 800, viewport 400
	if v.ScrollTop() != 400 {
		t.Errorf("ScrollTop = %v, want 400", v.ScrollTop())
	}
	v.HandleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	v.HandleEvent(tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone))
	v.HandleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	if v.ScrollTop() != 0 {
		t.Errorf("ScrollTop = %v, want 0", v.ScrollTop())
	}
}

func TestViewerQuitKeys(t *testing.T) {
	v, _, _ := newTestViewer(t)
	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
	} {
		if v.HandleEvent(ev) {
			t.Errorf("%v did not quit", ev.Name())
		}
	}
}

func TestViewerAnimatesOnTick(t *testing.T) {
	v, _, _ := newTestViewer(t)
	v.ScrollTo(300) // bottom 700, halfway through the range
	hero := v.Boxes()[0]
	if _, ok := hero.Property("opacity"); ok {
		t.Fatal("opacity written before the frame ran")
	}
	v.Tick()
	if got, _ := hero.Property("opacity"); got != "0.5" {
		t.Errorf("opacity = %q, want 0.5", got)
	}
}

func TestViewerDraw(t *testing.T) {
	v, screen, _ := newTestViewer(t)
	v.ScrollTo(300)
	v.Tick()
	v.Draw()

	// hero spans document 400..600: rows 5..14 at scroll 300
	r, _, style, _ := screen.GetContent(3, 5)
	if r != 'h' {
		t.Errorf("label cell = %q, want 'h'", r)
	}
	_, bg, _ := style.Decompose()
	if want := tcell.NewRGBColor(128, 0, 0); bg != want {
		t.Errorf("box background = %v, want %v", bg, want)
	}
	_, _, outside, _ := screen.GetContent(3, 2)
	if _, bg, _ := outside.Decompose(); bg != tcell.NewRGBColor(0, 0, 0) {
		t.Errorf("background above the box = %v", bg)
	}
	_, _, status, _ := screen.GetContent(0, 20)
	if _, _, attrs := status.Decompose(); attrs&tcell.AttrReverse == 0 {
		t.Error("status line not reversed")
	}
}

func TestViewerResize(t *testing.T) {
	v, screen, _ := newTestViewer(t)
	screen.SetSize(40, 11)
	v.HandleEvent(tcell.NewEventResize(40, 11))
	if _, bottom := v.Parallax().Viewport(); bottom != 200 {
		t.Errorf("viewport bottom = %v, want 200", bottom)
	}
}

func TestViewerKeepsEndLookWhenComplete(t *testing.T) {
	v, screen, _ := newPageViewer(t, fadePage)
	fade := v.Boxes()[0]

	v.ScrollTo(300)
	v.Tick()
	v.Draw()
	// fade spans rows 5..14 at scroll 300
	_, _, style, _ := screen.GetContent(3, 6)
	if _, bg, _ := style.Decompose(); bg != tcell.NewRGBColor(128, 0, 0) {
		t.Errorf("half-faded background = %v", bg)
	}

	// bottom 800 is the end of the range
	v.ScrollTo(400)
	v.Tick()
	if !fade.HasClass("gone") {
		t.Fatal("fade did not complete")
	}
	if _, ok := fade.Property("opacity"); ok {
		t.Error("inline opacity kept after completion")
	}
	if got, _ := fade.Computed("opacity"); got != "0" {
		t.Errorf("computed opacity = %q, want 0", got)
	}

	v.Draw()
	// rows 0..9 at scroll 400
	_, _, style, _ = screen.GetContent(3, 1)
	if _, bg, _ := style.Decompose(); bg != tcell.NewRGBColor(0, 0, 0) {
		t.Errorf("completed background = %v, want black", bg)
	}
	if r, _, _, _ := screen.GetContent(8, 0); r != '*' {
		t.Errorf("complete marker = %q, want '*'", r)
	}
}

func TestPollEventsStopsWhenDone(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)

	events := make(chan tcell.Event) // never read
	done := make(chan struct{})
	close(done)
	stopped := make(chan struct{})
	go func() {
		pollEvents(screen, events, done)
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("pollEvents blocked on a full channel after done was closed")
	}
}

func TestPollEventsClosesOnFini(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	events := make(chan tcell.Event, 1)
	go pollEvents(screen, events, make(chan struct{}))
	screen.Fini()
	select {
	case _, ok := <-events:
		if ok {
			t.Error("unexpected event")
		}
	case <-time.After(time.Second):
		t.Fatal("events not closed after Fini")
	}
}
