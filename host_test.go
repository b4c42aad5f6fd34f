package parallax

import (
	"fmt"
	"time"
)

// fakeHost is a deterministic Host: time only moves in frame().
type fakeHost struct {
	now          time.Time
	scrollTop    float64
	innerHeight  float64
	noInner      bool
	clientHeight float64
	caps         Capabilities

	frames []func()
	timers []fakeTimer
}

type fakeTimer struct {
	at time.Time
	fn func()
}

func newFakeHost(innerHeight float64, frames bool) *fakeHost {
	return &fakeHost{
		now:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		innerHeight: innerHeight,
		caps:        Capabilities{AnimationFrame: frames},
	}
}

func (h *fakeHost) Now() time.Time { return h.now }
func (h *fakeHost) ScrollTop() float64 { return h.scrollTop }
func (h *fakeHost) ClientHeight() float64 { return h.clientHeight }
func (h *fakeHost) Capabilities() Capabilities { return h.caps }
func (h *fakeHost) RequestAnimationFrame(fn func()) { h.frames = append(h.frames, fn) }

func (h *fakeHost) InnerHeight() (float64, bool) {
	if h.noInner {
		return 0, false
	}
	return h.innerHeight, true
}

func (h *fakeHost) SetTimeout(fn func(), d time.Duration) {
	h.timers = append(h.timers, fakeTimer{at: h.now.Add(d), fn: fn})
}

// frame advances the clock by 16ms, fires due timers, then runs the frame
// callbacks that were pending when the frame began.
func (h *fakeHost) frame() {
	h.now = h.now.Add(16 * time.Millisecond)

	var due []fakeTimer
	kept := h.timers[:0]
	for _, t := range h.timers {
		if !t.at.After(h.now) {
			due = append(due, t)
		} else {
			kept = append(kept, t)
		}
	}
	h.timers = kept
	for _, t := range due {
		t.fn()
	}

	pending := h.frames
	h.frames = nil
	for _, fn := range pending {
		fn()
	}
}

func (h *fakeHost) advance(d time.Duration) {
	for end := h.now.Add(d); h.now.Before(end); {
		h.frame()
	}
}

// scrollTo moves the document and notifies p.
func (h *fakeHost) scrollTo(p *Parallax, top float64) {
	h.scrollTop = top
	p.OnScroll()
}

// fakeElement records every mutation.
type fakeElement struct {
	name    string
	top     float64
	height  float64
	props   map[string]string
	classes []string
	log     []string
}

func newFakeElement(name string, top, height float64) *fakeElement {
	return &fakeElement{name: name, top: top, height: height, props: map[string]string{}}
}

func (e *fakeElement) Top() float64 { return e.top }
func (e *fakeElement) OuterHeight() float64 { return e.height }

func (e *fakeElement) SetProperty(name, value string) {
	e.props[name] = value
	e.log = append(e.log, fmt.Sprintf("%s=%s", name, value))
}

func (e *fakeElement) ClearProperties() {
	e.props = map[string]string{}
	e.log = append(e.log, "clear")
}

func (e *fakeElement) AddClass(name string) {
	e.classes = append(e.classes, name)
	e.log = append(e.log, "class "+name)
}

func (e *fakeElement) hasClass(name string) bool {
	for _, c := range e.classes {
		if c == name {
			return true
		}
	}
	return false
}

// sets returns the values written to prop, in order.
func (e *fakeElement) sets(prop string) []string {
	var out []string
	prefix := prop + "="
	for _, l := range e.log {
		if len(l) > len(prefix) && l[:len(prefix)] == prefix {
			out = append(out, l[len(prefix):])
		}
	}
	return out
}

func opacityOptions(typ AnimationType) Options {
	opts := DefaultOptions()
	opts.Animation.Type = typ
	opts.Animation.Props = map[string]Prop{"opacity": {From: 0, To: 1}}
	return opts
}
