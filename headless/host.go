// Package headless is a deterministic parallax host: a virtual document with
// a virtual clock, for tests, simulation and golden traces.
//
// Time only moves when Frame or Advance is called. Each frame advances the
// clock by FrameInterval, fires due timers in due order, applies at most one
// injected input event and then runs the animation-frame callbacks that were
// pending when the frame began.
package headless

import (
	"slices"
	"time"

	"github.com/phanxgames/parallax"
)

// DefaultFrameInterval is one frame at ~60Hz.
const DefaultFrameInterval = 16 * time.Millisecond

// Listener receives document events. *parallax.Parallax satisfies it.
type Listener interface {
	OnScroll()
	OnResize()
}

// HostConfig describes the virtual viewport.
type HostConfig struct {
	// ViewportHeight is the inner height reported to the engine.
	ViewportHeight float64 `yaml:"height"`
	// ClientHeight is reported as the document client height.
	ClientHeight float64 `yaml:"clientHeight"`
	// NoInnerHeight makes InnerHeight unavailable so the engine falls back
	// to ClientHeight.
	NoInnerHeight bool `yaml:"noInnerHeight"`
	// ScrollTop is the initial scroll offset.
	ScrollTop float64 `yaml:"scrollTop"`
	// AnimationFrame enables the animation-frame primitive.
	AnimationFrame bool `yaml:"animationFrame"`
	// Touch marks the host as touch driven.
	Touch bool `yaml:"touch"`
	// FrameInterval defaults to DefaultFrameInterval.
	FrameInterval time.Duration `yaml:"-"`
}

type timer struct {
	at  time.Time
	seq int
	fn  func()
}

// Host implements parallax.Host over a virtual clock.
type Host struct {
	cfg      HostConfig
	start    time.Time
	now      time.Time
	frame    int
	listener Listener

	scrollTop      float64
	viewportHeight float64
	clientHeight   float64

	frames   []func()
	timers   []timer
	timerSeq int

	injectQueue []syntheticEvent
}

// NewHost creates a host at frame 0.
func NewHost(cfg HostConfig) *Host {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = DefaultFrameInterval
	}
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	return &Host{
		cfg:            cfg,
		start:          start,
		now:            start,
		scrollTop:      cfg.ScrollTop,
		viewportHeight: cfg.ViewportHeight,
		clientHeight:   cfg.ClientHeight,
	}
}

// Listen routes scroll and resize notifications to l.
func (h *Host) Listen(l Listener) {
	h.listener = l
}

// Now implements parallax.Host.
func (h *Host) Now() time.Time { return h.now }

// ScrollTop implements parallax.Host.
func (h *Host) ScrollTop() float64 { return h.scrollTop }

// ClientHeight implements parallax.Host.
func (h *Host) ClientHeight() float64 { return h.clientHeight }

// InnerHeight implements parallax.Host.
func (h *Host) InnerHeight() (float64, bool) {
	if h.cfg.NoInnerHeight {
		return 0, false
	}
	return h.viewportHeight, true
}

// Capabilities implements parallax.Host.
func (h *Host) Capabilities() parallax.Capabilities {
	return parallax.Capabilities{AnimationFrame: h.cfg.AnimationFrame, Touch: h.cfg.Touch}
}

// RequestAnimationFrame implements parallax.Host.
func (h *Host) RequestAnimationFrame(fn func()) {
	h.frames = append(h.frames, fn)
}

// SetTimeout implements parallax.Host.
func (h *Host) SetTimeout(fn func(), d time.Duration) {
	h.timerSeq++
	h.timers = append(h.timers, timer{at: h.now.Add(d), seq: h.timerSeq, fn: fn})
}

// Elapsed returns the virtual time since the host was created.
func (h *Host) Elapsed() time.Duration { return h.now.Sub(h.start) }

// FrameCount returns the number of frames run so far.
func (h *Host) FrameCount() int { return h.frame }

// Pending reports whether any frame callback, timer or injected event is
// still outstanding.
func (h *Host) Pending() bool {
	return len(h.frames) > 0 || len(h.timers) > 0 || len(h.injectQueue) > 0
}

// ScrollTo sets the scroll offset and notifies the listener immediately.
func (h *Host) ScrollTo(top float64) {
	h.scrollTop = top
	if h.listener != nil {
		h.listener.OnScroll()
	}
}

// Resize sets the viewport height (and client height) and notifies the
// listener immediately.
func (h *Host) Resize(height float64) {
	h.viewportHeight = height
	h.clientHeight = height
	if h.listener != nil {
		h.listener.OnResize()
	}
}

// Frame runs one frame.
func (h *Host) Frame() {
	h.frame++
	h.now = h.now.Add(h.cfg.FrameInterval)

	h.fireTimers()
	h.processInjected()

	pending := h.frames
	h.frames = nil
	for _, fn := range pending {
		fn()
	}
}

// Frames runs n frames.
func (h *Host) Frames(n int) {
	for i := 0; i < n; i++ {
		h.Frame()
	}
}

// Advance runs frames until at least d of virtual time has passed.
func (h *Host) Advance(d time.Duration) {
	end := h.now.Add(d)
	for h.now.Before(end) {
		h.Frame()
	}
}

// Settle runs frames until nothing is pending, at most maxFrames. It
// reports whether the host went idle.
func (h *Host) Settle(maxFrames int) bool {
	for i := 0; i < maxFrames; i++ {
		if !h.Pending() {
			return true
		}
		h.Frame()
	}
	return !h.Pending()
}

func (h *Host) fireTimers() {
	var due []timer
	kept := h.timers[:0]
	for _, t := range h.timers {
		if !t.at.After(h.now) {
			due = append(due, t)
		} else {
			kept = append(kept, t)
		}
	}
	h.timers = kept
	slices.SortFunc(due, func(a, b timer) int {
		if c := a.at.Compare(b.at); c != 0 {
			return c
		}
		return a.seq - b.seq
	})
	for _, t := range due {
		t.fn()
	}
}
