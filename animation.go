package parallax

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// FallbackInterval is the polling period used when the host has no
	// animation-frame primitive.
	FallbackInterval = 16 * time.Millisecond

	// finishWindow: a timed animation snaps to rate 1 once less than this
	// much of its duration remains.
	finishWindow = 60 * time.Millisecond
)

// scheduler hands callbacks to the host's frame primitive, or to its timer
// when frames are unavailable.
type scheduler struct {
	host   Host
	frames bool
}

func newScheduler(host Host, caps Capabilities) *scheduler {
	return &scheduler{host: host, frames: caps.AnimationFrame}
}

// Retry runs fn once on the next frame (or after FallbackInterval).
func (s *scheduler) Retry(fn func()) {
	if s.frames {
		s.host.RequestAnimationFrame(fn)
		return
	}
	s.host.SetTimeout(fn, FallbackInterval)
}

// timedAnimation drives a callback with a rate going from 0 to 1 over a fixed
// wall-clock duration. The rate comes from a linear gween tween over the
// unit interval, set from the fraction of the duration already spent, so
// dropped frames never slow the animation down.
type timedAnimation struct {
	sched    *scheduler
	tween    *gween.Tween
	duration time.Duration
	end      time.Time
	run      func(rate float64)
}

// Animate starts a timed animation. The first step runs before Animate
// returns; the final call to run always has rate 1. There is no way to stop
// an animation once started.
func (s *scheduler) Animate(duration time.Duration, run func(rate float64)) {
	a := &timedAnimation{
		sched:    s,
		tween:    gween.New(0, 1, 1, ease.Linear),
		duration: duration,
		end:      s.host.Now().Add(duration),
		run:      run,
	}
	a.step()
}

func (a *timedAnimation) step() {
	remaining := a.end.Sub(a.sched.host.Now())
	if remaining < finishWindow {
		a.run(1)
		return
	}
	spent := 1 - float64(remaining)/float64(a.duration)
	rate, _ := a.tween.Set(float32(spent))
	a.run(float64(rate))
	a.sched.Retry(a.step)
}
