package parallax

import (
	"strconv"
	"time"
)

// Asset is one registered element together with its animation state. Assets
// are created by Parallax.Init and live as long as the Parallax that owns
// them.
//
// Lifecycle: created → set up (offsets computed, range evaluated, subscribed
// to scroll/resize) → active → complete (unsubscribed). An asset created with
// Options.Complete skips straight to complete.
type Asset struct {
	p       *Parallax
	id      int
	token   string
	element Element

	anim          AnimationType
	props         []property
	speed         time.Duration
	proceed       float64
	bidirectional bool

	differenceOffsetPct float64
	pctOfEleHeight      float64
	completeClass       string

	startOffset float64
	endOffset   float64
	offsetRange float64

	// progress is the highest rate reached; manual unidirectional only.
	progress float64
	complete bool

	queueName  string
	queueIndex int
	queued     bool

	// ticking is set while a scroll frame callback is pending.
	ticking bool
}

func newAsset(p *Parallax, el Element, opts Options) *Asset {
	p.nextID++
	a := &Asset{
		p:                   p,
		id:                  p.nextID,
		element:             el,
		anim:                opts.Animation.Type,
		speed:               time.Duration(opts.Animation.Speed * float64(time.Second)),
		proceed:             opts.Animation.Proceed,
		bidirectional:       opts.Animation.Bidirectional,
		differenceOffsetPct: opts.DifferenceOffsetPct,
		pctOfEleHeight:      opts.PctOfEleHeight,
		completeClass:       opts.CompleteClass,
		queueIndex:          -1,
		queued:              true,
	}
	a.token = viewportToken + strconv.Itoa(a.id)

	if opts.QueueName != "" {
		a.queueName = opts.QueueName
		a.queueIndex = p.queues.join(opts.QueueName)
	}

	// Touch scrolling does not deliver a steady event stream, so only
	// one-shot animations are reliable there.
	if p.caps.Touch {
		a.anim = AnimationAuto
		a.bidirectional = false
	}

	names := sortedPropNames(opts.Animation.Props)
	a.props = make([]property, 0, len(names))
	for _, name := range names {
		prop := opts.Animation.Props[name]
		a.props = append(a.props, property{
			name:   name,
			from:   prop.From,
			to:     prop.To,
			diff:   prop.To - prop.From,
			suffix: prop.Suffix,
		})
	}
	return a
}

// setupAnimation computes the offsets, reacts to the current scroll position
// and subscribes to scroll and resize. An asset that already completed while
// reacting is not subscribed.
func (a *Asset) setupAnimation() {
	a.setStartAndEndOffsets()
	a.animateByScrollPosition(a.p.viewport.scrollBottom)
	if a.complete {
		return
	}
	a.p.events.on(EventScroll, a.token, a.scroll)
	a.p.events.on(EventResize, a.token, a.setStartAndEndOffsets)
}

// setStartAndEndOffsets places the animation range relative to the element's
// bottom edge. Called at setup and on every resize.
func (a *Asset) setStartAndEndOffsets() {
	h := a.element.OuterHeight()
	a.startOffset = (a.element.Top() + h) - h*a.differenceOffsetPct
	a.endOffset = a.startOffset + h*a.pctOfEleHeight
	a.offsetRange = a.endOffset - a.startOffset
}

// RangePosition classifies scrollBottom against the asset's range.
// scrollBottom == startOffset is within; scrollBottom == endOffset is below.
func (a *Asset) RangePosition(scrollBottom float64) RangePosition {
	switch {
	case scrollBottom < a.startOffset:
		return RangeAbove
	case scrollBottom < a.endOffset:
		return RangeWithin
	default:
		return RangeBelow
	}
}

// rateAt returns the manual animation rate for scrollBottom. A zero-length
// range is a step: 0 above the range, 1 from endOffset on.
func (a *Asset) rateAt(scrollBottom float64) float64 {
	if a.offsetRange == 0 {
		if scrollBottom >= a.endOffset {
			return 1
		}
		return 0
	}
	return (scrollBottom - a.startOffset) / a.offsetRange
}

func (a *Asset) animateByScrollPosition(scrollBottom float64) {
	if a.complete {
		return
	}
	switch a.anim {
	case AnimationAuto:
		// Complete is flipped before the animation starts so the asset
		// can never be triggered twice.
		if pos := a.RangePosition(scrollBottom); pos != RangeAbove {
			a.p.debugf("asset %d: entered range (%s) at %s", a.id, pos, formatFloat(scrollBottom))
			a.setComplete(false)
			a.checkQueue()
		}
	case AnimationManual:
		rate := a.rateAt(scrollBottom)
		if a.bidirectional {
			a.adjustByRate(rate)
		} else if rate > a.progress {
			a.progress = rate
			a.adjustByRate(rate)
		}
	}
}

// checkQueue starts the timed animation once the asset is first in its
// queue or its predecessor has passed its proceed rate. Until then it polls
// once per frame.
func (a *Asset) checkQueue() {
	if a.queueName == "" || a.p.queues.mayProceed(a.queueName, a.queueIndex) {
		a.p.debugf("asset %d: animating for %v", a.id, a.speed)
		a.p.sched.Animate(a.speed, a.adjustByRate)
		return
	}
	a.p.sched.Retry(a.checkQueue)
}

// adjustByRate writes every property for rate. Crossing the proceed rate
// releases the asset's queue slot; reaching 1 on a unidirectional asset
// completes it.
func (a *Asset) adjustByRate(rate float64) {
	if a.queued && rate >= a.proceed {
		a.release()
	}
	for i := range a.props {
		a.element.SetProperty(a.props[i].name, a.props[i].valueAt(rate))
	}
	if rate >= 1 && !a.bidirectional {
		a.setComplete(true)
	}
}

func (a *Asset) release() {
	a.queued = false
	if a.queueName != "" {
		a.p.queues.release(a.queueName, a.queueIndex)
		a.p.debugf("asset %d: released %s[%d]", a.id, a.queueName, a.queueIndex)
	}
}

// setComplete stops the asset from reacting to scroll and resize. With
// terminal set it also releases the queue slot, clears the inline properties
// and adds the complete class; that part runs even if the asset was already
// complete.
func (a *Asset) setComplete(terminal bool) {
	if !a.complete {
		a.complete = true
		a.p.events.off(EventScroll, a.token)
		a.p.events.off(EventResize, a.token)
		a.p.debugf("asset %d: complete", a.id)
	}
	if terminal {
		if a.queued {
			a.release()
		}
		a.element.ClearProperties()
		a.element.AddClass(a.completeClass)
	}
}

// scroll is the scroll subscriber. With animation frames, bursts of scroll
// events inside one frame collapse into a single evaluation.
func (a *Asset) scroll() {
	if !a.p.caps.AnimationFrame {
		a.animateByScrollPosition(a.p.viewport.scrollBottom)
		return
	}
	if !a.ticking {
		a.p.host.RequestAnimationFrame(a.onFrame)
	}
	a.ticking = true
}

func (a *Asset) onFrame() {
	a.ticking = false
	a.animateByScrollPosition(a.p.viewport.scrollBottom)
}

// ID returns the asset's identifier, unique within its Parallax.
func (a *Asset) ID() int { return a.id }

// Element returns the element the asset animates.
func (a *Asset) Element() Element { return a.element }

// Type returns the effective animation type, after the touch override.
func (a *Asset) Type() AnimationType { return a.anim }

// IsComplete reports whether the asset has stopped reacting to scrolling.
// An auto asset is complete as soon as its animation has been triggered.
func (a *Asset) IsComplete() bool { return a.complete }

// Progress returns the highest rate reached by a manual unidirectional asset.
func (a *Asset) Progress() float64 { return a.progress }

// Offsets returns the start and end of the animation range in document
// coordinates.
func (a *Asset) Offsets() (start, end float64) { return a.startOffset, a.endOffset }

// QueueName returns the asset's queue, or "" when it is not queued.
func (a *Asset) QueueName() string { return a.queueName }

// QueueIndex returns the asset's position in its queue, or -1.
func (a *Asset) QueueIndex() int { return a.queueIndex }

// Queued reports whether the asset still holds back the next queue member.
func (a *Asset) Queued() bool { return a.queued }
