package parallax

import "time"

// Capabilities describes the optional primitives a Host offers.
type Capabilities struct {
	// AnimationFrame reports whether RequestAnimationFrame is available. When
	// false, the scheduler polls through SetTimeout at FallbackInterval.
	AnimationFrame bool
	// Touch reports a touch-driven environment. Assets created on a touch host
	// are forced to auto, unidirectional animation.
	Touch bool
}

// Host is the rendering environment that owns the document, its scroll
// position and the frame/timer primitives. All callbacks handed to a Host must
// be invoked on the same goroutine that calls into Parallax.
type Host interface {
	// Now returns the current wall-clock time.
	Now() time.Time
	// ScrollTop returns the document's vertical scroll offset.
	ScrollTop() float64
	// InnerHeight returns the viewport's inner height, or false when the host
	// cannot report one.
	InnerHeight() (float64, bool)
	// ClientHeight returns the document element's client height. Used when
	// InnerHeight is unavailable.
	ClientHeight() float64
	// RequestAnimationFrame runs fn once before the next frame is presented.
	RequestAnimationFrame(fn func())
	// SetTimeout runs fn once after d has elapsed.
	SetTimeout(fn func(), d time.Duration)
	// Capabilities reports which optional primitives are usable.
	Capabilities() Capabilities
}

// Element is a visual element that can be registered as an asset.
// Implementations are used as map keys and must be comparable; pointer types
// are the norm.
type Element interface {
	// Top returns the element's offset from the top of the document.
	Top() float64
	// OuterHeight returns the element's height including padding and border.
	OuterHeight() float64
	// SetProperty sets an inline visual property, e.g. ("opacity", "0.5").
	SetProperty(name, value string)
	// ClearProperties removes every inline property set through SetProperty.
	ClearProperties()
	// AddClass marks the element with a class name.
	AddClass(name string)
}
