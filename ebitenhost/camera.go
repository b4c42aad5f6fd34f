package ebitenhost

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera is a vertical scroll camera over a document of fixed height. Y is
// the document offset shown at the top of the viewport.
type Camera struct {
	Y              float64
	ViewportHeight float64
	DocumentHeight float64

	// WheelStep is the distance scrolled per wheel notch.
	WheelStep float64
	// Smoothing is the duration of a ScrollBy glide in seconds.
	Smoothing float32
	// Ease shapes ScrollBy glides.
	Ease ease.TweenFunc

	tween  *gween.Tween
	target float64
	last   float64
}

func newCamera(viewportHeight, documentHeight float64) *Camera {
	return &Camera{
		ViewportHeight: viewportHeight,
		DocumentHeight: documentHeight,
		WheelStep:      60,
		Smoothing:      0.25,
		Ease:           ease.OutCubic,
	}
}

// MaxY returns the largest scroll offset.
func (c *Camera) MaxY() float64 {
	return math.Max(0, c.DocumentHeight-c.ViewportHeight)
}

// ScrollTo glides to y over duration seconds. A non-positive duration jumps.
func (c *Camera) ScrollTo(y float64, duration float32, easeFn ease.TweenFunc) {
	y = c.clamp(y)
	c.target = y
	if duration <= 0 {
		c.tween = nil
		c.Y = y
		return
	}
	c.tween = gween.New(float32(c.Y), float32(y), duration, easeFn)
}

// ScrollBy glides dy further than the current target.
func (c *Camera) ScrollBy(dy float64) {
	from := c.Y
	if c.tween != nil {
		from = c.target
	}
	c.ScrollTo(from+dy, c.Smoothing, c.Ease)
}

// Scrolling reports whether a glide is in progress.
func (c *Camera) Scrolling() bool { return c.tween != nil }

// update advances the glide by dt seconds and reports whether Y moved
// since the previous update, jumps included.
func (c *Camera) update(dt float32) bool {
	if c.tween != nil {
		val, done := c.tween.Update(dt)
		c.Y = float64(val)
		if done {
			c.Y = c.target
			c.tween = nil
		}
	}
	c.Y = c.clamp(c.Y)
	moved := c.Y != c.last
	c.last = c.Y
	return moved
}

// resize changes the viewport height and re-clamps Y.
func (c *Camera) resize(height float64) {
	c.ViewportHeight = height
	c.Y = c.clamp(c.Y)
	c.target = c.clamp(c.target)
}

func (c *Camera) clamp(y float64) float64 {
	return math.Max(0, math.Min(y, c.MaxY()))
}
