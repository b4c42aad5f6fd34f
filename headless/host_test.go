package headless

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingListener struct {
	scrolls, resizes int
}

func (l *countingListener) OnScroll() { l.scrolls++ }
func (l *countingListener) OnResize() { l.resizes++ }

func TestFrameRunsOnlyCallbacksPendingAtStart(t *testing.T) {
	h := NewHost(HostConfig{ViewportHeight: 600, AnimationFrame: true})
	var order []int
	h.RequestAnimationFrame(func() {
		order = append(order, 1)
		h.RequestAnimationFrame(func() { order = append(order, 2) })
	})

	h.Frame()
	assert.Equal(t, []int{1}, order)
	assert.True(t, h.Pending())

	h.Frame()
	assert.Equal(t, []int{1, 2}, order)
	assert.False(t, h.Pending())
	assert.Equal(t, 2, h.FrameCount())
	assert.Equal(t, 32*time.Millisecond, h.Elapsed())
}

func TestTimersFireInDueOrder(t *testing.T) {
	h := NewHost(HostConfig{})
	var order []string
	h.SetTimeout(func() { order = append(order, "late") }, 30*time.Millisecond)
	h.SetTimeout(func() { order = append(order, "early") }, 10*time.Millisecond)
	h.SetTimeout(func() { order = append(order, "early2") }, 10*time.Millisecond)

	h.Frame()
	assert.Equal(t, []string{"early", "early2"}, order)
	h.Frame()
	assert.Equal(t, []string{"early", "early2", "late"}, order)
}

func TestAdvanceRunsWholeFrames(t *testing.T) {
	h := NewHost(HostConfig{})
	h.Advance(40 * time.Millisecond)
	assert.Equal(t, 3, h.FrameCount())
	assert.Equal(t, 48*time.Millisecond, h.Elapsed())
}

func TestInnerHeightFallback(t *testing.T) {
	h := NewHost(HostConfig{ViewportHeight: 600, ClientHeight: 500, NoInnerHeight: true})
	_, ok := h.InnerHeight()
	assert.False(t, ok)
	assert.Equal(t, 500.0, h.ClientHeight())
}

func TestInjectScrollByOneEventPerFrame(t *testing.T) {
	h := NewHost(HostConfig{ViewportHeight: 600, ScrollTop: 100})
	l := &countingListener{}
	h.Listen(l)

	h.InjectScrollBy(400, 4)
	var tops []float64
	for h.Pending() {
		h.Frame()
		tops = append(tops, h.ScrollTop())
	}
	assert.Equal(t, []float64{200, 300, 400, 500}, tops)
	assert.Equal(t, 4, l.scrolls)
}

func TestInjectScrollByContinuesFromQueuedScroll(t *testing.T) {
	h := NewHost(HostConfig{})
	h.InjectScroll(50)
	h.InjectScrollBy(100, 1)
	h.Frames(2)
	assert.Equal(t, 150.0, h.ScrollTop())
}

func TestInjectResize(t *testing.T) {
	h := NewHost(HostConfig{ViewportHeight: 600})
	l := &countingListener{}
	h.Listen(l)
	h.InjectResize(300)
	assert.Equal(t, 0, l.resizes)

	h.Frame()
	height, ok := h.InnerHeight()
	require.True(t, ok)
	assert.Equal(t, 300.0, height)
	assert.Equal(t, 1, l.resizes)
}

func TestSettleReportsBusyHost(t *testing.T) {
	h := NewHost(HostConfig{AnimationFrame: true})
	var loop func()
	loop = func() { h.RequestAnimationFrame(loop) }
	loop()
	assert.False(t, h.Settle(5))
	assert.Equal(t, 5, h.FrameCount())
}
