package headless

type syntheticKind uint8

const (
	syntheticScroll syntheticKind = iota
	syntheticResize
)

// syntheticEvent is one queued input event, applied at the start of a frame.
type syntheticEvent struct {
	kind  syntheticKind
	value float64
}

// InjectScroll queues a scroll to top. The event is applied on the next
// frame, before that frame's animation callbacks run.
func (h *Host) InjectScroll(top float64) {
	h.injectQueue = append(h.injectQueue, syntheticEvent{kind: syntheticScroll, value: top})
}

// InjectResize queues a viewport resize for the next frame.
func (h *Host) InjectResize(height float64) {
	h.injectQueue = append(h.injectQueue, syntheticEvent{kind: syntheticResize, value: height})
}

// InjectScrollBy queues a smooth scroll of dy spread linearly over frames
// frames, one scroll event per frame, ending exactly at scrollTop+dy.
// Minimum frames is 1.
func (h *Host) InjectScrollBy(dy float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	from := h.scrollTop
	if n := len(h.injectQueue); n > 0 {
		for i := n - 1; i >= 0; i-- {
			if h.injectQueue[i].kind == syntheticScroll {
				from = h.injectQueue[i].value
				break
			}
		}
	}
	for i := 1; i < frames; i++ {
		t := float64(i) / float64(frames)
		h.InjectScroll(from + dy*t)
	}
	h.InjectScroll(from + dy)
}

// processInjected pops and applies one queued event.
func (h *Host) processInjected() {
	if len(h.injectQueue) == 0 {
		return
	}
	evt := h.injectQueue[0]
	copy(h.injectQueue, h.injectQueue[1:])
	h.injectQueue = h.injectQueue[:len(h.injectQueue)-1]

	switch evt.kind {
	case syntheticScroll:
		h.ScrollTo(evt.value)
	case syntheticResize:
		h.Resize(evt.value)
	}
}
