package parallax

// viewportToken scopes the viewport's own subscriptions.
const viewportToken = "parallax"

// viewport tracks the document scroll position shared by every asset. It is
// written only from its scroll/resize handlers.
type viewport struct {
	host         Host
	scrollTop    float64
	scrollBottom float64
}

func newViewport(host Host) *viewport {
	v := &viewport{host: host}
	v.update()
	return v
}

// update re-reads the scroll offset and recomputes the bottom edge from the
// viewport height, falling back to the document client height.
func (v *viewport) update() {
	v.scrollTop = v.host.ScrollTop()
	height, ok := v.host.InnerHeight()
	if !ok {
		height = v.host.ClientHeight()
	}
	v.scrollBottom = v.scrollTop + height
}
