package parallax

// handler is a subscribed callback and the token it was registered under.
type handler struct {
	token string
	fn    func()
}

// eventRegistry holds scroll and resize subscribers in subscription order.
// Handlers are scoped by a token so an asset can drop all of its
// subscriptions without holding on to the callbacks.
type eventRegistry struct {
	scroll   []handler
	resize   []handler
	dispatch []handler // reused snapshot buffer for emit
}

func (r *eventRegistry) list(evt EventType) *[]handler {
	if evt == EventResize {
		return &r.resize
	}
	return &r.scroll
}

// on subscribes fn to evt under token.
func (r *eventRegistry) on(evt EventType, token string, fn func()) {
	l := r.list(evt)
	*l = append(*l, handler{token: token, fn: fn})
}

// off removes every handler of evt registered under token.
func (r *eventRegistry) off(evt EventType, token string) {
	l := r.list(evt)
	s := *l
	n := 0
	for i := range s {
		if s[i].token != token {
			s[n] = s[i]
			n++
		}
	}
	for i := n; i < len(s); i++ {
		s[i] = handler{}
	}
	*l = s[:n]
}

// count returns the number of handlers subscribed to evt.
func (r *eventRegistry) count(evt EventType) int {
	return len(*r.list(evt))
}

// emit calls every handler of evt. The handler list is snapshotted first, so
// handlers that unsubscribe during dispatch still run for this event.
func (r *eventRegistry) emit(evt EventType) {
	snapshot := append(r.dispatch[:0], *r.list(evt)...)
	r.dispatch = nil
	for i := range snapshot {
		snapshot[i].fn()
	}
	clear(snapshot)
	r.dispatch = snapshot[:0]
}
