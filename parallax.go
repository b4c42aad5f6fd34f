package parallax

import (
	"io"
	"os"
)

// MethodComplete is the method name accepted by Apply to force assets into
// their terminal state.
const MethodComplete = "complete"

// Parallax owns every piece of shared state: the viewport, the queue
// registry, the event subscriptions and the element → asset attachments.
// One Parallax serves one document. It is not safe for concurrent use; all
// calls, including the host callbacks it schedules, must happen on one
// goroutine.
type Parallax struct {
	host   Host
	caps   Capabilities
	sched  *scheduler
	events eventRegistry
	queues queueRegistry

	// viewport is created by the first Init.
	viewport *viewport

	assets map[Element]*Asset
	order  []*Asset
	nextID int

	debug    bool
	debugOut io.Writer
}

// New creates a Parallax bound to host. Host capabilities are read once.
func New(host Host) *Parallax {
	caps := host.Capabilities()
	return &Parallax{
		host:     host,
		caps:     caps,
		sched:    newScheduler(host, caps),
		queues:   queueRegistry{},
		assets:   make(map[Element]*Asset),
		debugOut: os.Stderr,
	}
}

// Init registers every element that has no asset yet. opts is validated
// before anything is registered; an invalid configuration registers nothing.
// Each new asset is set up immediately, which may start its animation if the
// viewport is already inside or past its range, or jumps to the terminal
// state when opts.Complete is set. Elements that already have an asset and
// nil elements are skipped.
func (p *Parallax) Init(elements []Element, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if p.viewport == nil {
		p.viewport = newViewport(p.host)
		p.events.on(EventScroll, viewportToken, p.viewport.update)
		p.events.on(EventResize, viewportToken, p.viewport.update)
	}
	for _, el := range elements {
		if el == nil {
			continue
		}
		if _, ok := p.assets[el]; ok {
			continue
		}
		a := newAsset(p, el, opts)
		p.assets[el] = a
		p.order = append(p.order, a)
		p.debugf("asset %d: registered (%s, queue %q)", a.id, a.anim, a.queueName)
		if opts.Complete {
			a.setComplete(true)
		} else {
			a.setupAnimation()
		}
	}
	return nil
}

// Complete forces every registered, not yet complete asset among elements
// into its terminal state. Unregistered elements are ignored.
func (p *Parallax) Complete(elements []Element) {
	for _, el := range elements {
		if a, ok := p.assets[el]; ok && !a.complete {
			a.setComplete(true)
		}
	}
}

// Apply is the single entry point mirroring the plugin call style:
//
//	p.Apply(els, nil)                     // Init with DefaultOptions
//	p.Apply(els, opts)                    // Init with opts (Options or *Options)
//	p.Apply(els, parallax.MethodComplete) // Complete
//
// Any other argument does nothing.
func (p *Parallax) Apply(elements []Element, arg any) error {
	switch v := arg.(type) {
	case nil:
		return p.Init(elements, DefaultOptions())
	case Options:
		return p.Init(elements, v)
	case *Options:
		if v == nil {
			return p.Init(elements, DefaultOptions())
		}
		return p.Init(elements, *v)
	case string:
		switch v {
		case MethodComplete:
			p.Complete(elements)
		case "init":
			return p.Init(elements, DefaultOptions())
		}
	}
	return nil
}

// OnScroll must be called by the host whenever the document scrolls.
func (p *Parallax) OnScroll() {
	p.events.emit(EventScroll)
}

// OnResize must be called by the host whenever the viewport changes size.
func (p *Parallax) OnResize() {
	p.events.emit(EventResize)
}

// Asset returns the asset attached to el.
func (p *Parallax) Asset(el Element) (*Asset, bool) {
	a, ok := p.assets[el]
	return a, ok
}

// Assets returns every asset in registration order. The returned slice MUST
// NOT be mutated.
func (p *Parallax) Assets() []*Asset {
	return p.order
}

// Viewport returns the tracked scroll top and bottom. Both are 0 before the
// first Init.
func (p *Parallax) Viewport() (top, bottom float64) {
	if p.viewport == nil {
		return 0, 0
	}
	return p.viewport.scrollTop, p.viewport.scrollBottom
}
