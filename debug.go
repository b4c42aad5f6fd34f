package parallax

import (
	"fmt"
	"io"
)

// SetDebugMode enables or disables debug logging. When enabled, asset
// registration, range entry, queue releases and completion are written to
// the debug output (stderr by default).
func (p *Parallax) SetDebugMode(enabled bool) {
	p.debug = enabled
}

// SetDebugOutput redirects debug logging.
func (p *Parallax) SetDebugOutput(w io.Writer) {
	p.debugOut = w
}

// debugf writes one debug line. Callers may call it unconditionally.
func (p *Parallax) debugf(format string, args ...any) {
	if !p.debug || p.debugOut == nil {
		return
	}
	_, _ = fmt.Fprintf(p.debugOut, "[parallax] "+format+"\n", args...)
}

// Stats is a snapshot of the asset population.
type Stats struct {
	Assets      int `json:"assets"`      // registered assets
	Complete    int `json:"complete"`    // assets no longer reacting to scroll
	Subscribers int `json:"subscribers"` // scroll subscribers, viewport included
	Queues      int `json:"queues"`      // named queues
}

// Stats returns counts useful for overlays and diagnostics.
func (p *Parallax) Stats() Stats {
	s := Stats{
		Assets:      len(p.order),
		Subscribers: p.events.count(EventScroll),
		Queues:      len(p.queues),
	}
	for _, a := range p.order {
		if a.complete {
			s.Complete++
		}
	}
	return s
}

// String formats the stats on one line.
func (s Stats) String() string {
	return fmt.Sprintf("assets: %d | complete: %d | subscribers: %d | queues: %d",
		s.Assets, s.Complete, s.Subscribers, s.Queues)
}
