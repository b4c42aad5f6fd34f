package headless

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/phanxgames/parallax"
)

// Result is the outcome of running a page.
type Result struct {
	Host     *Host
	Parallax *parallax.Parallax
	Trace    *Trace
	Boxes    []*Box
	// Idle is false when animations were still pending after the settle
	// frames ran out, e.g. a queue member waiting on a predecessor that
	// never scrolled into view.
	Idle bool
}

type runConfig struct {
	debug io.Writer
}

// RunOption configures Run.
type RunOption func(*runConfig)

// WithDebug enables the engine's debug output to w.
func WithDebug(w io.Writer) RunOption {
	return func(c *runConfig) { c.debug = w }
}

// Run validates page and plays it on a fresh host. Boxes that are not
// deferred are registered first, in page order, each with its own options.
// After the last step the host settles for up to page.SettleFrames frames.
func Run(page *Page, opts ...RunOption) (*Result, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	var cfg runConfig
	for _, o := range opts {
		o(&cfg)
	}

	host := NewHost(page.Viewport)
	trace := NewTrace(host)
	p := parallax.New(host)
	if cfg.debug != nil {
		p.SetDebugOutput(cfg.debug)
		p.SetDebugMode(true)
	}
	host.Listen(p)

	res := &Result{Host: host, Parallax: p, Trace: trace}
	byName := make(map[string]*Box, len(page.Boxes))
	specs := make(map[string]*BoxSpec, len(page.Boxes))
	for i := range page.Boxes {
		spec := &page.Boxes[i]
		box := NewBox(spec.Name, spec.Top, spec.Height, trace)
		box.SetClassStyle(spec.Options.CompleteClass, spec.Options.EndStyle())
		res.Boxes = append(res.Boxes, box)
		byName[spec.Name] = box
		specs[spec.Name] = spec
	}

	register := func(name string) error {
		if err := p.Init([]parallax.Element{byName[name]}, specs[name].Options); err != nil {
			return fmt.Errorf("box %q: %w", name, err)
		}
		return nil
	}

	for _, spec := range page.Boxes {
		if spec.Deferred {
			continue
		}
		if err := register(spec.Name); err != nil {
			return nil, err
		}
	}

	for _, st := range page.Steps {
		trace.Mark(st.Label())
		switch st.Action {
		case "scroll":
			host.ScrollTo(st.Y)
		case "scrollBy":
			host.InjectScrollBy(st.DY, st.Frames)
			for len(host.injectQueue) > 0 {
				host.Frame()
			}
		case "resize":
			host.Resize(st.Height)
		case "wait":
			if st.Ms > 0 {
				host.Advance(time.Duration(st.Ms) * time.Millisecond)
			} else {
				host.Frames(st.Frames)
			}
		case "init":
			for _, name := range st.Targets {
				if err := register(name); err != nil {
					return nil, err
				}
			}
		case "complete":
			els := make([]parallax.Element, 0, len(st.Targets))
			for _, name := range st.Targets {
				els = append(els, byName[name])
			}
			p.Complete(els)
		default:
			return nil, fmt.Errorf("unknown action %q", st.Action)
		}
	}

	settle := page.SettleFrames
	if settle <= 0 {
		settle = DefaultSettleFrames
	}
	res.Idle = host.Settle(settle)
	return res, nil
}

// Box returns the box called name, or nil.
func (r *Result) Box(name string) *Box {
	for _, b := range r.Boxes {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// WriteText writes the trace followed by one summary line per box.
func (r *Result) WriteText(w io.Writer) error {
	if err := r.Trace.WriteText(w); err != nil {
		return err
	}
	for _, s := range r.summaries() {
		line := fmt.Sprintf("= %s complete=%t progress=%s style={%s}", s.Name, s.Complete, formatNumber(s.Progress), s.Style)
		if len(s.Classes) > 0 {
			line += " class=" + strings.Join(s.Classes, ",")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "= %s idle=%t frames=%d\n", r.Parallax.Stats(), r.Idle, r.Host.FrameCount())
	return err
}

// WriteJSON writes the trace and the final box states as one indented JSON
// document.
func (r *Result) WriteJSON(w io.Writer) error {
	doc := struct {
		Events []TraceEvent   `json:"events"`
		Boxes  []BoxSummary   `json:"boxes"`
		Stats  parallax.Stats `json:"stats"`
		Idle   bool           `json:"idle"`
		Frames int            `json:"frames"`
	}{
		Events: r.Trace.Events,
		Boxes:  r.summaries(),
		Stats:  r.Parallax.Stats(),
		Idle:   r.Idle,
		Frames: r.Host.FrameCount(),
	}
	if doc.Events == nil {
		doc.Events = []TraceEvent{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// BoxSummary is the final state of one box.
type BoxSummary struct {
	Name       string   `json:"name"`
	Registered bool     `json:"registered"`
	Complete   bool     `json:"complete"`
	Progress   float64  `json:"progress"`
	Style      string   `json:"style"`
	Classes    []string `json:"classes,omitempty"`
}

func (r *Result) summaries() []BoxSummary {
	out := make([]BoxSummary, 0, len(r.Boxes))
	for _, b := range r.Boxes {
		s := BoxSummary{Name: b.Name, Style: b.Style(), Classes: b.classes}
		if a, ok := r.Parallax.Asset(b); ok {
			s.Registered = true
			s.Complete = a.IsComplete()
			s.Progress = a.Progress()
		}
		out = append(out, s)
	}
	return out
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
