package headless

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Box is a virtual element with a fixed position in the document.
type Box struct {
	Name   string
	Y      float64 // offset from the top of the document
	Height float64

	props       map[string]string
	classes     []string
	classStyles map[string]map[string]string
	trace       *Trace
}

// NewBox creates a box. Mutations are recorded on trace when it is non-nil.
func NewBox(name string, y, height float64, trace *Trace) *Box {
	return &Box{Name: name, Y: y, Height: height, props: map[string]string{}, trace: trace}
}

// Top implements parallax.Element.
func (b *Box) Top() float64 { return b.Y }

// OuterHeight implements parallax.Element.
func (b *Box) OuterHeight() float64 { return b.Height }

// SetProperty implements parallax.Element.
func (b *Box) SetProperty(name, value string) {
	b.props[name] = value
	b.trace.record(b.Name, OpSet, name, value)
}

// ClearProperties implements parallax.Element.
func (b *Box) ClearProperties() {
	clear(b.props)
	b.trace.record(b.Name, OpClear, "", "")
}

// AddClass implements parallax.Element.
func (b *Box) AddClass(name string) {
	for _, c := range b.classes {
		if c == name {
			b.trace.record(b.Name, OpClass, name, "")
			return
		}
	}
	b.classes = append(b.classes, name)
	b.trace.record(b.Name, OpClass, name, "")
}

// Property returns the current inline value of name.
func (b *Box) Property(name string) (string, bool) {
	v, ok := b.props[name]
	return v, ok
}

// SetClassStyle gives class the property values in style. They apply while
// the box carries class and has no inline value for the property.
func (b *Box) SetClassStyle(class string, style map[string]string) {
	if b.classStyles == nil {
		b.classStyles = map[string]map[string]string{}
	}
	b.classStyles[class] = style
}

// Computed returns the effective value of name: the inline value if set,
// otherwise the value from the most recently added class that styles it.
func (b *Box) Computed(name string) (string, bool) {
	if v, ok := b.props[name]; ok {
		return v, true
	}
	for i := len(b.classes) - 1; i >= 0; i-- {
		if v, ok := b.classStyles[b.classes[i]][name]; ok {
			return v, true
		}
	}
	return "", false
}

// HasClass reports whether the box carries class name.
func (b *Box) HasClass(name string) bool {
	for _, c := range b.classes {
		if c == name {
			return true
		}
	}
	return false
}

// Style renders the inline properties as "a: 1; b: 2px" in name order.
func (b *Box) Style() string {
	names := make([]string, 0, len(b.props))
	for name := range b.props {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + b.props[name]
	}
	return strings.Join(parts, "; ")
}

// Op is the kind of a recorded element mutation or marker.
type Op string

const (
	OpSet   Op = "set"
	OpClear Op = "clear"
	OpClass Op = "class"
	OpStep  Op = "step"
)

// TraceEvent is one recorded mutation, stamped with the frame and virtual
// time at which it happened.
type TraceEvent struct {
	Frame  int    `json:"frame"`
	TimeMs int64  `json:"t"`
	Target string `json:"target"`
	Op     Op     `json:"op"`
	Name   string `json:"name,omitempty"`
	Value  string `json:"value,omitempty"`
}

// String formats the event as one trace line.
func (e TraceEvent) String() string {
	var detail string
	switch e.Op {
	case OpSet:
		detail = e.Name + "=" + e.Value
	case OpClass:
		detail = "class " + e.Name
	case OpStep:
		return fmt.Sprintf("[%04d %6dms] > %s", e.Frame, e.TimeMs, e.Name)
	default:
		detail = string(e.Op)
	}
	return fmt.Sprintf("[%04d %6dms] %s %s", e.Frame, e.TimeMs, e.Target, detail)
}

// Trace collects events from every box of a page.
type Trace struct {
	host   *Host
	Events []TraceEvent
}

// NewTrace creates a trace stamped from host.
func NewTrace(host *Host) *Trace {
	return &Trace{host: host}
}

func (t *Trace) record(target string, op Op, name, value string) {
	if t == nil {
		return
	}
	t.Events = append(t.Events, TraceEvent{
		Frame:  t.host.FrameCount(),
		TimeMs: t.host.Elapsed().Milliseconds(),
		Target: target,
		Op:     op,
		Name:   name,
		Value:  value,
	})
}

// Mark records a step marker.
func (t *Trace) Mark(label string) {
	t.record("", OpStep, label, "")
}

// WriteText writes one line per event.
func (t *Trace) WriteText(w io.Writer) error {
	for _, e := range t.Events {
		if _, err := fmt.Fprintln(w, e.String()); err != nil {
			return err
		}
	}
	return nil
}

// Values returns the values set on target's property name, in order.
func (t *Trace) Values(target, name string) []string {
	var out []string
	for _, e := range t.Events {
		if e.Target == target && e.Op == OpSet && e.Name == name {
			out = append(out, e.Value)
		}
	}
	return out
}
