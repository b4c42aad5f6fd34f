package ebitenhost

import (
	"slices"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Box is a rectangle element. It understands the properties opacity,
// translateX, translateY, scale, top and left; any other property is kept
// but not drawn. Class styles supply values for properties that have no
// inline value.
type Box struct {
	Name  string
	X, Y  float64
	W, H  float64
	Color colorful.Color

	props       map[string]string
	classes     map[string]bool
	classStyles map[string]map[string]string
}

// NewBox creates a box at document position (x, y).
func NewBox(name string, x, y, w, h float64, c colorful.Color) *Box {
	return &Box{Name: name, X: x, Y: y, W: w, H: h, Color: c, props: map[string]string{}, classes: map[string]bool{}}
}

// Top implements parallax.Element.
func (b *Box) Top() float64 { return b.Y }

// OuterHeight implements parallax.Element.
func (b *Box) OuterHeight() float64 { return b.H }

// SetProperty implements parallax.Element.
func (b *Box) SetProperty(name, value string) { b.props[name] = value }

// ClearProperties implements parallax.Element.
func (b *Box) ClearProperties() { clear(b.props) }

// AddClass implements parallax.Element.
func (b *Box) AddClass(name string) { b.classes[name] = true }

// HasClass reports whether the box carries class name.
func (b *Box) HasClass(name string) bool { return b.classes[name] }

// SetClassStyle gives class the property values in style.
func (b *Box) SetClassStyle(class string, style map[string]string) {
	if b.classStyles == nil {
		b.classStyles = map[string]map[string]string{}
	}
	b.classStyles[class] = style
}

// value returns the inline value of name, or the first class style value.
// Class styles are checked in class name order.
func (b *Box) value(name string) (string, bool) {
	if v, ok := b.props[name]; ok {
		return v, true
	}
	classes := make([]string, 0, len(b.classes))
	for c := range b.classes {
		classes = append(classes, c)
	}
	slices.Sort(classes)
	for _, c := range classes {
		if v, ok := b.classStyles[c][name]; ok {
			return v, true
		}
	}
	return "", false
}

// Look is the resolved drawing state of a box.
type Look struct {
	Alpha  float64
	DX, DY float64
	Scale  float64
}

// Look resolves the current properties, inline values first and class styles
// second. Missing or unparsable values fall back to the neutral look: fully
// opaque, unscaled, not offset.
func (b *Box) Look() Look {
	l := Look{Alpha: 1, Scale: 1}
	if v, ok := b.number("opacity"); ok {
		l.Alpha = min(max(v, 0), 1)
	}
	if v, ok := b.number("scale"); ok {
		l.Scale = max(v, 0)
	}
	if v, ok := b.number("translateX"); ok {
		l.DX += v
	}
	if v, ok := b.number("left"); ok {
		l.DX += v
	}
	if v, ok := b.number("translateY"); ok {
		l.DY += v
	}
	if v, ok := b.number("top"); ok {
		l.DY += v
	}
	return l
}

// number parses the property value with its unit suffix stripped.
func (b *Box) number(name string) (float64, bool) {
	raw, ok := b.value(name)
	if !ok {
		return 0, false
	}
	raw = strings.TrimRightFunc(raw, func(r rune) bool {
		return r == '%' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	})
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
