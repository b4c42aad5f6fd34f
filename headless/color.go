package headless

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// BoxColor returns the color of box i: its Color when set, otherwise a
// step around the HCL hue wheel so neighbouring boxes stay distinct.
func (p *Page) BoxColor(i int) (colorful.Color, error) {
	b := p.Boxes[i]
	if b.Color != "" {
		c, err := colorful.Hex(b.Color)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("box %q: color %q: %w", b.Name, b.Color, err)
		}
		return c, nil
	}
	hue := math.Mod(float64(i)*137.5, 360)
	return colorful.Hcl(hue, 0.55, 0.65).Clamped(), nil
}
