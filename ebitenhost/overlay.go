package ebitenhost

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// overlayText is the diagnostics line drawn in the top-left corner.
func (p *Page) overlayText() string {
	s := fmt.Sprintf("FPS: %.1f  TPS: %.1f\nscroll: %.0f / %.0f",
		ebiten.ActualFPS(), ebiten.ActualTPS(), p.camera.Y, p.camera.MaxY())
	if p.parallax != nil {
		s += "\n" + p.parallax.Stats().String()
	}
	return s
}

func (p *Page) drawOverlay(screen *ebiten.Image) {
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(300, 52)
	op.ColorScale.ScaleWithColor(color.RGBA{0, 0, 0, 128})
	screen.DrawImage(p.pixel, &op)
	ebitenutil.DebugPrint(screen, p.overlayText())
}
