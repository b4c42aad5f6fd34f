// Package ebitenhost runs parallax pages in an Ebitengine window.
package ebitenhost

import (
	"io"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/parallax/headless"
)

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Background is a hex color. Defaults to a dark slate.
	Background string
	// ShowFPS draws FPS and engine stats in the top-left corner.
	ShowFPS bool
	// Touch forces the touch capability even without live touches.
	Touch bool
	// Debug receives the engine's debug output when non-nil.
	Debug io.Writer
}

func (c RunConfig) withDefaults() RunConfig {
	if c.Title == "" {
		c.Title = "parallax"
	}
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 480
	}
	if c.Background == "" {
		c.Background = "#1a1a26"
	}
	return c
}

// Run lays out src and shows it in a resizable window until the window is
// closed.
func Run(src *headless.Page, cfg RunConfig) error {
	page, err := NewPage(src, cfg)
	if err != nil {
		return err
	}
	ebiten.SetWindowTitle(page.cfg.Title)
	ebiten.SetWindowSize(page.cfg.Width, page.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(page)
}
