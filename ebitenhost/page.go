package ebitenhost

import (
	"fmt"
	"image/color"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/phanxgames/parallax"
	"github.com/phanxgames/parallax/headless"
)

const (
	boxMargin  = 40
	pageFooter = 200
)

type timer struct {
	at time.Time
	fn func()
}

// Page is an interactive document: the boxes of a headless.Page laid out in
// a column, scrolled with the mouse wheel, the keyboard or programmatically
// through Camera. Page implements ebiten.Game and
// parallax.Host. Script steps of the source page are ignored.
//
// The Parallax is created on the first tick so that touch support can be
// detected from live input.
type Page struct {
	cfg    RunConfig
	source *headless.Page
	boxes   []*Box
	options []parallax.Options // validated, per box
	camera  *Camera

	parallax *parallax.Parallax
	touch    bool
	touchBuf []ebiten.TouchID

	width, height int

	start  time.Time
	now    time.Time
	frames []func()
	timers []timer

	background colorful.Color
	pixel      *ebiten.Image
}

// NewPage lays out the boxes of src for a window of cfg.Width x cfg.Height.
func NewPage(src *headless.Page, cfg RunConfig) (*Page, error) {
	cfg = cfg.withDefaults()
	bg, err := colorful.Hex(cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("background %q: %w", cfg.Background, err)
	}
	p := &Page{
		cfg:        cfg,
		source:     src,
		width:      cfg.Width,
		height:     cfg.Height,
		start:      time.Now(),
		background: bg,
	}
	p.now = p.start

	for i, spec := range src.Boxes {
		c, err := src.BoxColor(i)
		if err != nil {
			return nil, err
		}
		opts := spec.Options
		if err := opts.Validate(); err != nil {
			return nil, fmt.Errorf("box %q: %w", spec.Name, err)
		}
		w := float64(cfg.Width) - 2*boxMargin
		box := NewBox(spec.Name, boxMargin, spec.Top, w, spec.Height, c)
		box.SetClassStyle(opts.CompleteClass, opts.EndStyle())
		p.boxes = append(p.boxes, box)
		p.options = append(p.options, opts)
	}
	p.camera = newCamera(float64(cfg.Height), src.DocumentHeight()+pageFooter)
	p.camera.Y = p.camera.clamp(src.Viewport.ScrollTop)
	return p, nil
}

// Camera returns the scroll camera.
func (p *Page) Camera() *Camera { return p.camera }

// Boxes returns the boxes in page order.
func (p *Page) Boxes() []*Box { return p.boxes }

// Parallax returns the engine, or nil before the first tick.
func (p *Page) Parallax() *parallax.Parallax { return p.parallax }

// Now implements parallax.Host.
func (p *Page) Now() time.Time { return p.now }

// ScrollTop implements parallax.Host.
func (p *Page) ScrollTop() float64 { return p.camera.Y }

// InnerHeight implements parallax.Host.
func (p *Page) InnerHeight() (float64, bool) { return float64(p.height), true }

// ClientHeight implements parallax.Host.
func (p *Page) ClientHeight() float64 { return float64(p.height) }

// Capabilities implements parallax.Host.
func (p *Page) Capabilities() parallax.Capabilities {
	return parallax.Capabilities{AnimationFrame: true, Touch: p.touch}
}

// RequestAnimationFrame implements parallax.Host. Callbacks run on the
// next tick.
func (p *Page) RequestAnimationFrame(fn func()) {
	p.frames = append(p.frames, fn)
}

// SetTimeout implements parallax.Host.
func (p *Page) SetTimeout(fn func(), d time.Duration) {
	p.timers = append(p.timers, timer{at: p.now.Add(d), fn: fn})
}

// Update implements ebiten.Game.
func (p *Page) Update() error {
	dt := time.Second / time.Duration(ebiten.TPS())
	_, wheel := ebiten.Wheel()
	p.touchBuf = ebiten.AppendTouchIDs(p.touchBuf[:0])

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		p.camera.ScrollBy(p.camera.WheelStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		p.camera.ScrollBy(-p.camera.WheelStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		p.camera.ScrollBy(p.camera.ViewportHeight * 0.9)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		p.camera.ScrollBy(-p.camera.ViewportHeight * 0.9)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		p.camera.ScrollTo(0, p.camera.Smoothing, p.camera.Ease)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		p.camera.ScrollTo(p.camera.MaxY(), p.camera.Smoothing, p.camera.Ease)
	}
	return p.step(dt, wheel, len(p.touchBuf) > 0)
}

// step advances the page by one tick: wheel input, camera glide, timers and
// then the animation-frame callbacks pending at the start of the tick.
func (p *Page) step(dt time.Duration, wheel float64, touching bool) error {
	if p.parallax == nil {
		if err := p.setup(touching || p.cfg.Touch); err != nil {
			return err
		}
	}
	p.now = p.now.Add(dt)

	if wheel != 0 {
		p.camera.ScrollBy(-wheel * p.camera.WheelStep)
	}
	if p.camera.update(float32(dt.Seconds())) {
		p.parallax.OnScroll()
	}

	p.fireTimers()
	pending := p.frames
	p.frames = nil
	for _, fn := range pending {
		fn()
	}
	return nil
}

// setup creates the Parallax and registers every box that is not deferred.
func (p *Page) setup(touch bool) error {
	p.touch = touch
	p.parallax = parallax.New(p)
	if p.cfg.Debug != nil {
		p.parallax.SetDebugOutput(p.cfg.Debug)
		p.parallax.SetDebugMode(true)
	}
	for i, spec := range p.source.Boxes {
		if spec.Deferred {
			continue
		}
		if err := p.parallax.Init([]parallax.Element{p.boxes[i]}, p.options[i]); err != nil {
			return fmt.Errorf("box %q: %w", spec.Name, err)
		}
	}
	return nil
}

func (p *Page) fireTimers() {
	var due []timer
	kept := p.timers[:0]
	for _, t := range p.timers {
		if t.at.After(p.now) {
			kept = append(kept, t)
		} else {
			due = append(due, t)
		}
	}
	p.timers = kept
	slices.SortStableFunc(due, func(a, b timer) int { return a.at.Compare(b.at) })
	for _, t := range due {
		t.fn()
	}
}

// Layout implements ebiten.Game. A change of the outside height is a
// viewport resize.
func (p *Page) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideHeight != p.height || outsideWidth != p.width {
		p.resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func (p *Page) resize(width, height int) {
	p.width, p.height = width, height
	p.camera.resize(float64(height))
	for _, b := range p.boxes {
		b.W = float64(width) - 2*boxMargin
	}
	if p.parallax != nil {
		p.parallax.OnResize()
	}
}

// Draw implements ebiten.Game.
func (p *Page) Draw(screen *ebiten.Image) {
	screen.Fill(p.background)
	if p.pixel == nil {
		p.pixel = ebiten.NewImage(1, 1)
		p.pixel.Fill(color.White)
	}
	for _, b := range p.boxes {
		p.drawBox(screen, b)
	}
	if p.cfg.ShowFPS {
		p.drawOverlay(screen)
	}
}

func (p *Page) drawBox(screen *ebiten.Image, b *Box) {
	l := b.Look()
	y := b.Y - p.camera.Y + l.DY
	if y+b.H < 0 || y > float64(p.height) || l.Alpha == 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(b.W, b.H)
	op.GeoM.Translate(-b.W/2, -b.H/2)
	op.GeoM.Scale(l.Scale, l.Scale)
	op.GeoM.Translate(b.X+l.DX+b.W/2, y+b.H/2)
	op.ColorScale.ScaleWithColor(b.Color)
	op.ColorScale.ScaleAlpha(float32(l.Alpha))
	screen.DrawImage(p.pixel, &op)
	ebitenutil.DebugPrintAt(screen, b.Name, int(b.X+l.DX)+6, int(y)+4)
}
