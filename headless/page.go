package headless

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/parallax"
)

// Page is a scripted document: a viewport, a list of boxes and the steps to
// play against them.
type Page struct {
	Viewport HostConfig `yaml:"viewport"`
	Boxes    []BoxSpec  `yaml:"boxes"`
	Steps    []Step     `yaml:"steps"`
	// SettleFrames bounds the frames run after the last step while
	// animations are still pending. Defaults to DefaultSettleFrames.
	SettleFrames int `yaml:"settleFrames"`
}

// DefaultSettleFrames is about ten seconds of frames.
const DefaultSettleFrames = 600

// BoxSpec declares one box. Options start from parallax.DefaultOptions; the
// keys present in the page override them.
type BoxSpec struct {
	Name   string  `yaml:"name"`
	Top    float64 `yaml:"top"`
	Height float64 `yaml:"height"`
	// Color is a hex color used by the graphical hosts.
	Color string `yaml:"color"`
	// Deferred boxes are only registered by an init step.
	Deferred bool             `yaml:"deferred"`
	Options  parallax.Options `yaml:"options"`
}

// UnmarshalYAML pre-fills Options with the defaults.
func (b *BoxSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain BoxSpec
	raw := plain{Options: parallax.DefaultOptions()}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*b = BoxSpec(raw)
	return nil
}

// Step is one scripted action.
//
//	scroll   y          jump to scroll offset y
//	scrollBy dy frames  smooth scroll, one event per frame
//	resize   height     change the viewport height
//	wait     ms|frames  let time pass
//	init     targets    register boxes (deferred or not)
//	complete targets    force boxes into their terminal state
type Step struct {
	Action  string   `yaml:"action"`
	Y       float64  `yaml:"y,omitempty"`
	DY      float64  `yaml:"dy,omitempty"`
	Height  float64  `yaml:"height,omitempty"`
	Ms      int      `yaml:"ms,omitempty"`
	Frames  int      `yaml:"frames,omitempty"`
	Targets []string `yaml:"targets,omitempty"`
}

// Label is the marker written to the trace for the step.
func (s Step) Label() string {
	switch s.Action {
	case "scroll":
		return "scroll " + formatNumber(s.Y)
	case "scrollBy":
		return fmt.Sprintf("scrollBy %s/%d", formatNumber(s.DY), s.Frames)
	case "resize":
		return "resize " + formatNumber(s.Height)
	case "wait":
		if s.Ms > 0 {
			return fmt.Sprintf("wait %dms", s.Ms)
		}
		return fmt.Sprintf("wait %df", s.Frames)
	default:
		return fmt.Sprintf("%s %v", s.Action, s.Targets)
	}
}

var errNoBoxes = errors.New("no boxes")

// LoadPage parses a YAML page and validates its boxes and steps.
func LoadPage(data []byte) (*Page, error) {
	var page Page
	if err := yaml.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	if err := page.Validate(); err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return &page, nil
}

// Validate checks box names, box options and step references.
func (p *Page) Validate() error {
	if len(p.Boxes) == 0 {
		return errNoBoxes
	}
	names := make(map[string]bool, len(p.Boxes))
	for i := range p.Boxes {
		b := &p.Boxes[i]
		if b.Name == "" {
			return fmt.Errorf("box %d: missing name", i)
		}
		if names[b.Name] {
			return fmt.Errorf("box %q: duplicate name", b.Name)
		}
		names[b.Name] = true
		if err := b.Options.Validate(); err != nil {
			return fmt.Errorf("box %q: %w", b.Name, err)
		}
		if _, err := p.BoxColor(i); err != nil {
			return err
		}
	}
	for i, s := range p.Steps {
		switch s.Action {
		case "scroll", "resize", "wait":
		case "scrollBy":
			if s.Frames < 1 {
				return fmt.Errorf("step %d: scrollBy needs frames >= 1", i)
			}
		case "init", "complete":
			for _, t := range s.Targets {
				if !names[t] {
					return fmt.Errorf("step %d: unknown box %q", i, t)
				}
			}
		default:
			return fmt.Errorf("step %d: unknown action %q", i, s.Action)
		}
	}
	return nil
}

// DocumentHeight is the height a host must be able to scroll through for
// every box to reach the end of its range.
func (p *Page) DocumentHeight() float64 {
	var h float64
	for _, b := range p.Boxes {
		h = max(h, b.Top+b.Height*(1+max(b.Options.PctOfEleHeight, 0)))
	}
	return h
}
