package parallax

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultCompleteClass is the class added to an element once its asset
// reaches the terminal state.
const DefaultCompleteClass = "complete"

// Options configures the assets created by a single Init call. Start from
// DefaultOptions and override fields. Validate fills in an empty
// CompleteClass and a zero PctOfEleHeight with their defaults, so a partly
// filled Options also works; a zero Animation.Speed stays zero and makes auto
// animations finish on their first frame.
type Options struct {
	// QueueName adds every asset of the call to a named queue. Auto assets in
	// the same queue animate strictly in registration order.
	QueueName string `yaml:"queueName"`
	// Complete jumps straight to the terminal state without animating.
	Complete bool `yaml:"complete"`
	// Animation describes what is animated and how.
	Animation AnimationOptions `yaml:"animation"`
	// DifferenceOffsetPct moves the start of the range up from the element's
	// bottom edge by this fraction of the element height.
	DifferenceOffsetPct float64 `yaml:"differenceOffsetPct"`
	// PctOfEleHeight is the length of the range as a fraction of the element
	// height.
	PctOfEleHeight float64 `yaml:"pctOfEleHeight"`
	// CompleteClass is added to the element in the terminal state.
	CompleteClass string `yaml:"completeClass"`
}

// AnimationOptions holds the animation part of Options.
type AnimationOptions struct {
	Type AnimationType `yaml:"type"`
	// Speed is the duration of an auto animation in seconds.
	Speed float64 `yaml:"speed"`
	// Proceed is the rate an auto animation must reach before the next
	// member of its queue may start.
	Proceed float64 `yaml:"proceed"`
	// Bidirectional lets a manual animation follow the scroll position both
	// ways instead of only moving forward.
	Bidirectional bool `yaml:"bidirectional"`
	// Props maps a property name to its bounds.
	Props map[string]Prop `yaml:"props"`
}

// Prop is the from/to specification of one animated property.
type Prop struct {
	From   float64
	To     float64
	Suffix string

	// raw text as loaded, kept for error messages
	fromText, toText string
}

// DefaultOptions returns the option set used when Init is given no overrides.
func DefaultOptions() Options {
	return Options{
		Animation: AnimationOptions{
			Type:  AnimationAuto,
			Speed: 0.5,
		},
		PctOfEleHeight: 1,
		CompleteClass:  DefaultCompleteClass,
	}
}

// LoadOptions parses YAML (or JSON) option overrides on top of
// DefaultOptions. Keys that are absent keep their default value. The result
// is validated.
func LoadOptions(data []byte) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("parse options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Validate fills in unset defaults and reports the first invalid option as a
// *ConfigError.
func (o *Options) Validate() error {
	if o.CompleteClass == "" {
		o.CompleteClass = DefaultCompleteClass
	}
	if o.PctOfEleHeight == 0 {
		o.PctOfEleHeight = 1
	}
	a := &o.Animation
	if a.Type != AnimationAuto && a.Type != AnimationManual {
		return &ConfigError{Field: "animation.type", Value: a.Type.String(), Err: ErrUnknownType}
	}
	if !finite(a.Speed) || a.Speed < 0 {
		return &ConfigError{Field: "animation.speed", Value: formatFloat(a.Speed), Err: ErrOutOfRange}
	}
	if !finite(a.Proceed) || a.Proceed < 0 || a.Proceed > 1 {
		return &ConfigError{Field: "animation.proceed", Value: formatFloat(a.Proceed), Err: ErrOutOfRange}
	}
	if !finite(o.DifferenceOffsetPct) {
		return &ConfigError{Field: "differenceOffsetPct", Value: formatFloat(o.DifferenceOffsetPct), Err: ErrNotNumeric}
	}
	if !finite(o.PctOfEleHeight) || o.PctOfEleHeight < 0 {
		return &ConfigError{Field: "pctOfEleHeight", Value: formatFloat(o.PctOfEleHeight), Err: ErrOutOfRange}
	}
	for _, name := range sortedPropNames(a.Props) {
		p := a.Props[name]
		if !finite(p.From) {
			return &ConfigError{Field: "animation.props." + name + ".from", Value: rawOr(p.fromText, p.From), Err: ErrNotNumeric}
		}
		if !finite(p.To) {
			return &ConfigError{Field: "animation.props." + name + ".to", Value: rawOr(p.toText, p.To), Err: ErrNotNumeric}
		}
	}
	return nil
}

// EndStyle returns the value every animated property ends at, keyed by
// property name. Once an asset completes its inline values are cleared, so
// hosts give CompleteClass this look to keep the end state on screen.
func (o Options) EndStyle() map[string]string {
	style := make(map[string]string, len(o.Animation.Props))
	for name, p := range o.Animation.Props {
		style[name] = formatFloat(p.To) + p.Suffix
	}
	return style
}

func sortedPropNames(props map[string]Prop) []string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnmarshalYAML accepts "auto" or "manual".
func (t *AnimationType) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseAnimationType(node.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML writes the option name.
func (t AnimationType) MarshalYAML() (any, error) {
	return t.String(), nil
}

// UnmarshalYAML decodes {from, to, suffix}. Bounds may be numbers or
// numeric-prefixed strings such as "10px"; the numeric prefix is used.
// Anything else leaves the bound NaN so that Validate reports it with the
// full option path.
func (p *Prop) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		From   yaml.Node `yaml:"from"`
		To     yaml.Node `yaml:"to"`
		Suffix string    `yaml:"suffix"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	p.fromText = raw.From.Value
	p.toText = raw.To.Value
	p.From = parseNumber(raw.From.Value)
	p.To = parseNumber(raw.To.Value)
	p.Suffix = raw.Suffix
	return nil
}

// MarshalYAML writes the bounds back as numbers.
func (p Prop) MarshalYAML() (any, error) {
	out := map[string]any{"from": p.From, "to": p.To}
	if p.Suffix != "" {
		out["suffix"] = p.Suffix
	}
	return out, nil
}

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// parseNumber returns the leading decimal number of s, or NaN.
func parseNumber(s string) float64 {
	m := numericPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func rawOr(raw string, v float64) string {
	if raw != "" {
		return raw
	}
	return formatFloat(v)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
