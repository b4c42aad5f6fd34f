package parallax

import "fmt"

// AnimationType selects how an asset reacts to scrolling.
type AnimationType uint8

const (
	AnimationAuto   AnimationType = iota // runs once, unattended, when the asset enters its range
	AnimationManual                      // rate is driven directly by the scroll position
)

// String returns the option name of the animation type ("auto" or "manual").
func (t AnimationType) String() string {
	switch t {
	case AnimationAuto:
		return "auto"
	case AnimationManual:
		return "manual"
	default:
		return fmt.Sprintf("AnimationType(%d)", uint8(t))
	}
}

// ParseAnimationType maps an option name to an AnimationType.
func ParseAnimationType(s string) (AnimationType, error) {
	switch s {
	case "auto", "":
		return AnimationAuto, nil
	case "manual":
		return AnimationManual, nil
	}
	return AnimationAuto, &ConfigError{Field: "animation.type", Value: s, Err: ErrUnknownType}
}

// RangePosition classifies the viewport bottom relative to an asset's
// [startOffset, endOffset) window.
type RangePosition uint8

const (
	RangeAbove  RangePosition = iota // scrollBottom < startOffset
	RangeWithin                      // startOffset <= scrollBottom < endOffset
	RangeBelow                       // scrollBottom >= endOffset
)

// String returns "above", "within" or "below".
func (r RangePosition) String() string {
	switch r {
	case RangeAbove:
		return "above"
	case RangeWithin:
		return "within"
	case RangeBelow:
		return "below"
	default:
		return fmt.Sprintf("RangePosition(%d)", uint8(r))
	}
}

// EventType identifies a host input event an asset can subscribe to.
type EventType uint8

const (
	EventScroll EventType = iota // the document scrolled
	EventResize                  // the viewport changed size
)
