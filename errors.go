package parallax

import (
	"errors"
	"fmt"
)

var (
	// ErrNotNumeric is returned when a property bound is not a finite number.
	ErrNotNumeric = errors.New("not a finite number")
	// ErrOutOfRange is returned when an option lies outside its allowed range.
	ErrOutOfRange = errors.New("out of range")
	// ErrUnknownType is returned for an animation type other than auto or manual.
	ErrUnknownType = errors.New("unknown animation type")
)

// ConfigError reports an invalid option. Err is one of the sentinel errors
// above and can be matched with errors.Is.
type ConfigError struct {
	Field string // dotted option path, e.g. "animation.props.opacity.from"
	Value string // offending value as written
	Err   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("parallax: option %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("parallax: option %s=%q: %v", e.Field, e.Value, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}
