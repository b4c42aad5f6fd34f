package cli

import (
	"errors"
	"os"

	"github.com/phanxgames/parallax"
	"github.com/phanxgames/parallax/headless"
)

// LoadError is a load failure with its CLI error code.
type LoadError struct {
	Code string
	Err  error
}

func (e *LoadError) Error() string { return e.Err.Error() }

func (e *LoadError) Unwrap() error { return e.Err }

func classify(err error) string {
	var cfgErr *parallax.ConfigError
	if errors.As(err, &cfgErr) {
		return ErrCodeInvalid
	}
	return ErrCodeParse
}

// LoadPageFile reads and validates a page.
func LoadPageFile(path string) (*headless.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Err: err}
	}
	page, err := headless.LoadPage(data)
	if err != nil {
		return nil, &LoadError{Code: classify(err), Err: err}
	}
	return page, nil
}

// LoadOptionsFile reads option overrides and validates them.
func LoadOptionsFile(path string) (parallax.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return parallax.Options{}, &LoadError{Code: ErrCodeNotFound, Err: err}
	}
	opts, err := parallax.LoadOptions(data)
	if err != nil {
		return parallax.Options{}, &LoadError{Code: classify(err), Err: err}
	}
	return opts, nil
}

// loadErrorCode returns the code of a *LoadError, or ErrCodeGeneric.
func loadErrorCode(err error) string {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code
	}
	return ErrCodeGeneric
}
