package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/phanxgames/parallax"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Page bool
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool     `json:"valid"`
	Kind    string   `json:"kind"` // "options" | "page"
	Summary []string `json:"summary,omitempty"`
	Field   string   `json:"field,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <file.yaml>",
		Short: "Validate an options file (or a page with --page)",
		Long: `Load option overrides on top of the defaults and validate them. Numeric
bounds may carry a unit ("10px"); only the numeric prefix is used. With --page
the file is a whole page: viewport, boxes and steps.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Page, "page", false, "validate a page instead of an options file")

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	result := ValidationResult{Kind: "options"}
	var err error
	if opts.Page {
		result.Kind = "page"
		page, loadErr := LoadPageFile(path)
		if loadErr == nil {
			result.Summary = append(result.Summary,
				fmt.Sprintf("boxes: %d", len(page.Boxes)),
				fmt.Sprintf("steps: %d", len(page.Steps)),
				fmt.Sprintf("document height: %g", page.DocumentHeight()))
		}
		err = loadErr
	} else {
		var o parallax.Options
		o, err = LoadOptionsFile(path)
		if err == nil {
			result.Summary = summarizeOptions(o)
		}
	}
	logger.Debug("validated", "path", path, "kind", result.Kind, "error", err)

	if err != nil {
		code := loadErrorCode(err)
		if code == ErrCodeNotFound {
			return formatter.fail(ExitCommandError, code, err)
		}
		var cfgErr *parallax.ConfigError
		if errors.As(err, &cfgErr) {
			result.Field = cfgErr.Field
		}
		if opts.Format == "json" {
			_ = formatter.Error(code, err.Error(), result)
		} else {
			fmt.Fprintf(formatter.Writer, "✗ %s invalid\n  %s: %s\n", result.Kind, code, err)
		}
		return WrapExitError(ExitFailure, "validation failed", err)
	}

	result.Valid = true
	if opts.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ %s valid\n", result.Kind)
	for _, line := range result.Summary {
		fmt.Fprintf(formatter.Writer, "  %s\n", line)
	}
	return nil
}

func summarizeOptions(o parallax.Options) []string {
	a := o.Animation
	out := []string{fmt.Sprintf("type: %s", a.Type)}
	if a.Type == parallax.AnimationAuto {
		out = append(out, fmt.Sprintf("speed: %gs, proceed: %g", a.Speed, a.Proceed))
	} else {
		out = append(out, fmt.Sprintf("bidirectional: %t", a.Bidirectional))
	}
	if o.QueueName != "" {
		out = append(out, "queue: "+o.QueueName)
	}
	out = append(out, fmt.Sprintf("range: offset %g, length %g", o.DifferenceOffsetPct, o.PctOfEleHeight))
	names := make([]string, 0, len(a.Props))
	for name := range a.Props {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p := a.Props[name]
		out = append(out, fmt.Sprintf("%s: %g%s -> %g%s", name, p.From, p.Suffix, p.To, p.Suffix))
	}
	return out
}
