package cli

import (
	"github.com/spf13/cobra"

	"github.com/phanxgames/parallax/ebitenhost"
	"github.com/phanxgames/parallax/termhost"
)

// ViewOptions holds flags for the view command.
type ViewOptions struct {
	*RootOptions
	GUI       bool
	RowHeight float64
	Width     int
	Height    int
	Touch     bool
}

// NewViewCommand creates the view command.
func NewViewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ViewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "view <page.yaml>",
		Short: "Scroll through a page interactively",
		Long: `Show a page in the terminal, or in a window with --gui, and animate its
boxes as you scroll. Script steps are ignored.

Terminal keys: Up/Down, PgUp/PgDn, Home/End, mouse wheel; q or Esc quits.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.GUI, "gui", false, "open a window instead of using the terminal")
	cmd.Flags().Float64Var(&opts.RowHeight, "row-height", 20, "document pixels per terminal row")
	cmd.Flags().IntVar(&opts.Width, "width", 640, "window width (--gui)")
	cmd.Flags().IntVar(&opts.Height, "height", 480, "window height (--gui)")
	cmd.Flags().BoolVar(&opts.Touch, "touch", false, "report a touch device to the engine")

	return cmd
}

func runView(opts *ViewOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	page, err := LoadPageFile(path)
	if err != nil {
		return formatter.fail(ExitCommandError, loadErrorCode(err), err)
	}

	if opts.GUI {
		logger.Debug("opening window", "width", opts.Width, "height", opts.Height)
		cfg := ebitenhost.RunConfig{
			Title:   "parallaxsim - " + path,
			Width:   opts.Width,
			Height:  opts.Height,
			ShowFPS: opts.Verbose,
			Touch:   opts.Touch,
		}
		if err := ebitenhost.Run(page, cfg); err != nil {
			return formatter.fail(ExitCommandError, ErrCodeView, err)
		}
		return nil
	}

	logger.Debug("opening terminal", "rowHeight", opts.RowHeight)
	if err := termhost.View(page, termhost.Config{RowHeight: opts.RowHeight, Touch: opts.Touch}); err != nil {
		return formatter.fail(ExitCommandError, ErrCodeView, err)
	}
	return nil
}
