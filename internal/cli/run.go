package cli

import (
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/parallax/headless"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	SettleFrames int
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <page.yaml>",
		Short: "Replay a page script headlessly and print the trace",
		Long: `Replay the steps of a page against a virtual clock and print every
property write, cleared style and added class, followed by the final state of
each box.

Example:
  parallaxsim run ./pages/intro.yaml
  parallaxsim run --format json ./pages/intro.yaml
  parallaxsim run -v ./pages/intro.yaml   # engine debug lines on stderr`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPage(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.SettleFrames, "settle", 0, "frames to run after the last step (default from the page, else 600)")

	return cmd
}

func runPage(opts *RunOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	page, err := LoadPageFile(path)
	if err != nil {
		return formatter.fail(ExitCommandError, loadErrorCode(err), err)
	}
	if opts.SettleFrames > 0 {
		page.SettleFrames = opts.SettleFrames
	}
	logger.Debug("page loaded", "path", path, "boxes", len(page.Boxes), "steps", len(page.Steps))

	var runOpts []headless.RunOption
	if opts.Verbose {
		runOpts = append(runOpts, headless.WithDebug(debugWriter{logger}))
	}
	res, err := headless.Run(page, runOpts...)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeRun, err)
	}
	if !res.Idle {
		logger.Warn("animations still pending after settle", "frames", res.Host.FrameCount())
	}
	logger.Debug("run finished", "frames", res.Host.FrameCount(), "events", len(res.Trace.Events))

	if opts.Format == "json" {
		return res.WriteJSON(formatter.Writer)
	}
	return res.WriteText(formatter.Writer)
}

// debugWriter forwards engine debug lines to the logger.
type debugWriter struct {
	logger *slog.Logger
}

func (w debugWriter) Write(p []byte) (int, error) {
	w.logger.Debug(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

var _ io.Writer = debugWriter{}
