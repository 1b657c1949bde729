package commands

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/leapstack-labs/paws/internal/check"
	"github.com/leapstack-labs/paws/internal/cli/output"
	"github.com/spf13/cobra"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Watch bool
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check [path]...",
		Short: "Check cPaws files for syntax errors",
		Long: `Parse files concurrently and report one diagnostic per file that fails,
in path order, followed by a summary. Directories are searched recursively
for files with a configured extension (check.extensions). Without a path
the project root is checked: the directory holding paws.yaml, or the
current directory.

The command exits with status 1 if any file fails. With --watch it keeps
running and re-checks whenever a watched file changes.`,
		Example: `  paws check src/
  paws check --workers 8 a.paws b.paws
  paws check --watch src/`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Re-check on file changes until interrupted")
	cmd.Flags().Int("workers", 0, "Number of files parsed in parallel (default: number of CPUs)")
	cmd.Flags().Duration("debounce", 0, "Delay before re-checking after a change (default 100ms)")
	cmd.Flags().StringSlice("ext", nil, "File extensions collected from directories (default .paws,.cpaws)")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	cc := NewCommandContext(cmd)
	if len(args) == 0 {
		root := cc.Cfg.ProjectRoot
		if root == "" {
			root = "."
		}
		args = []string{root}
	}

	checker := check.New(check.Config{
		Workers:    cc.Cfg.Check.Workers,
		MaxDepth:   cc.Cfg.Parse.MaxDepth,
		Extensions: cc.Cfg.Check.Extensions,
		Logger:     cc.Logger,
	})

	if opts.Watch {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		cc.Logger.Info("watching for changes", "paths", args, "debounce", cc.Cfg.Check.Debounce)
		return checker.Watch(ctx, args, cc.Cfg.Check.Debounce, func(results []check.Result) {
			reportCheck(cc, results)
		})
	}

	files, err := checker.Collect(args)
	if err != nil {
		return err
	}
	results, err := checker.Run(cmd.Context(), files)
	if err != nil {
		return err
	}

	if failed := reportCheck(cc, results); failed > 0 {
		return &ExitError{Code: 1}
	}
	return nil
}

// reportCheck writes a diagnostic per failed file and a summary, and
// returns the number of failures.
func reportCheck(cc *CommandContext, results []check.Result) int {
	for _, r := range results {
		if r.OK() {
			continue
		}
		if _, ok := output.ErrorPosition(r.Err); ok {
			cc.Renderer.Diagnostic(r.Err, r.Text, cc.Cfg.Excerpt)
		} else {
			_, _ = fmt.Fprintln(cc.Renderer.ErrWriter(), r.Err)
		}
	}

	failed := check.Failed(results)
	cc.Renderer.Summary(len(results), failed)
	return failed
}
