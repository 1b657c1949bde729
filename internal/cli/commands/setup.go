package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/leapstack-labs/paws/internal/cli/config"
	"github.com/leapstack-labs/paws/internal/cli/output"
	"github.com/leapstack-labs/paws/pkg/parser"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output), cfg.Color)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// ParseOptions returns parser options from the configuration.
func (cc *CommandContext) ParseOptions() parser.Options {
	return parser.Options{MaxDepth: cc.Cfg.Parse.MaxDepth}
}

// ExitError carries a process exit status. Its message has already been
// shown to the user, so callers should not print it.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode returns the status a process should exit with for err.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// reportParseError writes a positioned diagnostic and returns an ExitError.
// Errors without a source position are returned unchanged.
func (cc *CommandContext) reportParseError(err error, text string) error {
	if _, ok := output.ErrorPosition(err); !ok {
		return err
	}
	cc.Renderer.Diagnostic(err, text, cc.Cfg.Excerpt)
	return &ExitError{Code: 1}
}

// readInput returns the source name and text named by args: a file path,
// or standard input when args is empty or "-".
func readInput(cmd *cobra.Command, cfg *config.Config, args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("failed to read %s: %w", cfg.StdinName, err)
		}
		return cfg.StdinName, string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return args[0], string(data), nil
}
