package commands

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/paws/pkg/ast"
	"github.com/leapstack-labs/paws/pkg/parser"
	"github.com/spf13/cobra"
)

// FmtOptions holds options for the fmt command.
type FmtOptions struct {
	Write bool
	List  bool
}

// NewFmtCommand creates the fmt command.
func NewFmtCommand() *cobra.Command {
	opts := &FmtOptions{}

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Reformat cPaws source in canonical layout",
		Long: `Print cPaws source in canonical layout: one top-level node per line,
groups of plain symbols on one line, and groups that contain groups
broken over indented lines. Symbols are quoted only when they must be.

With --write the file is rewritten in place when its layout changes.
With --list only the name of a file whose layout would change is printed.`,
		Example: `  paws fmt hello.paws
  paws fmt -w hello.paws`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Write result to the source file instead of stdout")
	cmd.Flags().BoolVarP(&opts.List, "list", "l", false, "List the file if its formatting differs")

	return cmd
}

func runFmt(cmd *cobra.Command, args []string, opts *FmtOptions) error {
	cc := NewCommandContext(cmd)

	fromStdin := len(args) == 0 || args[0] == "-"
	if opts.Write && fromStdin {
		return fmt.Errorf("--write requires a file argument")
	}

	name, text, err := readInput(cmd, cc.Cfg, args)
	if err != nil {
		return err
	}

	prog, err := parser.ParseWithOptions(name, text, cc.ParseOptions())
	if err != nil {
		return cc.reportParseError(err, text)
	}

	formatted, err := ast.FormatProgram(prog)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	changed := formatted != text
	switch {
	case opts.List:
		if changed {
			cc.Renderer.Println(name)
		}
	case opts.Write:
		if !changed {
			cc.Logger.Debug("already formatted", "path", name)
			return nil
		}
		info, err := os.Stat(name)
		if err != nil {
			return err
		}
		if err := os.WriteFile(name, []byte(formatted), info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		cc.Logger.Debug("formatted", "path", name)
	default:
		_, _ = fmt.Fprint(cmd.OutOrStdout(), formatted)
	}
	return nil
}
