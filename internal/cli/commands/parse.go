package commands

import (
	"github.com/leapstack-labs/paws/pkg/ast"
	"github.com/leapstack-labs/paws/pkg/parser"
	"github.com/spf13/cobra"
)

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse cPaws source and print its tree",
		Long: `Parse a cPaws file, or standard input when no file is given, and print
the resulting tree.

The default debug output is a single line such as
  [Execution([Symbol("happy")])]
Use --output json or --output yaml for structured output.

On a syntax error a diagnostic of the form
  <file>:<line>:<column>: <message>
is written to stderr and the command exits with status 1.`,
		Example: `  paws parse examples/hello.paws
  echo '{happy}' | paws parse
  paws parse -o json hello.paws`,
		Args: cobra.MaximumNArgs(1),
		RunE: RunParse,
	}
}

// RunParse parses the input named by args and writes the tree to stdout.
func RunParse(cmd *cobra.Command, args []string) error {
	cc := NewCommandContext(cmd)

	name, text, err := readInput(cmd, cc.Cfg, args)
	if err != nil {
		return err
	}

	prog, err := parser.ParseWithOptions(name, text, cc.ParseOptions())
	if err != nil {
		return cc.reportParseError(err, text)
	}

	symbols, groups := ast.Count(prog.Nodes)
	cc.Logger.Debug("parsed", "source", name, "symbols", symbols, "groups", groups, "depth", ast.Depth(prog.Nodes))

	return cc.Renderer.Program(prog)
}
