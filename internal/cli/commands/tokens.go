package commands

import (
	"github.com/leapstack-labs/paws/pkg/parser"
	"github.com/spf13/cobra"
)

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream of cPaws source",
		Long: `Run the lexer over a file, or standard input, and print one row per token
with its type, literal and position. Offsets are in bytes; columns count
characters.

Lexing stops at the first unterminated quoted symbol. The tokens read
before it are still printed, followed by the diagnostic.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)

			name, text, err := readInput(cmd, cc.Cfg, args)
			if err != nil {
				return err
			}

			toks, lexErr := parser.Tokenize(name, text)
			if err := cc.Renderer.Tokens(toks); err != nil {
				return err
			}
			if lexErr != nil {
				return cc.reportParseError(lexErr, text)
			}
			return nil
		},
	}
}
