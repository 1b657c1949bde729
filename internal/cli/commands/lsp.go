package commands

import (
	"github.com/leapstack-labs/paws/internal/cli/config"
	"github.com/leapstack-labs/paws/internal/lsp"
	"github.com/spf13/cobra"
)

// NewLSPCommand creates the lsp command.
func NewLSPCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the LSP server for editor integration.

The server communicates over stdin/stdout using JSON-RPC. It publishes a
diagnostic for each open document that fails to parse, describes the node
under the cursor on hover, and formats documents in canonical layout.`,
		Example: `  # Start LSP server (usually called by an editor)
  paws lsp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())
			server := lsp.NewServerWithOptions(cmd.InOrStdin(), cmd.OutOrStdout(), lsp.Options{
				Logger:   config.GetLogger(cmd.Context()),
				MaxDepth: cfg.Parse.MaxDepth,
				Version:  version,
			})
			return server.Run()
		},
	}

	return cmd
}
