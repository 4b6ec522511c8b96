package cli

import (
	"github.com/spf13/cobra"

	"github.com/mark3labs/statsapi/internal/mcpserver"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the Stats API as MCP tools over stdio",
		Long: "Serve statsapi_get, statsapi_url, statsapi_notes and statsapi_endpoints as MCP tools " +
			"on stdin/stdout. Logs go to stderr.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			return mcpserver.New(s.client, s.logger).Run(cmd.Context())
		},
	}
}
