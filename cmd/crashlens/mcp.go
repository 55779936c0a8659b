package main

import (
	"github.com/spf13/cobra"

	"github.com/hollowcrest/crashlens/internal/mcpserver"
)

// mcpCmd starts the Model Context Protocol server over stdio.
var mcpCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Start Model Context Protocol (MCP) server",
	Long: `Starts a JSON-RPC server implementing the Model Context Protocol (MCP).
This allows an agent (e.g. Claude Desktop, Cursor) to call analyze_dump and
lookup_bugcheck directly instead of shelling out to the CLI.

Communication happens over standard input/output (stdio).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := newSignalContext()
		defer stop()

		srv := mcpserver.NewServer(version)
		return srv.Start(ctx)
	},
}
