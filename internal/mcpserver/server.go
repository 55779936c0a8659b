// Package mcpserver exposes the analysis core over the Model Context
// Protocol so an agent can request a dump analysis or a bare bug-check
// lookup without shelling out to the CLI.
package mcpserver

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server wraps the MCP server instance.
type Server struct {
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server with both tools registered.
func NewServer(version string) *Server {
	s := server.NewMCPServer("crashlens", version, server.WithLogging())
	registerTools(s)
	return &Server{mcpServer: s}
}

// Start runs the server in stdio mode. It blocks until ctx is canceled or
// the transport closes.
func (s *Server) Start(ctx context.Context) error {
	stdioServer := server.NewStdioServer(s.mcpServer)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

// registerTools adds the supported tools to the server.
func registerTools(s *server.MCPServer) {
	analyzeTool := mcp.NewTool("analyze_dump",
		mcp.WithDescription("Parse a Windows kernel crash dump (.dmp) file and return the complete analysis: system info, crash summary, bug-check interpretation, CPU context/exception, and recovered driver names."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute or relative filesystem path to the .dmp file."),
		),
	)
	s.AddTool(analyzeTool, handleAnalyzeDump)

	lookupTool := mcp.NewTool("lookup_bugcheck",
		mcp.WithDescription("Look up a Windows bug-check (stop) code against the built-in catalogue without needing a dump file. Accepts hex ('0x1A') or decimal ('26') form. Optional parameter values refine the result with sub-type interpretation (e.g. memory-management subtype, trap number)."),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("Bug-check code, e.g. '0x1A' or '26'."),
		),
		mcp.WithString("param1", mcp.Description("Bug-check parameter 1, hex or decimal. Defaults to 0.")),
		mcp.WithString("param2", mcp.Description("Bug-check parameter 2, hex or decimal. Defaults to 0.")),
		mcp.WithString("param3", mcp.Description("Bug-check parameter 3, hex or decimal. Defaults to 0.")),
		mcp.WithString("param4", mcp.Description("Bug-check parameter 4, hex or decimal. Defaults to 0.")),
	)
	s.AddTool(lookupTool, handleLookupBugCheck)
}
