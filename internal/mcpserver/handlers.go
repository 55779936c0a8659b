package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hollowcrest/crashlens/internal/bugcheck"
	"github.com/hollowcrest/crashlens/internal/orchestrator"
)

// handleAnalyzeDump runs the full analysis pipeline against a dump path and
// returns the resulting CompleteAnalysis as indented JSON.
func handleAnalyzeDump(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := getArgs(request)
	path := stringArg(args, "path", "")
	if path == "" {
		return errResult("path is required"), nil
	}

	analysis := orchestrator.Analyze(orchestrator.Config{DumpPath: path, Quiet: true})

	jsonData, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return errResult(fmt.Sprintf("json marshal failed: %v", err)), nil
	}
	if !analysis.Success {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(jsonData)}},
		}, nil
	}
	return newTextResult(string(jsonData)), nil
}

// handleLookupBugCheck runs the static catalogue lookup for a bug-check code
// and optional parameter values, with no dump file involved.
func handleLookupBugCheck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := getArgs(request)
	codeStr := stringArg(args, "code", "")
	if codeStr == "" {
		return errResult("code is required"), nil
	}
	code, err := parseUint32(codeStr)
	if err != nil {
		return errResult(fmt.Sprintf("invalid code %q: %v", codeStr, err)), nil
	}

	p1, err := parseUint64(stringArg(args, "param1", "0"))
	if err != nil {
		return errResult(fmt.Sprintf("invalid param1: %v", err)), nil
	}
	p2, err := parseUint64(stringArg(args, "param2", "0"))
	if err != nil {
		return errResult(fmt.Sprintf("invalid param2: %v", err)), nil
	}
	p3, err := parseUint64(stringArg(args, "param3", "0"))
	if err != nil {
		return errResult(fmt.Sprintf("invalid param3: %v", err)), nil
	}
	p4, err := parseUint64(stringArg(args, "param4", "0"))
	if err != nil {
		return errResult(fmt.Sprintf("invalid param4: %v", err)), nil
	}

	analysis := bugcheck.Analyze(code, p1, p2, p3, p4)
	jsonData, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return errResult(fmt.Sprintf("json marshal failed: %v", err)), nil
	}
	return newTextResult(string(jsonData)), nil
}

func parseUint32(s string) (uint32, error) {
	v, err := parseUint64(s)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

func parseUint64(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return strconv.ParseUint(s[2:], 16, 64)
	}
	return strconv.ParseUint(s, 10, 64)
}

// getArgs safely extracts the arguments map from a CallToolRequest.
func getArgs(request mcp.CallToolRequest) map[string]interface{} {
	if request.Params.Arguments == nil {
		return map[string]interface{}{}
	}
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	return args
}

// stringArg extracts a string argument with a default value.
func stringArg(args map[string]interface{}, key, defaultVal string) string {
	val, ok := args[key]
	if !ok || val == nil {
		return defaultVal
	}
	s, ok := val.(string)
	if !ok || s == "" {
		return defaultVal
	}
	return s
}

// newTextResult creates a successful MCP tool result with text content.
func newTextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: text}},
	}
}

// errResult creates a tool-level error result (IsError=true), not a
// transport-level JSON-RPC error.
func errResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: msg}},
	}
}
