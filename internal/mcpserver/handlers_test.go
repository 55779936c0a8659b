package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestGetArgsNilArguments(t *testing.T) {
	args := getArgs(mcp.CallToolRequest{})
	if len(args) != 0 {
		t.Fatalf("expected empty map, got %v", args)
	}
}

func TestStringArgMissingUsesDefault(t *testing.T) {
	if got := stringArg(map[string]interface{}{}, "path", "fallback"); got != "fallback" {
		t.Fatalf("stringArg = %q, want fallback", got)
	}
}

func TestParseUint64AcceptsHexAndDecimal(t *testing.T) {
	v, err := parseUint64("0x1A")
	if err != nil || v != 0x1A {
		t.Fatalf("parseUint64(0x1A) = %d, %v", v, err)
	}
	v, err = parseUint64("26")
	if err != nil || v != 26 {
		t.Fatalf("parseUint64(26) = %d, %v", v, err)
	}
}

func TestHandleLookupBugCheckMissingCode(t *testing.T) {
	req := mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: map[string]interface{}{}}}
	res, err := handleLookupBugCheck(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected IsError for missing code")
	}
}

func TestHandleLookupBugCheckKnownCode(t *testing.T) {
	req := mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: map[string]interface{}{
		"code":   "0x1A",
		"param1": "0x41790",
	}}}
	res, err := handleLookupBugCheck(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatal("expected success")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("expected TextContent")
	}
	var out map[string]interface{}
	if err := json.Unmarshal([]byte(tc.Text), &out); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if out["category"] != "Memory Corruption" {
		t.Errorf("category = %v, want Memory Corruption", out["category"])
	}
}

func TestHandleAnalyzeDumpMissingPath(t *testing.T) {
	req := mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: map[string]interface{}{}}}
	res, err := handleAnalyzeDump(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected IsError for missing path")
	}
}

func TestHandleAnalyzeDumpMissingFile(t *testing.T) {
	req := mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: map[string]interface{}{
		"path": filepath.Join(t.TempDir(), "does-not-exist.dmp"),
	}}}
	res, err := handleAnalyzeDump(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected IsError when the dump file is missing")
	}
}

func TestHandleAnalyzeDumpSuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crash.dmp")
	buf := make([]byte, 4096)
	copy(buf[0:8], "PAGEDU64")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	req := mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: map[string]interface{}{"path": path}}}
	res, err := handleAnalyzeDump(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatal("expected success for a well-formed dump")
	}
}

func TestNewServer(t *testing.T) {
	srv := NewServer("0.1.0-test")
	if srv == nil {
		t.Fatal("NewServer returned nil")
	}
	if srv.mcpServer == nil {
		t.Fatal("mcpServer is nil")
	}
}
