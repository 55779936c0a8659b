// crashlens — Windows kernel crash dump analyzer.
//
// Parses a .dmp file's fixed-offset header, CPU context, and exception
// record, interprets the bug-check code against a built-in catalogue, and
// best-effort scavenges driver names out of the raw bytes. Produces a
// deterministic zip archive of JSON documents plus a human-readable
// summary, or serves the same analysis over MCP for an agent to call.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hollowcrest/crashlens/internal/archive"
	"github.com/hollowcrest/crashlens/internal/orchestrator"
	"github.com/hollowcrest/crashlens/internal/triage"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "crashlens",
		Short:   "Windows kernel crash dump analyzer",
		Long:    "crashlens — single Go binary that parses a Windows kernel crash dump, interprets its bug-check code, and packages the result as a deterministic archive or JSON-RPC MCP service.",
		Version: version,
	}

	// --- analyze command ---
	var (
		analyzeOutDir string
		analyzeQuiet  bool
	)

	analyzeCmd := &cobra.Command{
		Use:   "analyze <dump.dmp>",
		Short: "Analyze a crash dump and write its archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(args[0], analyzeOutDir, analyzeQuiet)
		},
	}
	analyzeCmd.Flags().StringVarP(&analyzeOutDir, "out-dir", "o", ".", "Directory to write the analysis archive into")
	analyzeCmd.Flags().BoolVarP(&analyzeQuiet, "quiet", "q", false, "Suppress progress output")

	// --- inspect command ---
	var inspectQuiet bool

	inspectCmd := &cobra.Command{
		Use:   "inspect <dump.dmp>",
		Short: "Analyze a crash dump and print the analysis as JSON without writing an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args[0], inspectQuiet)
		},
	}
	inspectCmd.Flags().BoolVarP(&inspectQuiet, "quiet", "q", false, "Suppress progress output")

	// --- diff command ---
	var diffOutput string

	diffCmd := &cobra.Command{
		Use:   "diff <baseline.json> <current.json>",
		Short: "Compare two analysis.json documents",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args[0], args[1], diffOutput)
		},
	}
	diffCmd.Flags().StringVarP(&diffOutput, "output", "o", "-", "Output diff file path (- for stdout)")

	rootCmd.AddCommand(analyzeCmd, inspectCmd, diffCmd, mcpCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runAnalyze handles the `analyze` command: parse, then archive.
func runAnalyze(path, outDir string, quiet bool) error {
	analysis := orchestrator.Analyze(orchestrator.Config{DumpPath: path, Quiet: quiet})
	if !analysis.Success {
		return fmt.Errorf("%s", analysis.Error)
	}
	archivePath, err := archive.Write(analysis, outDir, time.Now())
	if err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	fmt.Println(archivePath)
	return nil
}

// runInspect handles the `inspect` command: parse and print, no archive.
func runInspect(path string, quiet bool) error {
	analysis := orchestrator.Analyze(orchestrator.Config{DumpPath: path, Quiet: quiet})
	if !analysis.Success {
		return fmt.Errorf("%s", analysis.Error)
	}
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// runDiff handles the `diff` command.
func runDiff(baselinePath, currentPath, outputPath string) error {
	baseline, err := triage.LoadAnalysis(baselinePath)
	if err != nil {
		return fmt.Errorf("load baseline: %w", err)
	}
	current, err := triage.LoadAnalysis(currentPath)
	if err != nil {
		return fmt.Errorf("load current: %w", err)
	}

	result := triage.Compare(baselinePath, currentPath, baseline, current)

	if outputPath == "-" {
		fmt.Print(triage.FormatDiff(result))
		return nil
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0644)
}

// newSignalContext returns a context canceled on SIGINT/SIGTERM, for the
// long-running serve-mcp command.
func newSignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
