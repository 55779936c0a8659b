// Package orchestrator runs the header, context and module-scavenger
// decoders and the bug-check catalogue against a single input in a fixed,
// synchronous order, merging their output into one CompleteAnalysis. It is
// the single point where a per-step failure is converted into a parser
// note; no lower component writes into metadata directly.
package orchestrator

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/hollowcrest/crashlens/internal/bugcheck"
	"github.com/hollowcrest/crashlens/internal/context"
	"github.com/hollowcrest/crashlens/internal/header"
	"github.com/hollowcrest/crashlens/internal/model"
	"github.com/hollowcrest/crashlens/internal/modules"
	"github.com/hollowcrest/crashlens/internal/output"
	"github.com/hollowcrest/crashlens/internal/reader"
)

const (
	toolName    = "crashlens"
	toolVersion = "0.1.0"
)

// Config carries the orchestrator's inputs, set from CLI flags.
type Config struct {
	DumpPath string
	Quiet    bool
}

// Analyze runs the full pipeline against cfg.DumpPath and returns a
// CompleteAnalysis. The only condition under which Success is false is
// inability to open the source file at all; every other failure degrades to
// a parser note on an otherwise-populated result.
func Analyze(cfg Config) *model.CompleteAnalysis {
	progress := output.NewProgress(!cfg.Quiet)
	start := time.Now()

	meta := model.AnalysisMetadata{
		AnalysisID:        uuid.NewString(),
		ToolName:          toolName,
		ToolVersion:       toolVersion,
		AnalysisTimestamp: start.Format(time.RFC3339),
		DumpFilePath:      cfg.DumpPath,
		DumpFileName:      filepath.Base(cfg.DumpPath),
		ParserNotes:       []string{},
	}

	info, err := os.Stat(cfg.DumpPath)
	if err != nil {
		progress.Log("dump file not found: %s", cfg.DumpPath)
		return &model.CompleteAnalysis{
			Metadata: meta,
			Success:  false,
			Error:    "Dump file not found: " + cfg.DumpPath,
		}
	}
	meta.DumpFileSizeBytes = info.Size()
	meta.DumpFileSizeHuman = model.FormatSize(info.Size())

	f, err := os.Open(cfg.DumpPath)
	if err != nil {
		progress.Log("dump file could not be opened: %s", cfg.DumpPath)
		return &model.CompleteAnalysis{
			Metadata: meta,
			Success:  false,
			Error:    "Dump file not found: " + cfg.DumpPath,
		}
	}
	defer f.Close()

	w := reader.New(f, info.Size())

	analysis := &model.CompleteAnalysis{Success: true}

	var crashSummary *model.CrashSummary
	var dumpHeader *model.DumpHeader

	progress.Log("decoding header: %s", cfg.DumpPath)
	dumpHeader, sysInfo, crash, err := header.Decode(w, cfg.DumpPath, meta.DumpFileName, info.Size())
	if err != nil {
		meta.ParserNotes = append(meta.ParserNotes, "Header parsing error: "+err.Error())
	} else {
		analysis.SystemInfo = sysInfo
		crashSummary = crash
		crashSummary.BugCheckName = bugcheck.Name(dumpHeader.BugCheckCode)
		analysis.CrashSummary = crashSummary
	}

	if crashSummary != nil {
		progress.Log("analyzing bugcheck 0x%08X", crashSummary.BugCheckCodeInt)
		a := bugcheck.Analyze(
			crashSummary.BugCheckCodeInt,
			dumpHeader.BugCheckParam1,
			dumpHeader.BugCheckParam2,
			dumpHeader.BugCheckParam3,
			dumpHeader.BugCheckParam4,
		)
		analysis.BugCheckAnalysis = &a
	}

	progress.Log("extracting CPU context and exception record")
	var contextOffset, exceptionOffset int64 = 0x408, 0x348
	if dumpHeader != nil {
		contextOffset = int64(dumpHeader.ContextRecordOffset)
		exceptionOffset = int64(dumpHeader.ExceptionRecordOffset)
	}
	stackTrace := context.Decode(w, contextOffset, exceptionOffset)
	analysis.StackTrace = stackTrace

	progress.Log("scanning for driver names")
	moduleSummary := modules.Scan(w)
	analysis.Modules = moduleSummary

	meta.AnalysisDurationSeconds = time.Since(start).Seconds()
	analysis.Metadata = meta

	progress.Log("analysis complete in %.3fs", meta.AnalysisDurationSeconds)
	return analysis
}
