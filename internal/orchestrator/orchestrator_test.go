package orchestrator

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func writeDump64(t *testing.T, path string, size int) {
	t.Helper()
	buf := make([]byte, size)
	copy(buf[0x000:], []byte("PAGEDU64"))
	binary.LittleEndian.PutUint32(buf[0x030:], 0x8664)
	binary.LittleEndian.PutUint32(buf[0x038:], 0x000000D1)
	binary.LittleEndian.PutUint64(buf[0x050:], 1) // param3 = 1 (write operation)
	binary.LittleEndian.PutUint32(buf[0xF98:], 2)
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestAnalyzeMissingFile(t *testing.T) {
	a := Analyze(Config{DumpPath: filepath.Join(t.TempDir(), "does-not-exist.dmp"), Quiet: true})
	if a.Success {
		t.Errorf("Success = true, want false for a missing file")
	}
	if a.SystemInfo != nil || a.CrashSummary != nil || a.BugCheckAnalysis != nil {
		t.Errorf("optional fields should all be absent on SourceMissing")
	}
	if a.Error == "" {
		t.Errorf("Error should be populated on SourceMissing")
	}
}

func TestAnalyzeInvalidSignatureStillSucceeds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.dmp")
	if err := os.WriteFile(path, []byte("notadumpandmorepaddingxxxxxxxxxx"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	a := Analyze(Config{DumpPath: path, Quiet: true})
	if !a.Success {
		t.Errorf("Success = false, want true (file was readable)")
	}
	if a.SystemInfo != nil || a.CrashSummary != nil {
		t.Errorf("SystemInfo/CrashSummary should be absent after InvalidSignature")
	}
	if len(a.Metadata.ParserNotes) != 1 {
		t.Errorf("ParserNotes = %v, want exactly one entry naming the signature failure", a.Metadata.ParserNotes)
	}
}

func TestAnalyzeKnownDriverCrash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "driver.dmp")
	writeDump64(t, path, 0x1030)

	a := Analyze(Config{DumpPath: path, Quiet: true})
	if !a.Success {
		t.Fatalf("Success = false, want true")
	}
	if a.CrashSummary == nil || a.CrashSummary.BugCheckName != "DRIVER_IRQL_NOT_LESS_OR_EQUAL" {
		t.Fatalf("CrashSummary.BugCheckName = %v, want DRIVER_IRQL_NOT_LESS_OR_EQUAL", a.CrashSummary)
	}
	if a.BugCheckAnalysis == nil || a.BugCheckAnalysis.Parameters[2].Interpretation == nil {
		t.Fatalf("expected parameter 3 interpretation to be populated")
	}
	if *a.BugCheckAnalysis.Parameters[2].Interpretation != "Write operation" {
		t.Errorf("parameter 3 interpretation = %q, want Write operation", *a.BugCheckAnalysis.Parameters[2].Interpretation)
	}
	if a.Metadata.AnalysisTimestamp == "" {
		t.Errorf("AnalysisTimestamp should never be empty")
	}
	if a.Metadata.AnalysisDurationSeconds < 0 {
		t.Errorf("AnalysisDurationSeconds = %f, want non-negative", a.Metadata.AnalysisDurationSeconds)
	}
	if a.Metadata.DumpFileName != "driver.dmp" {
		t.Errorf("DumpFileName = %q, want driver.dmp", a.Metadata.DumpFileName)
	}
}
