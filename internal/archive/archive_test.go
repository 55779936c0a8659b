package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hollowcrest/crashlens/internal/model"
)

func sampleAnalysis() *model.CompleteAnalysis {
	return &model.CompleteAnalysis{
		Metadata: model.AnalysisMetadata{
			AnalysisID:        "11111111-1111-1111-1111-111111111111",
			ToolName:          "crashlens",
			ToolVersion:       "0.1.0",
			AnalysisTimestamp: "2026-07-30T00:00:00Z",
			DumpFilePath:      "/tmp/crash.dmp",
			DumpFileName:      "crash.dmp",
			DumpFileSizeBytes: 4096,
			DumpFileSizeHuman: "4.00 KB",
			ParserNotes:       []string{},
		},
		Success: true,
		SystemInfo: &model.SystemInfo{
			OSVersion:      "Windows 10.19041",
			Architecture:   "x64 (64-bit)",
			ProcessorCount: 4,
			DumpType:       "Kernel Memory Dump",
		},
		CrashSummary: &model.CrashSummary{
			BugCheckCode:    "0x000000D1",
			BugCheckCodeInt: 0xD1,
			BugCheckName:    "DRIVER_IRQL_NOT_LESS_OR_EQUAL",
			Parameter1:      "0x0000000000000000",
			Parameter2:      "0x0000000000000000",
			Parameter3:      "0x0000000000000001",
			Parameter4:      "0x0000000000000000",
		},
	}
}

func readZipMembers(t *testing.T, path string) map[string][]byte {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer r.Close()

	members := make(map[string][]byte)
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open member %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read member %s: %v", f.Name, err)
		}
		members[f.Name] = data
	}
	return members
}

func TestWriteProducesExpectedMembers(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)

	path, err := Write(sampleAnalysis(), dir, ts)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if filepath.Base(path) != "BSOD_Analysis_crash_20260730_120000.zip" {
		t.Errorf("archive name = %q, want BSOD_Analysis_crash_20260730_120000.zip", filepath.Base(path))
	}

	members := readZipMembers(t, path)
	for _, name := range []string{"analysis.json", "system_info.json", "crash_summary.json", "summary.txt", "README.txt"} {
		if _, ok := members[name]; !ok {
			t.Errorf("archive is missing expected member %q", name)
		}
	}
	if _, ok := members["bugcheck_analysis.json"]; ok {
		t.Errorf("bugcheck_analysis.json should be absent when BugCheckAnalysis is nil")
	}
}

func TestWriteRefusesWhenAnalysisFailed(t *testing.T) {
	dir := t.TempDir()
	a := &model.CompleteAnalysis{Success: false, Error: "Dump file not found: x"}
	_, err := Write(a, dir, time.Now())
	if err == nil {
		t.Fatalf("Write should refuse to emit an archive when Success is false")
	}
}

func TestWriteIsDeterministicAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	a := sampleAnalysis()

	if err := os.MkdirAll(filepath.Join(dir, "a"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "b"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	path1, err := Write(a, filepath.Join(dir, "a"), ts)
	if err != nil {
		t.Fatalf("Write 1: %v", err)
	}
	path2, err := Write(a, filepath.Join(dir, "b"), ts)
	if err != nil {
		t.Fatalf("Write 2: %v", err)
	}

	m1 := readZipMembers(t, path1)
	m2 := readZipMembers(t, path2)
	for name, data1 := range m1 {
		data2, ok := m2[name]
		if !ok {
			t.Fatalf("member %q missing from second run", name)
		}
		if string(data1) != string(data2) {
			t.Errorf("member %q differs between two emissions of the same analysis", name)
		}
	}
}
