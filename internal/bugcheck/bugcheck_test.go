package bugcheck

import (
	"regexp"
	"strings"
	"testing"
)

var codeHexPattern = regexp.MustCompile(`^0x[0-9A-F]{8}$`)

func TestFormatCodeAlwaysTenCharsUppercaseHex(t *testing.T) {
	for _, code := range []uint32{0, 0x1A, 0xDEADBEEF, 0xFFFFFFFF} {
		got := FormatCode(code)
		if len(got) != 10 || !codeHexPattern.MatchString(got) {
			t.Errorf("FormatCode(0x%X) = %q, want 10 chars matching ^0x[0-9A-F]{8}$", code, got)
		}
	}
}

func TestNameTotalityForUnknownCode(t *testing.T) {
	name := Name(0xDEADBEEF)
	if !strings.HasPrefix(name, "UNKNOWN_BUGCHECK_") {
		t.Errorf("Name(0xDEADBEEF) = %q, want UNKNOWN_BUGCHECK_ prefix", name)
	}
}

func TestAnalyzeMemoryManagementSubtype(t *testing.T) {
	a := Analyze(0x0000001A, 0x00041790, 0, 0, 0)

	if a.Name != "MEMORY_MANAGEMENT" {
		t.Errorf("Name = %q, want MEMORY_MANAGEMENT", a.Name)
	}
	if a.Category != "Memory Corruption" {
		t.Errorf("Category = %q, want Memory Corruption", a.Category)
	}
	if a.Severity != "High" {
		t.Errorf("Severity = %q, want High", a.Severity)
	}
	if a.Parameters[0].Interpretation == nil || *a.Parameters[0].Interpretation != "The page frame number list is corrupt." {
		t.Errorf("Parameters[0].Interpretation = %v, want \"The page frame number list is corrupt.\"", a.Parameters[0].Interpretation)
	}
	if len(a.Recommendations) == 0 || a.Recommendations[0] != "Run Windows Memory Diagnostic (mdsched.exe)" {
		t.Errorf("Recommendations[0] = %v, want \"Run Windows Memory Diagnostic (mdsched.exe)\" first", a.Recommendations)
	}
}

func TestAnalyzeDriverIRQLWriteOperation(t *testing.T) {
	a := Analyze(0x000000D1, 0, 0, 1, 0)

	if a.Name != "DRIVER_IRQL_NOT_LESS_OR_EQUAL" {
		t.Errorf("Name = %q, want DRIVER_IRQL_NOT_LESS_OR_EQUAL", a.Name)
	}
	if a.Parameters[2].Interpretation == nil || *a.Parameters[2].Interpretation != "Write operation" {
		t.Errorf("Parameters[2].Interpretation = %v, want \"Write operation\"", a.Parameters[2].Interpretation)
	}
}

func TestAnalyzeUnknownCodeUsesGenericFallbacks(t *testing.T) {
	a := Analyze(0xDEADBEEF, 0, 0, 0, 0)

	if !strings.HasPrefix(a.Name, "UNKNOWN_BUGCHECK_") {
		t.Errorf("Name = %q, want UNKNOWN_BUGCHECK_ prefix", a.Name)
	}
	if a.Category != "Other" {
		t.Errorf("Category = %q, want Other", a.Category)
	}
	if a.Severity != "Medium" {
		t.Errorf("Severity = %q, want Medium", a.Severity)
	}
	if len(a.LikelyCauses) == 0 || len(a.Recommendations) == 0 {
		t.Errorf("generic fallback lists must still be populated")
	}
	for i, p := range a.Parameters {
		if p.RawValue != 0 {
			t.Errorf("parameter %d RawValue = %d, want 0", i, p.RawValue)
		}
		if p.HexValue != "0x0000000000000000" {
			t.Errorf("parameter %d HexValue = %q, want zero-padded 16 hex digits", i, p.HexValue)
		}
	}
}

func TestAnalyzeParameterHexRoundTrips(t *testing.T) {
	a := Analyze(0x1A, 0x123456789ABCDEF0, 0, 0, 0)
	if a.Parameters[0].HexValue != "0x123456789ABCDEF0" {
		t.Errorf("HexValue = %q, want 0x123456789ABCDEF0", a.Parameters[0].HexValue)
	}
}
