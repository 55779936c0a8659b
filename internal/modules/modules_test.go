package modules

import (
	"bytes"
	"testing"

	"github.com/hollowcrest/crashlens/internal/model"
	"github.com/hollowcrest/crashlens/internal/reader"
)

func TestScanEmptyWindowProducesDocumentedNote(t *testing.T) {
	data := make([]byte, 8192)
	w := reader.New(bytes.NewReader(data), int64(len(data)))

	summary := Scan(w)
	if summary.Total != 0 {
		t.Errorf("Total = %d, want 0", summary.Total)
	}
	if summary.Note == "" {
		t.Errorf("Note should document the heuristic limits even when empty")
	}
	if summary.ExtractionMethod != "string_scan" {
		t.Errorf("ExtractionMethod = %q, want string_scan", summary.ExtractionMethod)
	}
}

func TestScanFindsKnownProblematicDriver(t *testing.T) {
	data := make([]byte, 8192)
	copy(data[100:], []byte("   nvlddmkm.sys   "))
	w := reader.New(bytes.NewReader(data), int64(len(data)))

	summary := Scan(w)
	if summary.Total < 1 {
		t.Fatalf("Total = %d, want >= 1", summary.Total)
	}
	var found *model.ModuleReference
	for i := range summary.Modules {
		if summary.Modules[i].Name == "nvlddmkm.sys" {
			found = &summary.Modules[i]
		}
	}
	if found == nil {
		t.Fatalf("nvlddmkm.sys not found among %v", summary.Modules)
	}
	if !found.IsProblematic {
		t.Errorf("IsProblematic = false, want true")
	}
	if found.ProblematicReason != "NVIDIA Display Driver - common crash source" {
		t.Errorf("ProblematicReason = %q", found.ProblematicReason)
	}
}

func TestScanRequiresThreeCharsBeforeSuffix(t *testing.T) {
	data := make([]byte, 8192)
	copy(data[100:], []byte(" a.sys "))
	w := reader.New(bytes.NewReader(data), int64(len(data)))

	summary := Scan(w)
	for _, ref := range summary.Modules {
		if ref.Name == "a.sys" {
			t.Errorf("a.sys should have been discarded: fewer than 3 chars before .sys")
		}
	}
}

func TestScanDiscardsNameStartingWithDot(t *testing.T) {
	data := make([]byte, 8192)
	copy(data[100:], []byte(" ...sys "))
	w := reader.New(bytes.NewReader(data), int64(len(data)))

	summary := Scan(w)
	for _, ref := range summary.Modules {
		if ref.Name == "...sys" {
			t.Errorf("a name beginning with '.' should have been discarded")
		}
	}
}

func TestScanDeduplicatesCaseSensitively(t *testing.T) {
	data := make([]byte, 8192)
	copy(data[100:], []byte(" mydrv.sys "))
	copy(data[200:], []byte(" mydrv.sys "))
	w := reader.New(bytes.NewReader(data), int64(len(data)))

	summary := Scan(w)
	count := 0
	for _, ref := range summary.Modules {
		if ref.Name == "mydrv.sys" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("mydrv.sys appeared %d times, want 1 (deduplicated)", count)
	}
}
