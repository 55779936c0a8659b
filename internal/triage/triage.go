// Package triage compares two analysis.json documents produced by the
// archive writer, surfacing what changed between two crashes of the same
// machine (or two reruns of the tool against the same dump).
package triage

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hollowcrest/crashlens/internal/model"
)

// FieldChange is a single differing field between two analyses.
type FieldChange struct {
	Field    string `json:"field"`
	Baseline string `json:"baseline"`
	Current  string `json:"current"`
}

// AnalysisDiff is the comparison between two CompleteAnalysis values.
type AnalysisDiff struct {
	BaselineFile string        `json:"baseline_file"`
	CurrentFile  string        `json:"current_file"`
	SameBugCheck bool          `json:"same_bugcheck"`
	Changes      []FieldChange `json:"changes"`
}

// LoadAnalysis reads and parses an analysis.json document.
func LoadAnalysis(path string) (*model.CompleteAnalysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var a model.CompleteAnalysis
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &a, nil
}

// Compare computes the differences between two analyses.
func Compare(baselinePath, currentPath string, baseline, current *model.CompleteAnalysis) *AnalysisDiff {
	d := &AnalysisDiff{BaselineFile: baselinePath, CurrentFile: currentPath}

	baseCode := crashCode(baseline)
	curCode := crashCode(current)
	d.SameBugCheck = baseCode == curCode && baseCode != ""

	addIfChanged(d, "bugcheck_name", crashName(baseline), crashName(current))
	addIfChanged(d, "bugcheck_code", baseCode, curCode)
	addIfChanged(d, "severity", severity(baseline), severity(current))
	addIfChanged(d, "category", category(baseline), category(current))
	addIfChanged(d, "system_info.architecture", architecture(baseline), architecture(current))
	addIfChanged(d, "system_info.dump_type", dumpType(baseline), dumpType(current))
	addIfChanged(d, "modules.problematic_count", moduleProblematicCount(baseline), moduleProblematicCount(current))
	addIfChanged(d, "modules.total_count", moduleTotalCount(baseline), moduleTotalCount(current))
	addIfChanged(d, "stack_trace.has_context", hasContext(baseline), hasContext(current))
	addIfChanged(d, "stack_trace.has_exception", hasException(baseline), hasException(current))

	return d
}

func addIfChanged(d *AnalysisDiff, field, oldVal, newVal string) {
	if oldVal == newVal {
		return
	}
	d.Changes = append(d.Changes, FieldChange{Field: field, Baseline: oldVal, Current: newVal})
}

func crashCode(a *model.CompleteAnalysis) string {
	if a.CrashSummary == nil {
		return ""
	}
	return a.CrashSummary.BugCheckCode
}

func crashName(a *model.CompleteAnalysis) string {
	if a.CrashSummary == nil {
		return ""
	}
	return a.CrashSummary.BugCheckName
}

func severity(a *model.CompleteAnalysis) string {
	if a.BugCheckAnalysis == nil {
		return ""
	}
	return a.BugCheckAnalysis.Severity
}

func category(a *model.CompleteAnalysis) string {
	if a.BugCheckAnalysis == nil {
		return ""
	}
	return a.BugCheckAnalysis.Category
}

func architecture(a *model.CompleteAnalysis) string {
	if a.SystemInfo == nil {
		return ""
	}
	return a.SystemInfo.Architecture
}

func dumpType(a *model.CompleteAnalysis) string {
	if a.SystemInfo == nil {
		return ""
	}
	return a.SystemInfo.DumpType
}

func moduleProblematicCount(a *model.CompleteAnalysis) string {
	if a.Modules == nil {
		return "0"
	}
	return fmt.Sprintf("%d", a.Modules.ProblematicCount)
}

func moduleTotalCount(a *model.CompleteAnalysis) string {
	if a.Modules == nil {
		return "0"
	}
	return fmt.Sprintf("%d", a.Modules.Total)
}

func hasContext(a *model.CompleteAnalysis) string {
	if a.StackTrace == nil {
		return "false"
	}
	return fmt.Sprintf("%v", a.StackTrace.HasContext)
}

func hasException(a *model.CompleteAnalysis) string {
	if a.StackTrace == nil {
		return "false"
	}
	return fmt.Sprintf("%v", a.StackTrace.HasException)
}

// FormatDiff renders d as a human-readable report.
func FormatDiff(d *AnalysisDiff) string {
	var sb strings.Builder

	sb.WriteString("=== Analysis Diff ===\n")
	fmt.Fprintf(&sb, "Baseline: %s\n", d.BaselineFile)
	fmt.Fprintf(&sb, "Current:  %s\n\n", d.CurrentFile)

	if d.SameBugCheck {
		sb.WriteString("Same bug-check code in both analyses.\n\n")
	} else {
		sb.WriteString("Different bug-check codes.\n\n")
	}

	if len(d.Changes) == 0 {
		sb.WriteString("No differences found.\n")
		return sb.String()
	}

	sb.WriteString("Changes:\n")
	for _, c := range d.Changes {
		fmt.Fprintf(&sb, "  %s: %q → %q\n", c.Field, c.Baseline, c.Current)
	}

	return sb.String()
}
