package archive

import (
	"fmt"
	"strings"

	"github.com/hollowcrest/crashlens/internal/model"
)

const ruleWidth = 70

func rule(c byte) string {
	return strings.Repeat(string(c), ruleWidth)
}

// TextSummary renders the human-readable report sectioned the way the
// archive's summary.txt member is: metadata, system info, crash
// information, bug-check analysis, parser notes.
func TextSummary(a *model.CompleteAnalysis) string {
	var b strings.Builder

	b.WriteString(rule('=') + "\n")
	b.WriteString("BSOD ANALYSIS SUMMARY\n")
	b.WriteString(rule('=') + "\n\n")

	fmt.Fprintf(&b, "Generated: %s\n", a.Metadata.AnalysisTimestamp)
	fmt.Fprintf(&b, "Dump File: %s\n", a.Metadata.DumpFileName)
	fmt.Fprintf(&b, "File Size: %s\n", a.Metadata.DumpFileSizeHuman)
	fmt.Fprintf(&b, "Analysis Duration: %.2f seconds\n\n", a.Metadata.AnalysisDurationSeconds)

	if a.SystemInfo != nil {
		b.WriteString(rule('-') + "\n")
		b.WriteString("SYSTEM INFORMATION\n")
		b.WriteString(rule('-') + "\n")
		fmt.Fprintf(&b, "OS Version: %s\n", a.SystemInfo.OSVersion)
		fmt.Fprintf(&b, "Architecture: %s\n", a.SystemInfo.Architecture)
		fmt.Fprintf(&b, "Processors: %d\n", a.SystemInfo.ProcessorCount)
		fmt.Fprintf(&b, "Dump Type: %s\n\n", a.SystemInfo.DumpType)
	}

	if a.CrashSummary != nil {
		b.WriteString(rule('-') + "\n")
		b.WriteString("CRASH INFORMATION\n")
		b.WriteString(rule('-') + "\n")
		fmt.Fprintf(&b, "Bugcheck Code: %s\n", a.CrashSummary.BugCheckCode)
		fmt.Fprintf(&b, "Bugcheck Name: %s\n", a.CrashSummary.BugCheckName)
		fmt.Fprintf(&b, "Parameter 1: %s\n", a.CrashSummary.Parameter1)
		fmt.Fprintf(&b, "Parameter 2: %s\n", a.CrashSummary.Parameter2)
		fmt.Fprintf(&b, "Parameter 3: %s\n", a.CrashSummary.Parameter3)
		fmt.Fprintf(&b, "Parameter 4: %s\n\n", a.CrashSummary.Parameter4)
	}

	if a.BugCheckAnalysis != nil {
		b.WriteString(rule('-') + "\n")
		b.WriteString("BUGCHECK ANALYSIS\n")
		b.WriteString(rule('-') + "\n")
		fmt.Fprintf(&b, "Category: %s\n", a.BugCheckAnalysis.Category)
		fmt.Fprintf(&b, "Severity: %s\n", a.BugCheckAnalysis.Severity)
		fmt.Fprintf(&b, "Description: %s\n\n", a.BugCheckAnalysis.Description)

		b.WriteString("Parameter Analysis:\n")
		for _, p := range a.BugCheckAnalysis.Parameters {
			fmt.Fprintf(&b, "  Param %d: %s\n", p.ParameterNumber, p.HexValue)
			fmt.Fprintf(&b, "    %s\n", p.Description)
			if p.Interpretation != nil {
				fmt.Fprintf(&b, "    -> %s\n", *p.Interpretation)
			}
		}
		b.WriteString("\n")

		b.WriteString("Likely Causes:\n")
		for _, cause := range a.BugCheckAnalysis.LikelyCauses {
			fmt.Fprintf(&b, "  • %s\n", cause)
		}
		b.WriteString("\n")

		b.WriteString("Recommendations:\n")
		for _, rec := range a.BugCheckAnalysis.Recommendations {
			fmt.Fprintf(&b, "  → %s\n", rec)
		}
		b.WriteString("\n")
	}

	if len(a.Metadata.ParserNotes) > 0 {
		b.WriteString(rule('-') + "\n")
		b.WriteString("PARSER NOTES\n")
		b.WriteString(rule('-') + "\n")
		for _, note := range a.Metadata.ParserNotes {
			fmt.Fprintf(&b, "• %s\n", note)
		}
		b.WriteString("\n")
	}

	b.WriteString(rule('=') + "\n")
	b.WriteString("END OF SUMMARY\n")
	b.WriteString(rule('='))

	return b.String()
}

// readmeText is the fixed archive boilerplate describing its contents and
// privacy posture. Unlike the reference tool's version, it makes no mention
// of uploading analysis.json anywhere: this core has no forwarding service.
const readmeText = `crashlens - EXTRACTED DIAGNOSTIC DATA
======================================

This archive contains diagnostic data extracted from a Windows memory dump
file by crashlens.

FILES INCLUDED:
---------------
- analysis.json          : complete analysis, canonical form
- summary.txt            : human-readable summary of the crash
- system_info.json       : system information (OS version, architecture, etc.)
- crash_summary.json     : basic crash information (bugcheck code and parameters)
- bugcheck_analysis.json : detailed bugcheck interpretation
- stack_trace.json       : CPU register state and exception info (if available)
- drivers.json           : driver names recovered by the best-effort scan (if any)

Any member above is omitted when the corresponding source field could not be
populated; absence is reported in analysis.json rather than hidden.

PRIVACY NOTE:
-------------
This extracted data contains ONLY diagnostic information.
- NO personal files or data are included
- NO passwords or credentials are included
- NO browsing history or personal content is included
- Only technical crash information is extracted

The original dump file is NOT included in this archive.
`
