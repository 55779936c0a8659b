// Package bugcheck is the static bug-check catalogue: code to name,
// category, severity, likely causes, recommendations, per-parameter
// descriptions, and a handful of code+parameter-value interpreters. All
// tables here are immutable process-wide data, safe to share across any
// number of concurrent callers.
package bugcheck

import (
	"fmt"

	"github.com/hollowcrest/crashlens/internal/model"
)

// FormatCode renders code in the canonical ten-character form.
func FormatCode(code uint32) string {
	return model.FormatBugCheckCode(code)
}

// categories groups codes into the curated set of category labels; a code
// may appear in more than one group, and the first match wins, matching the
// reference tool's dict-iteration-order lookup.
var categoryOrder = []string{
	"Memory Corruption",
	"Driver Issues",
	"Hardware Failure",
	"Process/Thread",
	"File System",
	"Power Management",
	"Security",
	"Graphics/Display",
	"General Exception",
}

var categories = map[string][]uint32{
	"Memory Corruption": {0x1A, 0x50, 0x7A, 0xC2, 0xC5, 0xFC},
	"Driver Issues":     {0xD1, 0xD3, 0xD8, 0xC4, 0x9F, 0x116},
	"Hardware Failure":  {0x7F, 0x124, 0x9C},
	"Process/Thread":    {0xEF, 0x139, 0xF4},
	"File System":       {0x24, 0x77},
	"Power Management":  {0x9F, 0xA0},
	"Security":          {0x139},
	"Graphics/Display":  {0x116, 0x119},
	"General Exception": {0x1E, 0x7E, 0x8E},
}

// Category returns the curated category for code, or "Other" when code
// belongs to none of the groups.
func Category(code uint32) string {
	for _, name := range categoryOrder {
		for _, c := range categories[name] {
			if c == code {
				return name
			}
		}
	}
	return "Other"
}

var criticalCodes = map[uint32]bool{0xEF: true, 0x139: true, 0x7F: true, 0x124: true, 0x50: true}
var highCodes = map[uint32]bool{0xD1: true, 0x1A: true, 0x7E: true, 0x1E: true, 0xC4: true}

// Severity returns "Critical", "High", or "Medium" for code.
func Severity(code uint32) string {
	if criticalCodes[code] {
		return "Critical"
	}
	if highCodes[code] {
		return "High"
	}
	return "Medium"
}

var descriptions = map[uint32]string{
	0x1A:  "The memory manager has detected a memory corruption issue.",
	0x1E:  "A kernel-mode program generated an exception that wasn't caught.",
	0x50:  "The system tried to access invalid memory (page fault).",
	0x7E:  "A system thread generated an exception that wasn't handled.",
	0x7F:  "The CPU generated an unexpected trap (processor exception).",
	0x9F:  "A driver is in an inconsistent or invalid power state.",
	0xA0:  "The power policy manager experienced a fatal error.",
	0xD1:  "A driver accessed paged memory at an improper IRQL level.",
	0xEF:  "A critical system process died unexpectedly.",
	0x116: "The display driver failed to respond in the allowed time.",
	0x139: "The kernel detected security violations (buffer overflow/stack corruption).",
	0x154: "An unexpected store exception occurred.",
	0xC2:  "A caller with pool responsibility passed bad parameters.",
	0xC4:  "Driver Verifier detected a driver violation.",
	0xFC:  "Attempt to execute non-executable memory.",
}

// Description returns the descriptive sentence for code, falling back to a
// generic message that still names the code.
func Description(code uint32) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return fmt.Sprintf("System stop error occurred with code %s", FormatCode(code))
}

var likelyCauses = map[uint32][]string{
	0x1A: {
		"Faulty RAM or memory hardware",
		"Corrupted memory due to driver bug",
		"Overclocked memory causing instability",
		"Damaged system files",
	},
	0x1E: {
		"Incompatible or buggy driver",
		"Faulty hardware",
		"Software conflict",
	},
	0x50: {
		"Faulty driver accessing invalid memory",
		"Defective RAM",
		"Antivirus software conflict",
		"Corrupted system files",
	},
	0x7E: {
		"System thread generated an unhandled exception",
		"Driver compatibility issue",
		"Corrupted system files",
	},
	0x7F: {
		"Hardware failure (memory, CPU)",
		"Kernel stack overflow",
		"Driver bug",
	},
	0x9F: {
		"Driver failed to complete a power IRP",
		"Incompatible power management driver",
		"Hardware device not responding",
	},
	0xD1: {
		"Driver accessing pageable memory at high IRQL",
		"Driver bug (most common)",
		"Faulty driver installation",
	},
	0xEF: {
		"Critical system process terminated unexpectedly",
		"Corrupted system files",
		"Failed system update",
		"Hardware failure",
	},
	0x116: {
		"Graphics driver failed to respond",
		"Overheating GPU",
		"Outdated graphics drivers",
		"Faulty graphics card",
	},
	0x139: {
		"Buffer overflow detected in kernel",
		"Stack corruption",
		"Malware or security compromise",
	},
}

var genericCauses = []string{
	"Driver compatibility issue",
	"Hardware malfunction",
	"Corrupted system files",
}

// LikelyCauses returns the curated cause list for code, or the generic
// fallback when code is unmapped.
func LikelyCauses(code uint32) []string {
	if c, ok := likelyCauses[code]; ok {
		return append([]string(nil), c...)
	}
	return append([]string(nil), genericCauses...)
}

var recommendations = map[uint32][]string{
	0x1A: {
		"Run Windows Memory Diagnostic (mdsched.exe)",
		"Check for driver updates",
		"Run System File Checker (sfc /scannow)",
		"Check for overclocking and reset to defaults",
	},
	0x50: {
		"Run Windows Memory Diagnostic",
		"Update all drivers especially graphics and storage",
		"Temporarily disable antivirus to test",
		"Run chkdsk to check disk health",
	},
	0xD1: {
		"Update the driver mentioned in the crash",
		"Use Driver Verifier to identify problematic driver",
		"Roll back recent driver updates",
	},
	0xEF: {
		"Run System File Checker (sfc /scannow)",
		"Run DISM /Online /Cleanup-Image /RestoreHealth",
		"Check disk health with chkdsk",
		"Consider system restore to earlier point",
	},
	0x116: {
		"Update graphics drivers",
		"Check GPU temperature and cooling",
		"Reduce graphics settings in games/apps",
		"Clean GPU and improve ventilation",
	},
	0x139: {
		"Scan for malware with Windows Defender",
		"Run System File Checker",
		"Update Windows to latest version",
	},
}

var genericRecommendations = []string{
	"Update all drivers to latest versions",
	"Run System File Checker (sfc /scannow)",
	"Check Windows Event Viewer for more details",
	"Run Windows Memory Diagnostic",
}

// Recommendations returns the curated remediation list for code, or the
// generic fallback when code is unmapped.
func Recommendations(code uint32) []string {
	if r, ok := recommendations[code]; ok {
		return append([]string(nil), r...)
	}
	return append([]string(nil), genericRecommendations...)
}

// paramDescriptions maps code -> parameter number (1-4) -> semantic string.
var paramDescriptions = map[uint32]map[int]string{
	0x1A: {
		1: "Memory management subtype code",
		2: "Address that caused the problem",
		3: "PFN of the corrupted page (if applicable)",
		4: "Reserved / Additional context",
	},
	0x1E: {
		1: "Exception code (NTSTATUS)",
		2: "Address where exception occurred",
		3: "First exception parameter",
		4: "Second exception parameter",
	},
	0x50: {
		1: "Address referenced causing the fault",
		2: "0 = read, 1 = write, 2 = execute, 8 = execute",
		3: "Address that referenced the bad memory",
		4: "Type of read: 0 = read, 2 = execute",
	},
	0x7E: {
		1: "Exception code (NTSTATUS)",
		2: "Address where exception occurred",
		3: "Exception record address",
		4: "Context record address",
	},
	0x7F: {
		1: "Trap number (x86/x64 processor exception)",
		2: "Reserved",
		3: "Reserved",
		4: "Reserved",
	},
	0x9F: {
		1: "Subtype of power failure",
		2: "Address of the device object",
		3: "Address of the driver object",
		4: "Reserved (depends on subtype)",
	},
	0xA0: {
		1: "Subtype of internal power error",
		2: "Additional info (subtype-dependent)",
		3: "Additional info (subtype-dependent)",
		4: "Additional info (subtype-dependent)",
	},
	0xD1: {
		1: "Memory address referenced",
		2: "IRQL at time of reference",
		3: "0 = read, 1 = write",
		4: "Address of instruction that referenced memory",
	},
	0xEF: {
		1: "Process object address",
		2: "If 0 = process terminated, if 1 = thread terminated",
		3: "Reserved",
		4: "Reserved",
	},
	0x116: {
		1: "Pointer to internal TDR recovery context",
		2: "Pointer to responsible device driver module",
		3: "Error code of last failed operation",
		4: "Internal context dependent data",
	},
	0x139: {
		1: "Security cookie failure type",
		2: "Address of trap frame / exception record",
		3: "Address of context record",
		4: "Reserved",
	},
	0x154: {
		1: "Exception record address",
		2: "Context record address",
		3: "Exception code",
		4: "Reserved",
	},
	0x1CA: {
		1: "Timeout count",
		2: "Process object (if applicable)",
		3: "Thread object (if applicable)",
		4: "Additional context",
	},
	0xC2: {
		1: "Type of pool corruption",
		2: "Depends on parameter 1",
		3: "Depends on parameter 1",
		4: "Depends on parameter 1",
	},
	0xC4: {
		1: "Subtype of driver verifier violation",
		2: "Address of driver with the violation",
		3: "Violation-specific parameter",
		4: "Violation-specific parameter",
	},
	0xFC: {
		1: "Address being executed",
		2: "PTE contents",
		3: "Reserved",
		4: "Reserved",
	},
}

// ParamDescription returns the semantic description for the given code and
// 1-based parameter number, or a generic fallback when unmapped.
func ParamDescription(code uint32, paramNum int) string {
	if byParam, ok := paramDescriptions[code]; ok {
		if d, ok := byParam[paramNum]; ok {
			return d
		}
	}
	return fmt.Sprintf("Bugcheck parameter %d", paramNum)
}

// memoryManagementSubtypes interprets MEMORY_MANAGEMENT's (0x1A) parameter 1.
var memoryManagementSubtypes = map[uint64]string{
	0x00041284: "A page that should have been filled with zeros was not.",
	0x00041285: "A PTE has been corrupted.",
	0x00041286: "A page table page has been corrupted.",
	0x00041287: "A PFN list head has been corrupted.",
	0x00041790: "The page frame number list is corrupt.",
	0x00041792: "A PTE or the PFN is corrupted.",
	0x00041793: "A page table has been corrupted.",
	0x00041794: "An illegal PFN was used.",
	0x00061940: "An allocation that should have been pageable was not.",
	0x00061941: "A free happened on bad pool.",
	0x00061946: "A corrupted page table was detected.",
}

// trapNumbers interprets UNEXPECTED_KERNEL_MODE_TRAP's (0x7F) parameter 1.
var trapNumbers = map[uint64]string{
	0x00: "Divide Error",
	0x01: "Debug Exception",
	0x02: "NMI Interrupt",
	0x03: "Breakpoint",
	0x04: "Overflow",
	0x05: "Bound Range Exceeded",
	0x06: "Invalid Opcode",
	0x07: "Device Not Available (No Math Coprocessor)",
	0x08: "Double Fault",
	0x09: "Coprocessor Segment Overrun",
	0x0A: "Invalid TSS",
	0x0B: "Segment Not Present",
	0x0C: "Stack Segment Fault",
	0x0D: "General Protection Fault",
	0x0E: "Page Fault",
	0x10: "x87 Floating-Point Error",
	0x11: "Alignment Check",
	0x12: "Machine Check",
	0x13: "SIMD Floating-Point Exception",
}

var pageFaultOps = map[uint64]string{0: "Read operation", 1: "Write operation", 2: "Execute operation", 8: "Execute operation"}
var driverIRQLOps = map[uint64]string{0: "Read operation", 1: "Write operation"}

// Interpret returns a specific interpretation of a (code, paramNum, value)
// triple for the handful of codes that have one, or nil when none applies.
func Interpret(code uint32, paramNum int, value uint64) *string {
	var m map[uint64]string
	switch {
	case code == 0x1A && paramNum == 1:
		m = memoryManagementSubtypes
	case code == 0x7F && paramNum == 1:
		m = trapNumbers
	case code == 0x50 && paramNum == 2:
		m = pageFaultOps
	case code == 0xD1 && paramNum == 3:
		m = driverIRQLOps
	default:
		return nil
	}
	if v, ok := m[value]; ok {
		return &v
	}
	return nil
}

// Analyze composes the full catalogue lookup into a BugCheckAnalysis. Every
// parameter is rendered as a 16-hex-digit, zero-padded uppercase string
// regardless of whether the source dump was 32- or 64-bit.
func Analyze(code uint32, p1, p2, p3, p4 uint64) model.BugCheckAnalysis {
	params := [4]uint64{p1, p2, p3, p4}
	analyzed := make([]model.ParameterAnalysis, 4)
	for i, v := range params {
		num := i + 1
		analyzed[i] = model.ParameterAnalysis{
			ParameterNumber: num,
			RawValue:        v,
			HexValue:        model.FormatHex64(v),
			Description:     ParamDescription(code, num),
			Interpretation:  Interpret(code, num, v),
		}
	}

	return model.BugCheckAnalysis{
		Code:            code,
		CodeHex:         FormatCode(code),
		Name:            Name(code),
		Category:        Category(code),
		Severity:        Severity(code),
		Description:     Description(code),
		Parameters:      analyzed,
		LikelyCauses:    LikelyCauses(code),
		Recommendations: Recommendations(code),
	}
}
