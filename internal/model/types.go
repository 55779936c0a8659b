// Package model holds the data shapes shared by every analysis stage, from
// the header decoder through the archive writer. Every value here is built
// by exactly one component and is immutable once returned.
package model

// MachineType is the processor architecture recorded in a dump header.
type MachineType uint32

const (
	MachineUnknown MachineType = 0
	MachineI386    MachineType = 0x014C
	MachineAMD64   MachineType = 0x8664
	MachineARM     MachineType = 0x01C0
	MachineARM64   MachineType = 0xAA64
)

// String returns the display name used in SystemInfo.Architecture.
func (m MachineType) String() string {
	switch m {
	case MachineI386:
		return "x86 (32-bit)"
	case MachineAMD64:
		return "x64 (64-bit)"
	case MachineARM:
		return "ARM (32-bit)"
	case MachineARM64:
		return "ARM64 (64-bit)"
	default:
		return "Unknown"
	}
}

// DumpVariant is the dump-type word at header offset 0xF98.
type DumpVariant uint32

const (
	VariantUnknown DumpVariant = 0
	VariantFull    DumpVariant = 1
	VariantKernel  DumpVariant = 2
	VariantBitmap  DumpVariant = 3
	VariantMini    DumpVariant = 4
	VariantLive    DumpVariant = 5
)

// String returns the display name used in SystemInfo.DumpType.
func (v DumpVariant) String() string {
	switch v {
	case VariantFull:
		return "Full Memory Dump"
	case VariantKernel:
		return "Kernel Memory Dump"
	case VariantBitmap:
		return "Bitmap Dump"
	case VariantMini:
		return "Small Memory Dump (Minidump)"
	case VariantLive:
		return "Live Dump"
	default:
		return "Unknown"
	}
}

// DumpHeader holds the raw fields extracted at fixed offsets by the header
// decoder, before any display formatting is applied.
type DumpHeader struct {
	Signature           string      `json:"signature"`
	ValidMarker         string      `json:"valid_marker"`
	MajorVersion        uint32      `json:"major_version"`
	MinorVersion        uint32      `json:"minor_version"`
	MachineType         MachineType `json:"machine_type"`
	ProcessorCount      uint32      `json:"processor_count"`
	BugCheckCode        uint32      `json:"bug_check_code"`
	BugCheckParam1      uint64      `json:"bug_check_param1"`
	BugCheckParam2      uint64      `json:"bug_check_param2"`
	BugCheckParam3      uint64      `json:"bug_check_param3"`
	BugCheckParam4      uint64      `json:"bug_check_param4"`
	DumpVariant         DumpVariant `json:"dump_variant"`
	SystemTime          uint64      `json:"system_time"`
	RequiredDumpSpace   uint64      `json:"required_dump_space"`
	IsDumpSpaceFallback bool        `json:"is_dump_space_fallback"`

	Is64Bit                   bool   `json:"is_64bit"`
	PhysicalMemoryBlockOffset uint32 `json:"physical_memory_block_offset"`
	ExceptionRecordOffset     uint32 `json:"exception_record_offset"`
	ContextRecordOffset       uint32 `json:"context_record_offset"`
}

// SystemInfo is the display-oriented view of DumpHeader.
type SystemInfo struct {
	OSVersion      string `json:"os_version"`
	Architecture   string `json:"architecture"`
	ProcessorCount uint32 `json:"processor_count"`
	DumpType       string `json:"dump_type"`
	DumpSizeBytes  int64  `json:"dump_size_bytes"`
	DumpSizeHuman  string `json:"dump_size_human"`
	Is64Bit        bool   `json:"is_64bit"`
	CrashTimeRaw   uint64 `json:"crash_time_raw"`
}

// CrashSummary carries the bug-check code and parameters in their canonical
// hex string forms, plus the resolved name and source path.
type CrashSummary struct {
	BugCheckCode    string `json:"bugcheck_code"`
	BugCheckCodeInt uint32 `json:"bugcheck_code_int"`
	BugCheckName    string `json:"bugcheck_name"`
	Parameter1      string `json:"parameter1"`
	Parameter2      string `json:"parameter2"`
	Parameter3      string `json:"parameter3"`
	Parameter4      string `json:"parameter4"`
	FilePath        string `json:"file_path"`
	FileName        string `json:"file_name"`
}

// CpuContext is a snapshot of the 16 GPRs plus RIP and the flags word. It is
// only constructed when ContextFlags is non-zero.
type CpuContext struct {
	ContextFlags uint32 `json:"context_flags"`
	RAX          uint64 `json:"rax"`
	RCX          uint64 `json:"rcx"`
	RDX          uint64 `json:"rdx"`
	RBX          uint64 `json:"rbx"`
	RSP          uint64 `json:"rsp"`
	RBP          uint64 `json:"rbp"`
	RSI          uint64 `json:"rsi"`
	RDI          uint64 `json:"rdi"`
	R8           uint64 `json:"r8"`
	R9           uint64 `json:"r9"`
	R10          uint64 `json:"r10"`
	R11          uint64 `json:"r11"`
	R12          uint64 `json:"r12"`
	R13          uint64 `json:"r13"`
	R14          uint64 `json:"r14"`
	R15          uint64 `json:"r15"`
	RIP          uint64 `json:"rip"`
}

// ExceptionRecord describes an accompanying exception, when one was present.
type ExceptionRecord struct {
	Code           uint32   `json:"exception_code"`
	Flags          uint32   `json:"exception_flags"`
	Address        uint64   `json:"exception_address"`
	ParameterCount uint32   `json:"num_parameters"`
	Parameters     []uint64 `json:"parameters"`
}

// Name returns the well-known exception name for Code, or a generic fallback.
func (e ExceptionRecord) Name() string {
	return exceptionName(e.Code)
}

// RawStackFrame is always empty in this core; the field exists so the
// envelope's shape matches what a future symbolic walker would populate.
type RawStackFrame struct {
	Address       uint64 `json:"address"`
	ReturnAddress uint64 `json:"return_address,omitempty"`
	Offset        int    `json:"offset"`
}

// StackTrace is the envelope over the optional context and exception
// records, plus bookkeeping about what was and wasn't found.
type StackTrace struct {
	Context            *CpuContext      `json:"registers"`
	Exception          *ExceptionRecord `json:"exception"`
	RawFrames          []RawStackFrame  `json:"raw_frames"`
	StackPointer       uint64           `json:"stack_pointer"`
	InstructionPointer uint64           `json:"instruction_pointer"`
	HasContext         bool             `json:"has_context"`
	HasException       bool             `json:"has_exception"`
	Note               string           `json:"note"`
}

// ModuleReference is a single `.sys` name recovered by the scavenger.
type ModuleReference struct {
	Name              string `json:"name"`
	BaseAddress       uint64 `json:"base_address"`
	Size              uint64 `json:"size"`
	IsMicrosoft       bool   `json:"is_microsoft"`
	IsProblematic     bool   `json:"is_problematic"`
	ProblematicReason string `json:"problematic_reason,omitempty"`
}

// ModuleSummary aggregates the scavenger's findings.
type ModuleSummary struct {
	Total              int               `json:"total_count"`
	MicrosoftCount     int               `json:"microsoft_count"`
	ThirdPartyCount    int               `json:"third_party_count"`
	ProblematicCount   int               `json:"problematic_count"`
	Modules            []ModuleReference `json:"modules"`
	ProblematicModules []ModuleReference `json:"problematic_modules"`
	ExtractionMethod   string            `json:"extraction_method"`
	Note               string            `json:"note"`
}

// ParameterAnalysis is the per-parameter rendering produced by the
// bug-check catalogue.
type ParameterAnalysis struct {
	ParameterNumber int     `json:"parameter_number"`
	RawValue        uint64  `json:"raw_value"`
	HexValue        string  `json:"hex_value"`
	Description     string  `json:"description"`
	Interpretation  *string `json:"interpretation"`
}

// BugCheckAnalysis is the catalogue's complete rendering of a stop code.
type BugCheckAnalysis struct {
	Code            uint32              `json:"code"`
	CodeHex         string              `json:"code_hex"`
	Name            string              `json:"name"`
	Category        string              `json:"category"`
	Severity        string              `json:"severity"`
	Description     string              `json:"description"`
	Parameters      []ParameterAnalysis `json:"parameters"`
	LikelyCauses    []string            `json:"likely_causes"`
	Recommendations []string            `json:"recommendations"`
}

// AnalysisMetadata carries bookkeeping about the analysis run itself.
type AnalysisMetadata struct {
	AnalysisID              string   `json:"analysis_id"`
	ToolName                string   `json:"tool_name"`
	ToolVersion             string   `json:"tool_version"`
	AnalysisTimestamp       string   `json:"analysis_timestamp"`
	AnalysisDurationSeconds float64  `json:"analysis_duration_seconds"`
	DumpFilePath            string   `json:"dump_file_path"`
	DumpFileName            string   `json:"dump_file_name"`
	DumpFileSizeBytes       int64    `json:"dump_file_size_bytes"`
	DumpFileSizeHuman       string   `json:"dump_file_size_human"`
	ParserNotes             []string `json:"parser_notes"`
}

// CompleteAnalysis is the top-level value the orchestrator produces and the
// archive writer consumes.
type CompleteAnalysis struct {
	Metadata         AnalysisMetadata  `json:"metadata"`
	Success          bool              `json:"success"`
	Error            string            `json:"error,omitempty"`
	SystemInfo       *SystemInfo       `json:"system_info"`
	CrashSummary     *CrashSummary     `json:"crash_summary"`
	BugCheckAnalysis *BugCheckAnalysis `json:"bugcheck_analysis"`
	StackTrace       *StackTrace       `json:"stack_trace"`
	Modules          *ModuleSummary    `json:"modules"`
}
