// Package header decodes the fixed-offset dump header: signature
// recognition, 32/64-bit variant selection, and the system-level and
// bug-check fields that sit at documented offsets.
package header

import (
	"fmt"

	xgxerror "github.com/xgx-io/xgx-error"

	"github.com/hollowcrest/crashlens/internal/model"
	"github.com/hollowcrest/crashlens/internal/reader"
)

const (
	signature64 = "PAGEDU64"
	signature32 = "PAGEDUMP"

	offSignature   = 0x000
	offMajorVer    = 0x008
	offMinorVer    = 0x00C
	offMachineType = 0x030
	offProcCount   = 0x034
	offBugCheck    = 0x038

	offParam1_64 = 0x040
	offParam2_64 = 0x048
	offParam3_64 = 0x050
	offParam4_64 = 0x058

	offParam1_32 = 0x001C
	offParam2_32 = 0x0020
	offParam3_32 = 0x0024
	offParam4_32 = 0x0028

	offPhysMemBlock64 = 0x0088
	offPhysMemBlock32 = 0x0064

	offExceptionRecord64 = 0x348
	offExceptionRecord32 = 0x07D0

	offContextRecord = 0x408

	offDumpVariant   = 0xF98
	offSystemTime    = 0xFA0
	offRequiredSpace = 0x1028
)

// Decode reads the header region of w (whose total length is fileSize) and
// produces the raw DumpHeader plus its display-oriented SystemInfo and
// CrashSummary. The only fatal condition is an unrecognized signature.
func Decode(w *reader.Window, sourcePath, sourceName string, fileSize int64) (*model.DumpHeader, *model.SystemInfo, *model.CrashSummary, error) {
	sigBytes := w.ASCII(offSignature, 8)
	if len(sigBytes) < 8 {
		return nil, nil, nil, xgxerror.Invalid("signature", "short read at offset 0").With("path", sourcePath)
	}

	sig := sigBytes[0:4]
	marker := sigBytes[4:8]
	is64 := sigBytes == signature64
	is32 := sigBytes == signature32
	if !is64 && !is32 {
		return nil, nil, nil, xgxerror.Invalid("signature", fmt.Sprintf("unrecognized dump signature %q", sigBytes)).With("path", sourcePath)
	}

	h := &model.DumpHeader{
		Signature:    sig,
		ValidMarker:  marker,
		MajorVersion: w.U32(offMajorVer),
		MinorVersion: w.U32(offMinorVer),
		Is64Bit:      is64,
	}

	h.MachineType = model.MachineType(w.U32(offMachineType))
	h.ProcessorCount = w.U32(offProcCount)
	h.BugCheckCode = w.U32(offBugCheck)

	if is64 {
		h.BugCheckParam1 = w.U64(offParam1_64)
		h.BugCheckParam2 = w.U64(offParam2_64)
		h.BugCheckParam3 = w.U64(offParam3_64)
		h.BugCheckParam4 = w.U64(offParam4_64)
		h.PhysicalMemoryBlockOffset = offPhysMemBlock64
		h.ExceptionRecordOffset = offExceptionRecord64
	} else {
		h.BugCheckParam1 = uint64(w.U32(offParam1_32))
		h.BugCheckParam2 = uint64(w.U32(offParam2_32))
		h.BugCheckParam3 = uint64(w.U32(offParam3_32))
		h.BugCheckParam4 = uint64(w.U32(offParam4_32))
		h.PhysicalMemoryBlockOffset = offPhysMemBlock32
		h.ExceptionRecordOffset = offExceptionRecord32
	}
	h.ContextRecordOffset = offContextRecord

	h.DumpVariant = model.DumpVariant(w.U32(offDumpVariant))
	h.SystemTime = w.U64(offSystemTime)

	// required_dump_space lives past any field this core otherwise reads and
	// is documented as best-effort; fall back to the file's own size rather
	// than surface a hard failure for it.
	if requiredSpace := w.U64(offRequiredSpace); requiredSpace != 0 {
		h.RequiredDumpSpace = requiredSpace
	} else {
		h.RequiredDumpSpace = uint64(fileSize)
		h.IsDumpSpaceFallback = true
	}

	sysInfo := &model.SystemInfo{
		OSVersion:      fmt.Sprintf("Windows %d.%d", h.MajorVersion, h.MinorVersion),
		Architecture:   h.MachineType.String(),
		ProcessorCount: h.ProcessorCount,
		DumpType:       h.DumpVariant.String(),
		DumpSizeBytes:  fileSize,
		DumpSizeHuman:  model.FormatSize(fileSize),
		Is64Bit:        h.Is64Bit,
		CrashTimeRaw:   h.SystemTime,
	}

	crashSummary := &model.CrashSummary{
		BugCheckCode:    model.FormatBugCheckCode(h.BugCheckCode),
		BugCheckCodeInt: h.BugCheckCode,
		Parameter1:      model.FormatHex64(h.BugCheckParam1),
		Parameter2:      model.FormatHex64(h.BugCheckParam2),
		Parameter3:      model.FormatHex64(h.BugCheckParam3),
		Parameter4:      model.FormatHex64(h.BugCheckParam4),
		FilePath:        sourcePath,
		FileName:        sourceName,
	}

	return h, sysInfo, crashSummary, nil
}
