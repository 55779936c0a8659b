// Package context extracts the embedded CPU register snapshot and the
// exception record from the dump header region. Neither record is
// required; their absence is reported through StackTrace rather than
// surfaced as an error.
package context

import (
	"fmt"

	"github.com/hollowcrest/crashlens/internal/model"
	"github.com/hollowcrest/crashlens/internal/reader"
)

const (
	ctxFlagsOff = 0x30
	ctxRAXOff   = 0x78
	ctxRCXOff   = 0x80
	ctxRDXOff   = 0x88
	ctxRBXOff   = 0x90
	ctxRSPOff   = 0x98
	ctxRBPOff   = 0xA0
	ctxRSIOff   = 0xA8
	ctxRDIOff   = 0xB0
	ctxR8Off    = 0xB8
	ctxR9Off    = 0xC0
	ctxR10Off   = 0xC8
	ctxR11Off   = 0xD0
	ctxR12Off   = 0xD8
	ctxR13Off   = 0xE0
	ctxR14Off   = 0xE8
	ctxR15Off   = 0xF0
	ctxRIPOff   = 0xF8

	excCodeOff    = 0x00
	excFlagsOff   = 0x04
	excAddressOff = 0x10
	excParamsCnt  = 0x18
	excParamsOff  = 0x20

	maxExceptionParams = 15
)

// Decode extracts the optional CpuContext and ExceptionRecord at
// contextOffset and exceptionOffset within w, and produces the StackTrace
// envelope over them. It never fails.
func Decode(w *reader.Window, contextOffset, exceptionOffset int64) *model.StackTrace {
	st := &model.StackTrace{RawFrames: []model.RawStackFrame{}}

	var foundContext, foundException bool

	if flags := w.U32(contextOffset + ctxFlagsOff); flags != 0 {
		foundContext = true
		st.Context = &model.CpuContext{
			ContextFlags: flags,
			RAX:          w.U64(contextOffset + ctxRAXOff),
			RCX:          w.U64(contextOffset + ctxRCXOff),
			RDX:          w.U64(contextOffset + ctxRDXOff),
			RBX:          w.U64(contextOffset + ctxRBXOff),
			RSP:          w.U64(contextOffset + ctxRSPOff),
			RBP:          w.U64(contextOffset + ctxRBPOff),
			RSI:          w.U64(contextOffset + ctxRSIOff),
			RDI:          w.U64(contextOffset + ctxRDIOff),
			R8:           w.U64(contextOffset + ctxR8Off),
			R9:           w.U64(contextOffset + ctxR9Off),
			R10:          w.U64(contextOffset + ctxR10Off),
			R11:          w.U64(contextOffset + ctxR11Off),
			R12:          w.U64(contextOffset + ctxR12Off),
			R13:          w.U64(contextOffset + ctxR13Off),
			R14:          w.U64(contextOffset + ctxR14Off),
			R15:          w.U64(contextOffset + ctxR15Off),
			RIP:          w.U64(contextOffset + ctxRIPOff),
		}
		st.StackPointer = st.Context.RSP
		st.InstructionPointer = st.Context.RIP
	}

	var clampedParamCount bool
	if code := w.U32(exceptionOffset + excCodeOff); code != 0 {
		foundException = true
		count := w.U32(exceptionOffset + excParamsCnt)
		if count > maxExceptionParams {
			count = maxExceptionParams
			clampedParamCount = true
		}
		params := make([]uint64, count)
		for i := uint32(0); i < count; i++ {
			params[i] = w.U64(exceptionOffset + excParamsOff + int64(i)*8)
		}
		st.Exception = &model.ExceptionRecord{
			Code:           code,
			Flags:          w.U32(exceptionOffset + excFlagsOff),
			Address:        w.U64(exceptionOffset + excAddressOff),
			ParameterCount: count,
			Parameters:     params,
		}
	}

	st.HasContext = foundContext
	st.HasException = foundException
	st.Note = noteFor(foundContext, foundException, clampedParamCount)

	return st
}

func noteFor(hasContext, hasException, clamped bool) string {
	var note string
	switch {
	case hasContext && hasException:
		note = "CPU context and exception record both present."
	case hasContext:
		note = "CPU context present; no exception record found."
	case hasException:
		note = "Exception record present; no CPU context found."
	default:
		note = "Neither CPU context nor exception record found in the dump header."
	}
	note += " Symbolic stack walking is out of scope; raw_frames is always empty."
	if clamped {
		note += fmt.Sprintf(" exception parameter_count exceeded %d and was clamped.", maxExceptionParams)
	}
	return note
}
