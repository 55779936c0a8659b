// Package archive serializes a CompleteAnalysis into the documented set of
// JSON member documents plus a plain-text summary and README, bundled as a
// deterministic zip archive.
package archive

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	xgxerror "github.com/xgx-io/xgx-error"

	"github.com/hollowcrest/crashlens/internal/model"
)

// Write emits the archive for analysis into dir, named after the dump's
// basename and the given timestamp, and returns the path written. It
// refuses when analysis.Success is false: an unreadable source yields no
// archive.
func Write(analysis *model.CompleteAnalysis, dir string, timestamp time.Time) (string, error) {
	if !analysis.Success {
		return "", xgxerror.Invalid("analysis", "archive is not emitted when success is false")
	}

	base := strings.TrimSuffix(analysis.Metadata.DumpFileName, filepath.Ext(analysis.Metadata.DumpFileName))
	name := fmt.Sprintf("BSOD_Analysis_%s_%s.zip", base, timestamp.Format("20060102_150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", xgxerror.Internal(err).Ctx("create archive file", "path", path)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	if err := writeJSONMember(zw, "analysis.json", analysis); err != nil {
		return "", err
	}
	if analysis.SystemInfo != nil {
		if err := writeJSONMember(zw, "system_info.json", analysis.SystemInfo); err != nil {
			return "", err
		}
	}
	if analysis.CrashSummary != nil {
		if err := writeJSONMember(zw, "crash_summary.json", analysis.CrashSummary); err != nil {
			return "", err
		}
	}
	if analysis.BugCheckAnalysis != nil {
		if err := writeJSONMember(zw, "bugcheck_analysis.json", analysis.BugCheckAnalysis); err != nil {
			return "", err
		}
	}
	if analysis.StackTrace != nil {
		if err := writeJSONMember(zw, "stack_trace.json", analysis.StackTrace); err != nil {
			return "", err
		}
	}
	if analysis.Modules != nil {
		if err := writeJSONMember(zw, "drivers.json", analysis.Modules); err != nil {
			return "", err
		}
	}

	summaryWriter, err := zw.Create("summary.txt")
	if err != nil {
		return "", xgxerror.Internal(err).Ctx("create summary.txt member")
	}
	if _, err := summaryWriter.Write([]byte(TextSummary(analysis))); err != nil {
		return "", xgxerror.Internal(err).Ctx("write summary.txt member")
	}

	readmeWriter, err := zw.Create("README.txt")
	if err != nil {
		return "", xgxerror.Internal(err).Ctx("create README.txt member")
	}
	if _, err := readmeWriter.Write([]byte(readmeText)); err != nil {
		return "", xgxerror.Internal(err).Ctx("write README.txt member")
	}

	if err := zw.Close(); err != nil {
		return "", xgxerror.Internal(err).Ctx("close archive")
	}
	return path, nil
}

// writeJSONMember marshals v with stable two-space indentation and HTML
// escaping disabled, matching the canonical serialization every other
// archive member and the top-level analysis.json share.
func writeJSONMember(zw *zip.Writer, name string, v any) error {
	w, err := zw.Create(name)
	if err != nil {
		return xgxerror.Internal(err).Ctx("create archive member", "name", name)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return xgxerror.Internal(err).Ctx("encode archive member", "name", name)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return xgxerror.Internal(err).Ctx("write archive member", "name", name)
	}
	return nil
}
