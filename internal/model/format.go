package model

import "fmt"

// FormatSize renders a byte count the way the catalogue and metadata sections
// do: GB/MB/KB thresholds at 1024^n, falling back to a plain byte count.
func FormatSize(size int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case size >= gb:
		return fmt.Sprintf("%.2f GB", float64(size)/float64(gb))
	case size >= mb:
		return fmt.Sprintf("%.2f MB", float64(size)/float64(mb))
	case size >= kb:
		return fmt.Sprintf("%.2f KB", float64(size)/float64(kb))
	default:
		return fmt.Sprintf("%d bytes", size)
	}
}

// FormatHex64 renders a 64-bit value as the canonical "0x" + 16 uppercase hex
// digit form used throughout the archive's JSON documents.
func FormatHex64(v uint64) string {
	return fmt.Sprintf("0x%016X", v)
}

// FormatBugCheckCode renders a 32-bit stop code as the canonical ten
// character form: "0x" followed by eight uppercase hex digits.
func FormatBugCheckCode(code uint32) string {
	return fmt.Sprintf("0x%08X", code)
}
