// Package reader provides bounded, absolute-offset byte access over a dump
// file. Every read is a random-access slice against the file's contents;
// nothing advances an implicit cursor, and nothing panics on an
// out-of-range offset.
package reader

import (
	"encoding/binary"
	"io"
)

// Window is a bounded byte-window reader over an io.ReaderAt. It never
// returns more than the bytes actually available between offset and the end
// of the source.
type Window struct {
	src  io.ReaderAt
	size int64
}

// New wraps src, whose total length is size, for bounded reads.
func New(src io.ReaderAt, size int64) *Window {
	return &Window{src: src, size: size}
}

// Size returns the total size of the underlying source.
func (w *Window) Size() int64 { return w.size }

// ReadAt returns the n bytes at offset, or fewer if the source is shorter.
// It never returns an error for a short read; the byte count communicates
// that to the caller the way the rest of this package does.
func (w *Window) ReadAt(offset int64, n int) []byte {
	if offset < 0 || offset >= w.size || n <= 0 {
		return nil
	}
	if offset+int64(n) > w.size {
		n = int(w.size - offset)
	}
	buf := make([]byte, n)
	read, err := w.src.ReadAt(buf, offset)
	if read == 0 && err != nil && err != io.EOF {
		return nil
	}
	return buf[:read]
}

// U16 reads a little-endian uint16 at offset, returning 0 on a short read.
func (w *Window) U16(offset int64) uint16 {
	b := w.ReadAt(offset, 2)
	if len(b) < 2 {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// U32 reads a little-endian uint32 at offset, returning 0 on a short read.
func (w *Window) U32(offset int64) uint32 {
	b := w.ReadAt(offset, 4)
	if len(b) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// U64 reads a little-endian uint64 at offset, returning 0 on a short read.
func (w *Window) U64(offset int64) uint64 {
	b := w.ReadAt(offset, 8)
	if len(b) < 8 {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// ASCII reads n bytes at offset and returns them as a string, substituting
// '?' for any non-ASCII-printable byte. Used only for the signature fields.
func (w *Window) ASCII(offset int64, n int) string {
	b := w.ReadAt(offset, n)
	out := make([]byte, len(b))
	for i, c := range b {
		if c < 0x20 || c >= 0x7F {
			out[i] = '?'
		} else {
			out[i] = c
		}
	}
	return string(out)
}
