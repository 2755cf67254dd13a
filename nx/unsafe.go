package nx

import (
	"encoding/binary"
	"unsafe"
)

// leUint64 and leUint16 read a little-endian value at a byte offset within
// b. They exist so callers working with absolute offsets don't have to
// re-slice before every read.
func leUint64(b []byte, off uint64) uint64 {
	return binary.LittleEndian.Uint64(b[off:])
}

func leUint16(b []byte, off uint64) uint16 {
	return binary.LittleEndian.Uint16(b[off:])
}

// bytesToString converts a byte slice borrowed from the mapping into a
// string without copying it. This is safe only because the returned string
// is never mutated and never outlives the mapping it points into — the
// same borrow contract every other view a File hands out must honor.
func bytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
