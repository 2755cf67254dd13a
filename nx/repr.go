package nx

import (
	"encoding/binary"
	"math"
)

// magic is "PKG4" read as a little-endian u32.
const magic uint32 = 0x34474B50

// On-disk sizes, all little-endian and packed with no padding. Field
// offsets are computed by hand rather than modeled with a Go struct and
// cast over the mapping: the node record places a u64 at byte offset 12,
// which the Go compiler would pad to offset 16 inside a struct literal
// containing the preceding u32/u32/u16/u16 fields. Reading every field with
// encoding/binary at an explicit byte offset sidesteps that padding
// mismatch and works regardless of host alignment requirements.
const (
	headerSize = 52
	nodeSize   = 20

	offMagic        = 0
	offNodeCount    = 4
	offNodeOffset   = 8
	offStringCount  = 16
	offStringOffset = 20
	offBitmapCount  = 28
	offBitmapOffset = 32
	offAudioCount   = 40
	offAudioOffset  = 44

	offNodeName     = 0
	offNodeChildren = 4
	offNodeCount16  = 8
	offNodeDtype    = 10
	offNodeData     = 12
)

// Type is the tag carried by a node's 8-byte payload.
type Type uint16

const (
	Empty Type = iota
	Integer
	Float
	String
	Vector
	Bitmap
	Audio
)

func (t Type) String() string {
	switch t {
	case Empty:
		return "Empty"
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case String:
		return "String"
	case Vector:
		return "Vector"
	case Bitmap:
		return "Bitmap"
	case Audio:
		return "Audio"
	default:
		return "Empty"
	}
}

// typeFromTag collapses any tag outside the known range to Empty, so a
// corrupt or forward-versioned dtype never produces an invalid Type value.
func typeFromTag(tag uint16) Type {
	if tag > uint16(Audio) {
		return Empty
	}
	return Type(tag)
}

// Header mirrors the 52-byte on-disk file header. It is
// decoded once, at Open, into this plain value type — there is no benefit
// to re-reading it from the mapping on every access, and no cost either:
// the value lives inline in File, not on a per-call heap allocation.
type Header struct {
	Magic        uint32
	NodeCount    uint32
	NodeOffset   uint64
	StringCount  uint32
	StringOffset uint64
	BitmapCount  uint32
	BitmapOffset uint64
	AudioCount   uint32
	AudioOffset  uint64
}

func decodeHeader(b []byte) Header {
	le := binary.LittleEndian
	return Header{
		Magic:        le.Uint32(b[offMagic:]),
		NodeCount:    le.Uint32(b[offNodeCount:]),
		NodeOffset:   le.Uint64(b[offNodeOffset:]),
		StringCount:  le.Uint32(b[offStringCount:]),
		StringOffset: le.Uint64(b[offStringOffset:]),
		BitmapCount:  le.Uint32(b[offBitmapCount:]),
		BitmapOffset: le.Uint64(b[offBitmapOffset:]),
		AudioCount:   le.Uint32(b[offAudioCount:]),
		AudioOffset:  le.Uint64(b[offAudioOffset:]),
	}
}

// record is a 20-byte slice view into the node table; it shares the
// mapping's backing array, so slicing it never allocates or copies.
type record []byte

func (r record) name() uint32 {
	return binary.LittleEndian.Uint32(r[offNodeName:])
}

func (r record) children() uint32 {
	return binary.LittleEndian.Uint32(r[offNodeChildren:])
}

func (r record) count() uint16 {
	return binary.LittleEndian.Uint16(r[offNodeCount16:])
}

func (r record) dtype() Type {
	return typeFromTag(binary.LittleEndian.Uint16(r[offNodeDtype:]))
}

func (r record) data() uint64 {
	return binary.LittleEndian.Uint64(r[offNodeData:])
}

// Payload decodes, all positional reads over the 8-byte data field.

func (r record) asInteger() int64 {
	return int64(r.data())
}

func (r record) asFloat() float64 {
	return math.Float64frombits(r.data())
}

func (r record) asStringIndex() uint32 {
	return uint32(r.data())
}

func (r record) asVector() (int32, int32) {
	d := r.data()
	return int32(uint32(d)), int32(uint32(d >> 32))
}

func (r record) asBitmap() (index uint32, width, height uint16) {
	d := r.data()
	index = uint32(d)
	width = uint16(d >> 32)
	height = uint16(d >> 48)
	return
}

func (r record) asAudio() (index uint32, length uint32) {
	d := r.data()
	return uint32(d), uint32(d >> 32)
}
