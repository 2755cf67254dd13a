package nx

import (
	"encoding/binary"
	"math"
	"os"
	"testing"
)

// treeSpec describes one node of a tree to be flattened into an NX byte
// image for testing. Children must already be in the order the on-disk
// tree invariant requires (ascending byte-lexicographic by name), since
// that invariant is imposed by the file producer, not by this package.
type treeSpec struct {
	name     string
	dtype    Type
	data     uint64
	children []*treeSpec
}

func encodeInteger(v int64) uint64       { return uint64(v) }
func encodeFloat(v float64) uint64       { return math.Float64bits(v) }
func encodeStringIndex(idx uint32) uint64 { return uint64(idx) }
func encodeVector(x, y int32) uint64 {
	return uint64(uint32(x)) | uint64(uint32(y))<<32
}
func encodeBitmapPayload(index uint32, width, height uint16) uint64 {
	return uint64(index) | uint64(width)<<32 | uint64(height)<<48
}
func encodeAudioPayload(index, length uint32) uint64 {
	return uint64(index) | uint64(length)<<32
}

// flatNode is treeSpec after BFS flattening, with children resolved to a
// contiguous index range in the final node table.
type flatNode struct {
	name       string
	firstChild uint32
	count      uint16
	dtype      uint16
	data       uint64
}

func flattenTree(root *treeSpec) []flatNode {
	queue := []*treeSpec{root}
	var flat []flatNode
	for i := 0; i < len(queue); i++ {
		n := queue[i]
		flat = append(flat, flatNode{name: n.name, dtype: uint16(n.dtype), data: n.data})
		if len(n.children) > 0 {
			flat[i].firstChild = uint32(len(queue))
			flat[i].count = uint16(len(n.children))
			queue = append(queue, n.children...)
		}
	}
	return flat
}

// lz4RawBlock encodes data as a single minimal LZ4 block consisting of one
// all-literals sequence (no match). This is enough to round-trip through
// lz4Decompress for test fixtures without pulling in the compressor half
// of the pierrec/lz4 API, which this read-only package never needs.
func lz4RawBlock(data []byte) []byte {
	var out []byte
	n := len(data)
	if n < 15 {
		out = append(out, byte(n)<<4)
	} else {
		out = append(out, 0xF0)
		rem := n - 15
		for rem >= 255 {
			out = append(out, 255)
			rem -= 255
		}
		out = append(out, byte(rem))
	}
	out = append(out, data...)
	return out
}

// nxBuilder assembles a complete NX byte image: header, node table, string
// table (offsets + deduplicated data), bitmap table and audio table.
type nxBuilder struct {
	strings  []string
	stringID map[string]uint32
	bitmaps  [][]byte // each entry: raw (pre-compression) pixel bytes
	audio    [][]byte // each entry: 82-byte header + payload, as stored
}

func newNXBuilder() *nxBuilder {
	return &nxBuilder{stringID: map[string]uint32{}}
}

func (b *nxBuilder) str(s string) uint32 {
	if id, ok := b.stringID[s]; ok {
		return id
	}
	id := uint32(len(b.strings))
	b.strings = append(b.strings, s)
	b.stringID[s] = id
	return id
}

func (b *nxBuilder) addBitmap(pixels []byte) uint32 {
	id := uint32(len(b.bitmaps))
	b.bitmaps = append(b.bitmaps, pixels)
	return id
}

func (b *nxBuilder) addAudio(wrapped []byte) uint32 {
	id := uint32(len(b.audio))
	b.audio = append(b.audio, wrapped)
	return id
}

// build lays out: header | node table | string offsets | string data |
// bitmap offsets | bitmap data | audio offsets | audio data.
func (b *nxBuilder) build(root *treeSpec) []byte {
	flat := flattenTree(root)
	for i := range flat {
		// name must be registered even if never referenced elsewhere.
		b.str(flat[i].name)
	}

	nodeOffset := uint64(headerSize)
	nodeTableSize := uint64(len(flat)) * nodeSize

	stringOffset := nodeOffset + nodeTableSize
	stringOffsetTableSize := uint64(len(b.strings)) * 8

	stringDataStart := stringOffset + stringOffsetTableSize
	stringDataOffsets := make([]uint64, len(b.strings))
	var stringData []byte
	for i, s := range b.strings {
		stringDataOffsets[i] = stringDataStart + uint64(len(stringData))
		var lenBuf [2]byte
		binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(s)))
		stringData = append(stringData, lenBuf[:]...)
		stringData = append(stringData, s...)
	}

	bitmapOffset := stringDataStart + uint64(len(stringData))
	bitmapOffsetTableSize := uint64(len(b.bitmaps)) * 8
	bitmapDataStart := bitmapOffset + bitmapOffsetTableSize
	bitmapDataOffsets := make([]uint64, len(b.bitmaps))
	var bitmapData []byte
	for i, pixels := range b.bitmaps {
		bitmapDataOffsets[i] = bitmapDataStart + uint64(len(bitmapData))
		bitmapData = append(bitmapData, lz4RawBlock(pixels)...)
	}

	audioOffset := bitmapDataStart + uint64(len(bitmapData))
	audioOffsetTableSize := uint64(len(b.audio)) * 8
	audioDataStart := audioOffset + audioOffsetTableSize
	audioDataOffsets := make([]uint64, len(b.audio))
	var audioData []byte
	for i, a := range b.audio {
		audioDataOffsets[i] = audioDataStart + uint64(len(audioData))
		audioData = append(audioData, a...)
	}

	out := make([]byte, audioDataStart+uint64(len(audioData)))
	le := binary.LittleEndian
	le.PutUint32(out[offMagic:], magic)
	le.PutUint32(out[offNodeCount:], uint32(len(flat)))
	le.PutUint64(out[offNodeOffset:], nodeOffset)
	le.PutUint32(out[offStringCount:], uint32(len(b.strings)))
	le.PutUint64(out[offStringOffset:], stringOffset)
	le.PutUint32(out[offBitmapCount:], uint32(len(b.bitmaps)))
	le.PutUint64(out[offBitmapOffset:], bitmapOffset)
	le.PutUint32(out[offAudioCount:], uint32(len(b.audio)))
	le.PutUint64(out[offAudioOffset:], audioOffset)

	for i, n := range flat {
		base := nodeOffset + uint64(i)*nodeSize
		le.PutUint32(out[base+offNodeName:], b.stringID[n.name])
		le.PutUint32(out[base+offNodeChildren:], n.firstChild)
		le.PutUint16(out[base+offNodeCount16:], n.count)
		le.PutUint16(out[base+offNodeDtype:], n.dtype)
		le.PutUint64(out[base+offNodeData:], n.data)
	}

	for i, off := range stringDataOffsets {
		le.PutUint64(out[stringOffset+uint64(i)*8:], off)
	}
	copy(out[stringDataStart:], stringData)

	for i, off := range bitmapDataOffsets {
		le.PutUint64(out[bitmapOffset+uint64(i)*8:], off)
	}
	copy(out[bitmapDataStart:], bitmapData)

	for i, off := range audioDataOffsets {
		le.PutUint64(out[audioOffset+uint64(i)*8:], off)
	}
	copy(out[audioDataStart:], audioData)

	return out
}

// openBytes writes b to a temp file and opens it through the real,
// mmap-backed Open path — exercising the same code a caller hits, not a
// shortcut around it.
func openBytes(t *testing.T, b []byte) *File {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "nx-test-*.nx")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write(b); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	file, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { file.Close() })
	return file
}
