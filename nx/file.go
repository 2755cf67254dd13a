package nx

import (
	"os"

	"github.com/edsrzf/mmap-go"
)

// File is a memory-mapped NX PKG4 container. It is immutable after Open
// returns and may be used concurrently from any number of goroutines
// without locking: nothing past Open mutates shared state.
//
// Every Node, Iterator, Bitmap and Audio obtained from a File borrows
// directly from its mapping. None of them may be used after the File is
// closed.
type File struct {
	mapping mmap.MMap
	header  Header

	nodeTable   []byte
	stringTable []byte
	bitmapTable []byte
	audioTable  []byte
}

// Open memory-maps the file at path and validates its header. The mapping
// is held for the returned File's lifetime; call Close to release it.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(KindIO, err)
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, newError(KindMap, err)
	}

	if len(m) < headerSize {
		m.Unmap()
		return nil, newError(KindTooShort, nil)
	}

	hdr := decodeHeader(m)
	if hdr.Magic != magic {
		m.Unmap()
		return nil, newError(KindInvalidMagic, nil)
	}

	return &File{
		mapping:     m,
		header:      hdr,
		nodeTable:   m[hdr.NodeOffset:],
		stringTable: m[hdr.StringOffset:],
		bitmapTable: m[hdr.BitmapOffset:],
		audioTable:  m[hdr.AudioOffset:],
	}, nil
}

// Close releases the underlying mapping. No Node, Iterator, Bitmap or Audio
// obtained from this File may be used afterwards.
func (f *File) Close() error {
	return f.mapping.Unmap()
}

// Header returns the decoded file header.
func (f *File) Header() Header {
	return f.header
}

// NodeCount returns the number of records in the node table.
func (f *File) NodeCount() uint32 {
	return f.header.NodeCount
}

// Root returns the view over node record 0, which the format guarantees
// is always present.
func (f *File) Root() Node {
	return Node{rec: f.nodeRecord(0), file: f}
}

// nodeRecord returns the 20-byte slice view of the record at index.
func (f *File) nodeRecord(index uint32) record {
	off := uint64(index) * nodeSize
	return record(f.nodeTable[off : off+nodeSize])
}

// str reads the string table entry at index: a u64 file offset whose first
// two bytes are a u16 length prefix, followed by that many bytes of UTF-8.
// The returned string shares memory with the mapping; it is never copied.
func (f *File) str(index uint32) string {
	off := leUint64(f.stringTable, uint64(index)*8)
	length := leUint16(f.mapping, off)
	b := f.mapping[off+2 : off+2+uint64(length)]
	return bytesToString(b)
}

// audio reads length bytes at the offset stored in the audio table at index.
func (f *File) audio(index, length uint32) []byte {
	off := leUint64(f.audioTable, uint64(index)*8)
	return f.mapping[off : off+uint64(length)]
}

// bitmap returns the bitmap table's offset index projected to the end of
// the mapping. There is no separately stored compressed length: the LZ4
// block decoder consumes exactly as much of this view as it needs to
// produce the caller's requested output size, so the source slice only
// needs a lower bound, not an exact length.
func (f *File) bitmap(index uint32) []byte {
	off := leUint64(f.bitmapTable, uint64(index)*8)
	return f.mapping[off:]
}
