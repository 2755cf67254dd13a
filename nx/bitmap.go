package nx

import "fmt"

// Bitmap is a reference to an LZ4-compressed pixel payload. Pixels are
// stored BGRA; callers that want RGBA swap channels themselves after
// DecodeInto.
type Bitmap struct {
	data          []byte
	width, height uint16
}

// Width is the bitmap's width in pixels.
func (b Bitmap) Width() uint16 { return b.width }

// Height is the bitmap's height in pixels.
func (b Bitmap) Height() uint16 { return b.height }

// Len is the uncompressed size in bytes: width * height * 4.
func (b Bitmap) Len() int {
	return int(b.width) * int(b.height) * 4
}

// DecodeInto decompresses the bitmap's pixel data into dst. dst must have
// exactly Len() bytes; DecodeInto panics otherwise, and panics if the LZ4
// stream fails to produce exactly Len() bytes, since the uncompressed size
// is always known in advance and a mismatch means the file is corrupt
// rather than something a caller can recover from. DecodeInto may be
// called as many times as the caller likes and always reproduces the same
// bytes.
func (b Bitmap) DecodeInto(dst []byte) {
	if len(dst) != b.Len() {
		panic(fmt.Sprintf("nx: DecodeInto: dst has %d bytes, want %d", len(dst), b.Len()))
	}
	n, err := lz4Decompress(b.data, dst)
	if err != nil {
		panic(fmt.Sprintf("nx: bitmap decompression failed: %v", err))
	}
	if n != b.Len() {
		panic(fmt.Sprintf("nx: bitmap decompression produced %d bytes, want %d", n, b.Len()))
	}
}
