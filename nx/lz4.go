package nx

import "github.com/pierrec/lz4/v4"

// lz4Decompress expands a raw LZ4 block (no frame header, no checksum) into
// dst, returning the number of bytes produced. pierrec/lz4/v4's block-level
// UncompressBlock matches the raw-block wire format used here directly,
// with no streaming frame wrapper to strip.
func lz4Decompress(src, dst []byte) (int, error) {
	return lz4.UncompressBlock(src, dst)
}
