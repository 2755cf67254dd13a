// Package nx reads NX PKG4 container files: a single tree of typed nodes
// backed by de-duplicated strings, LZ4-compressed bitmaps and encoded audio
// blobs. The file is memory-mapped once at Open and every value handed back
// afterwards — node names, sibling lookups, bitmap and audio payloads — is a
// borrow into that mapping. Nothing is copied and nothing allocates on the
// lookup path.
//
// The package is read-only: there is no writer here and no support for
// mutating an NX file. A File is immutable once opened and may be shared
// across goroutines without locking; Node, Iterator, Bitmap and Audio values
// borrow from their File and must not outlive it.
package nx
