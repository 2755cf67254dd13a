package nx

import "unsafe"

// Node is a lightweight, copyable view over one node record and the File it
// was read from. The zero Node (its record is nil) is the "not present"
// value: every read method on Node treats a nil record as Empty / absent
// rather than panicking, so a lookup miss chains through the rest of a
// traversal exactly like a present node would, with no separate Option
// type required.
type Node struct {
	rec  record
	file *File
}

// IsEmpty reports whether the node has no children. An absent Node
// (zero value) is also empty.
func (n Node) IsEmpty() bool {
	return n.rec == nil || n.rec.count() == 0
}

// Present reports whether this Node refers to an actual record, as opposed
// to being the zero-value "not found" result of Get.
func (n Node) Present() bool {
	return n.rec != nil
}

// Name returns the node's name, read from the string table. An absent Node
// has the empty name.
func (n Node) Name() string {
	if n.rec == nil {
		return ""
	}
	return n.file.str(n.rec.name())
}

// Type returns the node's payload tag. An absent Node is Empty.
func (n Node) Type() Type {
	if n.rec == nil {
		return Empty
	}
	return n.rec.dtype()
}

// Integer returns the node's integer payload and true, or 0 and false if
// the node isn't an Integer node (or is absent).
func (n Node) Integer() (int64, bool) {
	if n.rec == nil || n.rec.dtype() != Integer {
		return 0, false
	}
	return n.rec.asInteger(), true
}

// Float returns the node's float payload and true, or 0 and false if the
// node isn't a Float node (or is absent).
func (n Node) Float() (float64, bool) {
	if n.rec == nil || n.rec.dtype() != Float {
		return 0, false
	}
	return n.rec.asFloat(), true
}

// Vector returns the node's (x, y) payload and true, or (0, 0) and false if
// the node isn't a Vector node (or is absent).
func (n Node) Vector() (x, y int32, ok bool) {
	if n.rec == nil || n.rec.dtype() != Vector {
		return 0, 0, false
	}
	x, y = n.rec.asVector()
	return x, y, true
}

// String returns the node's string payload and true, or "" and false if the
// node isn't a String node (or is absent).
func (n Node) String() (string, bool) {
	if n.rec == nil || n.rec.dtype() != String {
		return "", false
	}
	return n.file.str(n.rec.asStringIndex()), true
}

// Bitmap returns the node's Bitmap leaf and true, or the zero Bitmap and
// false if the node isn't a Bitmap node (or is absent).
func (n Node) Bitmap() (Bitmap, bool) {
	if n.rec == nil || n.rec.dtype() != Bitmap {
		return Bitmap{}, false
	}
	index, width, height := n.rec.asBitmap()
	return Bitmap{data: n.file.bitmap(index), width: width, height: height}, true
}

// Audio returns the node's Audio leaf and true, or the zero Audio and false
// if the node isn't an Audio node (or is absent).
func (n Node) Audio() (Audio, bool) {
	if n.rec == nil || n.rec.dtype() != Audio {
		return Audio{}, false
	}
	index, length := n.rec.asAudio()
	return Audio{data: n.file.audio(index, length)}, true
}

// Iter returns a forward iterator over the node's children, in storage
// order (which, by the tree invariant, is sorted by name). An absent or
// childless node yields an iterator that is immediately exhausted.
func (n Node) Iter() *Iterator {
	if n.rec == nil || n.rec.count() == 0 {
		return &Iterator{}
	}
	return &Iterator{
		cur:       n.file.nodeRecord(n.rec.children()),
		remaining: n.rec.count(),
		file:      n.file,
	}
}

// Get looks up the child with the given name via binary search over the
// sorted sibling range, returning the zero Node if no child has that name
// (or n is itself absent or empty). Comparison is byte-lexicographic —
// Go's native string ordering already compares byte-by-byte, matching the
// on-disk sort exactly.
func (n Node) Get(name string) Node {
	if n.rec == nil || n.rec.count() == 0 {
		return Node{}
	}
	first := n.rec.children()
	lo, hi := 0, int(n.rec.count())
	for lo < hi {
		mid := lo + (hi-lo)/2
		candidate := n.file.nodeRecord(first + uint32(mid))
		other := n.file.str(candidate.name())
		switch {
		case other < name:
			lo = mid + 1
		case other > name:
			hi = mid
		default:
			return Node{rec: candidate, file: n.file}
		}
	}
	return Node{}
}

// Equal reports whether n and o are views of the same underlying record —
// identity equality, not structural equality. Two absent Nodes are equal
// to each other.
func (n Node) Equal(o Node) bool {
	if n.rec == nil || o.rec == nil {
		return n.rec == nil && o.rec == nil
	}
	return unsafe.SliceData([]byte(n.rec)) == unsafe.SliceData([]byte(o.rec))
}
