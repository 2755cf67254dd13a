package nx

// Iterator walks a contiguous, already-sorted run of sibling records. It is
// forward-only and non-resumable: once Next returns false, the iterator
// stays exhausted.
type Iterator struct {
	cur       record
	remaining uint16
	file      *File
}

// Next advances the iterator and reports whether a node was produced.
func (it *Iterator) Next() (Node, bool) {
	if it.remaining == 0 {
		return Node{}, false
	}
	n := Node{rec: it.cur, file: it.file}
	it.remaining--
	if it.remaining > 0 {
		it.cur = nextRecord(it.cur)
	}
	return n, true
}

// Len reports the exact number of nodes remaining.
func (it *Iterator) Len() int {
	return int(it.remaining)
}

// nextRecord slides a record view forward by one node-table slot. record
// slices are taken with their capacity left open to the end of the node
// table (see File.nodeRecord), so re-slicing past len(r) reaches into the
// next record without copying anything.
func nextRecord(r record) record {
	return r[nodeSize : 2*nodeSize]
}
