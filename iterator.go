package matryoshka

// Iterator walks the set in ascending key order (component H), reading
// one leaf-equivalent's worth of keys at a time via extractSorted and
// advancing across leaf-equivalents through the sibling chain
// (component F), rather than holding any kind of path or cursor back
// into the outer tree — the buffer-sizing note in spec §9 scales this
// scratch with the leaf-equivalent's own capacity (page or superpage).
type Iterator struct {
	cur leafEquiv
	buf []int32
	idx int
}

// IterFrom seeds an iterator at the first key >= from.
func (t *Tree) IterFrom(from int32) *Iterator {
	if t.root == nil {
		return &Iterator{}
	}
	le := t.root.leafFor(from)
	buf := le.extractSorted()
	return &Iterator{cur: le, buf: buf, idx: smallLowerBound(buf, from)}
}

// Next returns the next key in ascending order, or (0, false) once the
// set is exhausted.
func (it *Iterator) Next() (int32, bool) {
	for it.cur != nil {
		if it.idx < len(it.buf) {
			k := it.buf[it.idx]
			it.idx++
			return k, true
		}
		_, next := it.cur.siblings()
		it.cur = next
		if it.cur != nil {
			it.buf = it.cur.extractSorted()
			it.idx = 0
		}
	}
	return 0, false
}

// Close releases the iterator's scratch buffer. Safe to call multiple
// times; a closed iterator behaves as exhausted.
func (it *Iterator) Close() {
	it.cur = nil
	it.buf = nil
}
