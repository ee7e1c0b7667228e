package matryoshka

// superpage is a superpage leaf-equivalent (component D): a 2 MiB
// Allocator reservation routing over up to maxPageLeafFanout page
// leaves through at most one level of in-memory separators, per spec
// §4.D's own simplification ("one internal page... over up to 510
// page-leaves, or a single page-leaf at sub-height 0"). Unlike page's
// CL sub-tree, a superpage's children are whole *page values, not
// slot-addressed CL sub-nodes — the teacher's BufMgr has no equivalent
// layer, so this is grounded directly on spec §4.D's own description
// together with page's already-established sibling-splice idiom.
type superpage struct {
	raw []byte

	leaf     *page   // populated at sub-height 0: this superpage is a single page
	seps     []int32 // populated at sub-height 1: len(children)-1 routing separators
	children []*page

	prevL, nextL leafEquiv
}

func newSuperpage(a Allocator) (*superpage, error) {
	buf, err := a.AllocSuperpage()
	if err != nil {
		return nil, wrapAllocErr(err, "superpage")
	}
	leaf, err := newPage(a)
	if err != nil {
		return nil, err
	}
	return &superpage{raw: buf, leaf: leaf}, nil
}

func (s *superpage) subHeight() int {
	if s.leaf != nil {
		return 0
	}
	return 1
}

func (s *superpage) numKeys() int {
	if s.leaf != nil {
		return s.leaf.numKeys()
	}
	n := 0
	for _, c := range s.children {
		n += c.numKeys()
	}
	return n
}

func (s *superpage) maxKeyOf() int32 {
	if s.leaf != nil {
		return s.leaf.maxKeyOf()
	}
	return s.children[len(s.children)-1].maxKeyOf()
}

func (s *superpage) childIndex(key int32) int {
	return wideChildIndex(s.seps, key)
}

func (s *superpage) containsKey(key int32) bool {
	if s.leaf != nil {
		return s.leaf.containsKey(key)
	}
	return s.children[s.childIndex(key)].containsKey(key)
}

func (s *superpage) predecessorOf(q int32) (int32, bool) {
	if s.leaf != nil {
		return s.leaf.predecessorOf(q)
	}
	ci := s.childIndex(q)
	if k, ok := s.children[ci].predecessorOf(q); ok {
		return k, true
	}
	for i := ci - 1; i >= 0; i-- {
		if s.children[i].numKeys() > 0 {
			return s.children[i].maxKeyOf(), true
		}
	}
	return 0, false
}

// insertKey routes to the owning page (sub-height 1) or the lone page
// (sub-height 0). A page-level split is absorbed by inserting the new
// page and its separator into this superpage's own arrays — the
// superpage reports leFull to its own caller (the outer tree) only
// when it has exhausted its child slice (maxPageLeafFanout). A split of
// the lone page at sub-height 0 promotes this superpage to sub-height 1
// and reports leOK.
func (s *superpage) insertKey(key int32, h *Hierarchy) (leStatus, leafEquiv, int32, error) {
	if s.leaf != nil {
		st, right, sep, err := s.leaf.insertKey(key, h)
		if err != nil || st != leFull {
			return st, nil, 0, err
		}
		rp := right.(*page)
		rp.prevL, rp.nextL = nil, nil
		left := s.leaf
		s.leaf = nil
		s.children = []*page{left, rp}
		s.seps = []int32{sep}
		return leOK, nil, 0, nil
	}

	ci := s.childIndex(key)
	st, right, sep, err := s.children[ci].insertKey(key, h)
	if err != nil || st != leFull {
		return st, nil, 0, err
	}
	rp := right.(*page)
	rp.prevL, rp.nextL = nil, nil
	if len(s.children) >= maxPageLeafFanout {
		return s.splitForOuterAndAdopt(ci, rp, sep, h)
	}
	s.seps = insertAtInt32(s.seps, ci, sep)
	s.children = insertAtPage(s.children, ci+1, rp)
	return leOK, nil, 0, nil
}

// splitForOuterAndAdopt is reached when this superpage's page-leaf
// fanout is exhausted: insert the overflow child locally first (the
// slice temporarily exceeds maxPageLeafFanout, mirroring page's
// insert-then-split CL arrays), then split the combined children in
// half into s (left) and a fresh superpage (right), per component F's
// sibling splice.
func (s *superpage) splitForOuterAndAdopt(ci int, rp *page, sep int32, h *Hierarchy) (leStatus, leafEquiv, int32, error) {
	seps := insertAtInt32(s.seps, ci, sep)
	children := insertAtPage(s.children, ci+1, rp)

	mid := len(children) / 2
	leftChildren, rightChildren := children[:mid], children[mid:]
	leftSeps, raised, rightSeps := seps[:mid-1], seps[mid-1], seps[mid:]

	s.children, s.seps = leftChildren, leftSeps

	right, err := newSuperpage(h.Alloc)
	if err != nil {
		return 0, nil, 0, err
	}
	right.leaf = nil
	right.children = rightChildren
	right.seps = rightSeps

	right.nextL = s.nextL
	right.prevL = s
	if s.nextL != nil {
		_, n := s.nextL.siblings()
		s.nextL.setSiblings(right, n)
	}
	s.nextL = right

	return leFull, right, raised, nil
}

func (s *superpage) deleteKey(key int32, h *Hierarchy) leStatus {
	if s.leaf != nil {
		return s.leaf.deleteKey(key, h)
	}
	// Nested pages underflow against the page-level threshold, not the
	// superpage one.
	ph := *h
	ph.UseSuperpages = false
	ci := s.childIndex(key)
	st := s.children[ci].deleteKey(key, &ph)
	if st != leUnderflow {
		return st
	}
	s.rebalanceChild(ci, &ph)
	if s.numKeys() < h.minLeafKeys() {
		return leUnderflow
	}
	return leOK
}

// rebalanceChild redistributes keys between an underflowed page child
// and a sibling sharing this superpage, or merges them, mirroring the
// outer tree's own leaf-equivalent rebalance but scoped to one
// superpage's children (spec §4.D "Rebalance").
func (s *superpage) rebalanceChild(ci int, h *Hierarchy) {
	if len(s.children) <= 1 {
		return
	}
	if ci > 0 && s.tryRedistribute(ci-1, ci, h) {
		return
	}
	if ci < len(s.children)-1 && s.tryRedistribute(ci, ci+1, h) {
		return
	}
	if ci > 0 {
		s.mergeChildren(ci-1, h)
	} else {
		s.mergeChildren(ci, h)
	}
}

func (s *superpage) tryRedistribute(leftCi, rightCi int, h *Hierarchy) bool {
	left, right := s.children[leftCi], s.children[rightCi]
	combined := append(left.extractSorted(), right.extractSorted()...)
	if len(combined) < 2*h.minLeafKeys() {
		return false
	}
	mid := len(combined) / 2
	if err := left.rebuildFrom(combined[:mid], h); err != nil {
		return false
	}
	if err := right.rebuildFrom(combined[mid:], h); err != nil {
		return false
	}
	s.seps[leftCi] = combined[mid]
	return true
}

// mergeChildren merges two adjacent page children. Sibling pointers on
// nested pages are not read by routing or iteration (component F only
// links at outer-tree-leaf granularity), so only the slice of children
// and routing separators are updated.
func (s *superpage) mergeChildren(leftCi int, h *Hierarchy) {
	left, right := s.children[leftCi], s.children[leftCi+1]
	merged := append(left.extractSorted(), right.extractSorted()...)
	left.rebuildFrom(merged, h)

	s.children = append(s.children[:leftCi+1], s.children[leftCi+2:]...)
	s.seps = append(s.seps[:leftCi], s.seps[leftCi+1:]...)

	if len(s.children) == 1 {
		s.leaf = s.children[0]
		s.children, s.seps = nil, nil
	}
}

func (s *superpage) extractSorted() []int32 {
	if s.leaf != nil {
		return s.leaf.extractSorted()
	}
	out := make([]int32, 0, s.numKeys())
	for _, c := range s.children {
		out = append(out, c.extractSorted()...)
	}
	return out
}

// rebuildFrom repacks this superpage bottom-up: page-leaf partitions
// first (near leafCapacity/page-nominal size each), then the routing
// separator array over them, collapsing to sub-height 0 when the whole
// key set fits in one page.
func (s *superpage) rebuildFrom(keys []int32, h *Hierarchy) error {
	if len(keys) <= nominalPageMaxKeys {
		if s.leaf == nil {
			p, err := newPage(h.Alloc)
			if err != nil {
				return err
			}
			s.leaf = p
		}
		s.children, s.seps = nil, nil
		return s.leaf.rebuildFrom(keys, h)
	}

	numPages := (len(keys) + nominalPageMaxKeys - 1) / nominalPageMaxKeys
	if numPages > maxPageLeafFanout {
		numPages = maxPageLeafFanout
	}
	base, rem := len(keys)/numPages, len(keys)%numPages

	s.leaf = nil
	s.children = make([]*page, 0, numPages)
	s.seps = make([]int32, 0, numPages-1)
	pos := 0
	for i := 0; i < numPages; i++ {
		cnt := base
		if i < rem {
			cnt++
		}
		p, err := newPage(h.Alloc)
		if err != nil {
			return err
		}
		if err := p.rebuildFrom(keys[pos:pos+cnt], h); err != nil {
			return err
		}
		if i > 0 {
			prev := s.children[i-1]
			prev.nextL, p.prevL = p, prev
			s.seps = append(s.seps, keys[pos])
		}
		s.children = append(s.children, p)
		pos += cnt
	}
	return nil
}

func (s *superpage) siblings() (prev, next leafEquiv) { return s.prevL, s.nextL }
func (s *superpage) setSiblings(prev, next leafEquiv) { s.prevL, s.nextL = prev, next }

func insertAtInt32(in []int32, pos int, v int32) []int32 {
	out := make([]int32, len(in)+1)
	copy(out, in[:pos])
	out[pos] = v
	copy(out[pos+1:], in[pos:])
	return out
}

func insertAtPage(in []*page, pos int, v *page) []*page {
	out := make([]*page, len(in)+1)
	copy(out, in[:pos])
	out[pos] = v
	copy(out[pos+1:], in[pos:])
	return out
}
