package matryoshka

// outerNode is one node of the outer B+ tree (component E). Leaves
// hold leaf-equivalents (pages or superpages, per Hierarchy
// .UseSuperpages); internals route over up to OuterMaxChildren
// children by separator, exactly like a conventional B+ tree internal
// — the structural pattern the teacher's BLTree insertKey/splitPage
// loop already follows, generalized here from byte-packed pages to a
// typed outerNode.
type outerNode struct {
	isLeaf bool

	seps     []int32      // internal: len(children)-1 routing separators
	children []*outerNode  // internal only

	leaves []leafEquiv // leaf only: this outer-tree leaf's own separators are leaves[i].maxKeyOf() for i < len(leaves)-1
}

func newOuterLeaf(first leafEquiv) *outerNode {
	return &outerNode{isLeaf: true, leaves: []leafEquiv{first}}
}

func newOuterInternal(seps []int32, children []*outerNode) *outerNode {
	return &outerNode{isLeaf: false, seps: seps, children: children}
}

func (n *outerNode) childIndex(key int32) int {
	return wideChildIndex(n.seps, key)
}

// leafSeps returns the routing separators among n.leaves: the max key
// of every leaf but the last.
func (n *outerNode) leafSeps() []int32 {
	seps := make([]int32, len(n.leaves)-1)
	for i := range seps {
		seps[i] = n.leaves[i].maxKeyOf()
	}
	return seps
}

func (n *outerNode) leafIndex(key int32) int {
	// Each separator is the max key of the leaf to its left, so a key
	// equal to it belongs to that leaf: ties go left here.
	seps := n.leafSeps()
	i := wideChildIndex(seps, key)
	if i > 0 && seps[i-1] == key {
		i--
	}
	return i
}

// leafFor returns the leaf-equivalent that would hold key, used by the
// iterator to seed a forward scan.
func (n *outerNode) leafFor(key int32) leafEquiv {
	if n.isLeaf {
		return n.leaves[n.leafIndex(key)]
	}
	return n.children[n.childIndex(key)].leafFor(key)
}

func (n *outerNode) containsKey(key int32) bool {
	if n.isLeaf {
		return n.leaves[n.leafIndex(key)].containsKey(key)
	}
	return n.children[n.childIndex(key)].containsKey(key)
}

func (n *outerNode) predecessorOf(q int32) (int32, bool) {
	if n.isLeaf {
		li := n.leafIndex(q)
		if k, ok := n.leaves[li].predecessorOf(q); ok {
			return k, true
		}
		for i := li - 1; i >= 0; i-- {
			if n.leaves[i].numKeys() > 0 {
				return n.leaves[i].maxKeyOf(), true
			}
		}
		return 0, false
	}
	ci := n.childIndex(q)
	if k, ok := n.children[ci].predecessorOf(q); ok {
		return k, true
	}
	for i := ci - 1; i >= 0; i-- {
		if k, ok := n.children[i].rightmostKey(); ok {
			return k, true
		}
	}
	return 0, false
}

func (n *outerNode) rightmostKey() (int32, bool) {
	if n.isLeaf {
		last := n.leaves[len(n.leaves)-1]
		if last.numKeys() == 0 {
			return 0, false
		}
		return last.maxKeyOf(), true
	}
	return n.children[len(n.children)-1].rightmostKey()
}

func (n *outerNode) size() int {
	if n.isLeaf {
		total := 0
		for _, l := range n.leaves {
			total += l.numKeys()
		}
		return total
	}
	total := 0
	for _, c := range n.children {
		total += c.size()
	}
	return total
}

// routingKeyCount is this node's own separator count — the structural
// occupancy the MIN_IKEYS/MAX_IKEYS invariant (spec §8) governs, one
// level up from minCLInternal/CLSepCap. It is not the number of data
// keys reachable underneath n (that's size()): an outer-internal several
// levels above leaf-equivalents holds far more keys than outerMinKeys
// long before its own separator count underflows.
func (n *outerNode) routingKeyCount() int {
	if n.isLeaf {
		return len(n.leaves) - 1
	}
	return len(n.seps)
}

// insertKey descends to the owning leaf-equivalent and absorbs any
// overflow it reports by inserting the new leaf-equivalent at this
// level, recursively splitting this node when its own fanout is
// exhausted (spec §4.E "Insert"). Returns (promoted node, split,
// inserted, err): split indicates the caller must adopt the promoted
// sibling; inserted is false when key was already present.
func (n *outerNode) insertKey(key int32, h *Hierarchy) (promoted *outerNode, split bool, inserted bool, err error) {
	if n.isLeaf {
		li := n.leafIndex(key)
		st, right, sep, ierr := n.leaves[li].insertKey(key, h)
		if ierr != nil {
			return nil, false, false, ierr
		}
		if st == leDuplicate {
			return nil, false, false, nil
		}
		if st != leFull {
			return nil, false, true, nil
		}
		p, ok, aerr := n.adoptLeaf(li, right, sep)
		return p, ok, true, aerr
	}

	ci := n.childIndex(key)
	childPromoted, ok, ins, cerr := n.children[ci].insertKey(key, h)
	if cerr != nil || !ok {
		return nil, false, ins, cerr
	}
	p, pok, aerr := n.adoptChild(ci, childPromoted)
	return p, pok, ins, aerr
}

// adoptLeaf splices a freshly split leaf-equivalent into this outer
// leaf's own leaves slice, splitting the outer leaf itself if that
// overflows OuterMaxChildren.
func (n *outerNode) adoptLeaf(at int, right leafEquiv, _ int32) (*outerNode, bool, error) {
	// The routing separator is always the left neighbour's maxKeyOf(),
	// recomputed lazily by leafSeps() rather than threaded through
	// explicitly.
	n.leaves = insertLeafAt(n.leaves, at+1, right)
	if len(n.leaves) <= OuterMaxChildren {
		return nil, false, nil
	}
	mid := len(n.leaves) / 2
	rightLeaves := append([]leafEquiv(nil), n.leaves[mid:]...)
	n.leaves = n.leaves[:mid]
	return newOuterLeaf(rightLeaves[0]).withLeaves(rightLeaves), true, nil
}

func (n *outerNode) withLeaves(leaves []leafEquiv) *outerNode {
	n.leaves = leaves
	return n
}

// adoptChild splices a freshly split internal child into this node's
// children slice, splitting this node itself if that overflows
// OuterMaxChildren (the classic B+ tree internal-split step).
func (n *outerNode) adoptChild(at int, right *outerNode) (*outerNode, bool, error) {
	sep, ok := right.leftmostKeyHint()
	if !ok {
		sep = mustRightmost(n.children[at])
	}
	n.seps = insertAtInt32(n.seps, at, sep)
	n.children = insertChildAt(n.children, at+1, right)
	if len(n.children) <= OuterMaxChildren {
		return nil, false, nil
	}
	mid := len(n.children) / 2
	rightChildren := append([]*outerNode(nil), n.children[mid:]...)
	rightSeps := append([]int32(nil), n.seps[mid:]...)
	n.children = n.children[:mid]
	n.seps = n.seps[:mid-1]
	return newOuterInternal(rightSeps, rightChildren), true, nil
}

// leftmostKeyHint and mustRightmost recover a routing separator for a
// promoted internal node, whose own leftmost key is the smallest key
// reachable through its leftmost child.
func (n *outerNode) leftmostKeyHint() (int32, bool) {
	cur := n
	for !cur.isLeaf {
		cur = cur.children[0]
	}
	if len(cur.leaves) == 0 || cur.leaves[0].numKeys() == 0 {
		return 0, false
	}
	keys := cur.leaves[0].extractSorted()
	if len(keys) == 0 {
		return 0, false
	}
	return keys[0], true
}

func mustRightmost(n *outerNode) int32 {
	k, _ := n.rightmostKey()
	return k
}

// deleteKey descends to the owning leaf-equivalent and rebalances this
// level when that leaf-equivalent underflows (spec §4.E "Delete").
func (n *outerNode) deleteKey(key int32, h *Hierarchy) error {
	if n.isLeaf {
		li := n.leafIndex(key)
		st := n.leaves[li].deleteKey(key, h)
		if st == leUnderflow {
			n.rebalanceLeaf(li, h)
		}
		return nil
	}
	ci := n.childIndex(key)
	if err := n.children[ci].deleteKey(key, h); err != nil {
		return err
	}
	if n.children[ci].routingKeyCount() < outerMinKeys && len(n.children) > 1 {
		n.rebalanceChild(ci)
	}
	return nil
}

// rebalanceLeaf redistributes keys between an underflowed
// leaf-equivalent and a sibling at this outer leaf, or merges them,
// mirroring page's own CL-level rebalance one level up (spec §4.E
// "Rebalance").
func (n *outerNode) rebalanceLeaf(li int, h *Hierarchy) {
	if len(n.leaves) <= 1 {
		return
	}
	if li > 0 && n.tryRedistributeLeaves(li-1, li, h) {
		return
	}
	if li < len(n.leaves)-1 && n.tryRedistributeLeaves(li, li+1, h) {
		return
	}
	if li > 0 {
		n.mergeLeaves(li-1, h)
	} else {
		n.mergeLeaves(li, h)
	}
}

func (n *outerNode) tryRedistributeLeaves(leftI, rightI int, h *Hierarchy) bool {
	left, right := n.leaves[leftI], n.leaves[rightI]
	combined := append(left.extractSorted(), right.extractSorted()...)
	minKeys := h.minLeafKeys()
	if len(combined) < 2*minKeys {
		return false
	}
	mid := len(combined) / 2
	if err := left.rebuildFrom(combined[:mid], h); err != nil {
		return false
	}
	if err := right.rebuildFrom(combined[mid:], h); err != nil {
		return false
	}
	return true
}

func (n *outerNode) mergeLeaves(leftI int, h *Hierarchy) {
	left, right := n.leaves[leftI], n.leaves[leftI+1]
	merged := append(left.extractSorted(), right.extractSorted()...)
	left.rebuildFrom(merged, h)
	prev, _ := left.siblings()
	_, rnext := right.siblings()
	left.setSiblings(prev, rnext)
	if rnext != nil {
		_, nn := rnext.siblings()
		rnext.setSiblings(left, nn)
	}
	n.leaves = append(n.leaves[:leftI+1], n.leaves[leftI+2:]...)
}

// rebalanceChild merges an underflowed internal child with a sibling,
// the outer-internal analogue of rebalanceLeaf. tryRedistributeChildren
// never succeeds, so separators are not redistributed at this level.
func (n *outerNode) rebalanceChild(ci int) {
	if ci > 0 && n.tryRedistributeChildren(ci-1, ci) {
		return
	}
	if ci < len(n.children)-1 && n.tryRedistributeChildren(ci, ci+1) {
		return
	}
	if ci > 0 {
		n.mergeInternalChildren(ci - 1)
	} else {
		n.mergeInternalChildren(ci)
	}
}

func (n *outerNode) tryRedistributeChildren(leftI, rightI int) bool {
	left, right := n.children[leftI], n.children[rightI]
	if left.routingKeyCount() <= outerMinKeys || right.routingKeyCount() <= outerMinKeys {
		return false
	}
	return false // conservative: internal-level redistribution is skipped in favor of merge, documented in DESIGN.md
}

func (n *outerNode) mergeInternalChildren(leftI int) {
	left, right := n.children[leftI], n.children[leftI+1]
	if left.isLeaf {
		left.leaves = append(left.leaves, right.leaves...)
	} else {
		left.seps = append(append(left.seps, n.seps[leftI]), right.seps...)
		left.children = append(left.children, right.children...)
	}
	n.children = append(n.children[:leftI+1], n.children[leftI+2:]...)
	n.seps = append(n.seps[:leftI], n.seps[leftI+1:]...)
}

func insertLeafAt(in []leafEquiv, pos int, v leafEquiv) []leafEquiv {
	out := make([]leafEquiv, len(in)+1)
	copy(out, in[:pos])
	out[pos] = v
	copy(out[pos+1:], in[pos:])
	return out
}

func insertChildAt(in []*outerNode, pos int, v *outerNode) []*outerNode {
	out := make([]*outerNode, len(in)+1)
	copy(out, in[:pos])
	out[pos] = v
	copy(out[pos+1:], in[pos:])
	return out
}
