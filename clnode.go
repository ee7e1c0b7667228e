package matryoshka

// clKind discriminates the two CL sub-node variants this implementation
// supports. The Eytzinger variant named in spec §3/§4.B is accepted as a
// configuration value (Hierarchy.Strategy) but not separately
// represented — see DESIGN.md.
type clKind uint8

const (
	clLeaf clKind = iota
	clInternal
)

// clNode is the cache-line-sized building block of a page's nested
// sub-tree (component B). Spec §3 specifies this as an exact 64-byte
// footprint; this implementation represents the same counts and
// invariants as a typed Go struct with fixed-size arrays rather than a
// hand-packed byte buffer, per the Go-native adaptation recorded in
// SPEC_FULL.md §3 (Go gives no portable way to pin a struct to a cache
// line the way the teacher's C-derived byte-slotted Page does).
type clNode struct {
	kind  clKind
	count int             // leaf: key count; internal: separator count
	keys  [CLKeyCap]int32 // leaf: sorted keys; internal: sorted separators
	// children holds count+1 child slot-indices when kind == clInternal.
	// Sized one entry past CLChildCap so inodeInsertAt can momentarily
	// overflow a full internal before inodeSplit brings it back under
	// cap, mirroring "insert then split" rather than a separate
	// virtually-merged scratch buffer.
	children [CLChildCap + 1]uint8
}

func (n *clNode) leafKeys() []int32 { return n.keys[:n.count] }
func (n *clNode) sepKeys() []int32  { return n.keys[:n.count] }

// leafInsert performs a sorted insert via shift (spec §4.B
// cl_leaf_insert).
func (n *clNode) leafInsert(key int32) clStatus {
	i := smallLowerBound(n.leafKeys(), key)
	if i < n.count && n.keys[i] == key {
		return clDuplicate
	}
	if n.count >= CLKeyCap {
		return clFull
	}
	copy(n.keys[i+1:n.count+1], n.keys[i:n.count])
	n.keys[i] = key
	n.count++
	return clOK
}

// leafDelete removes key via shift (spec §4.B cl_leaf_delete).
func (n *clNode) leafDelete(key int32) clStatus {
	i := smallLowerBound(n.leafKeys(), key)
	if i >= n.count || n.keys[i] != key {
		return clNotFound
	}
	copy(n.keys[i:n.count-1], n.keys[i+1:n.count])
	n.count--
	return clOK
}

// leafSplit moves the upper half of n into right, which must be empty,
// and returns the promoted separator (spec §4.B cl_leaf_split).
func (n *clNode) leafSplit(right *clNode) int32 {
	mid := n.count / 2
	right.kind = clLeaf
	right.count = n.count - mid
	copy(right.keys[:right.count], n.keys[mid:n.count])
	n.count = mid
	return right.keys[0]
}

// inodeSearch returns the child index in [0, count] to descend into for
// key (spec §4.B cl_inode_search).
func (n *clNode) inodeSearch(key int32) int {
	return smallChildIndex(n.sepKeys(), key)
}

// inodeInsertAt inserts a (separator, right child) pair at pos. The
// caller must have already verified room (spec §4.B
// cl_inode_insert_at).
func (n *clNode) inodeInsertAt(pos int, key int32, rightChild uint8) {
	copy(n.keys[pos+1:n.count+1], n.keys[pos:n.count])
	copy(n.children[pos+2:n.count+2], n.children[pos+1:n.count+1])
	n.keys[pos] = key
	n.children[pos+1] = rightChild
	n.count++
}

// inodeRemoveAt removes separator pos and the child to its right (spec
// §4.B cl_inode_remove_at).
func (n *clNode) inodeRemoveAt(pos int) {
	copy(n.keys[pos:n.count-1], n.keys[pos+1:n.count])
	copy(n.children[pos+1:n.count], n.children[pos+2:n.count+1])
	n.count--
}

// inodeSplit moves the upper half of n (excluding the promoted median)
// into right and returns the promoted median key (spec §4.B
// cl_inode_split).
func (n *clNode) inodeSplit(right *clNode) int32 {
	mid := n.count / 2
	median := n.keys[mid]
	right.kind = clInternal
	right.count = n.count - mid - 1
	copy(right.keys[:right.count], n.keys[mid+1:n.count])
	copy(right.children[:right.count+1], n.children[mid+1:n.count+1])
	n.count = mid
	return median
}
